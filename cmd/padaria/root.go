package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/padaria/internal/config"
	"github.com/Simplici0/padaria/internal/db"
	"github.com/Simplici0/padaria/internal/logging"
	"github.com/Simplici0/padaria/internal/migrations"
	"github.com/Simplici0/padaria/internal/recipes"
	"github.com/Simplici0/padaria/internal/seed"
	"github.com/Simplici0/padaria/internal/store"
)

var (
	envFile string
	verbose bool
	cfg     config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "padaria",
	Short: "Recipe costing and pricing for bakeries",
	Long: `padaria normalizes recipe quantities to grams, derives baker's
percentages and recipe cost, and suggests sale prices.

Without a subcommand it starts the HTTP API.

Examples:
  padaria serve
  padaria cost 12 --target-grams 850
  padaria price --recipe-cost 8.75 --packaging 0.5 --profit 50 --weight 1000`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	RunE:              runServe,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with configuration overrides")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(costCmd)
	rootCmd.AddCommand(priceCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadFrom(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded

	logCfg := cfg.Logging()
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logging.Initialize(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	return nil
}

// app holds the opened database and the services built on top of it.
type app struct {
	db      *sql.DB
	store   *store.Store
	recipes *recipes.Service
}

func openApp(migrate bool) (*app, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if migrate {
		if err := migrations.Up(database); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		stats, err := seed.Run(database)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
		logging.Info("database ready", zap.String("db_path", cfg.DBPath), zap.Int("seed_inserts", stats.Inserts), zap.Int("seed_updates", stats.Updates))
	}

	st := store.New(database)
	return &app{
		db:      database,
		store:   st,
		recipes: recipes.NewService(st, cfg.Currency),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
