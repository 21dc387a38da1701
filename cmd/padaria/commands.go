package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/padaria/internal/costing"
	"github.com/Simplici0/padaria/internal/logging"
	"github.com/Simplici0/padaria/internal/migrations"
	"github.com/Simplici0/padaria/internal/pricing"
	"github.com/Simplici0/padaria/internal/seed"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := migrations.Up(a.db); err != nil {
			return err
		}
		version, err := migrations.Version(a.db)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default units and ingredients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := seed.Run(a.db)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seed inserted %d rows, updated %d\n", stats.Inserts, stats.Updates)
		return nil
	},
}

var costTargetGrams float64

var costCmd = &cobra.Command{
	Use:   "cost <recipe-id>",
	Short: "Print the cost breakdown of a stored recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  runCost,
}

var priceInput pricing.Input

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Suggest a sale price from costs and desired profit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result := pricing.Calculate(priceInput)
		writePriceResult(cmd.OutOrStdout(), result.Rounded(), cfg.Currency)
		return nil
	},
}

func init() {
	costCmd.Flags().Float64Var(&costTargetGrams, "target-grams", 0, "rescale the cost to this final weight")

	priceCmd.Flags().Float64Var(&priceInput.RecipeCost, "recipe-cost", 0, "ingredient cost of the batch")
	priceCmd.Flags().Float64Var(&priceInput.PackagingCost, "packaging", 0, "packaging cost")
	priceCmd.Flags().Float64Var(&priceInput.ExtraCosts, "extra", 0, "other costs such as energy or labor")
	priceCmd.Flags().Float64Var(&priceInput.DesiredProfitPercent, "profit", 0, "desired profit in percent")
	priceCmd.Flags().Float64Var(&priceInput.FinalWeightGrams, "weight", 0, "final product weight in grams")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(cfg.MigrateOnStart)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := newServer(a.db, a.store, a.recipes, cfg.Currency)
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.AppEnv))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func runCost(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid recipe id %q", args[0])
	}

	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	report, err := a.recipes.Cost(ctx, id, costTargetGrams)
	if err != nil {
		return err
	}
	cat, err := a.store.Catalog(ctx)
	if err != nil {
		return err
	}

	writeCostReport(cmd.OutOrStdout(), report.Recipe, report.Snapshot, cat, cfg.Currency)
	if costTargetGrams > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Custo para %.0f g: %.2f %s\n", report.TargetGrams, report.ScaledCost, cfg.Currency)
	}
	return nil
}

func writeCostReport(w io.Writer, recipe costing.Recipe, snapshot costing.CostSnapshot, cat costing.Catalog, currency string) {
	fmt.Fprintf(w, "Receita: %s\n", recipe.Name)
	for _, lc := range snapshot.Lines {
		line := recipe.Lines[lc.Index]
		name := fmt.Sprintf("ingrediente %d", line.IngredientID)
		if ing, ok := cat.Ingredient(line.IngredientID); ok {
			name = ing.Name
		}
		fmt.Fprintf(w, "  %-24s %8.0f g %7.2f%% %9.2f %s\n", name, lc.Grams, line.Percentage, lc.Cost, currency)
	}
	fmt.Fprintf(w, "Peso total: %.0f g\n", snapshot.TotalWeightGrams)
	fmt.Fprintf(w, "Custo total: %.2f %s\n", snapshot.TotalCost, currency)
}

func writePriceResult(w io.Writer, result pricing.Result, currency string) {
	fmt.Fprintf(w, "Custo total: %.2f %s\n", result.TotalCost, currency)
	fmt.Fprintf(w, "Lucro: %.2f %s\n", result.ProfitAmount, currency)
	fmt.Fprintf(w, "Preço sugerido: %.2f %s\n", result.SuggestedPrice, currency)
	fmt.Fprintf(w, "Markup: %.2f%%\n", result.Markup)
	fmt.Fprintf(w, "Custo por kg: %.2f %s\n", result.CostPerKilogram, currency)
	fmt.Fprintf(w, "Preço por kg: %.2f %s\n", result.PricePerKilogram, currency)
}
