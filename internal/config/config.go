package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Simplici0/padaria/internal/logging"
)

const (
	defaultAppEnv    = "development"
	defaultDBPath    = "./padaria.db"
	defaultPort      = "8080"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
	defaultCurrency  = "BRL"
)

// Config holds application configuration sourced from a dotenv file and
// environment variables. Environment variables win over the file.
type Config struct {
	AppEnv         string `mapstructure:"app_env"`
	DBPath         string `mapstructure:"db_path"`
	Port           string `mapstructure:"port"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
	Currency       string `mapstructure:"currency"`
	MigrateOnStart bool   `mapstructure:"migrate_on_start"`
}

// LoadFrom reads the dotenv file at path (skipped when empty or missing)
// and the process environment.
func LoadFrom(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("app_env", defaultAppEnv)
	v.SetDefault("port", defaultPort)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_format", defaultLogFormat)
	v.SetDefault("currency", defaultCurrency)
	v.AutomaticEnv()
	_ = v.BindEnv("db_path")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetDefault("migrate_on_start", isDevEnv(v.GetString("app_env")))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.Currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))

	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = defaultDBPath
		if !cfg.IsDev() {
			logging.Warn("DB_PATH is not set, using default", zap.String("db_path", cfg.DBPath))
		}
	}

	return cfg, nil
}

// IsDev reports whether the application runs in a development environment.
func (c Config) IsDev() bool {
	return isDevEnv(c.AppEnv)
}

// Logging returns the logger configuration for this environment.
func (c Config) Logging() logging.Config {
	return logging.Config{
		Level:       c.LogLevel,
		Format:      c.LogFormat,
		Output:      "stderr",
		Development: c.IsDev(),
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func isDevEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "dev", "development", "local":
		return true
	}
	return false
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
