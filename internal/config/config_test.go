package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_ENV", "DB_PATH", "PORT", "LOG_LEVEL", "LOG_FORMAT", "CURRENCY", "MIGRATE_ON_START"} {
		t.Setenv(key, "")
	}
}

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.DBPath != defaultDBPath || cfg.Port != defaultPort || cfg.Currency != defaultCurrency {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.IsDev() || !cfg.MigrateOnStart {
		t.Fatalf("expected development defaults, got %+v", cfg)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("Addr() = %q", cfg.Addr())
	}
}

func TestLoadFrom_ReadsDotEnv(t *testing.T) {
	clearEnv(t)

	path := writeDotEnv(t, `
# comment
APP_ENV=production
DB_PATH=/var/lib/padaria/padaria.db
PORT="9090"
CURRENCY=eur
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.AppEnv != "production" || cfg.IsDev() {
		t.Fatalf("AppEnv=%q, want production", cfg.AppEnv)
	}
	if cfg.DBPath != "/var/lib/padaria/padaria.db" {
		t.Fatalf("DBPath=%q", cfg.DBPath)
	}
	if cfg.Port != "9090" {
		t.Fatalf("Port=%q, want 9090", cfg.Port)
	}
	if cfg.Currency != "EUR" {
		t.Fatalf("Currency=%q, want EUR", cfg.Currency)
	}
	if cfg.MigrateOnStart {
		t.Fatal("MigrateOnStart should default to false outside development")
	}
}

func TestLoadFrom_EnvironmentWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7070")
	t.Setenv("DB_PATH", "/tmp/from-env.db")
	t.Setenv("MIGRATE_ON_START", "false")

	path := writeDotEnv(t, "PORT=9090\nDB_PATH=/tmp/from-file.db\n")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("Port=%q, want %q", cfg.Port, "7070")
	}
	if cfg.DBPath != "/tmp/from-env.db" {
		t.Fatalf("DBPath=%q, want %q", cfg.DBPath, "/tmp/from-env.db")
	}
	if cfg.MigrateOnStart {
		t.Fatal("MIGRATE_ON_START=false should win over the development default")
	}
}

func TestConfig_Logging(t *testing.T) {
	cfg := Config{AppEnv: "production", LogLevel: "warn", LogFormat: "json"}

	lc := cfg.Logging()
	if lc.Level != "warn" || lc.Format != "json" || lc.Development {
		t.Fatalf("unexpected logging config: %+v", lc)
	}
}
