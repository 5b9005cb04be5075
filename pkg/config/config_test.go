package config

import (
	"os"
	"strings"
	"testing"
)

func TestLoad_SQLiteDefaults(t *testing.T) {
	unsetAll(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsDev() {
		t.Fatalf("expected dev env by default, got %q", cfg.App.Env)
	}
	if !cfg.DB.IsSQLite() {
		t.Fatalf("expected sqlite driver by default, got %q", cfg.DB.Driver)
	}
	if cfg.DB.DSN != DefaultSQLiteDSN {
		t.Fatalf("expected in-memory sqlite DSN, got %q", cfg.DB.DSN)
	}
	if cfg.Tax.RatePercent != "8.25" {
		t.Fatalf("unexpected tax rate %q", cfg.Tax.RatePercent)
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	unsetAll(t)
	t.Setenv(EnvDBDriver, DriverPostgres)

	if _, err := Load(); err == nil {
		t.Fatal("expected error when postgres driver has no DSN")
	}
}

func TestLoad_PostgresLegacyVars(t *testing.T) {
	unsetAll(t)
	t.Setenv(EnvDBDriver, DriverPostgres)
	t.Setenv(EnvDBHost, "localhost")
	t.Setenv(EnvDBUser, "pos")
	t.Setenv(EnvDBName, "posplus")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !strings.HasPrefix(cfg.DB.DSN, "postgres://pos@localhost:5432/posplus") {
		t.Fatalf("unexpected DSN %q", cfg.DB.DSN)
	}
}

func unsetAll(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAppEnv, EnvPort, EnvDBDriver, EnvDBDSN, EnvDBHost, EnvDBUser, EnvDBName} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}
