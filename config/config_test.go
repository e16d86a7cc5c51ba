package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("default port = %q", cfg.App.Port)
	}
	if cfg.JWT.TTL != 60*time.Minute {
		t.Errorf("default JWT TTL = %v", cfg.JWT.TTL)
	}
	if cfg.Reset.TTL != 30*time.Minute {
		t.Errorf("default reset TTL = %v", cfg.Reset.TTL)
	}
	if cfg.JWT.Secret == "" {
		t.Error("development fallback secret should be set")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("RESET_TOKEN_TTL", "10m")
	t.Setenv("DB_PORT", "5433")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.JWT.TTL != 15*time.Minute {
		t.Errorf("JWT TTL = %v, want 15m", cfg.JWT.TTL)
	}
	if cfg.Reset.TTL != 10*time.Minute {
		t.Errorf("reset TTL = %v, want 10m", cfg.Reset.TTL)
	}
	if cfg.Database.Port != 5433 {
		t.Errorf("db port = %d, want 5433", cfg.Database.Port)
	}
}

func TestLoadConfigProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("production without JWT_SECRET should fail")
	}
}

func TestConnectionStrings(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	dsn := cfg.DatabaseConnectionString()
	if want := "host=db.internal"; !strings.Contains(dsn, want) {
		t.Errorf("dsn %q missing %q", dsn, want)
	}
	if want := "dbname=testdb"; !strings.Contains(dsn, want) {
		t.Errorf("dsn %q missing %q", dsn, want)
	}
	if addr := cfg.RedisAddress(); addr != "cache.internal:6380" {
		t.Errorf("redis address = %q", addr)
	}
}
