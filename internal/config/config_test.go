package config

import (
	"testing"

	"planner.opentransit.org/internal/store"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("ENV", "")
		t.Setenv("STORAGE_BACKEND", "")
		t.Setenv("DATABASE_URL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Port != 4000 {
			t.Errorf("Expected default port 4000, got %d", cfg.Port)
		}
		if cfg.Env != "development" {
			t.Errorf("Expected default env development, got %s", cfg.Env)
		}
		if cfg.StorageBackend != store.BackendFile {
			t.Errorf("Expected default file backend, got %s", cfg.StorageBackend)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("ENV", "production")
		t.Setenv("STORAGE_BACKEND", store.BackendSQLite)
		t.Setenv("SQLITE_PATH", "/tmp/planner-test.db")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Port != 8080 || cfg.Env != "production" {
			t.Errorf("Expected overridden port and env, got %d and %s", cfg.Port, cfg.Env)
		}
		if cfg.SQLitePath != "/tmp/planner-test.db" {
			t.Errorf("Expected overridden sqlite path, got %s", cfg.SQLitePath)
		}
	})

	t.Run("unparseable port falls back", func(t *testing.T) {
		t.Setenv("PORT", "not-a-number")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Port != 4000 {
			t.Errorf("Expected fallback port 4000, got %d", cfg.Port)
		}
	})

	t.Run("postgres backend requires a database url", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", store.BackendPostgres)
		t.Setenv("DATABASE_URL", "")
		if _, err := Load(); err == nil {
			t.Errorf("Expected an error without DATABASE_URL")
		}
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "etcd")
		if _, err := Load(); err == nil {
			t.Errorf("Expected an error for an unknown backend")
		}
	})
}
