package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"planner.opentransit.org/internal/store"
)

// Config holds all the configuration settings for the planner.
type Config struct {
	Port int
	Env  string

	// StorageBackend selects where snapshots and schedules persist:
	// "file", "sqlite" or "postgres".
	StorageBackend string
	// DataDir is the file backend's directory.
	DataDir string
	// SQLitePath is the sqlite backend's database file.
	SQLitePath string
	// DatabaseURL is the postgres backend's connection string.
	DatabaseURL string
}

// Load reads configuration from the environment, after loading a .env file
// when one is present. Flags in main may override Port and Env afterwards.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getIntEnv("PORT", 4000),
		Env:            getEnv("ENV", "development"),
		StorageBackend: getEnv("STORAGE_BACKEND", store.BackendFile),
		DataDir:        getEnv("DATA_DIR", "data"),
		SQLitePath:     getEnv("SQLITE_PATH", "planner.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	switch cfg.StorageBackend {
	case store.BackendFile, store.BackendSQLite:
	case store.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
