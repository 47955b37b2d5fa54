// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	DBPath     string
}

// Load reads configuration from the environment and returns a validated
// Config. A `.env` file (or the file named by COREHUB_ENV_FILE) is loaded
// first when present, without overriding variables already set in the
// environment. Optional variables with defaults:
// COREHUB_LISTEN_ADDR (127.0.0.1:8080), COREHUB_DB_PATH (corehub.db).
func Load() (*Config, error) {
	envFile := ".env"
	if v, ok := os.LookupEnv("COREHUB_ENV_FILE"); ok {
		envFile = v
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("COREHUB_LISTEN_ADDR"); ok && v != "" {
		listenAddr = v
	}

	dbPath := "corehub.db"
	if v, ok := os.LookupEnv("COREHUB_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	return &Config{
		ListenAddr: listenAddr,
		DBPath:     dbPath,
	}, nil
}
