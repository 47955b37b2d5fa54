package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("COREHUB_ENV_FILE", "does-not-exist.env")
	t.Setenv("COREHUB_LISTEN_ADDR", "")
	t.Setenv("COREHUB_DB_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "corehub.db", cfg.DBPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("COREHUB_ENV_FILE", "does-not-exist.env")
	t.Setenv("COREHUB_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("COREHUB_DB_PATH", "/tmp/corehub-test.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/corehub-test.db", cfg.DBPath)
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("COREHUB_LISTEN_ADDR=127.0.0.1:7070\n"), 0o600))

	t.Setenv("COREHUB_ENV_FILE", envFile)
	t.Setenv("COREHUB_DB_PATH", "")

	// godotenv never overrides variables already present in the
	// environment, so make sure this one is absent.
	t.Setenv("COREHUB_LISTEN_ADDR", "placeholder")
	require.NoError(t, os.Unsetenv("COREHUB_LISTEN_ADDR"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7070", cfg.ListenAddr)
}
