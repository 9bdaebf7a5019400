package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9446", cfg.Port)
	assert.Equal(t, "localhost", cfg.PostgresAddress)
	assert.Equal(t, "5433", cfg.PostgresPort)
	assert.Equal(t, "postgres", cfg.PostgresDB)
	assert.Equal(t, StorageBackendPostgres, cfg.StorageBackend)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 4, cfg.OperatorWorkers)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "8080")
	t.Setenv("POSTGRES_ADDRESS", "db")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("OPERATOR_WORKERS", "8")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "db", cfg.PostgresAddress)
	assert.Equal(t, StorageBackendMemory, cfg.StorageBackend)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 8, cfg.OperatorWorkers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "secret", cfg.JWTSecret)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		Port:            "9446",
		StorageBackend:  "sqlite",
		OperatorWorkers: 0,
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_BACKEND")
	assert.Contains(t, err.Error(), "OPERATOR_WORKERS")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_MemoryBackendSkipsPostgres(t *testing.T) {
	cfg := &Config{
		Port:            "9446",
		StorageBackend:  StorageBackendMemory,
		OperatorWorkers: 1,
		JWTSecret:       "secret",
	}

	assert.NoError(t, cfg.Validate())
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"port: \"7000\"\nstorage_backend: memory\noperator_workers: 2\njwt_secret: file-secret\n",
	), 0o600))
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, StorageBackendMemory, cfg.StorageBackend)
	assert.Equal(t, 2, cfg.OperatorWorkers)
	assert.Equal(t, "env-secret", cfg.JWTSecret, "environment wins over the file")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	assert.Error(t, err)
}
