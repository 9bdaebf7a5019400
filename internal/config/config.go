package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

type Config struct {
	Port             string `koanf:"port"`
	PostgresAddress  string `koanf:"postgres_address"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresDB       string `koanf:"postgres_db"`
	PostgresUsername string `koanf:"postgres_username"`
	PostgresPassword string `koanf:"postgres_password"`
	StorageBackend   string `koanf:"storage_backend"`
	AutoMigrate      bool   `koanf:"auto_migrate"`
	OperatorWorkers  int    `koanf:"operator_workers"`
	JWTSecret        string `koanf:"jwt_secret"`
	LogLevel         string `koanf:"log_level"`
}

// In all cases the default behavior should be for the docker compose setup.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"port":              "9446",
		"postgres_address":  "localhost",
		"postgres_port":     "5433",
		"postgres_db":       "postgres",
		"postgres_username": "postgres",
		"postgres_password": "testpassword",
		"storage_backend":   StorageBackendPostgres,
		"auto_migrate":      false,
		"operator_workers":  4,
		"jwt_secret":        "",
		"log_level":         "info",
	}
}

// ProcessEnvironmentVariables loads .env when present, then layers the
// process environment over the defaults and validates the result.
func ProcessEnvironmentVariables() (*Config, error) {
	_ = godotenv.Load()
	return Load()
}

// ConfigFileEnv names an optional YAML file layered between the defaults
// and the environment. Its keys are the lowercase variable names.
const ConfigFileEnv = "CONFIG_FILE"

// Load builds the Config from defaults, the optional YAML file and the
// process environment, in increasing precedence.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	known := defaults()
	err := k.Load(env.Provider("", ".", func(key string) string {
		key = strings.ToLower(key)
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must be set"))
	}
	switch c.StorageBackend {
	case StorageBackendPostgres:
		if c.PostgresAddress == "" || c.PostgresPort == "" || c.PostgresDB == "" {
			errs = append(errs, errors.New("POSTGRES_ADDRESS, POSTGRES_PORT and POSTGRES_DB must be set for the postgres backend"))
		}
	case StorageBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND %q is not one of %s, %s", c.StorageBackend, StorageBackendPostgres, StorageBackendMemory))
	}
	if c.OperatorWorkers < 1 {
		errs = append(errs, fmt.Errorf("OPERATOR_WORKERS must be at least 1, got %d", c.OperatorWorkers))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	return errors.Join(errs...)
}
