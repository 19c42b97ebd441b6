// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"cinelog/pkg/db" // Import db package for its Config struct
)

// ConfigPathEnvVar names the variable holding an optional YAML config path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPath is used when CONFIG_PATH is unset.
const DefaultConfigPath = "config.yaml"

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	Server ServerConfig `koanf:"server"`
	DB     db.Config    `koanf:"database"`
	Log    LogConfig    `koanf:"log"`
	Auth   AuthConfig   `koanf:"auth"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required,numeric"`
	RequestTimeout     time.Duration `koanf:"request_timeout" validate:"gt=0"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// AuthConfig holds password hashing settings.
type AuthConfig struct {
	BcryptCost int `koanf:"bcrypt_cost" validate:"min=4,max=31"`
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:               "8080",
			RequestTimeout:     60 * time.Second,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		DB: db.Config{
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
			Migrate:         true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Auth: AuthConfig{
			BcryptCost: 10,
		},
	}
}

var envMappings = map[string]string{
	"server_port":          "server.port",
	"request_timeout":      "server.request_timeout",
	"cors_allowed_origins": "server.cors_allowed_origins",
	"database_url":         "database.url",
	"db_max_open_conns":    "database.max_open_conns",
	"db_max_idle_conns":    "database.max_idle_conns",
	"db_conn_max_lifetime": "database.conn_max_lifetime",
	"db_migrate":           "database.migrate",
	"log_level":            "log.level",
	"log_format":           "log.format",
	"bcrypt_cost":          "auth.bcrypt_cost",
}

// sliceConfigPaths are read from env as comma-separated lists.
var sliceConfigPaths = []string{
	"server.cors_allowed_origins",
}

// LoadConfig loads configuration in layers: defaults, then an optional YAML
// file, then environment variables. The result is validated.
func LoadConfig() (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &AppConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	path := os.Getenv(ConfigPathEnvVar)
	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// envTransformFunc maps known environment variable names to koanf paths.
// Unknown variables are dropped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
