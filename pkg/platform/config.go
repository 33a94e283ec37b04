// Package platform provides service configuration and component
// lifecycle management.
package platform

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config holds the complete service configuration. Values load from an
// optional YAML file, then environment variables override.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address         string        `yaml:"address" env:"MINDCONNECT_ADDRESS"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"MINDCONNECT_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig configures the PostgreSQL connection.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"MINDCONNECT_DB_HOST"`
	Port     int    `yaml:"port" env:"MINDCONNECT_DB_PORT"`
	Name     string `yaml:"name" env:"MINDCONNECT_DB_NAME"`
	User     string `yaml:"user" env:"MINDCONNECT_DB_USER"`
	Password string `yaml:"password" env:"MINDCONNECT_DB_PASSWORD"`
	SSLMode  string `yaml:"ssl_mode" env:"MINDCONNECT_DB_SSLMODE"`
}

// DSN returns the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Name, c.User, c.Password, c.SSLMode)
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Driver is "postgres" or "memory".
	Driver string `yaml:"driver" env:"MINDCONNECT_STORAGE_DRIVER"`
}

// DefaultConfig returns the configuration used when no file or
// environment overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			Name:    "mindconnect",
			User:    "mindconnect",
			SSLMode: "disable",
		},
		Storage: StorageConfig{
			Driver: DriverPostgres,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and environment variable overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no component can work with.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address must not be empty")
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host must not be empty with the postgres driver")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database name must not be empty with the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
