package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Map sources.
const (
	SourceFile     = "file"
	SourceDatabase = "database"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the route engine.
type Config struct {
	LogLevel string `yaml:"log_level"`

	Map      MapConfig      `yaml:"map"`
	Database DatabaseConfig `yaml:"database"`
	Route    RouteConfig    `yaml:"route"`
}

// MapConfig says where the map snapshot comes from.
type MapConfig struct {
	Source     string `yaml:"source"`      // "file" or "database"
	Path       string `yaml:"path"`        // map file, .zst is decompressed
	Enhance    bool   `yaml:"enhance"`     // derive features from glyphs
	ChangesDir string `yaml:"changes_dir"` // accepted change records, optional
}

// DatabaseConfig holds map store connection parameters.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`

	// PostgreSQL
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`

	// SQLite
	Path string `yaml:"path"`
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// RouteConfig holds defaults for route requests.
type RouteConfig struct {
	Avoid         []string `yaml:"avoid"` // feature names
	UseTransports bool     `yaml:"use_transports"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel: "info",
		Map: MapConfig{
			Source:  SourceFile,
			Path:    "data/map.json",
			Enhance: true,
		},
		Database: DatabaseConfig{
			Driver:   DriverSQLite,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "buttermap",
			Password: "buttermap",
			DBName:   "buttermap",
			SSLMode:  "disable",
			Path:     "data/buttermap.db",
		},
		Route: RouteConfig{
			Avoid:         []string{"BLOCKING"},
			UseTransports: true,
		},
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Map.Source {
	case SourceFile:
		if c.Map.Path == "" {
			return fmt.Errorf("map.path is required for source %q", SourceFile)
		}
	case SourceDatabase:
	default:
		return fmt.Errorf("unknown map.source %q", c.Map.Source)
	}

	switch c.Database.Driver {
	case DriverPostgres:
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for driver %q", DriverSQLite)
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	return nil
}
