// Package config loads process configuration from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Store backends selectable via STORE_BACKEND.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds everything the server needs to start.
type Config struct {
	// Addr is the listen address.
	Addr string `envconfig:"ADDR" default:":8080"`

	// StoreBackend picks the persistence adapter: json or sqlite.
	StoreBackend string `envconfig:"STORE_BACKEND" default:"json"`

	// DataFile is the JSON store's file path.
	DataFile string `envconfig:"DATA_FILE" default:"./data/invoices.json"`

	// DBPath is the SQLite store's database path.
	DBPath string `envconfig:"DB_PATH" default:"./data/invoices.db"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat is "pretty" (colored, for terminals) or "json".
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to process environment")
	}
	if cfg.StoreBackend != BackendJSON && cfg.StoreBackend != BackendSQLite {
		return Config{}, errors.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return cfg, nil
}
