// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store backend names accepted by -s / STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendCloud    = "cloud"
)

type Config struct {
	Port         int    `envconfig:"PORT" default:"3000"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`

	// Remote store credentials (cloud backend only)
	CloudBaseURL string `envconfig:"CLOUDINARY_BASE_URL" default:"https://api.cloudinary.com/v1_1"`
	CloudName    string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudKey     string `envconfig:"CLOUDINARY_API_KEY"`
	CloudSecret  string `envconfig:"CLOUDINARY_API_SECRET"`

	AllowedOrigin string        `envconfig:"ALLOWED_ORIGIN" default:"*"`
	ListLimit     int           `envconfig:"LIST_LIMIT" default:"50"`
	StoreTimeout  time.Duration `envconfig:"STORE_TIMEOUT" default:"10s"`
}

// ParseFlags loads configuration from the environment, lets CLI flags
// override it, and validates the combination.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("meni-server", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "Store backend (memory, sqlite, postgres, cloud)")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL (sqlite path or postgres DSN)")
	fs.StringVar(&cfg.AllowedOrigin, "origin", cfg.AllowedOrigin, "Allowed CORS origin")
	fs.IntVar(&cfg.ListLimit, "limit", cfg.ListLimit, "Max memes returned by one listing")
	fs.DurationVar(&cfg.StoreTimeout, "store-timeout", cfg.StoreTimeout, "Per-call store timeout")

	// Cloud credentials (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CloudName, "cloud-name", cfg.CloudName, "Remote store cloud name (prefer env)")
	fs.StringVar(&cfg.CloudKey, "cloud-key", cfg.CloudKey, "Remote store API key (prefer env)")
	fs.StringVar(&cfg.CloudSecret, "cloud-secret", cfg.CloudSecret, "Remote store API secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendSQLite, BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for sql backends (use -d or DATABASE_URL env)")
		}
	case BackendCloud:
		if cfg.CloudName == "" || cfg.CloudKey == "" || cfg.CloudSecret == "" {
			return Config{}, errors.New("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET required for cloud backend")
		}
	default:
		return Config{}, errors.New("store backend must be one of: memory, sqlite, postgres, cloud")
	}

	if cfg.ListLimit <= 0 {
		return Config{}, errors.New("listing limit must be positive")
	}

	return cfg, nil
}
