package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers for the player profile
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Profile storage
	DataDir     string
	StoreDriver string
	ProfilePath string

	// Round archive (optional)
	ESURL         string
	ESUsername    string
	ESPassword    string
	ESIndexPrefix string
	ESRetention   time.Duration

	// Game runtime
	RNGSeed      int64 // 0 means seed from the system entropy source
	Location     *time.Location
	TickInterval time.Duration
	SaveInterval time.Duration

	// Local HTTP API; empty disables it
	HTTPAddr string

	LogLevel string

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := &Config{
		DataDir:       getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		StoreDriver:   getEnvWithDefault("STORE_DRIVER", StoreFile),
		ProfilePath:   os.Getenv("PROFILE_PATH"),
		ESURL:         os.Getenv("ES_URL"),
		ESUsername:    os.Getenv("ES_USERNAME"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		ESIndexPrefix: getEnvWithDefault("ES_INDEX_PREFIX", "neonroyal"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if seed := os.Getenv("RNG_SEED"); seed != "" {
		cfg.RNGSeed, err = strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RNG_SEED %q: %w", seed, err)
		}
	}

	cfg.Location, err = time.LoadLocation(getEnvWithDefault("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg.TickInterval, err = time.ParseDuration(getEnvWithDefault("TICK_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid TICK_INTERVAL: %w", err)
	}

	cfg.SaveInterval, err = time.ParseDuration(getEnvWithDefault("SAVE_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SAVE_INTERVAL: %w", err)
	}

	cfg.ESRetention, err = time.ParseDuration(getEnvWithDefault("ES_RETENTION", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ES_RETENTION: %w", err)
	}

	if cfg.ProfilePath == "" {
		cfg.ProfilePath = cfg.defaultProfilePath()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.StoreDriver != StoreMemory {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// validate checks if the configuration is usable
func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of %s, %s, %s; got %q", StoreFile, StoreSQLite, StoreMemory, c.StoreDriver)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive")
	}
	if c.SaveInterval <= 0 {
		return fmt.Errorf("SAVE_INTERVAL must be positive")
	}
	if c.ESRetention <= 0 {
		return fmt.Errorf("ES_RETENTION must be positive")
	}
	if (c.ESUsername == "") != (c.ESPassword == "") {
		return fmt.Errorf("ES_USERNAME and ES_PASSWORD must be set together")
	}
	return nil
}

func (c *Config) defaultProfilePath() string {
	if c.StoreDriver == StoreSQLite {
		return filepath.Join(c.DataDir, "profile.db")
	}
	return filepath.Join(c.DataDir, "profile.json")
}

// ArchiveEnabled returns true if settled rounds should be archived to Elasticsearch
func (c *Config) ArchiveEnabled() bool {
	return c.ESURL != ""
}

// APIEnabled returns true if the local HTTP API should be served
func (c *Config) APIEnabled() bool {
	return c.HTTPAddr != ""
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
