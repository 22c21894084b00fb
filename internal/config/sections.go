package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port              string        `json:"port"`
	ReadHeaderTimeout time.Duration `json:"read_header_timeout"`
	ReadTimeout       time.Duration `json:"read_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout"`
	IdleTimeout       time.Duration `json:"idle_timeout"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = 5 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
}

func (c ServerConfig) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("server: port is required")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 || c.ReadHeaderTimeout < 0 {
		return errors.New("server: timeouts must not be negative")
	}
	return nil
}

// DatabaseConfig selects where fleet snapshots are read from.
// URL points at Postgres; SnapshotFile is used when no URL is set.
type DatabaseConfig struct {
	URL             string        `json:"url"`
	SnapshotFile    string        `json:"snapshot_file"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
}

func (c *DatabaseConfig) SetDefaults() {
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = c.MaxOpenConns
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 30 * time.Minute
	}
}

func (c DatabaseConfig) Validate() error {
	if c.MaxOpenConns < 1 {
		return fmt.Errorf("database: max_open_conns must be positive, got %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("database: max_idle_conns %d above max_open_conns %d", c.MaxIdleConns, c.MaxOpenConns)
	}
	return nil
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level"`
	// Format is "json" or "console".
	Format string `json:"format"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

func (c LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: unknown level %s", c.Level)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("logging: unknown format %s", c.Format)
	}
	return nil
}

// MatchingConfig tunes batch order matching.
type MatchingConfig struct {
	Workers     int           `json:"workers"`
	Pairing     string        `json:"pairing"`
	CallTimeout time.Duration `json:"call_timeout"`
}

func (c *MatchingConfig) SetDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.Pairing == "" {
		c.Pairing = "index_aligned"
	}
	if c.CallTimeout == 0 {
		c.CallTimeout = 5 * time.Second
	}
}

func (c MatchingConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("matching: workers must be positive, got %d", c.Workers)
	}
	if c.Pairing != "index_aligned" && c.Pairing != "cross_product" {
		return fmt.Errorf("matching: unknown pairing %s", c.Pairing)
	}
	if c.CallTimeout < 0 {
		return errors.New("matching: call_timeout must not be negative")
	}
	return nil
}

// ComplianceConfig holds fleet audit inputs.
type ComplianceConfig struct {
	BaselineDailyLoss float64 `json:"baseline_daily_loss"`
}

func (c *ComplianceConfig) SetDefaults() {
	if c.BaselineDailyLoss == 0 {
		c.BaselineDailyLoss = 388.15
	}
}

func (c ComplianceConfig) Validate() error {
	if c.BaselineDailyLoss < 0 {
		return fmt.Errorf("compliance: baseline_daily_loss must not be negative, got %v", c.BaselineDailyLoss)
	}
	return nil
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

func (c *MetricsConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "/metrics"
	}
}

func (c MetricsConfig) Validate() error {
	if c.Enabled && !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("metrics: path must start with /, got %s", c.Path)
	}
	return nil
}
