// Package config loads the API server configuration.
//
// Precedence, lowest first: built-in defaults, the optional TOML file,
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"bmi-tracker/internal/store"
)

// Config is the resolved server configuration.
type Config struct {
	ListenAddr      string
	Timezone        string
	ShutdownTimeout time.Duration
	Logging         LoggingConfig
	Telemetry       TelemetryConfig
	Store           StoreConfig

	// Undecoded lists TOML keys that matched no field. Callers log them.
	Undecoded []string
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// TelemetryConfig controls the OTLP exporters. The exporters themselves read
// the standard OTEL_EXPORTER_OTLP_* variables for endpoints and headers.
type TelemetryConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	ExportLogs  bool   `toml:"export_logs"`
}

// StoreConfig selects the record store driver. Drivers holds per-driver
// option tables, e.g. [store.drivers.sqlite].
type StoreConfig struct {
	Driver  string                    `toml:"driver"`
	Drivers map[string]map[string]any `toml:"drivers"`
}

// fileConfig mirrors Config with TOML tags and string durations.
type fileConfig struct {
	ListenAddr      string           `toml:"listen_addr"`
	Timezone        string           `toml:"timezone"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Logging         *LoggingConfig   `toml:"logging"`
	Telemetry       *TelemetryConfig `toml:"telemetry"`
	Store           *StoreConfig     `toml:"store"`
}

// Options controls Load.
type Options struct {
	// Path of a TOML file. Empty means defaults and environment only.
	Path string

	// Getenv looks up environment variables; os.Getenv when nil.
	Getenv func(string) string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ListenAddr:      ":3001",
		Timezone:        "Local",
		ShutdownTimeout: 5 * time.Second,
		Logging:         LoggingConfig{Level: "info"},
		Telemetry:       TelemetryConfig{ServiceName: "bmi-tracker"},
		Store: StoreConfig{
			Driver: "sqlite",
			Drivers: map[string]map[string]any{
				"sqlite": {"path": "bmi_tracker.db"},
			},
		},
	}
}

// Load resolves the configuration. A Path that cannot be read or parsed is
// an error.
func Load(opts Options) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()

	if opts.Path != "" {
		if err := overlayFile(cfg, opts.Path); err != nil {
			return nil, err
		}
	}

	if err := overlayEnv(cfg, getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	for _, k := range md.Undecoded() {
		// Driver option tables are free-form and decoded by the driver.
		if strings.HasPrefix(k.String(), "store.drivers.") {
			continue
		}
		cfg.Undecoded = append(cfg.Undecoded, k.String())
	}

	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
	if fc.Timezone != "" {
		cfg.Timezone = fc.Timezone
	}
	if fc.ShutdownTimeout != "" {
		d, err := time.ParseDuration(fc.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("config file %s: shutdown_timeout: %w", path, err)
		}
		cfg.ShutdownTimeout = d
	}
	if fc.Logging != nil && fc.Logging.Level != "" {
		cfg.Logging.Level = fc.Logging.Level
	}
	if fc.Telemetry != nil {
		cfg.Telemetry.Enabled = fc.Telemetry.Enabled
		cfg.Telemetry.ExportLogs = fc.Telemetry.ExportLogs
		if fc.Telemetry.ServiceName != "" {
			cfg.Telemetry.ServiceName = fc.Telemetry.ServiceName
		}
	}
	if fc.Store != nil {
		if fc.Store.Driver != "" {
			cfg.Store.Driver = fc.Store.Driver
		}
		for name, options := range fc.Store.Drivers {
			cfg.Store.setOptions(name, options)
		}
	}
	return nil
}

func overlayEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("BMI_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := getenv("BMI_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := getenv("BMI_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv("BMI_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := getenv("BMI_SQLITE_PATH"); v != "" {
		cfg.Store.setOptions("sqlite", map[string]any{"path": v})
	}
	if v := getenv("DATABASE_URL"); v != "" {
		cfg.Store.setOptions("postgres", map[string]any{"dsn": v})
	}
	if v := getenv("BMI_TELEMETRY_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BMI_TELEMETRY_ENABLED: %w", err)
		}
		cfg.Telemetry.Enabled = b
	}
	if v := getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.Telemetry.ServiceName = v
	}
	return nil
}

// setOptions merges options into the named driver's table.
func (s *StoreConfig) setOptions(driver string, options map[string]any) {
	if s.Drivers == nil {
		s.Drivers = make(map[string]map[string]any)
	}
	if s.Drivers[driver] == nil {
		s.Drivers[driver] = make(map[string]any)
	}
	for k, v := range options {
		s.Drivers[driver][k] = v
	}
}

// StoreConfig returns the selected driver with its options.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Driver:  c.Store.Driver,
		Options: c.Store.Drivers[c.Store.Driver],
	}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.Logging.Level)
}

// Validate checks the fields that cannot be caught by decoding.
func (c *Config) Validate() error {
	var errs []error
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen_addr must not be empty"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("timezone %q: %w", c.Timezone, err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be > 0"))
	}
	if c.Store.Driver == "" {
		errs = append(errs, errors.New("store.driver must not be empty"))
	}
	return errors.Join(errs...)
}
