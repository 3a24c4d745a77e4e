// Package config loads stringsvc server configuration.
//
// Configuration is layered: Default() values, then an optional YAML file
// (checked against an embedded CUE schema and decoded with strict known
// fields), then environment overrides. The merged result is validated once
// more, since environment values bypass the schema.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvPort     = "PORT"
	EnvHost     = "HOST"
	EnvStore    = "STRINGSVC_STORE"
	EnvDSN      = "STRINGSVC_DSN"
	EnvLogLevel = "STRINGSVC_LOG_LEVEL"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config is the complete server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

// StoreConfig selects the record store backend.
// DSN is ignored for the memory backend.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// RateLimitConfig configures the global request limiter.
// A zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:                   "0.0.0.0",
			Port:                   5000,
			ShutdownTimeoutSeconds: 10,
		},
		Store: StoreConfig{
			Backend: BackendMemory,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads configuration from path (optional) and the process environment.
// An empty path yields Default() plus environment overrides.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(path, data, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return Config{}, joinValidation(errs)
	}
	return cfg, nil
}

// Parse checks data against the schema and decodes it over cfg.
// Fields absent from data keep their current values.
func Parse(filename string, data []byte, cfg *Config) error {
	if err := CheckSchema(filename, data); err != nil {
		return err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode %s: %w", filename, err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		cfg.Server.Port = port
	}
	if v, ok := lookup(EnvHost); ok && v != "" {
		cfg.Server.Host = v
	}
	if v, ok := lookup(EnvStore); ok && v != "" {
		cfg.Store.Backend = strings.ToLower(v)
	}
	if v, ok := lookup(EnvDSN); ok && v != "" {
		cfg.Store.DSN = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	return nil
}

// ValidationError is a single invalid setting in a merged configuration.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the merged configuration.
// Returns all errors found (does not fail-fast).
func (c Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{"server.port", fmt.Sprintf("port %d out of range 1-65535", c.Server.Port)})
	}
	if c.Server.ShutdownTimeoutSeconds < 0 {
		errs = append(errs, ValidationError{"server.shutdown_timeout_seconds", "must not be negative"})
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Store.DSN == "" {
			errs = append(errs, ValidationError{"store.dsn", "required for sqlite backend"})
		}
	default:
		errs = append(errs, ValidationError{"store.backend", fmt.Sprintf("unknown backend %q", c.Store.Backend)})
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{"log.level", err.Error()})
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, ValidationError{"log.format", fmt.Sprintf("unknown format %q", c.Log.Format)})
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, ValidationError{"metrics.path", "must start with /"})
	}

	if c.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{"rate_limit.requests_per_second", "must not be negative"})
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst < 1 {
		errs = append(errs, ValidationError{"rate_limit.burst", "must be at least 1 when rate limiting is enabled"})
	}

	return errs
}

// Address returns the listen address.
func (c Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ShutdownTimeout returns the graceful shutdown deadline.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// SlogLevel returns the configured log level.
// Unknown levels fall back to info; Validate reports them.
func (c Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown level %q", s)
	}
}

func joinValidation(errs []ValidationError) error {
	all := make([]error, 0, len(errs))
	for _, e := range errs {
		all = append(all, e)
	}
	return fmt.Errorf("invalid config: %w", errors.Join(all...))
}
