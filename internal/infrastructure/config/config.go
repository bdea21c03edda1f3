package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Serving modes for requests outside the API prefix
const (
	ModeAPI    = "api"    // reject with 404
	ModeStatic = "static" // serve files from StaticDir
)

// Paths the server owns outside the API prefix
var reservedPaths = []string{"/healthz", "/metrics", "/metrics/json"}

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Gateway   GatewayConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"5174"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// GatewayConfig holds the sandbox and routing configuration.
type GatewayConfig struct {
	Root      string `envconfig:"FS_ROOT" default:"./sandbox"`
	Prefix    string `envconfig:"API_PREFIX" default:"/api"`
	Mode      string `envconfig:"FS_MODE" default:"api"`
	StaticDir string `envconfig:"STATIC_DIR" default:"."`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Gateway.Prefix = NormalizePrefix(cfg.Gateway.Prefix)
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5174",
			Host: "0.0.0.0",
		},
		Gateway: GatewayConfig{
			Root:      "./sandbox",
			Prefix:    "/api",
			Mode:      ModeAPI,
			StaticDir: ".",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           false,
		},
	}
}

// NormalizePrefix ensures a single leading slash and no trailing slash.
func NormalizePrefix(prefix string) string {
	p := strings.Trim(strings.TrimSpace(prefix), "/")
	return "/" + p
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Gateway.Root == "" {
		return errors.New("sandbox root is required")
	}

	prefix := c.Gateway.Prefix
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("api prefix %q must start with /", prefix)
	}
	if prefix == "/" {
		return errors.New("api prefix must not be the server root")
	}
	for _, reserved := range reservedPaths {
		if prefix == reserved || strings.HasPrefix(reserved, prefix+"/") || strings.HasPrefix(prefix, reserved+"/") {
			return fmt.Errorf("api prefix %q collides with %s", prefix, reserved)
		}
	}

	switch c.Gateway.Mode {
	case ModeAPI:
	case ModeStatic:
		if c.Gateway.StaticDir == "" {
			return errors.New("static mode requires a static directory")
		}
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", c.Gateway.Mode, ModeAPI, ModeStatic)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit requires positive rps and burst")
	}
	return nil
}
