package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Bridge    BridgeConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"127.0.0.1"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// BridgeConfig holds the host bridge settings.
type BridgeConfig struct {
	AppsPath        string        `envconfig:"BRIDGE_APPS_PATH" default:"apps"`
	ConfigFile      string        `envconfig:"BRIDGE_CONFIG_FILE" default:"config.json"`
	RunTimeout      time.Duration `envconfig:"BRIDGE_RUN_TIMEOUT" default:"60s"`
	BinaryScanLimit int64         `envconfig:"BRIDGE_BINARY_SCAN_LIMIT" default:"1048576"`
	// AllowedOrigins are origin prefixes accepted by the transport. Empty
	// means the bridge's own address.
	AllowedOrigins []string `envconfig:"BRIDGE_ALLOWED_ORIGINS"`
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
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "127.0.0.1",
			ShutdownTimeout: 5 * time.Second,
		},
		Bridge: BridgeConfig{
			AppsPath:        "apps",
			ConfigFile:      "config.json",
			RunTimeout:      60 * time.Second,
			BinaryScanLimit: 1 << 20,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Server.Port)
	}
	if c.Bridge.AppsPath == "" {
		return fmt.Errorf("apps path is required")
	}
	if c.Bridge.RunTimeout <= 0 {
		return fmt.Errorf("run timeout must be positive, got %s", c.Bridge.RunTimeout)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// BaseURL returns the URL the bridge is reachable at from the local host.
func (c *Config) BaseURL() string {
	host := c.Server.Host
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, c.Server.Port)
}

// AppsURL returns the URL the front-end bundle is served from.
func (c *Config) AppsURL() string {
	return c.BaseURL() + "/apps/"
}

// Origins returns the allowed origin prefixes.
func (c *Config) Origins() []string {
	if len(c.Bridge.AllowedOrigins) > 0 {
		return c.Bridge.AllowedOrigins
	}
	origins := []string{c.BaseURL()}
	if host, _, _ := net.SplitHostPort(c.BaseURL()[len("http://"):]); host == "127.0.0.1" {
		origins = append(origins, "http://"+net.JoinHostPort("localhost", c.Server.Port))
	}
	return origins
}
