package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all runtime settings for the Bond MCP server. It is
// built once at startup and treated as immutable afterwards.
type Config struct {
	// Bond Bridge connection
	BondHost  string `mapstructure:"bond_host"`
	BondToken string `mapstructure:"bond_token"`

	// Connection behavior
	Timeout    time.Duration `mapstructure:"bond_timeout"`
	MaxRetries int           `mapstructure:"bond_max_retries"`
	RetryDelay time.Duration `mapstructure:"bond_retry_delay"`

	// Logging
	LogLevel string `mapstructure:"log_level"`

	// Server identity
	ServerName    string `mapstructure:"server_name"`
	ServerVersion string `mapstructure:"server_version"`

	// REST API listen address (cmd/api only)
	APIAddr string `mapstructure:"api_addr"`
}

var validLogLevels = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

// Load reads configuration from environment variables and an optional
// .env file in the working directory. The returned Config has already
// been validated and normalized.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("bond_timeout", 10*time.Second)
	v.SetDefault("bond_max_retries", 3)
	v.SetDefault("bond_retry_delay", time.Second)
	v.SetDefault("log_level", "INFO")
	v.SetDefault("server_name", "bond-mcp-server")
	v.SetDefault("server_version", "0.1.0")
	v.SetDefault("api_addr", "0.0.0.0:8080")

	v.AutomaticEnv()
	// Keys need to be registered for AutomaticEnv to pick them up
	// during Unmarshal.
	for _, key := range []string{
		"bond_host", "bond_token", "bond_timeout", "bond_max_retries",
		"bond_retry_delay", "log_level", "server_name", "server_version",
		"api_addr",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	// Optional .env file, ignored when absent
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every setting and normalizes the host in place.
// It is called by Load; tests construct Config directly and call it.
func (c *Config) Validate() error {
	host := strings.TrimSpace(c.BondHost)
	if host == "" {
		return fmt.Errorf("bond_host cannot be empty")
	}
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimSuffix(host, "/")
	if host == "" {
		return fmt.Errorf("bond_host cannot be empty")
	}
	c.BondHost = host

	if c.BondToken == "" {
		return fmt.Errorf("bond_token cannot be empty")
	}
	if len(c.BondToken) < 10 {
		return fmt.Errorf("bond_token appears to be too short")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("bond_timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("bond_max_retries cannot be negative")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("bond_retry_delay cannot be negative")
	}

	c.LogLevel = strings.ToUpper(c.LogLevel)
	valid := false
	for _, l := range validLogLevels {
		if c.LogLevel == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("log_level must be one of: %s", strings.Join(validLogLevels, ", "))
	}

	return nil
}

// ZerologLevel maps the configured level name onto a zerolog level.
func (c *Config) ZerologLevel() zerolog.Level {
	switch c.LogLevel {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "CRITICAL":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
