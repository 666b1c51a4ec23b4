package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Configuration validation constants
const (
	MinTickInterval = 10    // Minimum tick interval in milliseconds
	MaxTickInterval = 60000 // Maximum tick interval in milliseconds
	MinPort         = 1     // Minimum valid port number
	MaxPort         = 65535 // Maximum valid port number

	// Default values
	DefaultFormat           = "24-hour"
	DefaultTickInterval     = 1000 // 1 second in milliseconds
	DefaultAutostart        = true
	DefaultHTTPPort         = 8080
	DefaultLogLevel         = "info"
	DefaultControlRateLimit = 5.0 // start/reset requests per second
	DefaultControlBurst     = 10
)

// Environment variables that override file values
const (
	EnvFormat           = "WALLCLOCK_FORMAT"
	EnvTickInterval     = "WALLCLOCK_TICK_INTERVAL_MS"
	EnvAutostart        = "WALLCLOCK_AUTOSTART"
	EnvHTTPPort         = "WALLCLOCK_HTTP_PORT"
	EnvLogLevel         = "WALLCLOCK_LOG_LEVEL"
	EnvControlRateLimit = "WALLCLOCK_CONTROL_RATE_LIMIT"
	EnvControlBurst     = "WALLCLOCK_CONTROL_BURST"
)

// Config represents the application configuration
type Config struct {
	Format           string  `yaml:"format"`           // "24-hour" or "12-hour"; anything else is treated as 24-hour
	TickInterval     int     `yaml:"tick_interval_ms"` // milliseconds
	Autostart        *bool   `yaml:"autostart"`        // Pointer to distinguish between false and unset
	HTTPPort         int     `yaml:"http_port"`
	LogLevel         string  `yaml:"log_level"`
	ControlRateLimit float64 `yaml:"control_rate_limit"` // requests per second
	ControlBurst     int     `yaml:"control_burst"`
}

// Load loads configuration from a YAML file and applies environment variable overrides.
// A missing file is an error; an empty path skips the file and uses defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		// #nosec G304 -- Config file path is provided by administrator via CLI flag, not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("environment variable error: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Interval returns the tick interval as a duration
func (c *Config) Interval() time.Duration {
	return time.Duration(c.TickInterval) * time.Millisecond
}

// AutostartEnabled reports whether the clock should start on boot
func (c *Config) AutostartEnabled() bool {
	if c.Autostart == nil {
		return DefaultAutostart
	}
	return *c.Autostart
}

// applyDefaults sets default values for configuration
func applyDefaults(cfg *Config) {
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.Autostart == nil {
		autostart := DefaultAutostart
		cfg.Autostart = &autostart
	}
	if cfg.HTTPPort == 0 {
		cfg.HTTPPort = DefaultHTTPPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.ControlRateLimit == 0 {
		cfg.ControlRateLimit = DefaultControlRateLimit
	}
	if cfg.ControlBurst == 0 {
		cfg.ControlBurst = DefaultControlBurst
	}
}

// applyEnvOverrides applies environment variable overrides to configuration
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv(EnvFormat); val != "" {
		cfg.Format = val
	}

	if val := os.Getenv(EnvTickInterval); val != "" {
		i, err := cast.ToIntE(val)
		if err != nil {
			return fmt.Errorf("invalid %s: must be an integer, got %q", EnvTickInterval, val)
		}
		cfg.TickInterval = i
	}

	if val := os.Getenv(EnvAutostart); val != "" {
		b, err := cast.ToBoolE(val)
		if err != nil {
			return fmt.Errorf("invalid %s: must be a boolean, got %q", EnvAutostart, val)
		}
		cfg.Autostart = &b
	}

	if val := os.Getenv(EnvHTTPPort); val != "" {
		i, err := cast.ToIntE(val)
		if err != nil {
			return fmt.Errorf("invalid %s: must be an integer, got %q", EnvHTTPPort, val)
		}
		cfg.HTTPPort = i
	}

	if val := os.Getenv(EnvLogLevel); val != "" {
		cfg.LogLevel = val
	}

	if val := os.Getenv(EnvControlRateLimit); val != "" {
		f, err := cast.ToFloat64E(val)
		if err != nil {
			return fmt.Errorf("invalid %s: must be a number, got %q", EnvControlRateLimit, val)
		}
		cfg.ControlRateLimit = f
	}

	if val := os.Getenv(EnvControlBurst); val != "" {
		i, err := cast.ToIntE(val)
		if err != nil {
			return fmt.Errorf("invalid %s: must be an integer, got %q", EnvControlBurst, val)
		}
		cfg.ControlBurst = i
	}

	return nil
}

// validate validates the configuration.
// Format is deliberately not validated: unknown formats fall back to 24-hour.
func validate(cfg *Config) error {
	if cfg.TickInterval < MinTickInterval || cfg.TickInterval > MaxTickInterval {
		return fmt.Errorf("tick_interval_ms must be between %d and %d, got %d", MinTickInterval, MaxTickInterval, cfg.TickInterval)
	}

	if cfg.HTTPPort < MinPort || cfg.HTTPPort > MaxPort {
		return fmt.Errorf("http_port must be between %d and %d", MinPort, MaxPort)
	}

	if cfg.ControlRateLimit <= 0 {
		return fmt.Errorf("control_rate_limit must be positive, got %v", cfg.ControlRateLimit)
	}

	if cfg.ControlBurst <= 0 {
		return fmt.Errorf("control_burst must be positive, got %d", cfg.ControlBurst)
	}

	return nil
}
