// Package config provides configuration management for wallclock.
//
// This package handles loading configuration from YAML files, applying
// environment variable overrides, setting defaults, and validating the
// configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// Supported environment variables:
//   - WALLCLOCK_FORMAT: Hour format ("24-hour" or "12-hour")
//   - WALLCLOCK_TICK_INTERVAL_MS: Tick interval in milliseconds (10-60000)
//   - WALLCLOCK_AUTOSTART: Start the clock on boot (true/false)
//   - WALLCLOCK_HTTP_PORT: HTTP server port (1-65535)
//   - WALLCLOCK_LOG_LEVEL: Log level (debug, info, warn, error)
//   - WALLCLOCK_CONTROL_RATE_LIMIT: Start/reset requests per second
//   - WALLCLOCK_CONTROL_BURST: Start/reset burst size
//
// An unrecognised format is not an error; the clock treats it as 24-hour.
//
// Example configuration file (config.yaml):
//
//	format: "12-hour"
//	tick_interval_ms: 1000
//	autostart: true
//	http_port: 8080
//	log_level: "info"
//	control_rate_limit: 5
//	control_burst: 10
//
// Example usage:
//
//	cfg, err := config.Load("config.yaml")
//	if err != nil {
//		log.Fatalf("Failed to load config: %v", err)
//	}
//
//	fmt.Printf("Ticking every %s\n", cfg.Interval())
package config
