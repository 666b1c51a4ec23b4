package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfig writes content to a temporary config.yaml and returns its path
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig_Success(t *testing.T) {
	configPath := writeConfig(t, `
format: "12-hour"
tick_interval_ms: 500
autostart: false
http_port: 9090
log_level: "debug"
control_rate_limit: 2.5
control_burst: 3
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Format != "12-hour" {
		t.Errorf("Format = %v, want 12-hour", cfg.Format)
	}
	if cfg.TickInterval != 500 {
		t.Errorf("TickInterval = %v, want 500", cfg.TickInterval)
	}
	if cfg.Interval() != 500*time.Millisecond {
		t.Errorf("Interval() = %v, want 500ms", cfg.Interval())
	}
	if cfg.AutostartEnabled() {
		t.Error("AutostartEnabled() = true, want false")
	}
	if cfg.HTTPPort != 9090 {
		t.Errorf("HTTPPort = %v, want 9090", cfg.HTTPPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.ControlRateLimit != 2.5 {
		t.Errorf("ControlRateLimit = %v, want 2.5", cfg.ControlRateLimit)
	}
	if cfg.ControlBurst != 3 {
		t.Errorf("ControlBurst = %v, want 3", cfg.ControlBurst)
	}
}

func TestLoad_ApplyDefaults_Success(t *testing.T) {
	configPath := writeConfig(t, "# empty\n")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Format", cfg.Format, "24-hour"},
		{"TickInterval", cfg.TickInterval, 1000},
		{"Autostart", cfg.AutostartEnabled(), true},
		{"HTTPPort", cfg.HTTPPort, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"ControlRateLimit", cfg.ControlRateLimit, 5.0},
		{"ControlBurst", cfg.ControlBurst, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EmptyPath_UsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.Interval() != time.Second {
		t.Errorf("Interval() = %v, want 1s", cfg.Interval())
	}
}

func TestLoad_EnvOverrides_Success(t *testing.T) {
	configPath := writeConfig(t, `
format: "24-hour"
tick_interval_ms: 1000
http_port: 8080
`)

	t.Setenv(EnvFormat, "12-hour")
	t.Setenv(EnvTickInterval, "250")
	t.Setenv(EnvAutostart, "false")
	t.Setenv(EnvHTTPPort, "9191")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvControlRateLimit, "0.5")
	t.Setenv(EnvControlBurst, "1")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Format != "12-hour" {
		t.Errorf("Format = %v, want 12-hour (env override)", cfg.Format)
	}
	if cfg.TickInterval != 250 {
		t.Errorf("TickInterval = %v, want 250 (env override)", cfg.TickInterval)
	}
	if cfg.AutostartEnabled() {
		t.Error("AutostartEnabled() = true, want false (env override)")
	}
	if cfg.HTTPPort != 9191 {
		t.Errorf("HTTPPort = %v, want 9191 (env override)", cfg.HTTPPort)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn (env override)", cfg.LogLevel)
	}
	if cfg.ControlRateLimit != 0.5 {
		t.Errorf("ControlRateLimit = %v, want 0.5 (env override)", cfg.ControlRateLimit)
	}
	if cfg.ControlBurst != 1 {
		t.Errorf("ControlBurst = %v, want 1 (env override)", cfg.ControlBurst)
	}
}

func TestLoad_InvalidEnv_Error(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"tick interval", EnvTickInterval, "fast"},
		{"autostart", EnvAutostart, "maybe"},
		{"port", EnvHTTPPort, "eighty"},
		{"rate limit", EnvControlRateLimit, "lots"},
		{"burst", EnvControlBurst, "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(""); err == nil {
				t.Errorf("Load() error = nil, want error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

// TestLoad_UnknownFormat_Accepted tests that an unknown format is not a load error
func TestLoad_UnknownFormat_Accepted(t *testing.T) {
	configPath := writeConfig(t, `format: "36-hour"`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.Format != "36-hour" {
		t.Errorf("Format = %v, want value preserved", cfg.Format)
	}
}

func TestValidate_TickInterval_Error(t *testing.T) {
	tests := []struct {
		name     string
		interval int
	}{
		{"too low", 5},
		{"negative", -1},
		{"too high", 120000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{TickInterval: tt.interval, HTTPPort: 8080, ControlRateLimit: 1, ControlBurst: 1}
			if err := validate(cfg); err == nil {
				t.Errorf("validate() error = nil, want error for tick interval %d", tt.interval)
			}
		})
	}
}

func TestValidate_InvalidHTTPPort_Error(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"port too low", 0},
		{"port too high", 70000},
		{"negative port", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{TickInterval: 1000, HTTPPort: tt.port, ControlRateLimit: 1, ControlBurst: 1}
			if err := validate(cfg); err == nil {
				t.Errorf("validate() error = nil, want error for port %d", tt.port)
			}
		})
	}
}

func TestValidate_ControlLimits_Error(t *testing.T) {
	cfg := &Config{TickInterval: 1000, HTTPPort: 8080, ControlRateLimit: -1, ControlBurst: 1}
	if err := validate(cfg); err == nil {
		t.Error("validate() error = nil, want error for negative rate limit")
	}

	cfg = &Config{TickInterval: 1000, HTTPPort: 8080, ControlRateLimit: 1, ControlBurst: -3}
	if err := validate(cfg); err == nil {
		t.Error("validate() error = nil, want error for negative burst")
	}
}

func TestLoad_MissingFile_Error(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() error = nil, want error for missing file")
	}
}

func TestLoad_MalformedYAML_Error(t *testing.T) {
	configPath := writeConfig(t, `
format: "12-hour"
  tick_interval_ms: [[[
- this: is
  : malformed
`)

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() error = nil, want error for malformed YAML")
	}
}
