package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zgpcy/wallclock/internal/clock"
	"github.com/zgpcy/wallclock/internal/collector"
	"github.com/zgpcy/wallclock/internal/config"
	"github.com/zgpcy/wallclock/internal/logger"
	"github.com/zgpcy/wallclock/internal/provider"
	"github.com/zgpcy/wallclock/internal/server"
	"github.com/zgpcy/wallclock/internal/timeofday"
	"github.com/zgpcy/wallclock/internal/version"
)

const (
	// DefaultShutdownTimeout is the maximum time to wait for graceful shutdown
	DefaultShutdownTimeout = 30 * time.Second
)

var configPath = flag.String("config", "config.yaml", "Path to configuration file (empty for defaults and environment only)")

func main() {
	flag.Parse()

	// Load configuration first (need log level from config)
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.New(cfg.LogLevel)
	logger.Info("wallclock starting",
		"version", version.String(),
		"config_path", *configPath)

	format := timeofday.ParseFormat(cfg.Format)
	if !timeofday.KnownFormat(cfg.Format) {
		logger.Warn("Unrecognised format, using 24-hour", "format", cfg.Format)
	}

	logger.Info("Configuration loaded successfully",
		"format", string(format),
		"tick_interval", cfg.Interval().String(),
		"autostart", cfg.AutostartEnabled(),
		"http_port", cfg.HTTPPort,
		"control_rate_limit", cfg.ControlRateLimit,
		"control_burst", cfg.ControlBurst)

	clockProvider := provider.New(provider.Options{
		Format:   format,
		Interval: cfg.Interval(),
	}, clock.New(), logger)

	clockCollector := collector.NewClockCollector(clockProvider, logger)
	if err := prometheus.Register(clockCollector); err != nil {
		logger.Error("Failed to register collector", "error", err)
		os.Exit(1)
	}
	logger.Info("Collector registered with Prometheus")

	// Go runtime and process metrics are registered by the default registry

	if cfg.AutostartEnabled() {
		clockProvider.Start()
	} else {
		logger.Info("Autostart disabled, waiting for /api/start")
	}

	srv := server.NewServer(cfg, clockProvider, prometheus.DefaultGatherer, logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("Server error", "error", err)
		clockCollector.Close()
		clockProvider.Close()
		os.Exit(1)

	case sig := <-shutdown:
		logger.Info("Received shutdown signal, starting graceful shutdown", "signal", sig.String())

		// Tear down the clock before the server so no reading is pushed to a closing consumer
		clockCollector.Close()
		clockProvider.Close()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during server shutdown", "error", err)
			os.Exit(1)
		}

		logger.Info("Server stopped gracefully")
	}
}
