// Package server provides the HTTP surface of wallclock.
//
// Available endpoints:
//   - /            : Status page showing the current reading and controls
//   - /api/time    : Current reading as JSON (hours, minutes, seconds, ampm, format, running, ticks)
//   - /api/start   : POST, starts the clock (no effect if already running)
//   - /api/reset   : POST, restarts the clock's periodic capture
//   - /metrics     : Prometheus metrics endpoint
//   - /health      : Liveness probe (always returns 200)
//   - /ready       : Readiness probe (returns 200 only while the clock is running)
//
// Control endpoints share a token bucket limiter configured by
// control_rate_limit and control_burst; excess requests get 429.
//
// The server is configured with the following timeouts:
//   - Read timeout: 15 seconds
//   - Write timeout: 15 seconds
//   - Idle timeout: 60 seconds
//
// Example usage:
//
//	srv := server.NewServer(cfg, p, prometheus.DefaultGatherer, log)
//
//	serverErrors := make(chan error, 1)
//	go func() {
//		serverErrors <- srv.Start()
//	}()
package server
