// Package collector implements a Prometheus collector for clock state.
//
// The collector reads the provider's state on every scrape and subscribes
// to it to count pushed readings.
//
// The collector exposes the following metrics:
//   - wallclock_hours, wallclock_minutes, wallclock_seconds: Current reading, labelled with format and ampm
//   - wallclock_running: Whether the periodic capture is active
//   - wallclock_ticks_total: Periodic captures since startup
//   - wallclock_last_capture_timestamp_seconds: Unix timestamp of the most recent capture
//   - wallclock_updates_total: Readings pushed to observers since startup
//   - wallclock_build_info: Build version information
//
// Example usage:
//
//	p := provider.New(provider.Options{}, clock.New(), log)
//	clockCollector := collector.NewClockCollector(p, log)
//	defer clockCollector.Close()
//
//	prometheus.MustRegister(clockCollector)
package collector
