package collector

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zgpcy/wallclock/internal/logger"
	"github.com/zgpcy/wallclock/internal/provider"
	"github.com/zgpcy/wallclock/internal/timeofday"
	"github.com/zgpcy/wallclock/internal/version"
)

// Source is the clock state the collector reports on
type Source interface {
	Reading() timeofday.Reading
	Format() timeofday.Format
	Running() bool
	Ticks() uint64
	LastCapture() time.Time
	Subscribe(fn provider.Observer) func()
}

// ClockCollector implements prometheus.Collector for clock state metrics
type ClockCollector struct {
	source Source
	logger *logger.Logger

	// Metrics
	hoursMetric       *prometheus.Desc
	minutesMetric     *prometheus.Desc
	secondsMetric     *prometheus.Desc
	runningMetric     *prometheus.Desc
	ticksMetric       *prometheus.Desc
	lastCaptureMetric *prometheus.Desc
	updatesTotal      prometheus.Counter   // Readings pushed to observers
	buildInfo         *prometheus.GaugeVec // Build version information

	unsubscribe func()
	closeOnce   sync.Once
}

// NewClockCollector creates a ClockCollector and subscribes it to source
func NewClockCollector(source Source, log *logger.Logger) *ClockCollector {
	updatesTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wallclock_updates_total",
			Help: "Total number of readings pushed to observers since startup",
		},
	)

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wallclock_build_info",
			Help: "Build version information",
		},
		[]string{"version", "git_commit", "build_date", "go_version"},
	)

	versionInfo := version.Info()
	buildInfo.With(prometheus.Labels{
		"version":    versionInfo["version"],
		"git_commit": versionInfo["git_commit"],
		"build_date": versionInfo["build_date"],
		"go_version": versionInfo["go_version"],
	}).Set(1)

	readingLabels := []string{"format", "ampm"}

	c := &ClockCollector{
		source: source,
		logger: log.WithFields("component", "collector"),
		hoursMetric: prometheus.NewDesc(
			"wallclock_hours",
			"Hours of the current reading (0-23 in 24-hour format, 1-12 in 12-hour format)",
			readingLabels,
			nil,
		),
		minutesMetric: prometheus.NewDesc(
			"wallclock_minutes",
			"Minutes of the current reading",
			readingLabels,
			nil,
		),
		secondsMetric: prometheus.NewDesc(
			"wallclock_seconds",
			"Seconds of the current reading",
			readingLabels,
			nil,
		),
		runningMetric: prometheus.NewDesc(
			"wallclock_running",
			"Whether the periodic capture is active (1 = running, 0 = stopped)",
			nil,
			nil,
		),
		ticksMetric: prometheus.NewDesc(
			"wallclock_ticks_total",
			"Total number of periodic captures since startup",
			nil,
			nil,
		),
		lastCaptureMetric: prometheus.NewDesc(
			"wallclock_last_capture_timestamp_seconds",
			"Unix timestamp of the most recent capture",
			nil,
			nil,
		),
		updatesTotal: updatesTotal,
		buildInfo:    buildInfo,
	}

	c.unsubscribe = source.Subscribe(func(timeofday.Reading) {
		c.updatesTotal.Inc()
	})

	return c
}

// Describe implements prometheus.Collector
func (c *ClockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hoursMetric
	ch <- c.minutesMetric
	ch <- c.secondsMetric
	ch <- c.runningMetric
	ch <- c.ticksMetric
	ch <- c.lastCaptureMetric
	c.updatesTotal.Describe(ch)
	c.buildInfo.Describe(ch)
}

// Collect implements prometheus.Collector
func (c *ClockCollector) Collect(ch chan<- prometheus.Metric) {
	reading := c.source.Reading()
	format := string(c.source.Format())

	ch <- prometheus.MustNewConstMetric(c.hoursMetric, prometheus.GaugeValue, float64(reading.Hours), format, reading.Meridiem)
	ch <- prometheus.MustNewConstMetric(c.minutesMetric, prometheus.GaugeValue, float64(reading.Minutes), format, reading.Meridiem)
	ch <- prometheus.MustNewConstMetric(c.secondsMetric, prometheus.GaugeValue, float64(reading.Seconds), format, reading.Meridiem)

	running := 0.0
	if c.source.Running() {
		running = 1.0
	}
	ch <- prometheus.MustNewConstMetric(c.runningMetric, prometheus.GaugeValue, running)

	ch <- prometheus.MustNewConstMetric(c.ticksMetric, prometheus.CounterValue, float64(c.source.Ticks()))

	if last := c.source.LastCapture(); !last.IsZero() {
		ch <- prometheus.MustNewConstMetric(c.lastCaptureMetric, prometheus.GaugeValue, float64(last.Unix()))
	}

	c.updatesTotal.Collect(ch)
	c.buildInfo.Collect(ch)
}

// Close stops counting updates from the source
func (c *ClockCollector) Close() {
	c.closeOnce.Do(func() {
		c.unsubscribe()
		c.logger.Debug("Collector unsubscribed from clock")
	})
}
