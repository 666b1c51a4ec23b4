package provider

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/zgpcy/wallclock/internal/clock"
	"github.com/zgpcy/wallclock/internal/logger"
	"github.com/zgpcy/wallclock/internal/timeofday"
)

// DefaultInterval is the delay between two periodic captures
const DefaultInterval = time.Second

// Observer receives every reading the provider captures.
// Observers run on the provider's goroutines and must not call
// Start, Reset, SetFormat or Close synchronously.
type Observer func(timeofday.Reading)

// Options configures a Provider
type Options struct {
	Format   timeofday.Format
	Interval time.Duration // Zero means DefaultInterval
}

type subscription struct {
	id uint64
	fn Observer
}

// Provider tracks the current wall-clock time and re-captures it on a fixed cadence
type Provider struct {
	clock    clock.Clock
	logger   *logger.Logger
	interval time.Duration

	// ctrlMu serializes Start, Reset, SetFormat and Close
	ctrlMu sync.Mutex
	// notifyMu serializes observer calls
	notifyMu sync.Mutex

	mu          sync.Mutex
	format      timeofday.Format
	reading     timeofday.Reading
	lastCapture time.Time
	ticks       uint64
	running     bool
	closed      bool
	stop        chan struct{}
	done        chan struct{}
	observers   []subscription
	nextID      uint64
}

// New creates a Provider and captures the current time once.
// The periodic capture does not begin until Start or Reset is called.
func New(opts Options, clk clock.Clock, log *logger.Logger) *Provider {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	format := opts.Format
	if format != timeofday.Format12Hour {
		format = timeofday.Format24Hour
	}

	p := &Provider{
		clock:    clk,
		logger:   log.WithFields("component", "provider"),
		interval: interval,
		format:   format,
	}

	p.mu.Lock()
	p.captureLocked()
	p.mu.Unlock()

	return p
}

// Start begins the periodic capture. It has no effect if already running.
func (p *Provider) Start() {
	p.ctrlMu.Lock()
	defer p.ctrlMu.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.Debug("Provider closed, ignoring start")
		return
	}
	if p.running {
		p.mu.Unlock()
		p.logger.Debug("Provider already running, skipping start")
		return
	}
	p.launchLocked()
	reading := p.captureLocked()
	p.mu.Unlock()

	p.logger.Info("Clock started", "interval", p.interval.String(), "format", string(p.format))
	p.notify(reading)
}

// Reset stops any active periodic capture and immediately begins a new one
func (p *Provider) Reset() {
	p.ctrlMu.Lock()
	defer p.ctrlMu.Unlock()

	if !p.halt() {
		p.logger.Debug("Provider closed, ignoring reset")
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.launchLocked()
	reading := p.captureLocked()
	p.mu.Unlock()

	p.logger.Info("Clock reset", "reading", reading.String())
	p.notify(reading)
}

// SetFormat changes the hour format used by subsequent captures.
// Readings already returned are values and keep their original format.
func (p *Provider) SetFormat(f timeofday.Format) {
	if f != timeofday.Format12Hour {
		f = timeofday.Format24Hour
	}

	p.ctrlMu.Lock()
	defer p.ctrlMu.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if p.format == f {
		p.mu.Unlock()
		return
	}
	p.format = f
	reading := p.captureLocked()
	p.mu.Unlock()

	p.logger.Info("Clock format changed", "format", string(f))
	p.notify(reading)
}

// Close cancels the periodic capture and drops all observers.
// After Close returns no observer is called again.
func (p *Provider) Close() {
	p.ctrlMu.Lock()
	defer p.ctrlMu.Unlock()

	if !p.halt() {
		return
	}

	p.mu.Lock()
	p.closed = true
	p.observers = nil
	p.mu.Unlock()

	p.logger.Info("Clock closed")
}

// Subscribe registers fn for every future reading and returns a function that removes it
func (p *Provider) Subscribe(fn Observer) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return func() {}
	}

	p.nextID++
	id := p.nextID
	p.observers = append(p.observers, subscription{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, s := range p.observers {
			if s.id == id {
				p.observers = append(p.observers[:i:i], p.observers[i+1:]...)
				return
			}
		}
	}
}

// Reading returns the most recent capture
func (p *Provider) Reading() timeofday.Reading {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reading
}

// Format returns the hour format in use
func (p *Provider) Format() timeofday.Format {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.format
}

// Running reports whether the periodic capture is active
func (p *Provider) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Ticks returns the number of periodic captures since creation
func (p *Provider) Ticks() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticks
}

// LastCapture returns the instant of the most recent capture
func (p *Provider) LastCapture() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastCapture
}

// halt stops the active loop, if any, and waits for it to exit.
// It returns false when the provider is already closed. Callers hold ctrlMu.
func (p *Provider) halt() bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false
	}
	stop, done := p.stop, p.done
	p.running = false
	p.stop, p.done = nil, nil
	p.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	return true
}

// launchLocked starts a new capture loop. The ticker is created before
// returning so a fake clock sees it as a waiter immediately.
func (p *Provider) launchLocked() {
	stop := make(chan struct{})
	done := make(chan struct{})
	ticker := p.clock.NewTicker(p.interval)

	p.stop, p.done = stop, done
	p.running = true

	go p.run(ticker, stop, done)
}

func (p *Provider) run(ticker clockwork.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			p.tick(stop)
		}
	}
}

func (p *Provider) tick(stop <-chan struct{}) {
	p.mu.Lock()
	select {
	case <-stop:
		// Superseded by Reset or Close while waiting for the lock
		p.mu.Unlock()
		return
	default:
	}
	p.ticks++
	reading := p.captureLocked()
	p.mu.Unlock()

	p.logger.Debug("Tick", "reading", reading.String())
	p.notify(reading)
}

func (p *Provider) captureLocked() timeofday.Reading {
	now := p.clock.Now()
	p.lastCapture = now
	p.reading = timeofday.Read(now, p.format)
	return p.reading
}

func (p *Provider) notify(reading timeofday.Reading) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	observers := make([]subscription, len(p.observers))
	copy(observers, p.observers)
	p.mu.Unlock()

	for _, s := range observers {
		s.fn(reading)
	}
}
