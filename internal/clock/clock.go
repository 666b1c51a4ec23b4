package clock

import "github.com/jonboulle/clockwork"

// Clock provides the current time and tickers; it can be faked for testing
type Clock = clockwork.Clock

// New returns a Clock backed by actual system time
func New() Clock {
	return clockwork.NewRealClock()
}
