// Package provider implements the clock state provider.
//
// A Provider captures the wall clock, decomposes it into a
// timeofday.Reading and re-captures it on a fixed cadence (one second by
// default) while running. Every capture is pushed to subscribed observers.
//
// Lifecycle:
//   - New captures the current time once; the provider starts stopped
//   - Start begins the periodic capture; calling it again has no effect
//   - Reset stops any active capture and immediately begins a new one
//   - SetFormat switches between 24-hour and 12-hour display
//   - Close cancels the capture; no observer is called afterwards
//
// The provider owns exactly one ticker at a time. Reset and Close wait for
// the previous capture loop to exit before returning, so a superseded loop
// never delivers a reading.
//
// Example usage:
//
//	p := provider.New(provider.Options{Format: timeofday.Format12Hour}, clock.New(), log)
//	defer p.Close()
//
//	unsubscribe := p.Subscribe(func(r timeofday.Reading) {
//		fmt.Println(r)
//	})
//	defer unsubscribe()
//
//	p.Start()
package provider
