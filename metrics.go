package tether

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key pipeline events.
type MetricsProvider interface {
	// OnStateChange is called when the pipeline transitions between states.
	OnStateChange(from, to State)

	// OnCombined is called for every tuple produced by the combined stream.
	OnCombined()

	// OnSinkWrite is called after a value reaches an output sink.
	// Output is "message" or "submit_enabled".
	OnSinkWrite(output string, duration time.Duration)

	// OnUnbind is called on every unbind activation. alreadyUnbound is true
	// for activations that found the group already disposed.
	OnUnbind(alreadyUnbound bool)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ State)              {}
func (NoOpMetricsProvider) OnCombined()                           {}
func (NoOpMetricsProvider) OnSinkWrite(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnUnbind(_ bool)                       {}
