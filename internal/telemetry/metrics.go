// Package telemetry reports pipeline metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/zoobzio/tether"
)

// ScopeName is the instrumentation scope of every tether instrument.
const ScopeName = "github.com/zoobzio/tether"

// Instrument names.
const (
	TransitionsName = "tether.pipeline.transitions"
	CombinedName    = "tether.combined.tuples"
	SinkWriteName   = "tether.sink.write.duration"
	UnbindsName     = "tether.unbind.activations"
)

// Metrics is a tether.MetricsProvider backed by OpenTelemetry instruments.
type Metrics struct {
	transitions metric.Int64Counter
	combined    metric.Int64Counter
	sinkWrites  metric.Float64Histogram
	unbinds     metric.Int64Counter
}

var _ tether.MetricsProvider = (*Metrics)(nil)

// New creates the instruments on a meter from provider.
func New(provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter(ScopeName)

	transitions, err := meter.Int64Counter(TransitionsName,
		metric.WithDescription("Pipeline state transitions"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", TransitionsName, err)
	}
	combined, err := meter.Int64Counter(CombinedName,
		metric.WithDescription("Combined form tuples observed"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", CombinedName, err)
	}
	sinkWrites, err := meter.Float64Histogram(SinkWriteName,
		metric.WithDescription("Time spent writing a derived value to its sink"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", SinkWriteName, err)
	}
	unbinds, err := meter.Int64Counter(UnbindsName,
		metric.WithDescription("Unbind trigger activations"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", UnbindsName, err)
	}

	return &Metrics{
		transitions: transitions,
		combined:    combined,
		sinkWrites:  sinkWrites,
		unbinds:     unbinds,
	}, nil
}

// OnStateChange counts a transition, tagged with both states.
func (m *Metrics) OnStateChange(from, to tether.State) {
	m.transitions.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	))
}

// OnCombined counts a combined tuple.
func (m *Metrics) OnCombined() {
	m.combined.Add(context.Background(), 1)
}

// OnSinkWrite records a sink write in milliseconds.
func (m *Metrics) OnSinkWrite(output string, d time.Duration) {
	m.sinkWrites.Record(context.Background(), float64(d)/float64(time.Millisecond), metric.WithAttributes(
		attribute.String("output", output),
	))
}

// OnUnbind counts an activation by outcome.
func (m *Metrics) OnUnbind(alreadyUnbound bool) {
	outcome := tether.OutcomeUnbound
	if alreadyUnbound {
		outcome = tether.OutcomeAlreadyUnbound
	}
	m.unbinds.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("outcome", outcome.String()),
	))
}
