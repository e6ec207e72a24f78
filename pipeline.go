package tether

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Output names reported to MetricsProvider.OnSinkWrite.
const (
	OutputMessage       = "message"
	OutputSubmitEnabled = "submit_enabled"
)

// ErrNotStarted is returned by Pipeline.Unbind before Start.
var ErrNotStarted = errors.New("pipeline not started")

// Inputs are the four field streams of a sign-up form.
type Inputs struct {
	Username             Stream[string]
	Email                Stream[string]
	Password             Stream[string]
	PasswordConfirmation Stream[string]
}

// Outputs are the sinks driven by a Pipeline.
type Outputs struct {
	// Message receives the validation message; "" means no message.
	Message Sink[string]

	// SubmitEnabled receives whether the submit button is enabled.
	SubmitEnabled Sink[bool]
}

// Pipeline wires four form inputs to a message sink and a submit-enabled sink.
//
//	Inputs → CombineForm → ValidationMessage → Outputs.Message
//	                     → SubmitEnabled     → Outputs.SubmitEnabled
//
// Both bindings are owned by one Group, which the pipeline's UnbindTrigger
// disposes on its first activation. A separate logging subscription reports
// every combined tuple to OnCombined hooks and the CombinedEmitted signal;
// it stays attached until the owning scope ends.
type Pipeline struct {
	inputs     Inputs
	outputs    Outputs
	clock      clockz.Clock
	metrics    MetricsProvider
	onCombined []func(FormState)

	state atomic.Int32

	mu        sync.Mutex
	started   bool
	startedAt time.Time
	group     *Group
	trigger   *UnbindTrigger
	logging   *Subscription
	stopScope func() bool
}

// NewPipeline creates a Pipeline in StateSetup.
// Instance configuration uses chainable methods before calling Start().
//
// The collaborator is expected to put its outputs in their initial state
// (empty message, submit disabled) before Start. The pipeline's own first
// emission writes the same values.
func NewPipeline(inputs Inputs, outputs Outputs) *Pipeline {
	p := &Pipeline{
		inputs:  inputs,
		outputs: outputs,
		clock:   clockz.RealClock,
		metrics: NoOpMetricsProvider{},
	}
	p.state.Store(int32(StateSetup))
	return p
}

// Clock sets a custom clock for sink write timing.
// Use this with clockz.FakeClock for deterministic tests.
// Must be called before Start().
func (p *Pipeline) Clock(clock clockz.Clock) *Pipeline {
	p.clock = clock
	return p
}

// Metrics sets a metrics provider for observability integration.
// Must be called before Start().
func (p *Pipeline) Metrics(provider MetricsProvider) *Pipeline {
	if provider == nil {
		provider = NoOpMetricsProvider{}
	}
	p.metrics = provider
	return p
}

// OnCombined registers a debug hook that receives every combined tuple.
// Must be called before Start().
func (p *Pipeline) OnCombined(fn func(FormState)) *Pipeline {
	p.onCombined = append(p.onCombined, fn)
	return p
}

// State returns the current state of the Pipeline.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Group returns the group owning the output bindings, or nil before Start.
func (p *Pipeline) Group() *Group {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.group
}

// Trigger returns the unbind trigger, or nil before Start.
func (p *Pipeline) Trigger() *UnbindTrigger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trigger
}

// Start binds the outputs and moves the pipeline to StateBound. The current
// outputs are written before Start returns.
//
// When ctx is canceled the pipeline is closed as if Close had been called.
//
// Start can only be called once. Subsequent calls return an error, as does
// a pipeline missing an input or an output.
func (p *Pipeline) Start(ctx context.Context) error {
	if p.inputs.Username == nil || p.inputs.Email == nil ||
		p.inputs.Password == nil || p.inputs.PasswordConfirmation == nil {
		return fmt.Errorf("pipeline requires all four inputs")
	}
	if p.outputs.Message == nil || p.outputs.SubmitEnabled == nil {
		return fmt.Errorf("pipeline requires both outputs")
	}

	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return fmt.Errorf("pipeline already started")
	}
	p.started = true
	p.mu.Unlock()

	combined := CombineForm(
		p.inputs.Username,
		p.inputs.Email,
		p.inputs.Password,
		p.inputs.PasswordConfirmation,
	)

	// Sinks run inside Subscribe; p.mu must not be held here.
	logging := combined.Subscribe(func(f FormState) {
		p.logCombined(ctx, f)
	})

	message := Bind(Map(combined, ValidationMessage), timedSink(p, OutputMessage, p.outputs.Message))
	enabled := Bind(Map(combined, SubmitEnabled), timedSink(p, OutputSubmitEnabled, p.outputs.SubmitEnabled))

	group := NewGroup(message, enabled)
	trigger := NewUnbindTrigger(group).
		OnUnbound(func() {
			p.metrics.OnUnbind(false)
			p.transition(ctx, StateBound, StateUnbound)
		}).
		OnAlreadyUnbound(func() {
			p.metrics.OnUnbind(true)
		})

	// Close only sees the group once the pipeline is bound.
	p.mu.Lock()
	p.startedAt = p.clock.Now()
	p.logging = logging
	p.group = group
	p.trigger = trigger
	bound := p.state.CompareAndSwap(int32(StateSetup), int32(StateBound))
	p.mu.Unlock()

	if bound {
		p.reportTransition(ctx, StateSetup, StateBound)
	}
	capitan.Emit(ctx, PipelineStarted,
		KeyMembers.Field(group.Len()),
	)

	if ctx.Done() != nil {
		scope := context.WithoutCancel(ctx)
		stop := context.AfterFunc(ctx, func() {
			p.Close(scope)
		})
		p.mu.Lock()
		p.stopScope = stop
		p.mu.Unlock()
	}
	return nil
}

// Unbind activates the pipeline's UnbindTrigger.
func (p *Pipeline) Unbind(ctx context.Context) (Outcome, error) {
	trigger := p.Trigger()
	if trigger == nil {
		return OutcomeAlreadyUnbound, ErrNotStarted
	}
	return trigger.Activate(ctx), nil
}

// Close tears the pipeline down: the output bindings and the logging
// subscription are disposed. A bound pipeline moves to StateClosed; an
// unbound pipeline stays in StateUnbound. Close is idempotent.
func (p *Pipeline) Close(ctx context.Context) {
	p.mu.Lock()
	group, logging, stop, startedAt := p.group, p.logging, p.stopScope, p.startedAt
	p.mu.Unlock()

	if group == nil {
		return
	}
	if stop != nil {
		stop()
	}
	group.Dispose()
	if logging.Dispose() {
		return
	}

	p.transition(ctx, StateBound, StateClosed)
	capitan.Emit(ctx, PipelineClosed,
		KeyState.Field(p.State().String()),
		KeyDuration.Field(p.clock.Since(startedAt)),
	)
}

func (p *Pipeline) logCombined(ctx context.Context, f FormState) {
	capitan.Emit(ctx, CombinedEmitted,
		KeyUsername.Field(f.Username),
		KeyEmail.Field(f.Email),
		KeyPasswordLength.Field(CharacterCount(f.Password)),
		KeyConfirmationLength.Field(CharacterCount(f.PasswordConfirmation)),
		KeyMessage.Field(ValidationMessage(f)),
	)
	p.metrics.OnCombined()
	for _, fn := range p.onCombined {
		fn(f)
	}
}

// transition moves the pipeline from one state to another. It does nothing
// if the pipeline is not in the expected state.
func (p *Pipeline) transition(ctx context.Context, from, to State) {
	if p.state.CompareAndSwap(int32(from), int32(to)) {
		p.reportTransition(ctx, from, to)
	}
}

func (p *Pipeline) reportTransition(ctx context.Context, from, to State) {
	capitan.Emit(ctx, PipelineStateChanged,
		KeyOldState.Field(from.String()),
		KeyNewState.Field(to.String()),
	)
	p.metrics.OnStateChange(from, to)
}

// timedSink wraps sink so every write is reported to the pipeline metrics.
func timedSink[T any](p *Pipeline, output string, sink Sink[T]) Sink[T] {
	return func(v T) {
		start := p.clock.Now()
		sink(v)
		p.metrics.OnSinkWrite(output, p.clock.Since(start))
	}
}
