package tether

import (
	"context"
	"sync"

	"github.com/zoobzio/capitan"
)

// Outcome is the result of an UnbindTrigger activation.
type Outcome int

const (
	// OutcomeUnbound indicates the activation disposed the group.
	OutcomeUnbound Outcome = iota

	// OutcomeAlreadyUnbound indicates the group was already disposed and the
	// activation did nothing.
	OutcomeAlreadyUnbound
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeUnbound:
		return "unbound"
	case OutcomeAlreadyUnbound:
		return "already_unbound"
	default:
		return "unknown"
	}
}

// UnbindTrigger disposes a Group in response to an external activation such
// as a button press. Only the first activation disposes the group; every
// later one takes the no-op path, which is reported but never fails.
type UnbindTrigger struct {
	group *Group

	mu               sync.Mutex
	onUnbound        []func()
	onAlreadyUnbound []func()
}

// NewUnbindTrigger creates a trigger for group.
func NewUnbindTrigger(group *Group) *UnbindTrigger {
	return &UnbindTrigger{group: group}
}

// OnUnbound registers fn to run after the activation that disposes the group.
func (t *UnbindTrigger) OnUnbound(fn func()) *UnbindTrigger {
	t.mu.Lock()
	t.onUnbound = append(t.onUnbound, fn)
	t.mu.Unlock()
	return t
}

// OnAlreadyUnbound registers fn to run on every activation after the group
// was disposed.
func (t *UnbindTrigger) OnAlreadyUnbound(fn func()) *UnbindTrigger {
	t.mu.Lock()
	t.onAlreadyUnbound = append(t.onAlreadyUnbound, fn)
	t.mu.Unlock()
	return t
}

// Activate handles one activation.
func (t *UnbindTrigger) Activate(ctx context.Context) Outcome {
	if t.group.Dispose() {
		capitan.Emit(ctx, UnbindAlready,
			KeyMembers.Field(t.group.Len()),
		)
		t.run(t.callbacks(true))
		return OutcomeAlreadyUnbound
	}

	capitan.Emit(ctx, GroupDisposed,
		KeyMembers.Field(t.group.Len()),
	)
	t.run(t.callbacks(false))
	return OutcomeUnbound
}

// Attach activates the trigger for every value of presses. The returned
// subscription detaches the trigger from presses; it is not part of the group.
func (t *UnbindTrigger) Attach(ctx context.Context, presses Stream[struct{}]) *Subscription {
	return presses.Subscribe(func(struct{}) {
		t.Activate(ctx)
	})
}

func (t *UnbindTrigger) callbacks(already bool) []func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	src := t.onUnbound
	if already {
		src = t.onAlreadyUnbound
	}
	fns := make([]func(), len(src))
	copy(fns, src)
	return fns
}

func (*UnbindTrigger) run(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
