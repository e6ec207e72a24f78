// Package testing provides test utilities and helpers for tether pipelines.
package testing

import (
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/tether"
)

// Recorder is a thread-safe sink that records every value written to it.
type Recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

// NewRecorder creates an empty Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

// Sink returns the sink that appends to the recorder.
func (r *Recorder[T]) Sink() tether.Sink[T] {
	return func(v T) {
		r.mu.Lock()
		r.values = append(r.values, v)
		r.mu.Unlock()
	}
}

// Values returns a copy of the recorded values, in write order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.values))
	copy(out, r.values)
	return out
}

// Count returns the number of recorded writes.
func (r *Recorder[T]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Last returns the most recent value and true, or the zero value and false
// if nothing was recorded.
func (r *Recorder[T]) Last() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		var zero T
		return zero, false
	}
	return r.values[len(r.values)-1], true
}

// Form bundles the four sources of a sign-up form with recorders for both
// pipeline outputs.
type Form struct {
	Username             *tether.ValueSource
	Email                *tether.ValueSource
	Password             *tether.ValueSource
	PasswordConfirmation *tether.ValueSource

	Messages *Recorder[string]
	Enabled  *Recorder[bool]
}

// NewForm creates unbound sources and recorders.
func NewForm() *Form {
	return &Form{
		Username:             tether.NewValueSource("username"),
		Email:                tether.NewValueSource("email"),
		Password:             tether.NewValueSource("password"),
		PasswordConfirmation: tether.NewValueSource("password_confirmation"),
		Messages:             NewRecorder[string](),
		Enabled:              NewRecorder[bool](),
	}
}

// Pipeline creates a pipeline wired to the form's sources and recorders.
func (f *Form) Pipeline() *tether.Pipeline {
	return tether.NewPipeline(
		tether.Inputs{
			Username:             f.Username,
			Email:                f.Email,
			Password:             f.Password,
			PasswordConfirmation: f.PasswordConfirmation,
		},
		tether.Outputs{
			Message:       f.Messages.Sink(),
			SubmitEnabled: f.Enabled.Sink(),
		},
	)
}

// Fill sets all four fields in order.
func (f *Form) Fill(username, email, password, confirmation string) {
	f.Username.SetText(username)
	f.Email.SetText(email)
	f.Password.SetText(password)
	f.PasswordConfirmation.SetText(confirmation)
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return condition()
}

// RequireState fails the test immediately if the pipeline is not in the expected state.
func RequireState(t *testing.T, p *tether.Pipeline, expected tether.State) {
	t.Helper()
	if got := p.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// RequireLast fails the test if the recorder is empty or its last value
// differs from expected.
func RequireLast[T comparable](t *testing.T, r *Recorder[T], expected T) {
	t.Helper()
	got, ok := r.Last()
	if !ok {
		t.Fatalf("expected last value %v, recorder is empty", expected)
	}
	if got != expected {
		t.Fatalf("expected last value %v, got %v", expected, got)
	}
}
