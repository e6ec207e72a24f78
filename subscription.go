package tether

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// SubscriptionState is the lifecycle state of a Subscription.
type SubscriptionState int32

const (
	// SubscriptionActive indicates values are still being forwarded.
	SubscriptionActive SubscriptionState = iota

	// SubscriptionDisposed indicates the subscription has been torn down.
	// This state is terminal.
	SubscriptionDisposed
)

// String returns the string representation of the subscription state.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionActive:
		return "active"
	case SubscriptionDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Subscription is a disposable handle for an active binding or upstream
// registration. The ACTIVE to DISPOSED transition happens exactly once.
type Subscription struct {
	id    string
	state atomic.Int32

	mu        sync.Mutex
	teardowns []func()
}

// NewSubscription creates an active Subscription. The teardown, if non-nil,
// runs once when the subscription is disposed.
func NewSubscription(teardown func()) *Subscription {
	s := &Subscription{id: uuid.NewString()}
	if teardown != nil {
		s.teardowns = append(s.teardowns, teardown)
	}
	return s
}

// ID returns the unique identifier of the subscription.
func (s *Subscription) ID() string {
	return s.id
}

// State returns the current state of the subscription.
func (s *Subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// IsDisposed reports whether the subscription has been disposed.
func (s *Subscription) IsDisposed() bool {
	return s.State() == SubscriptionDisposed
}

// Add registers an additional teardown. If the subscription is already
// disposed, fn runs immediately.
func (s *Subscription) Add(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.IsDisposed() {
		s.mu.Unlock()
		fn()
		return
	}
	s.teardowns = append(s.teardowns, fn)
	s.mu.Unlock()
}

// AddSubscription ties child to s: disposing s disposes child.
func (s *Subscription) AddSubscription(child *Subscription) {
	if child == nil {
		return
	}
	s.Add(func() {
		child.Dispose()
	})
}

// Dispose tears the subscription down. It returns true if the subscription
// was already disposed, in which case nothing happens.
// Teardowns run in reverse registration order.
func (s *Subscription) Dispose() (alreadyDisposed bool) {
	if !s.state.CompareAndSwap(int32(SubscriptionActive), int32(SubscriptionDisposed)) {
		return true
	}

	s.mu.Lock()
	teardowns := s.teardowns
	s.teardowns = nil
	s.mu.Unlock()

	for i := len(teardowns) - 1; i >= 0; i-- {
		teardowns[i]()
	}
	return false
}
