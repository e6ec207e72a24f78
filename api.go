package tether

import "sync"

// Stream is a lazy sequence of values. Values are pushed to the subscriber
// synchronously, in emission order, until the returned Subscription is disposed.
type Stream[T any] interface {
	// Subscribe registers fn to receive values and returns the handle that
	// detaches it. Implementations may deliver replayed values before
	// Subscribe returns.
	Subscribe(fn func(T)) *Subscription
}

// StreamFunc adapts a plain subscribe function to the Stream interface.
type StreamFunc[T any] func(fn func(T)) *Subscription

// Subscribe calls f(fn).
func (f StreamFunc[T]) Subscribe(fn func(T)) *Subscription {
	return f(fn)
}

// Sink is a write target that accepts values pushed by a binding.
type Sink[T any] func(T)

// Map returns a Stream that applies fn to every value of s.
func Map[T, U any](s Stream[T], fn func(T) U) Stream[U] {
	return StreamFunc[U](func(next func(U)) *Subscription {
		return s.Subscribe(func(v T) {
			next(fn(v))
		})
	})
}

// Emitter is a hot Stream with no replay. Subscribers only see values emitted
// after they subscribed. Button activations are the typical use.
type Emitter[T any] struct {
	mu        sync.Mutex
	observers []observer[T]
	nextID    uint64
}

type observer[T any] struct {
	id uint64
	fn func(T)
}

// NewEmitter creates an Emitter with no subscribers.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// Subscribe registers fn for future emissions.
func (e *Emitter[T]) Subscribe(fn func(T)) *Subscription {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.observers = append(e.observers, observer[T]{id: id, fn: fn})
	e.mu.Unlock()

	return NewSubscription(func() {
		e.remove(id)
	})
}

// Emit delivers v to every current subscriber in subscription order.
// Subscribers are invoked outside the emitter lock, so a subscriber may
// dispose itself or emit again.
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	snapshot := make([]observer[T], len(e.observers))
	copy(snapshot, e.observers)
	e.mu.Unlock()

	for _, o := range snapshot {
		if !e.subscribed(o.id) {
			continue
		}
		o.fn(v)
	}
}

// Len returns the number of active subscribers.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.observers)
}

func (e *Emitter[T]) subscribed(id uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, o := range e.observers {
		if o.id == id {
			return true
		}
	}
	return false
}

func (e *Emitter[T]) remove(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, o := range e.observers {
		if o.id == id {
			e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
			return
		}
	}
}
