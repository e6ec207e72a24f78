package tether

import "sync"

// combiner holds the per-subscriber state of a CombineLatest stream: the
// latest value of each slot and which slots have been populated.
type combiner[T any] struct {
	mu      sync.Mutex
	latest  []T
	ready   []bool
	missing int
	next    func([]T)
}

func newCombiner[T any](n int, next func([]T)) *combiner[T] {
	return &combiner[T]{
		latest:  make([]T, n),
		ready:   make([]bool, n),
		missing: n,
		next:    next,
	}
}

// update stores v in slot idx and emits a copy of all latest values once
// every slot has been populated.
func (c *combiner[T]) update(idx int, v T) {
	c.mu.Lock()
	c.latest[idx] = v
	if !c.ready[idx] {
		c.ready[idx] = true
		c.missing--
	}
	if c.missing > 0 {
		c.mu.Unlock()
		return
	}
	tuple := make([]T, len(c.latest))
	copy(tuple, c.latest)
	c.mu.Unlock()

	c.next(tuple)
}

// CombineLatest combines sources into a Stream of tuples. The slice passed to
// subscribers holds the latest value of each source, in source order.
//
// Nothing is emitted until every source has emitted at least once. After
// that, every emission from any source produces exactly one tuple; changes
// are never coalesced. Each tuple is a fresh slice owned by the subscriber.
//
// Slot state is kept per subscriber, so a subscriber to a stream built from
// ValueSources immediately receives the tuple of seeded values.
//
// Concurrent emissions are applied to the slot state one at a time, but
// ordering of delivery across goroutines is only guaranteed when inputs are
// driven from a single goroutine, such as an EventLoop.
func CombineLatest[T any](sources ...Stream[T]) Stream[[]T] {
	return StreamFunc[[]T](func(fn func([]T)) *Subscription {
		sub := NewSubscription(nil)
		c := newCombiner(len(sources), func(tuple []T) {
			if sub.IsDisposed() {
				return
			}
			fn(tuple)
		})
		for i, src := range sources {
			idx := i
			sub.AddSubscription(src.Subscribe(func(v T) {
				c.update(idx, v)
			}))
		}
		return sub
	})
}

// CombineForm combines the four form fields into a Stream of FormState.
func CombineForm(username, email, password, confirmation Stream[string]) Stream[FormState] {
	return Map(CombineLatest(username, email, password, confirmation), func(v []string) FormState {
		return FormState{
			Username:             v[0],
			Email:                v[1],
			Password:             v[2],
			PasswordConfirmation: v[3],
		}
	})
}
