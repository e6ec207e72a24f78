package tether

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// DefaultLoopBuffer is the default number of queued events an EventLoop
// accepts before Dispatch blocks.
const DefaultLoopBuffer = 64

// Errors returned by EventLoop.Dispatch.
var (
	ErrLoopNotStarted = errors.New("event loop not started")
	ErrLoopStopped    = errors.New("event loop stopped")
)

// EventLoop runs external events one at a time. The full effect of one event
// (source update, combine, derive, sink write) completes before the next
// event starts, so events from different goroutines never interleave.
type EventLoop struct {
	buffer    int
	syncMode  bool
	processed atomic.Int64

	mu       sync.Mutex
	started  bool
	events   chan func()
	stop     <-chan struct{}
	done     chan struct{}
	queue    []func()
	draining bool

	// gate fences senders against the loop shutting down: events sent while
	// holding the read lock are either run or never accepted.
	gate    sync.RWMutex
	stopped bool
}

// NewEventLoop creates an EventLoop. Configure it with chainable methods,
// then call Start.
func NewEventLoop() *EventLoop {
	return &EventLoop{
		buffer: DefaultLoopBuffer,
		done:   make(chan struct{}),
	}
}

// Buffer sets the event queue size. Must be called before Start().
func (l *EventLoop) Buffer(n int) *EventLoop {
	l.buffer = max(n, 0)
	return l
}

// SyncMode runs events on the dispatching goroutine instead of a loop
// goroutine. An event dispatched while another is running is queued and
// runs after it, on the goroutine already draining the queue.
// Must be called before Start().
func (l *EventLoop) SyncMode() *EventLoop {
	l.syncMode = true
	return l
}

// Start begins processing events until ctx is canceled.
// Start can only be called once. Subsequent calls return an error.
func (l *EventLoop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return fmt.Errorf("event loop already started")
	}
	l.started = true

	if l.syncMode {
		context.AfterFunc(ctx, func() {
			close(l.done)
		})
		return nil
	}

	l.events = make(chan func(), l.buffer)
	l.stop = ctx.Done()
	go l.run(ctx)
	return nil
}

// Done is closed once the loop stops accepting events and every accepted
// event has run.
func (l *EventLoop) Done() <-chan struct{} {
	return l.done
}

// Processed returns the number of events run so far.
func (l *EventLoop) Processed() int64 {
	return l.processed.Load()
}

// Dispatch schedules fn. It blocks only while the queue is full.
// A nil error means fn will run, even if the loop stops first.
func (l *EventLoop) Dispatch(ctx context.Context, fn func()) error {
	l.mu.Lock()
	if !l.started {
		l.mu.Unlock()
		return ErrLoopNotStarted
	}
	select {
	case <-l.done:
		l.mu.Unlock()
		return ErrLoopStopped
	default:
	}

	if l.syncMode {
		l.queue = append(l.queue, fn)
		if l.draining {
			l.mu.Unlock()
			return nil
		}
		l.draining = true
		l.mu.Unlock()
		l.drain()
		return nil
	}
	events, stop := l.events, l.stop
	l.mu.Unlock()

	l.gate.RLock()
	defer l.gate.RUnlock()
	if l.stopped {
		return ErrLoopStopped
	}

	select {
	case events <- fn:
		return nil
	case <-stop:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// drain runs queued events until the queue is empty.
func (l *EventLoop) drain() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.draining = false
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.exec(fn)
	}
}

func (l *EventLoop) run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			l.shutdown()
			return
		case fn := <-l.events:
			l.exec(fn)
		}
	}
}

// shutdown rejects further dispatches, then runs the events already queued.
func (l *EventLoop) shutdown() {
	l.gate.Lock()
	l.stopped = true
	l.gate.Unlock()

	for {
		select {
		case fn := <-l.events:
			l.exec(fn)
		default:
			return
		}
	}
}

func (l *EventLoop) exec(fn func()) {
	fn()
	l.processed.Add(1)
}
