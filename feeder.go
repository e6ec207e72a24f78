package tether

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/capitan"
)

// Feeder drives a ValueSource from a Watcher. Raw watcher data is decoded
// with a TextCodec; decode failures are recorded and the source keeps its
// previous value.
type Feeder struct {
	watcher      Watcher
	source       *ValueSource
	codec        TextCodec
	loop         *EventLoop
	syncMode     bool
	onStop       func()
	lastError    atomic.Pointer[error]
	errorHistory *errorRing

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive changes
	changes <-chan []byte
}

// NewFeeder creates a Feeder that writes changes observed by watcher into
// source. The default codec is RawCodec.
func NewFeeder(watcher Watcher, source *ValueSource) *Feeder {
	return &Feeder{
		watcher: watcher,
		source:  source,
		codec:   RawCodec{},
	}
}

// Codec sets the codec for decoding watcher data. Must be called before Start().
func (f *Feeder) Codec(codec TextCodec) *Feeder {
	f.codec = codec
	return f
}

// Loop routes every source update through loop, so it is serialized with
// the collaborator's other events. Must be called before Start().
func (f *Feeder) Loop(loop *EventLoop) *Feeder {
	f.loop = loop
	return f
}

// SyncMode disables the background goroutine. Changes are applied only
// when Process is called. Must be called before Start().
func (f *Feeder) SyncMode() *Feeder {
	f.syncMode = true
	return f
}

// OnStop sets a callback invoked when the watcher channel closes or the
// context ends. Must be called before Start().
func (f *Feeder) OnStop(fn func()) *Feeder {
	f.onStop = fn
	return f
}

// ErrorHistorySize sets the number of recent decode errors to retain.
// Use 0 (default) to only retain the most recent error via LastError().
// Must be called before Start().
func (f *Feeder) ErrorHistorySize(n int) *Feeder {
	f.errorHistory = newErrorRing(n)
	return f
}

// LastError returns the last decode or dispatch error, or nil if the latest
// change reached the source.
func (f *Feeder) LastError() error {
	ptr := f.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns the errors since a change last reached the source,
// oldest first. Returns nil if error history is not enabled.
func (f *Feeder) ErrorHistory() []error {
	return f.errorHistory.all()
}

// Start begins watching. Outside sync mode, changes are applied by a
// background goroutine until ctx ends or the watcher closes its channel.
//
// Start can only be called once. Subsequent calls return an error.
func (f *Feeder) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return fmt.Errorf("feeder already started")
	}
	f.started = true
	f.mu.Unlock()

	changes, err := f.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher for %s: %w", f.source.Name(), err)
	}

	if f.syncMode {
		f.changes = changes
		return nil
	}

	go f.feed(ctx, changes)
	return nil
}

// Process applies the next pending change. This is only available in sync
// mode and is used for deterministic testing.
// Returns false if no change is available or the channel is closed.
func (f *Feeder) Process(ctx context.Context) bool {
	if !f.syncMode {
		return false
	}

	select {
	case raw, ok := <-f.changes:
		if !ok {
			return false
		}
		_ = f.apply(ctx, raw) //nolint:errcheck // Errors stored via setError
		return true
	default:
		return false
	}
}

func (f *Feeder) feed(ctx context.Context, changes <-chan []byte) {
	defer func() {
		if f.onStop != nil {
			f.onStop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-changes:
			if !ok {
				return
			}
			_ = f.apply(ctx, raw) //nolint:errcheck // Errors stored via setError
		}
	}
}

// apply decodes raw and forwards the text to the source.
func (f *Feeder) apply(ctx context.Context, raw []byte) error {
	text, err := f.codec.Decode(raw)
	if err != nil {
		f.setError(err)
		capitan.Emit(ctx, FeedDecodeFailed,
			KeySource.Field(f.source.Name()),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("decode %s failed: %w", f.source.Name(), err)
	}

	if f.loop == nil {
		f.source.Set(text)
		f.clearErrors()
		return nil
	}
	if err := f.loop.Dispatch(ctx, func() {
		f.source.Set(text)
	}); err != nil {
		f.setError(err)
		capitan.Emit(ctx, FeedDispatchFailed,
			KeySource.Field(f.source.Name()),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("dispatch %s failed: %w", f.source.Name(), err)
	}
	f.clearErrors()
	return nil
}

func (f *Feeder) clearErrors() {
	f.lastError.Store(nil)
	f.errorHistory.clear()
}

func (f *Feeder) setError(err error) {
	e := err
	f.lastError.Store(&e)
	f.errorHistory.push(err)
}
