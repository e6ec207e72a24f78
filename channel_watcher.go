package tether

import "context"

// ChannelWatcher wraps an existing byte channel as a Watcher.
// Useful for tests and for collaborators that already produce change events.
type ChannelWatcher struct {
	ch     <-chan []byte
	direct bool
}

// NewChannelWatcher creates a ChannelWatcher that relays values from ch
// through its own goroutine, closing the output when ctx ends.
func NewChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{ch: ch}
}

// NewSyncChannelWatcher creates a ChannelWatcher that hands out ch itself.
// Pair it with Feeder.SyncMode for deterministic tests.
func NewSyncChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{ch: ch, direct: true}
}

// Watch returns the channel of raw values.
func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	if w.direct {
		return w.ch, nil
	}
	out := make(chan []byte)
	go relay(ctx, w.ch, out)
	return out, nil
}

// relay copies values from in to out until in closes or ctx ends, then
// closes out.
func relay(ctx context.Context, in <-chan []byte, out chan<- []byte) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-in:
			if !ok {
				return
			}
			if !send(ctx, out, v) {
				return
			}
		}
	}
}

// send delivers v on out unless ctx ends first.
func send(ctx context.Context, out chan<- []byte, v []byte) bool {
	select {
	case out <- v:
		return true
	case <-ctx.Done():
		return false
	}
}
