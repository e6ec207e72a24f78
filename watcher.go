package tether

import "context"

// Watcher observes an external value for changes and emits its raw contents
// on a channel. A Feeder decodes the contents and drives a ValueSource.
type Watcher interface {
	// Watch begins observing the value and returns a channel that emits raw
	// bytes when it changes. The channel is closed when the context is
	// canceled or an unrecoverable error occurs.
	//
	// Implementations should emit the current contents immediately.
	Watch(ctx context.Context) (<-chan []byte, error)
}
