package tether

import "sync"

// errorRing is a thread-safe ring buffer for storing recent errors.
// A nil *errorRing is valid and retains nothing.
type errorRing struct {
	mu     sync.RWMutex
	errors []error
	head   int
	count  int
}

// newErrorRing creates a ring holding up to size errors, or nil if size is 0.
func newErrorRing(size int) *errorRing {
	if size <= 0 {
		return nil
	}
	return &errorRing{errors: make([]error, size)}
}

// push records err, overwriting the oldest entry when full.
func (r *errorRing) push(err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors[r.head] = err
	r.head = (r.head + 1) % len(r.errors)
	r.count = min(r.count+1, len(r.errors))
}

// clear removes all errors.
func (r *errorRing) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.errors)
	r.head = 0
	r.count = 0
}

// all returns the retained errors, oldest first.
func (r *errorRing) all() []error {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	size := len(r.errors)
	start := (r.head - r.count + size) % size
	result := make([]error, 0, r.count)
	for i := range r.count {
		result = append(result, r.errors[(start+i)%size])
	}
	return result
}
