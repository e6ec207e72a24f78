package tether

import "sync"

// seedValue is replayed to every subscriber of a ValueSource before any
// observed change, whatever the external value currently holds.
const seedValue = ""

// ValueSource wraps one mutable external text value (for example a text
// input) as a Stream of its contents.
//
// Every subscriber receives the empty string once, at subscription time,
// followed by every later change. Absent values are normalized to the empty
// string at this boundary and never reach downstream stages.
type ValueSource struct {
	name    string
	changes *Emitter[string]

	mu      sync.RWMutex
	current string
}

// NewValueSource creates a ValueSource. The name identifies the source in
// signals and debugging output.
func NewValueSource(name string) *ValueSource {
	return &ValueSource{
		name:    name,
		changes: NewEmitter[string](),
	}
}

// Name returns the source name.
func (s *ValueSource) Name() string {
	return s.name
}

// Current returns the last normalized value observed by the source.
func (s *ValueSource) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set reports a change of the external value. A nil text is an absent value
// and is delivered as the empty string.
func (s *ValueSource) Set(text *string) {
	s.SetText(Normalize(text))
}

// SetText reports a change of the external value.
func (s *ValueSource) SetText(text string) {
	s.mu.Lock()
	s.current = text
	s.mu.Unlock()

	s.changes.Emit(text)
}

// Subscribe delivers the seed value to fn, then every subsequent change.
func (s *ValueSource) Subscribe(fn func(string)) *Subscription {
	fn(seedValue)
	return s.changes.Subscribe(fn)
}

// Normalize maps an absent text value to the empty string.
func Normalize(text *string) string {
	if text == nil {
		return ""
	}
	return *text
}
