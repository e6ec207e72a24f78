package tether

// State represents the current state of a Pipeline.
type State int32

const (
	// StateSetup indicates the Pipeline has been constructed but its outputs
	// are not bound yet.
	StateSetup State = iota

	// StateBound indicates the bindings are active and the combined stream
	// is driving the outputs.
	StateBound

	// StateUnbound indicates the unbind trigger fired. This state is terminal.
	StateUnbound

	// StateClosed indicates the owning scope ended before the unbind trigger
	// fired. The bindings are disposed. This state is terminal.
	StateClosed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateBound:
		return "bound"
	case StateUnbound:
		return "unbound"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
