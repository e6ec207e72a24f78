package tether

import "sync/atomic"

// Group owns a fixed set of subscriptions and disposes them together.
// Disposal is a single idempotent action guarded by an atomic flag, so
// members are disposed exactly once whichever caller gets there first.
type Group struct {
	members  []*Subscription
	disposed atomic.Bool
}

// NewGroup creates a Group owning subs. Nil entries are ignored.
func NewGroup(subs ...*Subscription) *Group {
	members := make([]*Subscription, 0, len(subs))
	for _, s := range subs {
		if s != nil {
			members = append(members, s)
		}
	}
	return &Group{members: members}
}

// Len returns the number of member subscriptions.
func (g *Group) Len() int {
	return len(g.members)
}

// IsDisposed reports whether the group has been disposed.
func (g *Group) IsDisposed() bool {
	return g.disposed.Load()
}

// Dispose disposes every member. It returns true, and does nothing, if the
// group was already disposed.
func (g *Group) Dispose() (alreadyDisposed bool) {
	if !g.disposed.CompareAndSwap(false, true) {
		return true
	}
	for _, m := range g.members {
		m.Dispose()
	}
	return false
}
