package tether

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubscription_DisposeRunsTeardownOnce(t *testing.T) {
	calls := 0
	sub := NewSubscription(func() { calls++ })

	if sub.State() != SubscriptionActive {
		t.Fatalf("expected active, got %s", sub.State())
	}
	if sub.Dispose() {
		t.Error("expected first Dispose to report not already disposed")
	}
	if !sub.Dispose() {
		t.Error("expected second Dispose to report already disposed")
	}
	if calls != 1 {
		t.Errorf("expected teardown once, got %d", calls)
	}
	if !sub.IsDisposed() {
		t.Error("expected disposed")
	}
}

func TestSubscription_TeardownsRunInReverse(t *testing.T) {
	var order []int
	sub := NewSubscription(func() { order = append(order, 1) })
	sub.Add(func() { order = append(order, 2) })
	sub.Add(func() { order = append(order, 3) })
	sub.Dispose()

	if diff := cmp.Diff([]int{3, 2, 1}, order); diff != "" {
		t.Errorf("teardown order mismatch (-want +got):\n%s", diff)
	}
}

func TestSubscription_AddAfterDispose(t *testing.T) {
	sub := NewSubscription(nil)
	sub.Dispose()

	ran := false
	sub.Add(func() { ran = true })
	if !ran {
		t.Error("expected teardown added after disposal to run immediately")
	}
}

func TestSubscription_AddSubscription(t *testing.T) {
	parent := NewSubscription(nil)
	child := NewSubscription(nil)
	parent.AddSubscription(child)
	parent.AddSubscription(nil)

	parent.Dispose()
	if !child.IsDisposed() {
		t.Error("expected child disposed with parent")
	}
}

func TestSubscription_UniqueIDs(t *testing.T) {
	a, b := NewSubscription(nil), NewSubscription(nil)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a.ID(), b.ID())
	}
}

func TestSubscription_ConcurrentDispose(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	sub := NewSubscription(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub.Dispose()
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("expected teardown once, got %d", calls)
	}
}

func TestSubscriptionState_String(t *testing.T) {
	tests := []struct {
		state SubscriptionState
		want  string
	}{
		{SubscriptionActive, "active"},
		{SubscriptionDisposed, "disposed"},
		{SubscriptionState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("SubscriptionState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
