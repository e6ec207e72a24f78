package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/tether"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder[string]()
	if _, ok := r.Last(); ok {
		t.Error("expected empty recorder")
	}

	sink := r.Sink()
	sink("a")
	sink("b")

	if r.Count() != 2 {
		t.Errorf("expected 2 values, got %d", r.Count())
	}
	if last, ok := r.Last(); !ok || last != "b" {
		t.Errorf("expected last 'b', got %q", last)
	}

	values := r.Values()
	values[0] = "mutated"
	if r.Values()[0] != "a" {
		t.Error("expected Values to return a copy")
	}
}

func TestRecorder_Concurrent(t *testing.T) {
	r := NewRecorder[int]()
	sink := r.Sink()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			sink(v)
		}(i)
	}
	wg.Wait()

	if r.Count() != 50 {
		t.Errorf("expected 50 values, got %d", r.Count())
	}
}

func TestForm_Pipeline(t *testing.T) {
	form := NewForm()
	p := form.Pipeline()
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	RequireState(t, p, tether.StateBound)
	RequireLast(t, form.Messages, "")
	RequireLast(t, form.Enabled, false)

	form.Fill("alice", "a@b.c", "abcd", "abcd")
	RequireLast(t, form.Messages, "")
	RequireLast(t, form.Enabled, true)
	if form.Messages.Count() != 5 {
		t.Errorf("expected 5 message writes, got %d", form.Messages.Count())
	}
}

func TestWaitFor(t *testing.T) {
	start := time.Now()
	calls := 0
	ok := WaitFor(t, time.Second, func() bool {
		calls++
		return calls >= 3
	})
	if !ok {
		t.Error("expected condition to be met")
	}
	if time.Since(start) >= time.Second {
		t.Error("expected WaitFor to return early")
	}

	if WaitFor(t, 20*time.Millisecond, func() bool { return false }) {
		t.Error("expected timeout")
	}
}
