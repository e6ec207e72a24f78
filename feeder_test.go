package tether

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type failingWatcher struct{}

func (failingWatcher) Watch(context.Context) (<-chan []byte, error) {
	return nil, errors.New("unavailable")
}

func record(src *ValueSource) func() []string {
	var mu sync.Mutex
	var got []string
	src.Subscribe(func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	return func() []string {
		mu.Lock()
		defer mu.Unlock()
		out := make([]string, len(got))
		copy(out, got)
		return out
	}
}

func TestFeeder_SyncModeAppliesChanges(t *testing.T) {
	ch := make(chan []byte, 2)
	src := NewValueSource("username")
	values := record(src)

	feeder := NewFeeder(NewSyncChannelWatcher(ch), src).SyncMode()
	ctx := context.Background()
	if err := feeder.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if feeder.Process(ctx) {
		t.Error("expected no pending change")
	}

	ch <- []byte("alice\n")
	ch <- []byte("bob")
	if !feeder.Process(ctx) || !feeder.Process(ctx) {
		t.Fatal("expected both changes to be processed")
	}

	if diff := cmp.Diff([]string{"", "alice", "bob"}, values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFeeder_DecodeErrorKeepsPreviousValue(t *testing.T) {
	ch := make(chan []byte, 4)
	src := NewValueSource("email")
	values := record(src)

	feeder := NewFeeder(NewSyncChannelWatcher(ch), src).
		Codec(JSONCodec{}).
		ErrorHistorySize(2).
		SyncMode()
	ctx := context.Background()
	if err := feeder.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ch <- []byte(`"a@b.c"`)
	ch <- []byte(`{broken`)
	ch <- []byte(`[1]`)
	for i := 0; i < 3; i++ {
		feeder.Process(ctx)
	}

	if diff := cmp.Diff([]string{"", "a@b.c"}, values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if src.Current() != "a@b.c" {
		t.Errorf("expected current 'a@b.c', got %q", src.Current())
	}
	if feeder.LastError() == nil {
		t.Error("expected last error")
	}
	if n := len(feeder.ErrorHistory()); n != 2 {
		t.Errorf("expected 2 errors in history, got %d", n)
	}

	ch <- []byte(`null`)
	feeder.Process(ctx)

	if feeder.LastError() != nil {
		t.Errorf("expected last error cleared, got %v", feeder.LastError())
	}
	if feeder.ErrorHistory() != nil {
		t.Errorf("expected history cleared, got %v", feeder.ErrorHistory())
	}
	if diff := cmp.Diff([]string{"", "a@b.c", ""}, values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFeeder_NoHistoryByDefault(t *testing.T) {
	ch := make(chan []byte, 1)
	feeder := NewFeeder(NewSyncChannelWatcher(ch), NewValueSource("password")).
		Codec(YAMLCodec{}).
		SyncMode()
	ctx := context.Background()
	if err := feeder.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ch <- []byte("a: b")
	feeder.Process(ctx)

	if feeder.LastError() == nil {
		t.Error("expected last error")
	}
	if feeder.ErrorHistory() != nil {
		t.Error("expected nil history when not enabled")
	}
}

func TestFeeder_RoutesThroughLoop(t *testing.T) {
	ctx := context.Background()
	loop := NewEventLoop().SyncMode()
	if err := loop.Start(ctx); err != nil {
		t.Fatalf("loop Start() error = %v", err)
	}

	ch := make(chan []byte, 1)
	src := NewValueSource("password_confirmation")
	feeder := NewFeeder(NewSyncChannelWatcher(ch), src).Loop(loop).SyncMode()
	if err := feeder.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ch <- []byte("abcd")
	feeder.Process(ctx)

	if src.Current() != "abcd" {
		t.Errorf("expected current 'abcd', got %q", src.Current())
	}
	if loop.Processed() != 1 {
		t.Errorf("expected 1 loop event, got %d", loop.Processed())
	}
}

func TestFeeder_StoppedLoopRecordsError(t *testing.T) {
	loopCtx, cancel := context.WithCancel(context.Background())
	loop := NewEventLoop()
	if err := loop.Start(loopCtx); err != nil {
		t.Fatalf("loop Start() error = %v", err)
	}
	cancel()
	<-loop.Done()

	ch := make(chan []byte, 2)
	src := NewValueSource("email")
	values := record(src)
	feeder := NewFeeder(NewSyncChannelWatcher(ch), src).
		Codec(JSONCodec{}).
		Loop(loop).
		ErrorHistorySize(4).
		SyncMode()
	ctx := context.Background()
	if err := feeder.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ch <- []byte(`{broken`)
	ch <- []byte(`"a@b.c"`)
	feeder.Process(ctx)
	feeder.Process(ctx)

	if !errors.Is(feeder.LastError(), ErrLoopStopped) {
		t.Errorf("expected ErrLoopStopped, got %v", feeder.LastError())
	}
	if n := len(feeder.ErrorHistory()); n != 2 {
		t.Errorf("expected decode and dispatch errors in history, got %d", n)
	}
	if diff := cmp.Diff([]string{""}, values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFeeder_BackgroundMode(t *testing.T) {
	ch := make(chan []byte)
	src := NewValueSource("username")

	stopped := make(chan struct{})
	feeder := NewFeeder(NewChannelWatcher(ch), src).OnStop(func() { close(stopped) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := feeder.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ch <- []byte("alice")
	close(ch)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for feeder to stop")
	}
	if src.Current() != "alice" {
		t.Errorf("expected current 'alice', got %q", src.Current())
	}
	if feeder.Process(ctx) {
		t.Error("expected Process to be unavailable outside sync mode")
	}
}

func TestFeeder_StartTwice(t *testing.T) {
	feeder := NewFeeder(NewSyncChannelWatcher(make(chan []byte)), NewValueSource("username")).SyncMode()
	if err := feeder.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := feeder.Start(context.Background()); err == nil {
		t.Error("expected error on second Start")
	}
}

func TestFeeder_WatcherError(t *testing.T) {
	feeder := NewFeeder(failingWatcher{}, NewValueSource("email"))
	if err := feeder.Start(context.Background()); err == nil {
		t.Error("expected watcher error")
	}
}
