package tether

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func receive(t *testing.T, out <-chan []byte, timeout time.Duration) string {
	t.Helper()
	select {
	case v, ok := <-out:
		if !ok {
			t.Fatal("channel closed")
		}
		return string(v)
	case <-time.After(timeout):
		t.Fatal("timeout waiting for file contents")
		return ""
	}
}

func TestFileWatcher_EmitsInitialContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "username.txt")
	if err := os.WriteFile(path, []byte("alice\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := NewFileWatcher(path)
	if watcher.Path() != path {
		t.Errorf("expected path %s, got %s", path, watcher.Path())
	}

	out, err := watcher.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if got := receive(t, out, time.Second); got != "alice\n" {
		t.Errorf("expected 'alice\\n', got %q", got)
	}
}

func TestFileWatcher_EmitsOnCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "email.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := NewFileWatcher(path).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("a@b.c"), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case v, ok := <-out:
			if !ok {
				t.Fatal("channel closed")
			}
			// Create and Write may arrive separately; the last read wins.
			if string(v) == "a@b.c" {
				return
			}
		case <-deadline:
			t.Fatal("timeout waiting for created file")
		}
	}
}

func TestFileWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "password.txt")

	if _, err := NewFileWatcher(path).Watch(context.Background()); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFileWatcher_ClosesOnContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok")

	ctx, cancel := context.WithCancel(context.Background())
	out, err := NewFileWatcher(path).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected channel to be closed")
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for channel close")
	}
}
