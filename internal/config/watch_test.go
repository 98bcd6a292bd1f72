package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, recipesFile)
	other := filepath.Join(dir, "notes.txt")
	os.WriteFile(path, []byte("recipes: []\n"), 0o644)

	w, err := NewWatcher(200*time.Millisecond, path)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	os.WriteFile(other, []byte("ignored"), 0o644)
	os.WriteFile(path, []byte("recipes: []\n# edit 1\n"), 0o644)
	os.WriteFile(path, []byte("recipes: []\n# edit 2\n"), 0o644)

	abs, _ := filepath.Abs(path)
	select {
	case got := <-w.Events:
		if got != abs {
			t.Errorf("event for %q, want %q", got, abs)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event after writing the watched file")
	}

	// The burst of writes is reported once.
	select {
	case got := <-w.Events:
		t.Errorf("unexpected second event for %q", got)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), kitchenFile)
	w, err := NewWatcher(0, path)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events still open after Close")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	if _, err := NewWatcher(0, filepath.Join(t.TempDir(), "gone", "recipes.yaml")); err == nil {
		t.Error("watching a missing directory succeeded")
	}
}
