package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, dir string, files []string, debounce time.Duration) (chan string, context.CancelFunc, chan error) {
	t.Helper()
	changed := make(chan string, 16)

	w, err := NewWatcher(dir, files, func(_ context.Context, path string) {
		changed <- path
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.debounce = debounce

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return changed, cancel, done
}

func stopWatcher(t *testing.T, cancel context.CancelFunc, done chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestWatcher_Run_DispatchesTrackedFiles(t *testing.T) {
	dir := t.TempDir()
	// app.min.js is listed but must still be ignored as minifier output
	changed, cancel, done := startWatcher(t, dir, []string{"app.js", "app.min.js"}, 20*time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "app.min.js"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.js"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("var a = 1;"), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-changed:
		if path != filepath.Join(dir, "app.js") {
			t.Errorf("handler path = %q, want app.js", path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called for a tracked file")
	}

	stopWatcher(t, cancel, done)

	close(changed)
	for path := range changed {
		if filepath.Base(path) != "app.js" {
			t.Errorf("handler called for untracked file %q", path)
		}
	}
}

func TestWatcher_Run_CoalescesBurstOfWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.js")
	changed, cancel, done := startWatcher(t, dir, []string{"app.js"}, 300*time.Millisecond)

	// Truncate then write, the way many editors save
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, nil, 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("var a = 1;"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called after a burst of writes")
	}

	select {
	case extra := <-changed:
		t.Errorf("handler called again for %q, want one call per burst", extra)
	case <-time.After(time.Second):
	}

	stopWatcher(t, cancel, done)
}

func TestWatcher_Run_CancelDropsPendingChange(t *testing.T) {
	dir := t.TempDir()
	changed, cancel, done := startWatcher(t, dir, []string{"app.js"}, time.Hour)

	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("var a = 1;"), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	stopWatcher(t, cancel, done)

	select {
	case path := <-changed:
		t.Errorf("handler called for %q before the file settled", path)
	default:
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), []string{"app.js"}, func(context.Context, string) {}, nil)
	if err == nil {
		t.Error("NewWatcher() should fail for a missing directory")
	}
}
