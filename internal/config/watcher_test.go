package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchDeliversReload(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "reckon.toml")
	if err := os.WriteFile(path, []byte("precision = 2\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	changes := make(chan Config, 4)
	w, err := Watch(path, func(cfg Config) { changes <- cfg }, WatchOptions{
		Debounce: 50 * time.Millisecond,
		OnError:  func(err error) { t.Logf("reload error: %v", err) },
	})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("precision = 7\n"), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case cfg := <-changes:
		if cfg.Precision != 7 {
			t.Errorf("reloaded Precision = %d, want 7", cfg.Precision)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatchReportsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "reckon.toml")
	if err := os.WriteFile(path, []byte("precision = 2\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	errs := make(chan error, 4)
	w, err := Watch(path, func(Config) {}, WatchOptions{
		Debounce: 50 * time.Millisecond,
		OnError:  func(err error) { errs <- err },
	})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("precision = 99\n"), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case <-errs:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "reckon.toml")
	if err := os.WriteFile(path, []byte("precision = 2\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	changes := make(chan Config, 4)
	w, err := Watch(path, func(cfg Config) { changes <- cfg }, WatchOptions{
		Debounce: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing other file: %v", err)
	}

	select {
	case <-changes:
		t.Fatal("received reload for unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reckon.toml")
	if err := os.WriteFile(path, []byte("precision = 2\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	w, err := Watch(path, func(Config) {}, WatchOptions{})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
