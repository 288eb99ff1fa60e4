package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the settle window applied to file events before a
// reload. Editors often emit several writes per save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads configuration when the backing file changes.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(Config)
	onError  func(error)

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
}

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration

	// OnError receives reload failures. Optional.
	OnError func(error)
}

// Watch monitors the config file at path and calls onChange with the
// freshly loaded configuration after each change. The parent directory
// is watched so the file may be replaced atomically (rename-over).
func Watch(path string, onChange func(Config), opts WatchOptions) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		debounce: opts.Debounce,
		onChange: onChange,
		onError:  opts.OnError,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Close stops watching. Safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// loop consumes file events, debouncing bursts into a single reload.
func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.reload)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

// reload re-runs the load pipeline and delivers the result.
func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
