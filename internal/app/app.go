package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dshills/reckon/internal/config"
	"github.com/dshills/reckon/internal/eval"
	"github.com/dshills/reckon/internal/history"
	"github.com/dshills/reckon/internal/operation"
	"github.com/dshills/reckon/internal/repl"
)

// Options configures the application from the command line.
type Options struct {
	// ConfigPath is an explicit configuration file. Empty means the
	// default lookup (reckon.toml, missing is fine).
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// In and Out override the REPL streams. Nil means stdin/stdout.
	In  io.Reader
	Out io.Writer

	// NoWatch disables configuration live reload.
	NoWatch bool
}

// Application owns all calculator components.
type Application struct {
	cfg    config.Config
	logger *Logger

	registry *operation.Registry
	script   *operation.Script
	hist     *history.Log
	repl     *repl.REPL

	watcher  *config.Watcher
	logFile  *os.File
	autoSave atomic.Bool

	shutdown sync.Once
}

// New creates an application from the given options, bootstrapping all
// components in dependency order.
func New(opts Options) (*Application, error) {
	a := &Application{}
	if err := a.bootstrap(opts); err != nil {
		a.Shutdown()
		return nil, err
	}
	return a, nil
}

// bootstrap initializes configuration, logging, operations, history,
// the REPL, and the config watcher, in that order.
func (a *Application) bootstrap(opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	a.cfg = cfg
	a.autoSave.Store(cfg.AutoSave)

	if err := a.openLog(); err != nil {
		return err
	}

	a.registry = operation.Builtin()
	if cfg.OpsFile != "" {
		script, err := a.registry.LoadScript(cfg.OpsFile)
		if err != nil {
			return err
		}
		a.script = script
		a.logger.Info("loaded custom operations from %s", cfg.OpsFile)
	}

	a.hist = history.NewLog(cfg.MaxHistory)
	a.installObservers()

	ev := eval.New(a.registry, a.hist, eval.Options{
		Precision: cfg.Precision,
		MaxInput:  cfg.MaxInput,
	})
	a.repl = repl.New(a.registry, ev, a.hist, repl.Options{
		In:           opts.In,
		Out:          opts.Out,
		HistoryFile:  cfg.HistoryFile,
		MergeImports: cfg.ImportMode == config.ImportMerge,
		Logger:       a.logger.WithComponent("repl"),
	})

	if !opts.NoWatch {
		a.startWatcher(opts.ConfigPath)
	}

	a.logger.Info("calculator initialized")
	return nil
}

// openLog creates the log directory and file and builds the logger.
func (a *Application) openLog() error {
	if dir := filepath.Dir(a.cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating log directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", a.cfg.LogFile, err)
	}
	a.logFile = f
	a.logger = NewLogger(ParseLogLevel(a.cfg.LogLevel), f)
	return nil
}

// startWatcher enables configuration live reload. Only the log level
// and autosave toggle change at runtime; other settings need a restart.
func (a *Application) startWatcher(path string) {
	if path == "" {
		path = config.DefaultFile
		if _, err := os.Stat(path); err != nil {
			return // nothing to watch
		}
	}

	w, err := config.Watch(path, a.applyReload, config.WatchOptions{
		OnError: func(err error) {
			a.logger.Warn("config reload failed: %v", err)
		},
	})
	if err != nil {
		a.logger.Warn("config watch disabled: %v", err)
		return
	}
	a.watcher = w
}

func (a *Application) applyReload(cfg config.Config) {
	a.logger.SetLevel(ParseLogLevel(cfg.LogLevel))
	a.autoSave.Store(cfg.AutoSave)
	a.logger.Info("configuration reloaded: log_level=%s auto_save=%t", cfg.LogLevel, cfg.AutoSave)
}

// Run executes the REPL until quit, end of input, or cancellation.
func (a *Application) Run(ctx context.Context) error {
	return a.repl.Run(ctx)
}

// Config returns the resolved configuration.
func (a *Application) Config() config.Config {
	return a.cfg
}

// History returns the calculation log.
func (a *Application) History() *history.Log {
	return a.hist
}

// Logger returns the application logger.
func (a *Application) Logger() *Logger {
	if a.logger == nil {
		return NullLogger
	}
	return a.logger
}

// Shutdown releases all resources. Idempotent and safe on all exit
// paths, including partial bootstrap.
func (a *Application) Shutdown() {
	a.shutdown.Do(func() {
		if a.hist != nil && a.autoSave.Load() {
			a.saveHistory()
		}
		if a.watcher != nil {
			if err := a.watcher.Close(); err != nil && a.logger != nil {
				a.logger.Warn("closing config watcher: %v", err)
			}
		}
		if a.script != nil {
			a.script.Close()
		}
		if a.logger != nil {
			a.logger.Info("calculator shut down")
		}
		if a.logFile != nil {
			_ = a.logFile.Close()
		}
	})
}
