package app

import (
	"github.com/dshills/reckon/internal/history"
	"github.com/dshills/reckon/internal/persist"
)

// installObservers registers the post-commit hooks: one logging each
// calculation, one autosaving the active history. Autosave failures
// are logged and swallowed so a bad path never breaks a calculation.
func (a *Application) installObservers() {
	calcLog := a.logger.WithComponent("history")
	a.hist.AddHook(func(r history.Record) {
		calcLog.Info("calculation: %s", r)
	})
	a.hist.AddHook(func(history.Record) {
		if !a.autoSave.Load() {
			return
		}
		a.saveHistory()
	})
}

// saveHistory exports the active view to the configured history file.
func (a *Application) saveHistory() {
	records := a.hist.Active()
	if len(records) == 0 {
		return
	}
	if err := persist.ExportFile(a.cfg.HistoryFile, records); err != nil {
		a.logger.Warn("autosave failed: %v", err)
	}
}
