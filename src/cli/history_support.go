package cli

import (
	"context"
	"log/slog"

	"brew-backup/src/config"
	"brew-backup/src/history"
)

// recordRun persists a run in the history database. Recording is best
// effort: failures are logged and never fail the operation itself.
func recordRun(cfg *config.Config, run history.Run) {
	if cfg == nil || !cfg.HistoryEnabled() {
		return
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Warn("history disabled for this run", "error", err)
		return
	}
	defer store.Close()
	if _, err := store.Append(context.Background(), run); err != nil {
		slog.Warn("could not record run", "error", err)
	}
}
