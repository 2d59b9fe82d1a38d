package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"fastrak/internal/config"
	"fastrak/internal/importer"
	"fastrak/internal/winpath"
)

// Scanner triggers one import round. *importer.Importer satisfies it.
type Scanner interface {
	Run(ctx context.Context) (importer.Stats, error)
}

// ErrNoRoots is returned when none of the active category roots exist.
var ErrNoRoots = errors.New("no active category roots to watch")

// Watcher debounces folder-create events into importer scans.
type Watcher struct {
	cfg      *config.Config
	scanner  Scanner
	logger   *slog.Logger
	rules    winpath.Rules
	debounce time.Duration
}

// New constructs a watcher. The debounce interval comes from config.
func New(cfg *config.Config, scanner Scanner, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	debounce := time.Duration(cfg.Watch.DebounceSeconds) * time.Second
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{
		cfg:      cfg,
		scanner:  scanner,
		logger:   logger.With("component", "watcher"),
		rules:    cfg.Rules(),
		debounce: debounce,
	}
}

// Run watches every existing active category root until ctx is cancelled.
// Create events are debounced; each quiet period triggers one import scan.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	roots := w.watchRoots()
	if len(roots) == 0 {
		return ErrNoRoots
	}
	for _, root := range roots {
		if err := fsw.Add(root); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
		w.logger.Info("watching", "root", root)
	}

	// Timer starts drained; the first create event arms it.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				w.logger.Debug("folder event", "path", event.Name)
				timer.Reset(w.debounce)
			}

		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", watchErr)

		case <-timer.C:
			stats, scanErr := w.scanner.Run(ctx)
			if scanErr != nil {
				w.logger.Error("auto-import failed", "error", scanErr)
				continue
			}
			w.logger.Info("auto-import round",
				"scanned", stats.Scanned,
				"imported", stats.Imported,
				"skipped", stats.Skipped,
				"errors", stats.Errors)
		}
	}
}

// watchRoots returns the existing active category roots, including personal
// subfolders, as platform paths.
func (w *Watcher) watchRoots() []string {
	var roots []string
	for _, category := range w.cfg.OrderedCategories() {
		base := w.rules.ToPlatform(w.cfg.ActivePath(category))
		for _, candidate := range []string{base, w.rules.ToPlatform(winpath.Join(w.cfg.ActivePath(category), importer.PersonalSubdir))} {
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				roots = append(roots, candidate)
			}
		}
	}
	return roots
}
