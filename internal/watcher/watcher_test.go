package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"fastrak/internal/importer"
	"fastrak/internal/logging"
	"fastrak/internal/testsupport"
	"fastrak/internal/watcher"
)

type countingScanner struct {
	runs atomic.Int32
}

func (c *countingScanner) Run(context.Context) (importer.Stats, error) {
	c.runs.Add(1)
	return importer.Stats{Scanned: 1, Imported: 1}, nil
}

func TestRunFailsWithoutRoots(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	w := watcher.New(cfg, &countingScanner{}, logging.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := w.Run(ctx); err != watcher.ErrNoRoots {
		t.Fatalf("expected ErrNoRoots, got %v", err)
	}
}

func TestRunDebouncesCreateEventsIntoScan(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Watch.DebounceSeconds = 1

	visual := cfg.ActivePath("Visual")
	if err := os.MkdirAll(visual, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	scanner := &countingScanner{}
	w := watcher.New(cfg, scanner, logging.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the root before creating folders.
	time.Sleep(300 * time.Millisecond)
	for _, name := range []string{"2025-01-01_Acme_One", "2025-01-02_Acme_Two"} {
		if err := os.Mkdir(filepath.Join(visual, name), 0o755); err != nil {
			t.Fatalf("mkdir project: %v", err)
		}
	}

	deadline := time.After(4 * time.Second)
	for scanner.runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected a scan after the debounce interval")
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
