package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"fastrak/internal/config"
	"fastrak/internal/winpath"
)

// lockRetryDelay is the poll interval while waiting on the database lock.
const lockRetryDelay = 100 * time.Millisecond

// Store manages the project database document on disk.
type Store struct {
	path   string
	lock   *flock.Flock
	doc    *Document
	rules  winpath.Rules
	logger *slog.Logger
}

// Open acquires the database lock and loads (or creates) the document.
// The lock is held until Close; ctx bounds the lock wait.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	path := cfg.Storage.DatabasePath
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire database lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	store := &Store{
		path:   path,
		lock:   lock,
		rules:  cfg.Rules(),
		logger: logger.With("component", "projects"),
	}
	if err := store.load(); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database lock.
func (s *Store) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Normalize exposes the store's canonical path form.
func (s *Store) Normalize(path string) string {
	return s.rules.Normalize(path)
}

// Rules returns the path rules the store normalizes with.
func (s *Store) Rules() winpath.Rules {
	return s.rules
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("database file not found, starting empty", "path", s.path)
			s.doc = emptyDocument()
			return nil
		}
		return fmt.Errorf("read database: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Error("database parse failed, starting empty", "path", s.path, "error", err)
		if backupErr := s.backupCorrupt(data); backupErr != nil {
			return backupErr
		}
		s.doc = emptyDocument()
		return nil
	}
	if !validSchema(&doc) {
		s.logger.Error("database schema invalid, starting empty", "path", s.path)
		if backupErr := s.backupCorrupt(data); backupErr != nil {
			return backupErr
		}
		s.doc = emptyDocument()
		return nil
	}

	if doc.Clients == nil {
		doc.Clients = []*Client{}
	}
	if doc.Projects == nil {
		doc.Projects = []*Project{}
	}
	if doc.ArchiveHistory == nil {
		doc.ArchiveHistory = []*HistoryEntry{}
	}
	s.doc = &doc
	return nil
}

func validSchema(doc *Document) bool {
	return doc.Version != ""
}

func (s *Store) backupCorrupt(data []byte) error {
	backupPath := s.path + ".bak"
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return fmt.Errorf("back up corrupt database: %w", err)
	}
	s.logger.Warn("backed up corrupt database", "path", backupPath)
	return nil
}

// save writes the document atomically next to the database file.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal database: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".projects-*.json")
	if err != nil {
		return fmt.Errorf("create temp database: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp database: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace database: %w", err)
	}
	return nil
}
