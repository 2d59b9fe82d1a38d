package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fastrak/internal/config"
	"fastrak/internal/fileutil"
	"fastrak/internal/projects"
	"fastrak/internal/winpath"
)

// ErrTargetExists is returned when the destination folder is already
// occupied and the caller did not opt into overwrite or rename handling.
var ErrTargetExists = errors.New("destination folder already exists")

// PersonalSubdir is the subfolder personal projects live under inside each
// category root.
const PersonalSubdir = "_Personal"

// maxRestoreProbes bounds the _restored_N suffix search.
const maxRestoreProbes = 100

// ArchiveOptions controls Archive behavior.
type ArchiveOptions struct {
	// Overwrite removes an existing destination folder before the move.
	Overwrite bool
}

// RestoreOptions controls Restore behavior.
type RestoreOptions struct {
	// Rename probes <name>_restored_N when the destination is occupied.
	Rename bool
}

// Manager moves project folders and records the transitions.
type Manager struct {
	cfg    *config.Config
	store  *projects.Store
	logger *slog.Logger
	rules  winpath.Rules
}

// NewManager constructs an archive manager bound to a store.
func NewManager(cfg *config.Config, store *projects.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:    cfg,
		store:  store,
		logger: logger.With("component", "archive"),
		rules:  cfg.Rules(),
	}
}

// Archive moves an active project folder into the archive tree for its
// category and marks the project archived. It returns the updated project.
func (m *Manager) Archive(ctx context.Context, id string, opts ArchiveOptions) (*projects.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	project, err := m.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project.Status != projects.StatusActive {
		return nil, fmt.Errorf("archive %s (status %s): %w", id, project.Status, projects.ErrInvalidTransition)
	}

	source := m.rules.ToPlatform(project.Path)
	if err := requireDir(source); err != nil {
		return nil, fmt.Errorf("archive source: %w", err)
	}

	target := m.categoryPath(project, true)
	target = winpath.Join(target, winpath.Base(project.Path))
	targetFS := m.rules.ToPlatform(target)

	if err := prepareTarget(targetFS, opts.Overwrite); err != nil {
		return nil, err
	}

	m.logger.Info("archiving project", "id", id, "from", project.Path, "to", target)
	if err := fileutil.MoveDir(source, targetFS); err != nil {
		return nil, fmt.Errorf("move to archive: %w", err)
	}

	updated, err := m.store.MarkArchived(id, target)
	if err != nil {
		m.rollbackMove(targetFS, source)
		return nil, fmt.Errorf("record archive: %w", err)
	}
	return updated, nil
}

// Restore moves an archived project folder back under the active tree for
// its category and marks the project active again.
func (m *Manager) Restore(ctx context.Context, id string, opts RestoreOptions) (*projects.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	project, err := m.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project.Status != projects.StatusArchived {
		return nil, fmt.Errorf("restore %s (status %s): %w", id, project.Status, projects.ErrInvalidTransition)
	}

	source := m.rules.ToPlatform(project.Path)
	if err := requireDir(source); err != nil {
		return nil, fmt.Errorf("restore source: %w", err)
	}

	base := m.categoryPath(project, false)
	target, targetFS, err := m.restoreTarget(base, winpath.Base(project.Path), opts.Rename)
	if err != nil {
		return nil, err
	}

	m.logger.Info("restoring project", "id", id, "from", project.Path, "to", target)
	if err := fileutil.MoveDir(source, targetFS); err != nil {
		return nil, fmt.Errorf("move from archive: %w", err)
	}

	updated, err := m.store.MarkRestored(id, target)
	if err != nil {
		m.rollbackMove(targetFS, source)
		return nil, fmt.Errorf("record restore: %w", err)
	}
	return updated, nil
}

// categoryPath resolves the active or archive root a project files under,
// honoring the personal subfolder.
func (m *Manager) categoryPath(project *projects.Project, archived bool) string {
	category := projects.CategoryForType(project.ProjectType)
	var root string
	if archived {
		root = m.cfg.ArchivePath(category)
	} else {
		root = m.cfg.ActivePath(category)
	}
	if project.IsPersonal() {
		root = winpath.Join(root, PersonalSubdir)
	}
	return root
}

// restoreTarget picks the destination path, probing _restored_N suffixes
// when renaming around an occupied folder is allowed.
func (m *Manager) restoreTarget(base, folder string, rename bool) (string, string, error) {
	target := winpath.Join(base, folder)
	targetFS := m.rules.ToPlatform(target)
	if _, err := os.Stat(targetFS); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(m.rules.ToPlatform(base), 0o755); err != nil {
			return "", "", fmt.Errorf("create restore root: %w", err)
		}
		return target, targetFS, nil
	} else if err != nil {
		return "", "", fmt.Errorf("stat restore target: %w", err)
	}

	if !rename {
		return "", "", fmt.Errorf("restore target %s: %w", target, ErrTargetExists)
	}
	for n := 1; n <= maxRestoreProbes; n++ {
		candidate := winpath.Join(base, fmt.Sprintf("%s_restored_%d", folder, n))
		candidateFS := m.rules.ToPlatform(candidate)
		if _, err := os.Stat(candidateFS); errors.Is(err, os.ErrNotExist) {
			m.logger.Warn("restore target occupied, renaming", "target", target, "candidate", candidate)
			return candidate, candidateFS, nil
		} else if err != nil {
			return "", "", fmt.Errorf("stat restore candidate: %w", err)
		}
	}
	return "", "", fmt.Errorf("restore target %s: no free _restored suffix", target)
}

func prepareTarget(targetFS string, overwrite bool) error {
	if _, err := os.Stat(targetFS); err == nil {
		if !overwrite {
			return fmt.Errorf("archive target %s: %w", targetFS, ErrTargetExists)
		}
		if err := os.RemoveAll(targetFS); err != nil {
			return fmt.Errorf("remove existing target: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat archive target: %w", err)
	}
	return os.MkdirAll(filepath.Dir(targetFS), 0o755)
}

// rollbackMove best-effort returns a moved folder after a database failure.
func (m *Manager) rollbackMove(from, to string) {
	if err := fileutil.MoveDir(from, to); err != nil {
		m.logger.Error("rollback move failed, disk and database disagree",
			"from", from, "to", to, "error", err)
		return
	}
	m.logger.Warn("rolled back folder move after database failure", "restored", to)
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
