package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"fastrak/internal/config"
	"fastrak/internal/projects"
	"fastrak/internal/winpath"
)

// PersonalSubdir is the personal projects subfolder inside category roots.
const PersonalSubdir = "_Personal"

// Stats summarizes one import run.
type Stats struct {
	Scanned  int
	Imported int
	Skipped  int
	Errors   int
}

// Importer scans category roots and registers unknown project folders.
type Importer struct {
	cfg    *config.Config
	store  *projects.Store
	logger *slog.Logger
	rules  winpath.Rules
	titler cases.Caser
}

// New constructs an importer bound to a store.
func New(cfg *config.Config, store *projects.Store, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		cfg:    cfg,
		store:  store,
		logger: logger.With("component", "importer"),
		rules:  cfg.Rules(),
		titler: cases.Title(language.English, cases.NoLower),
	}
}

// candidate is one folder queued for registration.
type candidate struct {
	draft       projects.Draft
	scannedPath string
}

// Run scans every configured category root and registers the folders that
// are not in the database yet. Registrations are saved in one batch.
func (im *Importer) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	var candidates []candidate

	for _, category := range im.cfg.OrderedCategories() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		activeRoot := im.cfg.ActivePath(category)
		archiveRoot := im.cfg.ArchivePath(category)

		roots := []struct {
			base     string
			personal bool
			status   projects.Status
		}{
			{activeRoot, false, projects.StatusActive},
			{winpath.Join(activeRoot, PersonalSubdir), true, projects.StatusActive},
			{archiveRoot, false, projects.StatusArchived},
			{winpath.Join(archiveRoot, PersonalSubdir), true, projects.StatusArchived},
		}
		for _, root := range roots {
			found, errs := im.scanRoot(root.base, category, root.personal, root.status)
			stats.Errors += errs
			candidates = append(candidates, found...)
		}
	}

	var drafts []projects.Draft
	for _, cand := range candidates {
		stats.Scanned++
		if im.store.HasPath(cand.draft.Path) || im.store.HasPath(cand.scannedPath) {
			stats.Skipped++
			continue
		}
		drafts = append(drafts, cand.draft)
	}

	imported, skipped, err := im.store.RegisterBatch(drafts)
	stats.Imported += imported
	stats.Skipped += skipped
	if err != nil {
		return stats, fmt.Errorf("register imported projects: %w", err)
	}

	im.logger.Info("import finished",
		"scanned", stats.Scanned,
		"imported", stats.Imported,
		"skipped", stats.Skipped,
		"errors", stats.Errors)
	return stats, nil
}

// scanRoot collects import candidates under one category root. Missing roots
// are silently skipped; unreadable ones count as a single error.
func (im *Importer) scanRoot(base, category string, personal bool, status projects.Status) ([]candidate, int) {
	baseFS := im.rules.ToPlatform(base)
	entries, err := os.ReadDir(baseFS)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0
		}
		im.logger.Warn("cannot read scan root", "root", base, "error", err)
		return nil, 1
	}

	im.logger.Debug("scanning root", "root", base, "category", category, "status", string(status))

	var found []candidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			continue
		}

		info := parseFolderName(name, category, personal)
		if info == nil {
			continue
		}

		scanned := winpath.Join(base, name)
		stored := scanned
		storedBase := base
		if status == projects.StatusActive {
			// Active projects are addressed through the mapped work drive.
			stored = im.rules.ToWorkDrive(scanned)
			storedBase = im.rules.ToWorkDrive(base)
		}

		found = append(found, candidate{
			scannedPath: scanned,
			draft: projects.Draft{
				ClientName:    im.displayClient(info.Client),
				ProjectName:   info.Project,
				ProjectType:   info.Type,
				DateCreated:   info.Date,
				Path:          stored,
				BaseDirectory: storedBase,
				Status:        status,
				Metadata:      map[string]any{"is_personal": info.Personal},
			},
		})
	}
	return found, 0
}

// displayClient tidies a client name parsed from a folder for display.
func (im *Importer) displayClient(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.EqualFold(trimmed, projects.PersonalClientName) {
		return projects.PersonalClientName
	}
	if trimmed == strings.ToLower(trimmed) {
		return im.titler.String(trimmed)
	}
	return trimmed
}
