package projects_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fastrak/internal/logging"
	"fastrak/internal/projects"
	"fastrak/internal/testsupport"
)

func TestRegisterCreatesClientAndProject(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	path := filepath.Join(cfg.Drives.ActiveBase, "Visual", "2025-03-01_Acme_Launch")
	project, created, err := store.Register(projects.Draft{
		ClientName:  "Acme",
		ProjectName: "Launch",
		ProjectType: projects.TypeGD,
		DateCreated: "2025-03-01",
		Path:        path,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !created {
		t.Fatal("expected a new registration")
	}
	if project.ID == "" {
		t.Fatal("expected project ID to be assigned")
	}
	if project.Status != projects.StatusActive {
		t.Fatalf("expected active status, got %s", project.Status)
	}

	clients := store.Clients(false)
	if len(clients) != 1 || clients[0].Name != "Acme" {
		t.Fatalf("unexpected clients: %#v", clients)
	}
	if clients[0].ProjectCount != 1 {
		t.Fatalf("expected project count 1, got %d", clients[0].ProjectCount)
	}

	fetched, err := store.GetByID(project.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.ClientID != clients[0].ID {
		t.Fatal("project not linked to client")
	}
}

func TestRegisterDeduplicatesByNormalizedPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	path := filepath.Join(cfg.Drives.ActiveBase, "Audio", "2025-02-10_Acme_Jingle")
	first := testsupport.RegisterProject(t, store, projects.Draft{
		ClientName:  "Acme",
		ProjectName: "Jingle",
		ProjectType: projects.TypeAudio,
		Path:        path,
	})

	// Same folder spelled with a trailing separator must not register twice.
	second, created, err := store.Register(projects.Draft{
		ClientName:  "Acme",
		ProjectName: "Jingle",
		ProjectType: projects.TypeAudio,
		Path:        path + string(os.PathSeparator),
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if created {
		t.Fatal("expected duplicate path to return the existing project")
	}
	if second.ID != first.ID {
		t.Fatalf("expected existing project %s, got %s", first.ID, second.ID)
	}

	clients := store.Clients(false)
	if clients[0].ProjectCount != 1 {
		t.Fatalf("duplicate registration bumped project count: %d", clients[0].ProjectCount)
	}
}

func TestRegisterClientNameMatchingIsCaseInsensitive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.RegisterProject(t, store, projects.Draft{
		ClientName:  "Acme",
		ProjectName: "One",
		ProjectType: projects.TypeGD,
		Path:        filepath.Join(cfg.Drives.ActiveBase, "Visual", "a"),
	})
	testsupport.RegisterProject(t, store, projects.Draft{
		ClientName:  "ACME",
		ProjectName: "Two",
		ProjectType: projects.TypeGD,
		Path:        filepath.Join(cfg.Drives.ActiveBase, "Visual", "b"),
	})

	clients := store.Clients(false)
	if len(clients) != 1 {
		t.Fatalf("expected one client, got %d", len(clients))
	}
	if clients[0].ProjectCount != 2 {
		t.Fatalf("expected project count 2, got %d", clients[0].ProjectCount)
	}
}

func TestRegisterPersonalProjects(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	// Empty client name files the project under the personal client.
	project := testsupport.RegisterProject(t, store, projects.Draft{
		ProjectName: "Sketchbook",
		ProjectType: projects.TypeGodot,
		Path:        filepath.Join(cfg.Drives.ActiveBase, "RealTime", "sketchbook"),
	})
	if project.ClientName != projects.PersonalClientName {
		t.Fatalf("expected personal client, got %q", project.ClientName)
	}
	if !project.IsPersonal() {
		t.Fatal("expected personal metadata flag")
	}

	if clients := store.Clients(true); len(clients) != 0 {
		t.Fatalf("personal client should be excluded, got %#v", clients)
	}
	if clients := store.Clients(false); len(clients) != 1 || !clients[0].IsPersonal {
		t.Fatalf("expected personal client record, got %#v", clients)
	}
}

func TestSearchFiltersAndArchiveVisibility(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	active := testsupport.RegisterProject(t, store, projects.Draft{
		ClientName:  "Acme",
		ProjectName: "Reel",
		ProjectType: projects.TypeVFX,
		Path:        filepath.Join(cfg.Drives.ActiveBase, "Visual", "reel"),
	})
	archived := testsupport.RegisterProject(t, store, projects.Draft{
		ClientName:  "Bravo",
		ProjectName: "Reel Night",
		ProjectType: projects.TypeVJ,
		Path:        filepath.Join(cfg.Drives.ActiveBase, "Visual", "reel-night"),
	})
	if _, err := store.MarkArchived(archived.ID, filepath.Join(cfg.Drives.ArchiveBase, "Visual", "reel-night")); err != nil {
		t.Fatalf("MarkArchived failed: %v", err)
	}

	results := store.Search("reel", false)
	if len(results) != 1 || results[0].ID != active.ID {
		t.Fatalf("expected only the active project, got %d results", len(results))
	}

	results = store.Search("reel", true)
	if len(results) != 2 {
		t.Fatalf("expected both projects with archived included, got %d", len(results))
	}

	if results := store.Search("bravo", true); len(results) != 1 || results[0].ID != archived.ID {
		t.Fatalf("client name search failed: %#v", results)
	}
}

func TestArchiveTransitionsAreStrict(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	project := testsupport.RegisterProject(t, store, projects.Draft{
		ClientName:  "Acme",
		ProjectName: "Spot",
		ProjectType: projects.TypeVFX,
		Path:        filepath.Join(cfg.Drives.ActiveBase, "Visual", "spot"),
	})
	originalPath := project.Path
	archivePath := filepath.Join(cfg.Drives.ArchiveBase, "Visual", "spot")

	if _, err := store.MarkRestored(project.ID, originalPath); !errors.Is(err, projects.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition restoring an active project, got %v", err)
	}

	updated, err := store.MarkArchived(project.ID, archivePath)
	if err != nil {
		t.Fatalf("MarkArchived failed: %v", err)
	}
	if updated.Status != projects.StatusArchived {
		t.Fatalf("expected archived status, got %s", updated.Status)
	}
	if updated.ArchivedDate == nil {
		t.Fatal("expected archived date to be set")
	}
	if updated.ArchivedFrom != originalPath {
		t.Fatalf("expected archived_from %q, got %q", originalPath, updated.ArchivedFrom)
	}

	if _, err := store.MarkArchived(project.ID, archivePath); !errors.Is(err, projects.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition archiving twice, got %v", err)
	}

	restored, err := store.MarkRestored(project.ID, originalPath)
	if err != nil {
		t.Fatalf("MarkRestored failed: %v", err)
	}
	if restored.Status != projects.StatusActive || restored.ArchivedDate != nil || restored.ArchivedFrom != "" {
		t.Fatalf("restore left stale archive fields: %#v", restored)
	}

	history := store.History(project.ID)
	if len(history) != 2 {
		t.Fatalf("expected two history entries, got %d", len(history))
	}
	// Newest first.
	if history[0].Action != projects.ActionRestored || history[1].Action != projects.ActionArchived {
		t.Fatalf("unexpected history order: %s then %s", history[0].Action, history[1].Action)
	}
	if history[1].FromPath != originalPath || history[1].ToPath != store.Normalize(archivePath) {
		t.Fatalf("unexpected archive entry: %#v", history[1])
	}
}

func TestListAndStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	a := testsupport.RegisterProject(t, store, projects.Draft{
		ClientName:  "Acme",
		ProjectName: "One",
		ProjectType: projects.TypeGD,
		Path:        filepath.Join(cfg.Drives.ActiveBase, "Visual", "one"),
	})
	b := testsupport.RegisterProject(t, store, projects.Draft{
		ClientName:  "Bravo",
		ProjectName: "Two",
		ProjectType: projects.TypeTD,
		Path:        filepath.Join(cfg.Drives.ActiveBase, "RealTime", "two"),
	})
	if _, err := store.MarkArchived(b.ID, filepath.Join(cfg.Drives.ArchiveBase, "RealTime", "two")); err != nil {
		t.Fatalf("MarkArchived failed: %v", err)
	}

	if got := store.List(projects.StatusActive); len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("unexpected active list: %d entries", len(got))
	}
	if got := store.List(projects.StatusArchived); len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("unexpected archived list: %d entries", len(got))
	}
	if got := store.List(projects.StatusAll); len(got) != 2 {
		t.Fatalf("unexpected full list: %d entries", len(got))
	}

	stats := store.Stats()
	if stats.Total != 2 || stats.Active != 1 || stats.Archived != 1 || stats.Clients != 2 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
	if stats.ByType[projects.TypeGD] != 1 || stats.ByType[projects.TypeTD] != 1 {
		t.Fatalf("unexpected type counts: %#v", stats.ByType)
	}
}

func TestUpdateStatusKeepsPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	project := testsupport.RegisterProject(t, store, projects.Draft{
		ClientName:  "Acme",
		ProjectName: "Spot",
		ProjectType: projects.TypeVFX,
		Path:        filepath.Join(cfg.Drives.ActiveBase, "Visual", "spot"),
	})
	originalPath := project.Path

	archivedProject, err := store.UpdateStatus(project.ID, projects.StatusArchived)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if archivedProject.Status != projects.StatusArchived || archivedProject.Path != originalPath {
		t.Fatalf("status change moved the path: %#v", archivedProject)
	}

	if _, err := store.UpdateStatus(project.ID, projects.StatusAll); !errors.Is(err, projects.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for filter status, got %v", err)
	}

	restored, err := store.UpdateStatus(project.ID, projects.StatusActive)
	if err != nil {
		t.Fatalf("UpdateStatus back to active failed: %v", err)
	}
	if restored.Status != projects.StatusActive || restored.Path != originalPath {
		t.Fatalf("unexpected restored project: %#v", restored)
	}
}

func TestUpdateNotes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	project := testsupport.RegisterProject(t, store, projects.Draft{
		ClientName:  "Acme",
		ProjectName: "One",
		ProjectType: projects.TypeGD,
		Path:        filepath.Join(cfg.Drives.ActiveBase, "Visual", "one"),
	})

	updated, err := store.UpdateNotes(project.ID, "deliver by friday")
	if err != nil {
		t.Fatalf("UpdateNotes failed: %v", err)
	}
	if updated.Notes != "deliver by friday" {
		t.Fatalf("unexpected notes: %q", updated.Notes)
	}

	if _, err := store.UpdateNotes("missing", "x"); !errors.Is(err, projects.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDatabaseSurvivesReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	store := testsupport.MustOpenStore(t, cfg)
	project := testsupport.RegisterProject(t, store, projects.Draft{
		ClientName:  "Acme",
		ProjectName: "One",
		ProjectType: projects.TypeGD,
		Path:        filepath.Join(cfg.Drives.ActiveBase, "Visual", "one"),
	})
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := projects.Open(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	fetched, err := reopened.GetByID(project.ID)
	if err != nil {
		t.Fatalf("GetByID after reopen failed: %v", err)
	}
	if fetched.ProjectName != "One" {
		t.Fatalf("unexpected project after reopen: %#v", fetched)
	}
}

func TestCorruptDatabaseIsBackedUp(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	dbPath := cfg.Storage.DatabasePath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(dbPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt db: %v", err)
	}

	store, err := projects.Open(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Open on corrupt database failed: %v", err)
	}
	defer store.Close()

	if got := store.List(projects.StatusAll); len(got) != 0 {
		t.Fatalf("expected empty database, got %d projects", len(got))
	}

	backup, err := os.ReadFile(dbPath + ".bak")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if string(backup) != "{not json" {
		t.Fatalf("backup content mismatch: %q", backup)
	}
}

func TestOpenBlocksOnHeldLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustOpenStore(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if _, err := projects.Open(ctx, cfg, logging.NewNop()); err == nil {
		t.Fatal("expected second open to fail while lock is held")
	}
}
