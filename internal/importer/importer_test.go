package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fastrak/internal/importer"
	"fastrak/internal/logging"
	"fastrak/internal/projects"
	"fastrak/internal/testsupport"
)

func mkdirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, path := range paths {
		if err := os.MkdirAll(path, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
	}
}

func TestRunImportsActiveAndArchiveFolders(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	visual := cfg.ActivePath("Visual")
	realtimeArchive := cfg.ArchivePath("RealTime")
	mkdirs(t,
		filepath.Join(visual, "2025-01-15_FX_Acme_Launch"),
		filepath.Join(visual, "2025-02-02_VJ_Nightclub"),
		filepath.Join(visual, importer.PersonalSubdir, "2025-03-01_FX_Doodle"),
		filepath.Join(visual, ".hidden"),
		filepath.Join(realtimeArchive, "2024-05-05_Godot_Acme_Game"),
	)
	// Plain files inside a root are ignored.
	if err := os.WriteFile(filepath.Join(visual, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	im := importer.New(cfg, store, logging.NewNop())
	stats, err := im.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Scanned != 4 || stats.Imported != 4 || stats.Skipped != 0 || stats.Errors != 0 {
		t.Fatalf("unexpected stats: %#v", stats)
	}

	launch, err := store.GetByPath(filepath.Join(visual, "2025-01-15_FX_Acme_Launch"))
	if err != nil {
		t.Fatalf("imported project missing: %v", err)
	}
	if launch.ClientName != "Acme" || launch.ProjectType != projects.TypeVFX || launch.DateCreated != "2025-01-15" {
		t.Fatalf("unexpected imported project: %#v", launch)
	}
	if launch.Status != projects.StatusActive {
		t.Fatalf("expected active status, got %s", launch.Status)
	}

	// A VJ name without a client segment is a personal project.
	vj, err := store.GetByPath(filepath.Join(visual, "2025-02-02_VJ_Nightclub"))
	if err != nil {
		t.Fatalf("vj project missing: %v", err)
	}
	if vj.ClientName != projects.PersonalClientName || !vj.IsPersonal() {
		t.Fatalf("expected personal vj project: %#v", vj)
	}

	game, err := store.GetByPath(filepath.Join(realtimeArchive, "2024-05-05_Godot_Acme_Game"))
	if err != nil {
		t.Fatalf("archived project missing: %v", err)
	}
	if game.Status != projects.StatusArchived || game.ProjectType != projects.TypeGodot {
		t.Fatalf("unexpected archived import: %#v", game)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	mkdirs(t, filepath.Join(cfg.ActivePath("Audio"), "2025-04-01_Acme_Jingle"))

	im := importer.New(cfg, store, logging.NewNop())
	if _, err := im.Run(context.Background()); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	stats, err := im.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if stats.Imported != 0 || stats.Skipped != 1 {
		t.Fatalf("expected rescan to skip, got %#v", stats)
	}
}

func TestRunTitleCasesLowercaseClients(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	mkdirs(t, filepath.Join(cfg.ActivePath("Visual"), "2025-05-01_acme_Poster"))

	im := importer.New(cfg, store, logging.NewNop())
	if _, err := im.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	project, err := store.GetByPath(filepath.Join(cfg.ActivePath("Visual"), "2025-05-01_acme_Poster"))
	if err != nil {
		t.Fatalf("imported project missing: %v", err)
	}
	if project.ClientName != "Acme" {
		t.Fatalf("expected title-cased client, got %q", project.ClientName)
	}
}

func TestParseRejectsUnstructuredNames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	mkdirs(t, filepath.Join(cfg.ActivePath("Visual"), "scratch"))

	im := importer.New(cfg, store, logging.NewNop())
	stats, err := im.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Imported != 0 {
		t.Fatalf("expected nothing imported, got %#v", stats)
	}
}
