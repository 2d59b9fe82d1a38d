package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fastrak/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantDB := filepath.Join(tempHome, ".local", "share", "fastrak", "projects.json")
	if cfg.Storage.DatabasePath != wantDB {
		t.Fatalf("unexpected database path: got %q want %q", cfg.Storage.DatabasePath, wantDB)
	}
	if cfg.Drives.Work != "I:" {
		t.Fatalf("unexpected work drive: %q", cfg.Drives.Work)
	}
	if cfg.Drives.ActiveBase != `D:\_work\Active` {
		t.Fatalf("unexpected active base: %q", cfg.Drives.ActiveBase)
	}
	if got := cfg.WorkPath("Visual"); got != `I:\Visual` {
		t.Fatalf("unexpected work path: %q", got)
	}
	if got := cfg.ArchivePath("RealTime"); got != `D:\_work\Archive\RealTime` {
		t.Fatalf("unexpected archive path: %q", got)
	}
	if got := cfg.ActivePath("Audio"); got != `D:\_work\Active\Audio` {
		t.Fatalf("unexpected active path: %q", got)
	}
	if got := cfg.OrderedCategories(); len(got) != 6 || got[0] != "Visual" || got[5] != "Web" {
		t.Fatalf("unexpected category order: %v", got)
	}
	if cfg.SoftwareVersion("Houdini") != "20.5" {
		t.Fatalf("unexpected houdini default: %q", cfg.SoftwareVersion("Houdini"))
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Storage.LogDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestLoadFileOverridesAndNormalizesDrives(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[drives]
work = "j"
active_base = "E:/Projects/Active"
archive_base = "E:/Projects/Archive"
aliases = ["j", "J:", "k:"]

[categories.Visual]
work_subpath = "Design/Visual"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be detected")
	}
	if cfg.Drives.Work != "J:" {
		t.Fatalf("expected drive letter normalization, got %q", cfg.Drives.Work)
	}
	if cfg.Drives.ActiveBase != `E:\Projects\Active` {
		t.Fatalf("expected backslash normalization, got %q", cfg.Drives.ActiveBase)
	}
	if len(cfg.Drives.Aliases) != 2 {
		t.Fatalf("expected deduplicated aliases, got %v", cfg.Drives.Aliases)
	}
	if got := cfg.WorkPath("Visual"); got != `J:\Design\Visual` {
		t.Fatalf("unexpected custom work path: %q", got)
	}
	// Archive subpath falls back to the category name when unset.
	if got := cfg.ArchivePath("Visual"); got != `E:\Projects\Archive\Visual` {
		t.Fatalf("unexpected archive fallback: %q", got)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "bad drive",
			content: `
[drives]
work = "work-drive"
`,
			wantErr: "drives.work",
		},
		{
			name: "same bases",
			content: `
[drives]
active_base = 'D:\_work'
archive_base = 'D:\_work'
`,
			wantErr: "must differ",
		},
		{
			name: "bad log level",
			content: `
[storage]
log_level = "verbose"
`,
			wantErr: "storage.log_level",
		},
		{
			name: "bad log format",
			content: `
[storage]
log_format = "pretty"
`,
			wantErr: "storage.log_format",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config did not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Drives.Work != "I:" || len(cfg.Categories) != 6 {
		t.Fatalf("sample config diverged from defaults: %+v", cfg.Drives)
	}
}
