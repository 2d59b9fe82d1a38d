package preflight_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fastrak/internal/preflight"
	"fastrak/internal/testsupport"
)

func TestRunAllPassesWithFullLayout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	for _, category := range cfg.OrderedCategories() {
		if err := os.MkdirAll(cfg.ActivePath(category), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	if err := os.MkdirAll(cfg.Drives.ArchiveBase, 0o755); err != nil {
		t.Fatalf("mkdir archive: %v", err)
	}

	results := preflight.RunAll(context.Background(), cfg)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if !preflight.AllPassed(results) {
		t.Fatalf("expected all checks to pass: %#v", results)
	}
}

func TestRunAllFlagsMissingRoots(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	// Neither active nor archive base exists yet.

	results := preflight.RunAll(context.Background(), cfg)
	if preflight.AllPassed(results) {
		t.Fatalf("expected failures for missing roots: %#v", results)
	}

	var sawActive bool
	for _, result := range results {
		if result.Name == "Active base" {
			sawActive = true
			if result.Passed {
				t.Fatal("active base check should fail")
			}
			if !strings.Contains(result.Detail, "does not exist") {
				t.Fatalf("unexpected detail: %q", result.Detail)
			}
		}
	}
	if !sawActive {
		t.Fatal("missing active base check")
	}
}

func TestCheckDirectoryAccessRejectsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	result := preflight.CheckDirectoryAccess("Plain file", file)
	if result.Passed {
		t.Fatal("expected failure for non-directory")
	}
}

func TestCheckFreeSpaceNeverFails(t *testing.T) {
	result := preflight.CheckFreeSpace("Free space", t.TempDir())
	if !result.Passed {
		t.Fatalf("free space check should pass: %#v", result)
	}
	if !strings.Contains(result.Detail, "GiB free") {
		t.Fatalf("unexpected detail: %q", result.Detail)
	}

	missing := preflight.CheckFreeSpace("Free space", filepath.Join(t.TempDir(), "missing"))
	if !missing.Passed {
		t.Fatal("missing path should still pass as informational")
	}
}
