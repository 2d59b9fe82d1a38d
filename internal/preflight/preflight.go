package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"fastrak/internal/config"
	"fastrak/internal/winpath"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	rules := cfg.Rules()

	var results []Result

	// The mapped work drive only exists when the layout uses drive letters.
	if winpath.IsWindowsPath(cfg.Drives.ActiveBase) {
		workRoot := rules.ToPlatform(cfg.Drives.Work + `\`)
		results = append(results, CheckDirectoryAccess("Work drive", workRoot))
	}

	results = append(results,
		CheckDirectoryAccess("Active base", rules.ToPlatform(cfg.Drives.ActiveBase)),
		CheckDirectoryAccess("Archive base", rules.ToPlatform(cfg.Drives.ArchiveBase)),
	)

	for _, category := range cfg.OrderedCategories() {
		if err := ctx.Err(); err != nil {
			return results
		}
		name := fmt.Sprintf("%s work path", category)
		results = append(results, CheckDirectoryAccess(name, rules.ToPlatform(cfg.ActivePath(category))))
	}

	results = append(results, CheckDatabaseLocation(cfg.Storage.DatabasePath))

	results = append(results,
		CheckFreeSpace("Active base free space", rules.ToPlatform(cfg.Drives.ActiveBase)),
		CheckFreeSpace("Archive base free space", rules.ToPlatform(cfg.Drives.ArchiveBase)),
	)
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// CheckDirectoryAccess verifies that the path exists, is a directory, and is
// listable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (not listable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckDatabaseLocation verifies the database parent directory is writable,
// creating it when missing.
func CheckDatabaseLocation(dbPath string) Result {
	const name = "Database location"
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (create: %v)", dir, err)}
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (not writable: %v)", dir, err)}
	}
	return Result{Name: name, Passed: true, Detail: dbPath}
}

// CheckFreeSpace reports the free space at path. It never fails the run:
// a missing path or an unsupported filesystem is reported as detail only.
func CheckFreeSpace(name, path string) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("unavailable (%v)", err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%.1f GiB free", float64(free)/(1<<30))}
}
