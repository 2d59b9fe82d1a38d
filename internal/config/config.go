package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"fastrak/internal/winpath"
)

//go:embed sample_config.toml
var sampleConfig string

// Storage contains local filesystem locations and logging knobs.
type Storage struct {
	DatabasePath     string `toml:"database_path"`
	LogDir           string `toml:"log_dir"`
	LogLevel         string `toml:"log_level"`
	LogFormat        string `toml:"log_format"`
	LogRetentionDays int    `toml:"log_retention_days"`
	TemplateDir      string `toml:"template_dir"`
}

// Drives describes the Windows drive layout projects live under.
type Drives struct {
	Work        string   `toml:"work"`
	ActiveBase  string   `toml:"active_base"`
	ArchiveBase string   `toml:"archive_base"`
	Aliases     []string `toml:"aliases"`
}

// Category configures the work and archive subpaths for one project category.
type Category struct {
	WorkSubpath    string   `toml:"work_subpath"`
	ArchiveSubpath string   `toml:"archive_subpath"`
	Subcategories  []string `toml:"subcategories"`
}

// Watch contains settings for the directory watch mode.
type Watch struct {
	DebounceSeconds int `toml:"debounce_seconds"`
}

// Config encapsulates all configuration values for FastRak.
//
// Sections by subsystem:
//   - Storage: database file, log directory, scaffold template overrides
//   - Drives: work drive letter, active/archive bases, subst aliases
//   - Categories: per-category work/archive subpaths and subcategories
//   - Software: global software version defaults written into specs files
//   - Watch: auto-import watch mode timing
type Config struct {
	Storage    Storage             `toml:"storage"`
	Drives     Drives              `toml:"drives"`
	Categories map[string]Category `toml:"categories"`
	Software   map[string]string   `toml:"software"`
	Watch      Watch               `toml:"watch"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/fastrak/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has local path fields expanded and drive values normalized. The
// second return is the resolved path, the third whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("fastrak.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the local directories the CLI writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Storage.DatabasePath), c.Storage.LogDir}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Rules returns the path rewriting rules derived from the drive layout.
func (c *Config) Rules() winpath.Rules {
	return winpath.Rules{
		Aliases:    c.Drives.Aliases,
		ActiveBase: c.Drives.ActiveBase,
		WorkDrive:  c.Drives.Work,
	}
}

// WorkPath returns the mapped work-drive path for a category (e.g. I:\Visual).
func (c *Config) WorkPath(category string) string {
	return joinDrive(c.Drives.Work, c.subpath(category, false))
}

// ActivePath returns the real active-base path for a category
// (e.g. D:\_work\Active\Visual).
func (c *Config) ActivePath(category string) string {
	return joinDrive(c.Drives.ActiveBase, c.subpath(category, false))
}

// ArchivePath returns the archive path for a category
// (e.g. D:\_work\Archive\Visual).
func (c *Config) ArchivePath(category string) string {
	return joinDrive(c.Drives.ArchiveBase, c.subpath(category, true))
}

// OrderedCategories returns configured categories in display order. Categories
// outside the canonical order are appended alphabetically.
func (c *Config) OrderedCategories() []string {
	ordered := make([]string, 0, len(c.Categories))
	seen := make(map[string]struct{}, len(c.Categories))
	for _, name := range categoryOrder {
		if _, ok := c.Categories[name]; ok {
			ordered = append(ordered, name)
			seen[name] = struct{}{}
		}
	}
	extras := make([]string, 0)
	for name := range c.Categories {
		if _, ok := seen[name]; !ok {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return append(ordered, extras...)
}

// SoftwareVersion returns the configured default version for a software key.
func (c *Config) SoftwareVersion(name string) string {
	return c.Software[strings.ToLower(strings.TrimSpace(name))]
}

func (c *Config) subpath(category string, archive bool) string {
	cat, ok := c.Categories[category]
	if !ok {
		return category
	}
	sub := cat.WorkSubpath
	if archive {
		sub = cat.ArchiveSubpath
	}
	if strings.TrimSpace(sub) == "" {
		return category
	}
	return sub
}

func joinDrive(base, sub string) string {
	if strings.HasPrefix(base, "/") {
		base = strings.TrimSuffix(base, "/")
		sub = strings.Trim(strings.ReplaceAll(sub, `\`, "/"), "/")
		if sub == "" {
			return base
		}
		return base + "/" + sub
	}
	base = strings.TrimSuffix(strings.ReplaceAll(base, "/", `\`), `\`)
	sub = strings.Trim(strings.ReplaceAll(sub, "/", `\`), `\`)
	if sub == "" {
		return base
	}
	return base + `\` + sub
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
