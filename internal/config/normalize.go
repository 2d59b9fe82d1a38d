package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeDrives()
	c.normalizeCategories()
	c.normalizeSoftware()
	if c.Watch.DebounceSeconds <= 0 {
		c.Watch.DebounceSeconds = defaultWatchDebounce
	}
	return nil
}

func (c *Config) normalizeStorage() error {
	var err error
	if strings.TrimSpace(c.Storage.DatabasePath) == "" {
		c.Storage.DatabasePath = defaultDatabasePath
	}
	if c.Storage.DatabasePath, err = expandPath(c.Storage.DatabasePath); err != nil {
		return fmt.Errorf("storage.database_path: %w", err)
	}
	if strings.TrimSpace(c.Storage.LogDir) == "" {
		c.Storage.LogDir = defaultLogDir
	}
	if c.Storage.LogDir, err = expandPath(c.Storage.LogDir); err != nil {
		return fmt.Errorf("storage.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Storage.TemplateDir) != "" {
		if c.Storage.TemplateDir, err = expandPath(c.Storage.TemplateDir); err != nil {
			return fmt.Errorf("storage.template_dir: %w", err)
		}
	}
	c.Storage.LogLevel = strings.ToLower(strings.TrimSpace(c.Storage.LogLevel))
	if c.Storage.LogLevel == "" {
		c.Storage.LogLevel = defaultLogLevel
	}
	c.Storage.LogFormat = strings.ToLower(strings.TrimSpace(c.Storage.LogFormat))
	if c.Storage.LogFormat == "" {
		c.Storage.LogFormat = defaultLogFormat
	}
	if c.Storage.LogRetentionDays < 0 {
		c.Storage.LogRetentionDays = 0
	}
	return nil
}

func (c *Config) normalizeDrives() {
	c.Drives.Work = normalizeDriveLetter(c.Drives.Work)
	if c.Drives.Work == "" {
		c.Drives.Work = defaultWorkDrive
	}
	c.Drives.ActiveBase = normalizeWindowsPath(c.Drives.ActiveBase)
	if c.Drives.ActiveBase == "" {
		c.Drives.ActiveBase = defaultActiveBase
	}
	c.Drives.ArchiveBase = normalizeWindowsPath(c.Drives.ArchiveBase)
	if c.Drives.ArchiveBase == "" {
		c.Drives.ArchiveBase = defaultArchiveBase
	}

	aliases := make([]string, 0, len(c.Drives.Aliases))
	seen := make(map[string]struct{}, len(c.Drives.Aliases))
	for _, alias := range c.Drives.Aliases {
		normalized := normalizeDriveLetter(alias)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		aliases = append(aliases, normalized)
	}
	if len(aliases) == 0 {
		aliases = []string{c.Drives.Work}
	}
	c.Drives.Aliases = aliases
}

func (c *Config) normalizeCategories() {
	if len(c.Categories) == 0 {
		c.Categories = Default().Categories
		return
	}
	for name, cat := range c.Categories {
		cat.WorkSubpath = strings.Trim(normalizeWindowsPath(cat.WorkSubpath), `\`)
		cat.ArchiveSubpath = strings.Trim(normalizeWindowsPath(cat.ArchiveSubpath), `\`)
		if cat.WorkSubpath == "" {
			cat.WorkSubpath = name
		}
		if cat.ArchiveSubpath == "" {
			cat.ArchiveSubpath = name
		}
		c.Categories[name] = cat
	}
}

func (c *Config) normalizeSoftware() {
	if c.Software == nil {
		c.Software = map[string]string{}
	}
	normalized := make(map[string]string, len(c.Software))
	for name, version := range c.Software {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		normalized[key] = strings.TrimSpace(version)
	}
	c.Software = normalized
}

func normalizeDriveLetter(value string) string {
	trimmed := strings.TrimSpace(value)
	trimmed = strings.TrimSuffix(trimmed, `\`)
	trimmed = strings.TrimSuffix(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	if !strings.HasSuffix(trimmed, ":") {
		trimmed += ":"
	}
	return strings.ToUpper(trimmed)
}

func normalizeWindowsPath(value string) string {
	trimmed := strings.TrimSpace(value)
	// Rooted paths (native installs, tests) keep forward slashes.
	if strings.HasPrefix(trimmed, "/") {
		return strings.TrimSuffix(trimmed, "/")
	}
	trimmed = strings.ReplaceAll(trimmed, "/", `\`)
	return strings.TrimSuffix(trimmed, `\`)
}
