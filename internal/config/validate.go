package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDrives(); err != nil {
		return err
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDrives() error {
	if !isDriveLetter(c.Drives.Work) {
		return fmt.Errorf("drives.work must be a drive letter like \"I:\", got %q", c.Drives.Work)
	}
	if c.Drives.ActiveBase == "" {
		return errors.New("drives.active_base must be set")
	}
	if c.Drives.ArchiveBase == "" {
		return errors.New("drives.archive_base must be set")
	}
	if strings.EqualFold(c.Drives.ActiveBase, c.Drives.ArchiveBase) {
		return errors.New("drives.active_base and drives.archive_base must differ")
	}
	for _, alias := range c.Drives.Aliases {
		if !isDriveLetter(alias) {
			return fmt.Errorf("drives.aliases entry %q must be a drive letter", alias)
		}
	}
	return nil
}

func (c *Config) validateCategories() error {
	if len(c.Categories) == 0 {
		return errors.New("at least one [categories.<name>] section is required")
	}
	for name := range c.Categories {
		if strings.TrimSpace(name) == "" {
			return errors.New("category names must not be empty")
		}
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("storage.log_level: unsupported value %q", c.Storage.LogLevel)
	}
	switch c.Storage.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("storage.log_format: unsupported value %q", c.Storage.LogFormat)
	}
	if c.Storage.DatabasePath == "" {
		return errors.New("storage.database_path must be set")
	}
	return nil
}

func isDriveLetter(value string) bool {
	if len(value) != 2 || value[1] != ':' {
		return false
	}
	ch := value[0]
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}
