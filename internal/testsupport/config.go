package testsupport

import (
	"path/filepath"
	"testing"

	"fastrak/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in unique temp directories per test.
// Drive bases point at real directories so archive and scaffold operations
// can move folders on disk.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Storage.DatabasePath = filepath.Join(base, "db", "projects.json")
	cfgVal.Storage.LogDir = filepath.Join(base, "logs")
	cfgVal.Drives.ActiveBase = filepath.Join(base, "active")
	cfgVal.Drives.ArchiveBase = filepath.Join(base, "archive")
	cfgVal.Watch.DebounceSeconds = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSoftware sets a software version entry on the test config.
func WithSoftware(name, version string) ConfigOption {
	return func(b *configBuilder) {
		if b.cfg.Software == nil {
			b.cfg.Software = map[string]string{}
		}
		b.cfg.Software[name] = version
	}
}

// WithWorkDrive overrides the mapped work drive letter on the test config.
func WithWorkDrive(drive string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Drives.Work = drive
	}
}
