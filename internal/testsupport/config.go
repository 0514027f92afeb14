package testsupport

import (
	"path/filepath"
	"testing"

	"lyricsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Storage defaults to the in-memory backend.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Storage.Backend = config.BackendMemory
	cfgVal.Storage.FilePath = filepath.Join(base, "data", "state.json")
	cfgVal.Storage.SQLitePath = filepath.Join(base, "data", "lyricsync.db")
	cfgVal.Export.OutputDir = filepath.Join(base, "exports")

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

// WithStorageBackend selects the storage backend on the test config.
func WithStorageBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.Backend = backend
	}
}

// WithSeekThrottleMs overrides the seek throttle window.
func WithSeekThrottleMs(ms int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync.SeekThrottleMs = ms
	}
}

// WithTickIntervalMs overrides the simulated playback tick.
func WithTickIntervalMs(ms int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync.TickIntervalMs = ms
	}
}

// WithExportDir points exports at a directory under the test's temp root.
func WithExportDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.OutputDir = filepath.Join(b.baseDir, name)
	}
}
