package testsupport

import (
	"path/filepath"
	"testing"

	"oeplot/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Figures are written as PNG with small dimensions and no viewer.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "figures")
	cfgVal.Render.Width = 320
	cfgVal.Render.Height = 200
	cfgVal.Render.PanelHeight = 160
	cfgVal.Render.Open = false
	cfgVal.Logging.Level = "error"

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

// WithFormat sets the rendered figure format.
func WithFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.Format = format
	}
}

// WithViewer enables opening figures with the given command.
func WithViewer(command string, wait bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.Open = true
		b.cfg.Render.Viewer = command
		b.cfg.Render.WaitViewer = wait
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
