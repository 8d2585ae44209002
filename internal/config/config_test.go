package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"oeplot/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OEPLOT_OUTPUT_DIR", "")
	t.Setenv("OEPLOT_VIEWER", "")
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateEnv(t)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(home, ".config", "oeplot", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantOutput := filepath.Join(home, ".cache", "oeplot", "figures")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	if cfg.CSV.Delimiter != ";" {
		t.Fatalf("expected semicolon delimiter, got %q", cfg.CSV.Delimiter)
	}
	if cfg.DelimiterRune() != ';' {
		t.Fatalf("unexpected delimiter rune %q", cfg.DelimiterRune())
	}
	if cfg.Render.Format != "png" {
		t.Fatalf("unexpected format %q", cfg.Render.Format)
	}
	if cfg.Render.Open {
		t.Fatal("expected viewer disabled by default")
	}
	if cfg.Render.Viewer == "" {
		t.Fatal("expected a default viewer command")
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.OutputDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected output directory to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolateEnv(t)
	configPath := filepath.Join(t.TempDir(), "oeplot.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		CSV struct {
			Delimiter string `toml:"delimiter"`
		} `toml:"csv"`
		Render struct {
			Format      string `toml:"format"`
			PanelHeight int    `toml:"panel_height"`
			Viewer      string `toml:"viewer"`
		} `toml:"render"`
		Logging struct {
			Level string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.OutputDir = "~/plots"
	custom.CSV.Delimiter = ","
	custom.Render.Format = " SVG "
	custom.Render.PanelHeight = 320
	custom.Render.Viewer = "feh"
	custom.Logging.Level = "DEBUG"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	home, _ := os.UserHomeDir()
	if cfg.Paths.OutputDir != filepath.Join(home, "plots") {
		t.Fatalf("unexpected output dir %q", cfg.Paths.OutputDir)
	}
	if cfg.DelimiterRune() != ',' {
		t.Fatalf("expected comma delimiter, got %q", cfg.DelimiterRune())
	}
	if cfg.Render.Format != "svg" {
		t.Fatalf("expected normalized svg format, got %q", cfg.Render.Format)
	}
	if cfg.Render.PanelHeight != 320 {
		t.Fatalf("expected panel height 320, got %d", cfg.Render.PanelHeight)
	}
	if cfg.Render.Width != config.Default().Render.Width {
		t.Fatalf("expected default width, got %d", cfg.Render.Width)
	}
	if cfg.Render.Viewer != "feh" {
		t.Fatalf("unexpected viewer %q", cfg.Render.Viewer)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased level, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolateEnv(t)
	configPath := filepath.Join(t.TempDir(), "oeplot.toml")
	if err := os.WriteFile(configPath, []byte("[render]\ncolour = \"red\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "oeplot.toml")
	content := "[paths]\noutput_dir = \"/from/file\"\n[render]\nviewer = \"from-file\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	envOut := filepath.Join(dir, "env-out")
	t.Setenv("OEPLOT_OUTPUT_DIR", envOut)
	t.Setenv("OEPLOT_VIEWER", "env-viewer")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.OutputDir != envOut {
		t.Errorf("expected output dir from env, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Render.Viewer != "env-viewer" {
		t.Errorf("expected viewer from env, got %q", cfg.Render.Viewer)
	}
}

func TestCreateSample(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "delimiter = \";\"") {
		t.Fatalf("sample config missing delimiter: %s", contents)
	}

	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestLoadKeepsWhitespaceDelimiters(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	spaced := filepath.Join(dir, "spaced.toml")
	if err := os.WriteFile(spaced, []byte("[csv]\ndelimiter = \" \"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(spaced); err == nil || !strings.Contains(err.Error(), "whitespace") {
		t.Fatalf("expected a space delimiter to be rejected, got %v", err)
	}

	tabbed := filepath.Join(dir, "tabbed.toml")
	if err := os.WriteFile(tabbed, []byte("[csv]\ndelimiter = \"\\t\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(tabbed)
	if err != nil {
		t.Fatalf("tab delimiter should load: %v", err)
	}
	if cfg.DelimiterRune() != '\t' {
		t.Fatalf("expected tab delimiter, got %q", cfg.DelimiterRune())
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"multi-char delimiter", func(c *config.Config) { c.CSV.Delimiter = ";;" }},
		{"quote delimiter", func(c *config.Config) { c.CSV.Delimiter = "\"" }},
		{"space delimiter", func(c *config.Config) { c.CSV.Delimiter = " " }},
		{"newline delimiter", func(c *config.Config) { c.CSV.Delimiter = "\n" }},
		{"unknown format", func(c *config.Config) { c.Render.Format = "gif" }},
		{"zero width", func(c *config.Config) { c.Render.Width = 0 }},
		{"negative panel height", func(c *config.Config) { c.Render.PanelHeight = -5 }},
		{"open without viewer", func(c *config.Config) { c.Render.Open = true; c.Render.Viewer = "" }},
		{"bad level", func(c *config.Config) { c.Logging.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
