package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"oeplot/internal/entrylog"
	"oeplot/internal/testsupport"
)

type cliTestEnv struct {
	root       string
	outputDir  string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("OEPLOT_OUTPUT_DIR", "")
	t.Setenv("OEPLOT_VIEWER", "")

	env := &cliTestEnv{
		root:       filepath.Join(base, "logs"),
		outputDir:  filepath.Join(base, "figures"),
		configPath: filepath.Join(base, "oeplot.toml"),
	}
	content := fmt.Sprintf("[paths]\noutput_dir = %q\n\n[render]\nwidth = 320\nheight = 200\npanel_height = 160\n\n[logging]\nlevel = \"error\"\n", env.outputDir)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	testsupport.WriteEntryLog(t, env.root, "bms", "soc", []string{"timestamp", "value"}, 4)
	testsupport.WriteEntryLog(t, env.root, "bms", "cells", []string{"timestamp", "value.c1", "value.c2"}, 4)
	testsupport.WriteEntryLog(t, env.root, "motor", "rpm", []string{"timestamp", "value"}, 4)
	return env
}

func runCLI(t *testing.T, newCmd func() *cobra.Command, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func figureFiles(t *testing.T, outputDir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(outputDir, "*", "*"))
	if err != nil {
		t.Fatalf("glob figures: %v", err)
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = filepath.Base(m)
	}
	return names
}

func TestPlotCommandSkipsMissingEntries(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, NewPlotCommand, []string{env.root, "bms", "soc", "ghost", "entry", "bms", "cells"}, env.configPath)
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	requireContains(t, out, "Error: File not found "+entrylog.Path(env.root, "ghost", "entry"))
	requireContains(t, out, "Saved figure ")

	got := strings.Join(figureFiles(t, env.outputDir), ",")
	if got != "01-data-plot.png,02-bms-cells.png" {
		t.Fatalf("unexpected figure files %s", got)
	}
}

func TestPlotCommandMultipleFlag(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, NewPlotCommand, []string{env.root, "bms", "soc", "motor", "rpm", "-m"}, env.configPath); err != nil {
		t.Fatalf("plot: %v", err)
	}
	got := strings.Join(figureFiles(t, env.outputDir), ",")
	if got != "01-bms-soc.png,02-motor-rpm.png" {
		t.Fatalf("unexpected figure files %s", got)
	}
}

func TestPlotCommandFlagOverrides(t *testing.T) {
	env := setupCLITestEnv(t)
	override := filepath.Join(t.TempDir(), "svg-out")

	args := []string{"--output", override, "--format", "SVG", "--log-level", "debug", env.root, "motor", "rpm"}
	if _, _, err := runCLI(t, NewPlotCommand, args, env.configPath); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if got := strings.Join(figureFiles(t, override), ","); got != "01-data-plot.svg" {
		t.Fatalf("unexpected figure files %s", got)
	}
	if files := figureFiles(t, env.outputDir); len(files) != 0 {
		t.Fatalf("configured output dir should be unused, got %v", files)
	}
}

func TestPlotCommandUsageErrors(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, NewPlotCommand, []string{env.root, "bms"}, env.configPath); err == nil {
		t.Fatal("expected error for unpaired node")
	}
	if _, _, err := runCLI(t, NewPlotCommand, []string{"--format", "gif", env.root, "bms", "soc"}, env.configPath); err == nil {
		t.Fatal("expected error for unsupported format")
	}

	out, _, err := runCLI(t, NewPlotCommand, nil, env.configPath)
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	requireContains(t, out, "Usage:")
}

func TestPlotCommandRootNamedLikeSubcommand(t *testing.T) {
	env := setupCLITestEnv(t)
	base := filepath.Dir(env.root)
	testsupport.WriteEntryLog(t, filepath.Join(base, "list"), "bms", "soc", []string{"timestamp", "value"}, 3)
	t.Chdir(base)

	out, _, err := runCLI(t, NewPlotCommand, []string{"--help"}, env.configPath)
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	requireContains(t, out, "./list")

	out, _, err = runCLI(t, NewPlotCommand, []string{"./list", "bms", "soc"}, env.configPath)
	if err != nil {
		t.Fatalf("plot ./list: %v", err)
	}
	requireContains(t, out, "Saved figure ")
	if got := strings.Join(figureFiles(t, env.outputDir), ","); got != "01-data-plot.png" {
		t.Fatalf("unexpected figure files %s", got)
	}
}

func TestListCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, entrylog.Path(env.root, "motor", "broken"), "t;x\n1;2;3\n")

	out, _, err := runCLI(t, NewPlotCommand, []string{"list", env.root}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "NODE")
	requireContains(t, out, "STATUS")
	requireContains(t, out, "cells")
	requireContains(t, out, "rpm")

	out, _, err = runCLI(t, NewPlotCommand, []string{"list", env.root, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var listed []listedEntry
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	if len(listed) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(listed))
	}
	first := listed[0]
	if first.Node != "bms" || first.Entry != "cells" || first.Columns != 3 || first.Rows != 4 {
		t.Fatalf("unexpected first entry %+v", first)
	}
	if listed[2].Entry != "broken" || listed[2].Error == "" {
		t.Fatalf("expected broken entry to carry an error, got %+v", listed[2])
	}
}

func TestInspectCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, NewPlotCommand, []string{"inspect", env.root, "bms", "cells"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "== bms cells ==")
	requireContains(t, out, "Rows: 4")
	requireContains(t, out, "value.c2")
	requireContains(t, out, "numeric")

	out, _, err = runCLI(t, NewPlotCommand, []string{"inspect", env.root, "bms", "soc", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect --json: %v", err)
	}
	var result inspection
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode inspect output: %v", err)
	}
	if result.Rows != 4 || len(result.Columns) != 2 || result.Columns[1].Max == nil || *result.Columns[1].Max != 13 {
		t.Fatalf("unexpected inspection %+v", result)
	}

	_, _, err = runCLI(t, NewPlotCommand, []string{"inspect", env.root, "ghost", "entry"}, env.configPath)
	if !errors.Is(err, entrylog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, NewPlotCommand, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.outputDir)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, NewPlotCommand, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, NewPlotCommand, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCLI(t, NewPlotCommand, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigInitSkipsBrokenConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[render]\nformat = \"gif\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	target := filepath.Join(t.TempDir(), "fresh.toml")
	if _, _, err := runCLI(t, NewPlotCommand, []string{"config", "init", "--path", target}, env.configPath); err != nil {
		t.Fatalf("config init should not load the broken config: %v", err)
	}
	if _, _, err := runCLI(t, NewPlotCommand, []string{"config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected validate to reject the broken config")
	}
}

func TestGroupsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, NewGroupsCommand, []string{env.root, "bms:soc:red&motor:rpm:blue|bms:cells|ghost:entry:green"}, env.configPath)
	if err != nil {
		t.Fatalf("groups: %v", err)
	}
	requireContains(t, out, "Error: File not found "+entrylog.Path(env.root, "ghost", "entry"))

	got := strings.Join(figureFiles(t, env.outputDir), ",")
	if got != "01-group-1.png,02-bms-cells.png" {
		t.Fatalf("unexpected figure files %s", got)
	}
}

func TestGroupsCommandRejectsBadInput(t *testing.T) {
	env := setupCLITestEnv(t)

	tests := []struct {
		name  string
		input string
	}{
		{"empty group", "bms:soc||motor:rpm"},
		{"missing entry", "bms"},
		{"too many fields", "bms:soc:red:extra"},
		{"unknown color", "bms:soc:ultraviolet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, NewGroupsCommand, []string{env.root, tt.input}, env.configPath); err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
		})
	}
	if files := figureFiles(t, env.outputDir); len(files) != 0 {
		t.Fatalf("no figures expected, got %v", files)
	}
	if _, _, err := runCLI(t, NewGroupsCommand, []string{env.root}, env.configPath); err == nil {
		t.Fatal("expected error for missing grouped entries")
	}
}

func TestRenderStatusLine(t *testing.T) {
	plain := renderStatusLine("Config", statusOK, "Configuration valid", false)
	if plain != "  Config:        [OK] Configuration valid" {
		t.Fatalf("unexpected status line %q", plain)
	}
	colored := renderStatusLine("Config", statusWarn, "", true)
	if !strings.HasPrefix(colored, ansiYellow) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected colored status line, got %q", colored)
	}
}
