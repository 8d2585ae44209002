package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRenderTableAlignsNumericColumns(t *testing.T) {
	out := renderTable([]column{textColumn("Name"), numericColumn("Count")}, [][]string{
		{"a", "10"},
		{"bbbbb"},
	})
	requireContains(t, out, "│ NAME  │ COUNT │")
	requireContains(t, out, "│ a     │    10 │")
	requireContains(t, out, "│ bbbbb │       │")

	if got := renderTable(nil, [][]string{{"x"}}); got != "" {
		t.Fatalf("expected empty output without columns, got %q", got)
	}
}

func TestWriteJSONKeepsSelectorsVerbatim(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	if err := writeJSON(cmd, map[string]string{"input": "bms:soc&motor:rpm", "path": "<root>/bms"}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"input": "bms:soc&motor:rpm"`) || !strings.Contains(out, `"path": "<root>/bms"`) {
		t.Fatalf("expected unescaped values, got %s", out)
	}
}
