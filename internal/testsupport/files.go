package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"oeplot/internal/entrylog"
)

// WriteFile writes raw content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteEntryLog writes a numeric entry log at <root>/<node>/<entry>.csv.
// names[0] is the timestamp header; every column gets rows values
// derived from the row index so fixtures stay deterministic.
func WriteEntryLog(t testing.TB, root, node, entry string, names []string, rows int) string {
	t.Helper()

	if len(names) < 1 {
		t.Fatalf("entry log %s/%s needs at least a timestamp column", node, entry)
	}
	columns := make([][]float64, len(names))
	for c := range columns {
		columns[c] = make([]float64, rows)
		for r := 0; r < rows; r++ {
			if c == 0 {
				columns[c][r] = float64(r * 1000)
				continue
			}
			columns[c][r] = float64(c*10 + r)
		}
	}
	table, err := entrylog.NewNumericTable(names, columns...)
	if err != nil {
		t.Fatalf("build entry log %s/%s: %v", node, entry, err)
	}

	var buf bytes.Buffer
	if err := entrylog.Write(&buf, table, entrylog.Options{}); err != nil {
		t.Fatalf("encode entry log %s/%s: %v", node, entry, err)
	}
	path := entrylog.Path(root, node, entry)
	WriteFile(t, path, buf.String())
	return path
}
