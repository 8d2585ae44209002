package entrylog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Write serializes table in the same layout Load expects: a header row followed
// by one row per sample. Numeric values are written with the shortest
// representation that round-trips.
func Write(w io.Writer, table *Table, opts Options) error {
	if table == nil || len(table.Columns) == 0 {
		return errors.New("write entry log: table has no columns")
	}
	rows := table.NumRows()
	for _, c := range table.Columns {
		if len(c.Values) != rows {
			return fmt.Errorf("write entry log: column %q has %d values, want %d", c.Name, len(c.Values), rows)
		}
	}

	writer := csv.NewWriter(w)
	writer.Comma = opts.delimiter()

	if err := writer.Write(table.Headers()); err != nil {
		return fmt.Errorf("write entry log header: %w", err)
	}
	record := make([]string, len(table.Columns))
	for row := 0; row < rows; row++ {
		for i, c := range table.Columns {
			record[i] = formatCell(c.Values[row])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write entry log row %d: %w", row+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(v Value) string {
	if v.Numeric {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// NewNumericTable builds a table from numeric columns, e.g. for fixtures. The
// first name/column pair is the x-axis.
func NewNumericTable(names []string, columns ...[]float64) (*Table, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("build table: %d names for %d columns", len(names), len(columns))
	}
	table := &Table{Columns: make([]Column, len(names))}
	for i, name := range names {
		if i > 0 && len(columns[i]) != len(columns[0]) {
			return nil, fmt.Errorf("build table: column %q has %d values, want %d", name, len(columns[i]), len(columns[0]))
		}
		values := make([]Value, len(columns[i]))
		for j, f := range columns[i] {
			values[j] = Value{Text: strconv.FormatFloat(f, 'f', -1, 64), Number: f, Numeric: true}
		}
		table.Columns[i] = Column{Name: name, Values: values}
	}
	return table, nil
}
