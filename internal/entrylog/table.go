package entrylog

import (
	"errors"
	"strconv"
	"strings"
)

// Value is one cell of a log table.
type Value struct {
	Text    string
	Number  float64
	Numeric bool
}

// ParseValue trims raw and interprets it as a number when it looks numeric.
// Numbers beyond the float64 range become a signed infinity and stay numeric.
func ParseValue(raw string) Value {
	text := strings.TrimSpace(raw)
	v := Value{Text: text}
	if !looksNumeric(text) {
		return v
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return v
	}
	v.Number = f
	v.Numeric = true
	return v
}

// looksNumeric accepts an optional sign, digits, and at most one decimal point.
// Exponents, hex, and NaN stay text.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}

// Column is a named sequence of values.
type Column struct {
	Name   string
	Values []Value
}

// Missing reports whether the cell was empty.
func (v Value) Missing() bool {
	return v.Text == "" && !v.Numeric
}

// Numeric reports whether every non-empty value in the column parsed as a
// number.
func (c Column) Numeric() bool {
	for _, v := range c.Values {
		if !v.Numeric && !v.Missing() {
			return false
		}
	}
	return true
}

// Floats returns the numeric interpretation of every value. Text values are 0.
func (c Column) Floats() []float64 {
	out := make([]float64, len(c.Values))
	for i, v := range c.Values {
		out[i] = v.Number
	}
	return out
}

// Table is a parsed log file. Column 0 is the x-axis; all columns share the
// same length.
type Table struct {
	Columns []Column
}

// Headers returns the column names in file order.
func (t *Table) Headers() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// NumColumns returns the number of columns including the x-axis.
func (t *Table) NumColumns() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// X returns the x-axis column.
func (t *Table) X() Column {
	if t == nil || len(t.Columns) == 0 {
		return Column{}
	}
	return t.Columns[0]
}

// Series returns the value columns, i.e. every column except the x-axis.
func (t *Table) Series() []Column {
	if t == nil || len(t.Columns) < 2 {
		return nil
	}
	return t.Columns[1:]
}
