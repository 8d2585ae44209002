package entrylog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the file suffix of object entry logs.
const Extension = ".csv"

// DefaultDelimiter separates fields in object entry logs.
const DefaultDelimiter = ';'

// ErrNotFound reports that an object entry log does not exist.
var ErrNotFound = errors.New("entry log not found")

// ParseError describes a log file that exists but could not be read.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("read ")
	if e.Path != "" {
		b.WriteString(e.Path)
	} else {
		b.WriteString("entry log")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Options controls how log files are parsed and written.
type Options struct {
	Delimiter rune
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return DefaultDelimiter
	}
	return o.Delimiter
}

// Path resolves the log file of entry under node below root.
func Path(root, node, entry string) string {
	return filepath.Join(root, node, entry+Extension)
}

// Load reads the log file at path. A missing file yields an error matching
// ErrNotFound; anything else is a *ParseError.
func Load(path string, opts Options) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	table, err := Read(file, opts)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
			return nil, perr
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	return table, nil
}

// Read parses a log table from r.
func Read(r io.Reader, opts Options) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = opts.delimiter()
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: errors.New("missing header row")}
		}
		return nil, wrapCSVError(err)
	}

	table := &Table{Columns: make([]Column, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("column_%d", i)
		}
		table.Columns[i] = Column{Name: name}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		for i, raw := range record {
			table.Columns[i].Values = append(table.Columns[i].Values, ParseValue(raw))
		}
	}
	return table, nil
}

func wrapCSVError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Err: perr.Err}
	}
	return &ParseError{Err: err}
}
