package plotrun

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// statusPrinter writes the one-line user-facing messages of a batch.
type statusPrinter struct {
	out      io.Writer
	colorize bool
}

func newStatusPrinter(out io.Writer) statusPrinter {
	if out == nil {
		out = io.Discard
	}
	return statusPrinter{out: out, colorize: ShouldColorize(out)}
}

func (p statusPrinter) notFound(path string) {
	p.line(ansiRed, "Error: File not found "+path)
}

func (p statusPrinter) readFailed(err error) {
	p.line(ansiRed, "An error occurred while reading the file: "+err.Error())
}

func (p statusPrinter) saved(path string) {
	p.line(ansiGreen, "Saved figure "+path)
}

func (p statusPrinter) line(color, text string) {
	if p.colorize {
		text = color + text + ansiReset
	}
	fmt.Fprintln(p.out, text)
}

// ShouldColorize reports whether writer is a terminal that accepts ANSI colors.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
