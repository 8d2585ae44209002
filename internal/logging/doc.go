// Package logging assembles structured slog loggers and formatting helpers used
// by the oeplot commands.
//
// It owns the console/JSON handlers, centralizes level and output plumbing, and
// exposes context helpers so every line emitted during a run carries the run
// identifier. The package also provides a no-op logger for tests and wiring code
// that cannot fail.
package logging
