// Package cli builds the cobra command trees of the oeplot and oeplot-groups
// binaries.
//
// Both trees share the persistent flags for configuration, output location,
// figure format, viewer launch, and log level, and resolve them into a single
// configuration through commandContext. Status lines for skipped entries go
// to stdout; logs go to stderr.
package cli
