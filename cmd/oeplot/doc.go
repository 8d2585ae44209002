// Package main hosts the oeplot entrypoint.
//
// The command tree itself lives in internal/cli so oeplot-groups can share
// its flags and configuration handling.
package main
