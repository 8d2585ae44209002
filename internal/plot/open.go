package plot

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Opener displays a rendered figure.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// NopOpener leaves figures on disk without displaying them.
type NopOpener struct{}

// Open implements Opener.
func (NopOpener) Open(context.Context, string) error { return nil }

// CommandOpener launches an external viewer with the figure path appended to
// its arguments.
type CommandOpener struct {
	// Command is the viewer program, optionally followed by arguments.
	Command string
	// Wait blocks until the viewer exits.
	Wait bool
}

// Open implements Opener.
func (o CommandOpener) Open(ctx context.Context, path string) error {
	fields := strings.Fields(o.Command)
	if len(fields) == 0 {
		return errors.New("open figure: no viewer command configured")
	}
	binary, err := exec.LookPath(fields[0])
	if err != nil {
		return fmt.Errorf("open figure: viewer %q not found: %w", fields[0], err)
	}
	args := append(fields[1:len(fields):len(fields)], path)

	if o.Wait {
		cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("open figure with %s: %w", fields[0], err)
		}
		return nil
	}

	// Detached viewers must outlive this process, so they are not bound to ctx.
	cmd := exec.Command(binary, args...) //nolint:gosec
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open figure with %s: %w", fields[0], err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
