package plotrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"oeplot/internal/fileutil"
	"oeplot/internal/plot"
	"oeplot/internal/textutil"
)

const (
	lockFileName   = ".oeplot.lock"
	lockRetryDelay = 50 * time.Millisecond
	runDirLayout   = "20060102T150405Z"
)

// ErrOutputLocked reports that the output directory lock could not be taken
// before the context ended.
var ErrOutputLocked = errors.New("output directory is locked by another oeplot process")

// namedFigure is a figure together with the label its file is named after.
type namedFigure struct {
	name string
	fig  *plot.Figure
}

// outputDir hands out numbered figure paths inside one run directory. The
// run directory is created on the first write.
type outputDir struct {
	root    string
	runName string
	render  plot.RenderOptions

	dir string
	seq int
}

func newOutputDir(root, runID string, started time.Time, render plot.RenderOptions) *outputDir {
	return &outputDir{
		root:    root,
		runName: started.UTC().Format(runDirLayout) + "-" + runID,
		render:  render,
	}
}

// RunDir returns the run directory path whether or not it exists yet.
func (o *outputDir) RunDir() string {
	return filepath.Join(o.root, o.runName)
}

// write renders figs into the run directory while holding the output
// directory lock and returns the written paths in order.
func (o *outputDir) write(ctx context.Context, figs []namedFigure) ([]string, error) {
	if len(figs) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(o.root, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", o.root, err)
	}

	lock := flock.New(filepath.Join(o.root, lockFileName))
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("lock output directory: %w", err)
	}
	if !ok {
		return nil, ErrOutputLocked
	}
	defer func() { _ = lock.Unlock() }()

	if o.dir == "" {
		dir := o.RunDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create run directory %q: %w", dir, err)
		}
		o.dir = dir
	}

	paths := make([]string, 0, len(figs))
	for _, nf := range figs {
		o.seq++
		name := fmt.Sprintf("%02d-%s%s", o.seq, textutil.Slug(nf.name), o.render.Extension())
		path := filepath.Join(o.dir, name)
		err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
			return plot.Render(nf.fig, w, o.render)
		})
		if err != nil {
			return paths, fmt.Errorf("write figure %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
