package plotrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"oeplot/internal/config"
	"oeplot/internal/entrylog"
	"oeplot/internal/logging"
	"oeplot/internal/plot"
	"oeplot/internal/selection"
)

// Options configures a Runner.
type Options struct {
	// OutputDir receives one sub-directory per run.
	OutputDir string
	Render    plot.RenderOptions
	CSV       entrylog.Options
	// Opener displays written figures. Nil leaves them on disk.
	Opener plot.Opener
	// Status receives the user-facing per-entry lines.
	Status io.Writer
	Logger *slog.Logger
	// RunID overrides the generated short run identifier.
	RunID string
	// Now overrides the clock used to name the run directory.
	Now func() time.Time
}

// OptionsFromConfig derives runner options from cfg. Status and Logger are
// left for the caller.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		OutputDir: cfg.Paths.OutputDir,
		Render: plot.RenderOptions{
			Format:      cfg.Render.Format,
			Width:       cfg.Render.Width,
			Height:      cfg.Render.Height,
			PanelHeight: cfg.Render.PanelHeight,
		},
		CSV: entrylog.Options{Delimiter: cfg.DelimiterRune()},
	}
	if cfg.Render.Open {
		opts.Opener = plot.CommandOpener{Command: cfg.Render.Viewer, Wait: cfg.Render.WaitViewer}
	}
	return opts
}

// Runner plots batches of entry logs.
type Runner struct {
	opts   Options
	status statusPrinter
	logger *slog.Logger
}

// New validates opts and constructs a Runner.
func New(opts Options) (*Runner, error) {
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, errors.New("plot runner requires an output directory")
	}
	if opts.Opener == nil {
		opts.Opener = plot.NopOpener{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{
		opts:   opts,
		status: newStatusPrinter(opts.Status),
		logger: logging.NewComponentLogger(opts.Logger, "plotrun"),
	}, nil
}

// batch is the state of one Plot or PlotGroups call.
type batch struct {
	r      *Runner
	out    *outputDir
	report *Report
	logger *slog.Logger
}

func (r *Runner) begin(ctx context.Context) (*batch, context.Context) {
	runID := r.opts.RunID
	if runID == "" {
		runID = strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	ctx = logging.WithRunID(ctx, runID)
	out := newOutputDir(r.opts.OutputDir, runID, r.opts.Now(), r.opts.Render)
	return &batch{
		r:      r,
		out:    out,
		report: &Report{RunID: runID, RunDir: out.RunDir(), Figures: []string{}},
		logger: logging.WithContext(ctx, r.logger),
	}, ctx
}

// Plot draws each selector under root.
//
// When separate is false, every two-column entry shares one "Data Plot"
// figure and every wider entry gets its own stacked figure; all figures are
// written and shown once the last entry is drawn. When separate is true each
// entry is drawn onto a fresh figure that is written and shown immediately.
func (r *Runner) Plot(ctx context.Context, root string, selectors []selection.Selector, separate bool) (*Report, error) {
	b, ctx := r.begin(ctx)
	b.logger.Debug("plot batch started",
		logging.String("root", root),
		logging.Int("entries", len(selectors)),
		logging.Bool("separate", separate),
	)

	if !separate {
		figs, err := b.drawTogether(ctx, root, selectors, plot.SharedPanelTitle)
		if err != nil {
			return b.report, err
		}
		return b.report, b.show(ctx, figs)
	}

	for _, sel := range selectors {
		if err := ctx.Err(); err != nil {
			return b.report, err
		}
		fig := plot.NewSharedFigure()
		wide, ok := b.draw(root, sel, fig.Axes())
		if !ok {
			continue
		}
		if wide != nil {
			fig = wide
		}
		if err := b.show(ctx, []namedFigure{{name: sel.Label(), fig: fig}}); err != nil {
			return b.report, err
		}
	}
	return b.report, nil
}

// PlotGroups draws each group under root in order. A group's two-column
// entries share one figure and its wider entries get stacked figures; the
// group's figures are written and shown before the next group is loaded.
// Selector colors are checked before anything is drawn.
func (r *Runner) PlotGroups(ctx context.Context, root string, groups []selection.Group) (*Report, error) {
	if err := CheckColors(groups); err != nil {
		return nil, err
	}
	b, ctx := r.begin(ctx)
	b.logger.Debug("group batch started", logging.String("root", root), logging.Int("groups", len(groups)))

	for i, group := range groups {
		figs, err := b.drawTogether(ctx, root, group, fmt.Sprintf("group %d", i+1))
		if err != nil {
			return b.report, err
		}
		if err := b.show(ctx, figs); err != nil {
			return b.report, err
		}
	}
	return b.report, nil
}

// CheckColors reports the first selector whose color is not recognised.
func CheckColors(groups []selection.Group) error {
	for gi, group := range groups {
		for _, sel := range group {
			if sel.Color == "" {
				continue
			}
			if _, err := plot.ParseColor(sel.Color); err != nil {
				return fmt.Errorf("group %d: entry %s: %w", gi+1, sel, err)
			}
		}
	}
	return nil
}

// drawTogether draws selectors onto a shared figure named sharedName plus one
// figure per wide table. The shared figure comes first when it holds data.
func (b *batch) drawTogether(ctx context.Context, root string, selectors []selection.Selector, sharedName string) ([]namedFigure, error) {
	shared := plot.NewSharedFigure()
	var wide []namedFigure
	for _, sel := range selectors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fig, ok := b.draw(root, sel, shared.Axes())
		if ok && fig != nil {
			wide = append(wide, namedFigure{name: sel.Label(), fig: fig})
		}
	}
	if shared.Empty() {
		return wide, nil
	}
	return append([]namedFigure{{name: sharedName, fig: shared}}, wide...), nil
}

// draw loads one entry and draws it. ok is false when the entry was skipped.
func (b *batch) draw(root string, sel selection.Selector, axes *plot.Panel) (fig *plot.Figure, ok bool) {
	path := entrylog.Path(root, sel.Node, sel.Entry)
	logger := b.logger.With(
		logging.String(logging.FieldNode, sel.Node),
		logging.String(logging.FieldEntry, sel.Entry),
		logging.String(logging.FieldPath, path),
	)

	table, err := entrylog.Load(path, b.r.opts.CSV)
	if err != nil {
		if errors.Is(err, entrylog.ErrNotFound) {
			b.r.status.notFound(path)
			b.report.skip(sel, path, ReasonNotFound, err)
			logger.Debug("entry log not found")
			return nil, false
		}
		b.reject(logger, sel, path, err)
		return nil, false
	}

	fig, err = plot.Draw(axes, table, sel.Label(), colorsOf(sel))
	if err != nil {
		b.reject(logger, sel, path, err)
		return nil, false
	}
	b.report.Plotted++
	logger.Debug("entry drawn",
		logging.Int("columns", table.NumColumns()),
		logging.Int("rows", table.NumRows()),
		logging.Bool("stacked", fig != nil),
	)
	return fig, true
}

func (b *batch) reject(logger *slog.Logger, sel selection.Selector, path string, err error) {
	b.r.status.readFailed(err)
	b.report.skip(sel, path, ReasonInvalid, err)
	logger.Warn("entry log skipped", logging.Error(err))
}

// show writes figs and hands each written file to the opener. A viewer that
// fails to start is logged and does not stop the batch.
func (b *batch) show(ctx context.Context, figs []namedFigure) error {
	paths, err := b.out.write(ctx, figs)
	for _, path := range paths {
		b.report.Figures = append(b.report.Figures, path)
		b.r.status.saved(path)
		b.logger.Info("figure written", logging.String(logging.FieldPath, path))
	}
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := b.r.opts.Opener.Open(ctx, path); err != nil {
			b.logger.Warn("figure viewer failed", logging.String(logging.FieldPath, path), logging.Error(err))
		}
	}
	return nil
}

func colorsOf(sel selection.Selector) []string {
	if sel.Color == "" {
		return nil
	}
	return []string{sel.Color}
}
