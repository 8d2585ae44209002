package plot

import (
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"oeplot/internal/entrylog"
)

// Axis labels and titles used for generated panels.
const (
	SharedPanelTitle  = "Data Plot"
	SharedXLabel      = "Timestamp (microseconds)"
	SharedYLabel      = "Value"
	StackedXLabel     = "Timestamp [us]"
	stackedYLabelTmpl = "%s Value"
)

var (
	// ErrTooFewColumns reports a table without any value column.
	ErrTooFewColumns = errors.New("table needs a timestamp column and at least one value column")
	// ErrNoData reports a table without data rows.
	ErrNoData = errors.New("table has no data rows")
	// ErrNoAxes reports a two-column table drawn without a target panel.
	ErrNoAxes = errors.New("no target panel for a single-series table")
)

// Series is one line of a panel.
type Series struct {
	Name string
	X    []float64
	Y    []float64
	// XLabels and YLabels hold category names for text columns, indexed by
	// the plotted value.
	XLabels []string
	YLabels []string
	Color   drawing.Color
	Colored bool
}

// Panel is one chart area.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Legend bool
	Grid   bool
	Series []Series
}

// Figure is one rendered image.
type Figure struct {
	Title  string
	Panels []*Panel
}

// NewSharedFigure returns a single-panel figure that several two-column
// entries can be drawn onto.
func NewSharedFigure() *Figure {
	return &Figure{Panels: []*Panel{{
		Title:  SharedPanelTitle,
		XLabel: SharedXLabel,
		YLabel: SharedYLabel,
		Legend: true,
		Grid:   true,
	}}}
}

// Axes returns the first panel of the figure, or nil for an empty figure.
func (f *Figure) Axes() *Panel {
	if f == nil || len(f.Panels) == 0 {
		return nil
	}
	return f.Panels[0]
}

// Empty reports whether no panel holds a series.
func (f *Figure) Empty() bool {
	if f == nil {
		return true
	}
	for _, p := range f.Panels {
		if len(p.Series) > 0 {
			return false
		}
	}
	return true
}

// SeriesCount returns the number of series across all panels.
func (f *Figure) SeriesCount() int {
	if f == nil {
		return 0
	}
	n := 0
	for _, p := range f.Panels {
		n += len(p.Series)
	}
	return n
}

// Draw plots table using label as its display name.
//
// A table with exactly two columns adds one series to axes and returns a nil
// figure. A wider table produces and returns a new figure with one stacked
// panel per value column; axes is left untouched. colors[i] applies to value
// column i, a single color applies to every column, and empty or unknown names
// keep the default color cycle.
func Draw(axes *Panel, table *entrylog.Table, label string, colors []string) (*Figure, error) {
	if table.NumColumns() < 2 {
		return nil, fmt.Errorf("%s: %w", label, ErrTooFewColumns)
	}
	if table.NumRows() == 0 {
		return nil, fmt.Errorf("%s: %w", label, ErrNoData)
	}

	x := newAxisValues(table.X())
	values := table.Series()

	if len(values) == 1 {
		if axes == nil {
			return nil, ErrNoAxes
		}
		s := buildSeries(label, x, newAxisValues(values[0]))
		applyColor(&s, colorFor(colors, 0))
		axes.Series = append(axes.Series, s)
		return nil, nil
	}

	fig := &Figure{Title: label, Panels: make([]*Panel, 0, len(values))}
	for i, col := range values {
		s := buildSeries(col.Name, x, newAxisValues(col))
		applyColor(&s, colorFor(colors, i))
		fig.Panels = append(fig.Panels, &Panel{
			Title:  col.Name,
			XLabel: StackedXLabel,
			YLabel: fmt.Sprintf(stackedYLabelTmpl, col.Name),
			Grid:   true,
			Series: []Series{s},
		})
	}
	return fig, nil
}

func colorFor(colors []string, i int) string {
	switch {
	case len(colors) == 1:
		return colors[0]
	case i < len(colors):
		return colors[i]
	default:
		return ""
	}
}

func applyColor(s *Series, name string) {
	if name == "" {
		return
	}
	if c, err := ParseColor(name); err == nil {
		s.Color = c
		s.Colored = true
	}
}

// axisValues is the plottable form of a column: finite numbers for numeric
// columns, first-seen category indices for text columns.
type axisValues struct {
	values  []float64
	present []bool
	labels  []string
}

func newAxisValues(col entrylog.Column) axisValues {
	out := axisValues{
		values:  make([]float64, len(col.Values)),
		present: make([]bool, len(col.Values)),
	}
	if col.Numeric() {
		for i, v := range col.Values {
			out.values[i] = v.Number
			out.present[i] = v.Numeric && !math.IsInf(v.Number, 0)
		}
		return out
	}
	index := make(map[string]int)
	for i, v := range col.Values {
		if v.Missing() {
			continue
		}
		idx, ok := index[v.Text]
		if !ok {
			idx = len(out.labels)
			index[v.Text] = idx
			out.labels = append(out.labels, v.Text)
		}
		out.values[i] = float64(idx)
		out.present[i] = true
	}
	return out
}

func buildSeries(name string, x, y axisValues) Series {
	s := Series{Name: name, XLabels: x.labels, YLabels: y.labels}
	for i := range x.values {
		if i >= len(y.values) || !x.present[i] || !y.present[i] {
			continue
		}
		s.X = append(s.X, x.values[i])
		s.Y = append(s.Y, y.values[i])
	}
	return s
}
