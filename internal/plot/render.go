package plot

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Output formats understood by Render.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// TitleBandHeight is the height in pixels reserved above the panels for the
// figure title.
const TitleBandHeight = 28

// RenderOptions controls output geometry.
type RenderOptions struct {
	Format string
	Width  int
	// Height applies to single-panel figures.
	Height int
	// PanelHeight applies to each panel of a stacked figure.
	PanelHeight int
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Format == "" {
		o.Format = FormatPNG
	}
	if o.Width <= 0 {
		o.Width = 1000
	}
	if o.Height <= 0 {
		o.Height = 500
	}
	if o.PanelHeight <= 0 {
		o.PanelHeight = o.Height
	}
	return o
}

// Layout describes the pixel geometry of a rendered figure.
type Layout struct {
	Width       int
	TitleHeight int
	PanelHeight int
	Panels      int
}

// TotalHeight returns the full image height.
func (l Layout) TotalHeight() int {
	return l.TitleHeight + l.Panels*l.PanelHeight
}

// LayoutFor computes the geometry Render will use for fig.
func LayoutFor(fig *Figure, opts RenderOptions) Layout {
	opts = opts.withDefaults()
	l := Layout{Width: opts.Width, Panels: len(fig.Panels), PanelHeight: opts.Height}
	if l.Panels > 1 {
		l.PanelHeight = opts.PanelHeight
	}
	if strings.TrimSpace(fig.Title) != "" {
		l.TitleHeight = TitleBandHeight
	}
	return l
}

// Extension returns the file extension for the configured format.
func (o RenderOptions) Extension() string {
	return "." + o.withDefaults().Format
}

// Render writes fig to w in the requested format.
func Render(fig *Figure, w io.Writer, opts RenderOptions) error {
	if fig == nil || len(fig.Panels) == 0 {
		return fmt.Errorf("render figure: no panels")
	}
	opts = opts.withDefaults()
	layout := LayoutFor(fig, opts)
	switch opts.Format {
	case FormatPNG:
		return renderPNG(fig, w, layout)
	case FormatSVG:
		return renderSVG(fig, w, layout)
	default:
		return fmt.Errorf("render figure: unsupported format %q", opts.Format)
	}
}

func renderPNG(fig *Figure, w io.Writer, layout Layout) error {
	canvas := image.NewRGBA(image.Rect(0, 0, layout.Width, layout.TotalHeight()))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	if layout.TitleHeight > 0 {
		drawCenteredText(canvas, image.Rect(0, 0, layout.Width, layout.TitleHeight), fig.Title)
	}

	y := layout.TitleHeight
	for i, panel := range fig.Panels {
		rect := image.Rect(0, y, layout.Width, y+layout.PanelHeight)
		if !panel.hasPoints() {
			drawCenteredText(canvas, rect, panel.Title+" (no data)")
			y += layout.PanelHeight
			continue
		}
		var buf bytes.Buffer
		if err := renderPanel(panel, chart.PNG, &buf, layout.Width, layout.PanelHeight); err != nil {
			return fmt.Errorf("render panel %d (%s): %w", i+1, panel.Title, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			return fmt.Errorf("decode panel %d (%s): %w", i+1, panel.Title, err)
		}
		draw.Draw(canvas, rect, img, img.Bounds().Min, draw.Src)
		y += layout.PanelHeight
	}

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawCenteredText(dst draw.Image, rect image.Rectangle, text string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	x := rect.Min.X + (rect.Dx()-width)/2
	if x < rect.Min.X+4 {
		x = rect.Min.X + 4
	}
	baseline := rect.Min.Y + (rect.Dy()+face.Metrics().Ascent.Ceil())/2
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(baseline)},
	}
	d.DrawString(text)
}

func renderSVG(fig *Figure, w io.Writer, layout Layout) error {
	var out bytes.Buffer
	total := layout.TotalHeight()
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		layout.Width, total, layout.Width, total)
	fmt.Fprintf(&out, `<rect x="0" y="0" width="%d" height="%d" fill="white"/>`+"\n", layout.Width, total)

	if layout.TitleHeight > 0 {
		writeSVGText(&out, layout.Width/2, layout.TitleHeight*2/3, 16, fig.Title)
	}

	y := layout.TitleHeight
	for i, panel := range fig.Panels {
		if !panel.hasPoints() {
			writeSVGText(&out, layout.Width/2, y+layout.PanelHeight/2, 14, panel.Title+" (no data)")
			y += layout.PanelHeight
			continue
		}
		var buf bytes.Buffer
		if err := renderPanel(panel, chart.SVG, &buf, layout.Width, layout.PanelHeight); err != nil {
			return fmt.Errorf("render panel %d (%s): %w", i+1, panel.Title, err)
		}
		nested, err := nestSVG(buf.String(), y)
		if err != nil {
			return fmt.Errorf("compose panel %d (%s): %w", i+1, panel.Title, err)
		}
		out.WriteString(nested)
		out.WriteByte('\n')
		y += layout.PanelHeight
	}
	out.WriteString("</svg>\n")

	_, err := w.Write(out.Bytes())
	return err
}

func writeSVGText(out *bytes.Buffer, x, y, size int, text string) {
	fmt.Fprintf(out, `<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="%d">`, x, y, size)
	_ = xml.EscapeText(out, []byte(text))
	out.WriteString("</text>\n")
}

// nestSVG strips any prolog from a standalone SVG document and positions its
// root element at vertical offset y.
func nestSVG(doc string, y int) (string, error) {
	start := strings.Index(doc, "<svg")
	if start < 0 {
		return "", fmt.Errorf("chart output is not svg")
	}
	doc = doc[start:]
	return fmt.Sprintf(`<svg x="0" y="%d"`, y) + doc[len("<svg"):], nil
}

func renderPanel(panel *Panel, provider chart.RendererProvider, w io.Writer, width, height int) error {
	series := make([]chart.Series, 0, len(panel.Series))
	var xs, ys []float64
	for i, s := range panel.Series {
		if len(s.X) == 0 {
			continue
		}
		col := s.Color
		if !s.Colored {
			col = DefaultColor(i)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 1.5,
				DotColor:    col,
				DotWidth:    2.5,
			},
		})
		xs = append(xs, s.X...)
		ys = append(ys, s.Y...)
	}

	grid := chart.Style{}
	if panel.Grid {
		grid = chart.Style{StrokeColor: drawing.Color{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}, StrokeWidth: 1}
	}

	ch := chart.Chart{
		Title:      panel.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           panel.XLabel,
			Range:          paddedRange(xs),
			ValueFormatter: formatTick,
			Ticks:          categoryTicks(panel.Series, func(s Series) []string { return s.XLabels }),
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           panel.YLabel,
			Range:          paddedRange(ys),
			ValueFormatter: formatTick,
			Ticks:          categoryTicks(panel.Series, func(s Series) []string { return s.YLabels }),
			GridMajorStyle: grid,
		},
		Series: series,
	}
	if panel.Legend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch.Render(provider, w)
}

func (p *Panel) hasPoints() bool {
	for _, s := range p.Series {
		if len(s.X) > 0 {
			return true
		}
	}
	return false
}

// paddedRange widens a zero-width range so single samples and constant
// columns still render.
func paddedRange(values []float64) *chart.ContinuousRange {
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if math.IsInf(minV, 0) || math.IsInf(maxV, 0) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	if maxV-minV == 0 {
		pad := math.Abs(minV) * 0.05
		if pad == 0 {
			pad = 1
		}
		return &chart.ContinuousRange{Min: minV - pad, Max: maxV + pad}
	}
	return &chart.ContinuousRange{Min: minV, Max: maxV}
}

// categoryTicks returns tick labels for text columns. They are only used
// when every plotted series of the panel shares the same categories.
func categoryTicks(series []Series, labelsOf func(Series) []string) []chart.Tick {
	var labels []string
	for _, s := range series {
		if len(s.X) == 0 {
			continue
		}
		current := labelsOf(s)
		if len(current) == 0 {
			return nil
		}
		if labels == nil {
			labels = current
			continue
		}
		if strings.Join(labels, "\x00") != strings.Join(current, "\x00") {
			return nil
		}
	}
	ticks := make([]chart.Tick, 0, len(labels))
	for i, label := range labels {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: label})
	}
	return ticks
}

func formatTick(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	if math.Abs(f) >= 1000 || f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', 3, 64)
}
