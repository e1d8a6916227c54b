// Package render draws named (x, y) series into a grid of panels and writes
// the figure as a raster image. It is the only package that knows about
// gonum/plot.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	// ErrLayout is returned when panels do not fit the figure grid.
	ErrLayout = errors.New("render: panels do not fit the grid")
	// ErrFormat is returned for output names without a supported image extension.
	ErrFormat = errors.New("render: unsupported image format")
)

// axisLineWidth is the width of the zero axes, in points.
const axisLineWidth = 1.2

// LineStyle describes one series. Width is in points; Alpha in [0,1] with
// zero meaning opaque.
type LineStyle struct {
	Color color.Color
	Width float64
	Alpha float64
}

// Series is a named polyline.
type Series struct {
	Label string
	X, Y  []float64
	Style LineStyle
}

// Range is a fixed axis interval. The zero Range lets the plot autoscale.
type Range struct{ Min, Max float64 }

func (r Range) set() bool { return r.Max > r.Min }

// Panel is one subplot.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	XRange Range
	YRange Range
	// Ticks are placed on both axes; nil keeps the default tick marker.
	Ticks  []float64
	Legend bool
}

// Figure is a Rows x Cols grid of panels filled row by row. Cells past the
// last panel are left as bare figure background.
type Figure struct {
	Rows, Cols int
	WidthIn    float64
	HeightIn   float64
	DPI        int
	Panels     []Panel
}

// Theme colors every figure drawn by a Renderer.
type Theme struct {
	FigureBackground color.Color
	AxesBackground   color.Color
	Foreground       color.Color
	Axis             color.Color
}

// Renderer draws figures with a fixed theme.
type Renderer struct {
	theme Theme
}

func New(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// ParseColor converts "#rrggbb" to a color.
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("parsing color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// withAlpha applies alpha to c; alpha <= 0 or >= 1 leaves it opaque.
func withAlpha(c color.Color, alpha float64) color.Color {
	if c == nil || alpha <= 0 || alpha >= 1 {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(alpha*255 + 0.5)
	return n
}

// Plot builds the gonum plot for one panel.
func (r *Renderer) Plot(pn Panel) (*plot.Plot, error) {
	p := plot.New()
	fg := r.theme.Foreground

	p.BackgroundColor = r.theme.AxesBackground
	p.Title.Text = pn.Title
	p.Title.TextStyle.Color = fg
	p.Title.Padding = vg.Points(8)
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Color = fg
		ax.Tick.Label.Color = fg
		ax.Tick.LineStyle.Color = fg
		ax.Tick.Length = vg.Points(3)
		// spines are hidden; the zero lines below replace them
		ax.LineStyle.Width = 0
		if pn.Ticks != nil {
			ax.Tick.Marker = constantTicks(pn.Ticks)
		}
	}
	p.X.Label.Text = pn.XLabel
	p.Y.Label.Text = pn.YLabel

	// zero axes go in first so the series draw over them
	if err := r.addZeroAxes(p, pn.xExtent(), pn.yExtent()); err != nil {
		return nil, err
	}
	for _, s := range pn.Series {
		if len(s.X) != len(s.Y) {
			return nil, fmt.Errorf("series %q: %d x values, %d y values: %w", s.Label, len(s.X), len(s.Y), ErrLayout)
		}
		pts := make(plotter.XYs, len(s.X))
		for i := range s.X {
			pts[i].X = s.X[i]
			pts[i].Y = s.Y[i]
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Label, err)
		}
		l.Color = withAlpha(s.Style.Color, s.Style.Alpha)
		l.Width = vg.Points(s.Style.Width)
		p.Add(l)
		if pn.Legend && s.Label != "" {
			p.Legend.Add(s.Label, l)
		}
	}

	if pn.XRange.set() {
		p.X.Min, p.X.Max = pn.XRange.Min, pn.XRange.Max
	}
	if pn.YRange.set() {
		p.Y.Min, p.Y.Max = pn.YRange.Min, pn.YRange.Max
	}

	p.Legend.TextStyle.Color = fg
	p.Legend.Top = false
	p.Legend.Left = false
	return p, nil
}

// xExtent is the fixed x-range, or the data range when none is set.
func (pn Panel) xExtent() Range {
	if pn.XRange.set() {
		return pn.XRange
	}
	return extent(pn.Series, func(s Series) []float64 { return s.X })
}

func (pn Panel) yExtent() Range {
	if pn.YRange.set() {
		return pn.YRange
	}
	return extent(pn.Series, func(s Series) []float64 { return s.Y })
}

func extent(series []Series, col func(Series) []float64) Range {
	var r Range
	first := true
	for _, s := range series {
		v := col(s)
		if len(v) == 0 {
			continue
		}
		lo, hi := floats.Min(v), floats.Max(v)
		if first {
			r, first = Range{Min: lo, Max: hi}, false
			continue
		}
		r.Min = min(r.Min, lo)
		r.Max = max(r.Max, hi)
	}
	return r
}

// addZeroAxes draws the x=0 and y=0 lines across the given extents.
func (r *Renderer) addZeroAxes(p *plot.Plot, x, y Range) error {
	xs := []plotter.XYs{
		{{X: x.Min, Y: 0}, {X: x.Max, Y: 0}},
		{{X: 0, Y: y.Min}, {X: 0, Y: y.Max}},
	}
	for _, pts := range xs {
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = r.theme.Axis
		l.Width = vg.Points(axisLineWidth)
		p.Add(l)
	}
	return nil
}

// blank is an empty cell painted with the figure background.
func (r *Renderer) blank() *plot.Plot {
	p := plot.New()
	p.HideAxes()
	p.BackgroundColor = r.theme.FigureBackground
	return p
}

func constantTicks(at []float64) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(at))
	for i, v := range at {
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return ticks
}

// Draw lays out and draws every panel onto a new image canvas.
func (r *Renderer) Draw(fig Figure) (*vgimg.Canvas, error) {
	if fig.Rows <= 0 || fig.Cols <= 0 || len(fig.Panels) > fig.Rows*fig.Cols {
		return nil, fmt.Errorf("%d panels in a %dx%d grid: %w", len(fig.Panels), fig.Rows, fig.Cols, ErrLayout)
	}

	plots := make([][]*plot.Plot, fig.Rows)
	for j := range plots {
		plots[j] = make([]*plot.Plot, fig.Cols)
		for i := range plots[j] {
			plots[j][i] = r.blank()
		}
	}
	for i, pn := range fig.Panels {
		p, err := r.Plot(pn)
		if err != nil {
			return nil, fmt.Errorf("panel %q: %w", pn.Title, err)
		}
		plots[i/fig.Cols][i%fig.Cols] = p
	}

	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(fig.WidthIn)*vg.Inch, vg.Length(fig.HeightIn)*vg.Inch),
		vgimg.UseDPI(fig.DPI),
		vgimg.UseBackgroundColor(r.theme.FigureBackground),
	)
	dc := draw.New(img)
	t := draw.Tiles{
		Rows:      fig.Rows,
		Cols:      fig.Cols,
		PadX:      vg.Inch / 2,
		PadY:      vg.Inch / 2,
		PadTop:    vg.Inch / 4,
		PadBottom: vg.Inch / 4,
		PadLeft:   vg.Inch / 4,
		PadRight:  vg.Inch / 4,
	}
	canvases := plot.Align(plots, t, dc)
	for j := range plots {
		for i, p := range plots[j] {
			p.Draw(canvases[j][i])
		}
	}
	return img, nil
}

// Encode writes img in the format named by ext (".png", ".jpg", ".jpeg", ".tif", ".tiff").
func Encode(w io.Writer, img *vgimg.Canvas, ext string) error {
	wt, err := encoderFor(img, ext)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func encoderFor(img *vgimg.Canvas, ext string) (io.WriterTo, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return vgimg.PngCanvas{Canvas: img}, nil
	case ".jpg", ".jpeg":
		return vgimg.JpegCanvas{Canvas: img}, nil
	case ".tif", ".tiff":
		return vgimg.TiffCanvas{Canvas: img}, nil
	default:
		return nil, fmt.Errorf("%q: %w", ext, ErrFormat)
	}
}

// Save draws fig and writes it to path; the extension picks the format.
func (r *Renderer) Save(fig Figure, path string) (err error) {
	ext := filepath.Ext(path)
	if _, err := encoderFor(nil, ext); err != nil {
		return err
	}
	img, err := r.Draw(fig)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	if err := Encode(f, img, ext); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
