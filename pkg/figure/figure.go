// Package figure renders two-panel comparison figures for a pair of
// embedding vectors: a per-dimension overlay of both vectors and a
// dimension-wise scatter of one vector against the other.
package figure

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/embedviz/embedviz/pkg/vector"
)

const (
	// DefaultWidth is the total figure width, both panels included.
	DefaultWidth = 15 * vg.Inch

	// DefaultHeight is the figure height.
	DefaultHeight = 5 * vg.Inch

	labelA = "Embedding 1"
	labelB = "Embedding 2"
)

var (
	colorA        = color.NRGBA{B: 0xff, A: 0xff}
	colorB        = color.NRGBA{R: 0xff, A: 0xff}
	colorScatter  = color.NRGBA{G: 0x80, A: 0x80}
	colorIdentity = color.NRGBA{A: 0x80}
)

type options struct {
	width  vg.Length
	height vg.Length
}

// Option configures the rendered figure.
type Option func(*options)

// WithSize overrides the default figure dimensions. Non-positive values
// are ignored.
func WithSize(width, height vg.Length) Option {
	return func(o *options) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

// Figure is a rendered comparison, ready to be encoded as PNG or SVG.
type Figure struct {
	overlay *plot.Plot
	scatter *plot.Plot
	width   vg.Length
	height  vg.Length
}

// Render builds the two-panel comparison figure for the pair. Both
// vectors must be non-empty and share the same dimensionality.
func Render(a, b []float64, opts ...Option) (*Figure, error) {
	if err := vector.CheckPair(a, b); err != nil {
		return nil, err
	}

	o := options{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&o)
	}

	overlay, err := overlayPanel(a, b)
	if err != nil {
		return nil, fmt.Errorf("could not build overlay panel: %w", err)
	}

	scatter, err := scatterPanel(a, b)
	if err != nil {
		return nil, fmt.Errorf("could not build scatter panel: %w", err)
	}

	return &Figure{
		overlay: overlay,
		scatter: scatter,
		width:   o.width,
		height:  o.height,
	}, nil
}

// WritePNG encodes the figure as a PNG image.
func (f *Figure) WritePNG(w io.Writer) error {
	img := vgimg.New(f.width, f.height)
	f.draw(draw.New(img))

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("could not encode png: %w", err)
	}

	return nil
}

// WriteSVG encodes the figure as an SVG document.
func (f *Figure) WriteSVG(w io.Writer) error {
	c := vgsvg.New(f.width, f.height)
	f.draw(draw.New(c))

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("could not encode svg: %w", err)
	}

	return nil
}

// Save writes the figure to path, choosing the encoding from the file
// extension. Only .png and .svg are supported.
func (f *Figure) Save(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".svg" {
		return fmt.Errorf("unsupported figure format %q (use .png or .svg)", ext)
	}

	w, err := os.Create(path)
	if err != nil {
		return err
	}

	if ext == ".png" {
		err = f.WritePNG(w)
	} else {
		err = f.WriteSVG(w)
	}
	if err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// draw lays the two panels out side by side. The scatter panel is kept
// square so equal axis scales hold.
func (f *Figure) draw(dc draw.Canvas) {
	scatterWidth := f.height
	if scatterWidth > f.width/2 {
		scatterWidth = f.width / 2
	}

	f.overlay.Draw(draw.Crop(dc, 0, -scatterWidth, 0, 0))
	f.scatter.Draw(draw.Crop(dc, f.width-scatterWidth, 0, 0, 0))
}

// overlayPanel plots both vectors against their dimension index, with
// markers on each component and a stem down to zero.
func overlayPanel(a, b []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Embedding Vectors Visualization"
	p.X.Label.Text = "Embedding Dimension"
	p.Y.Label.Text = "Value"

	if err := addSeries(p, a, labelA, colorA); err != nil {
		return nil, err
	}
	if err := addSeries(p, b, labelB, colorB); err != nil {
		return nil, err
	}

	p.Legend.Top = true

	return p, nil
}

func addSeries(p *plot.Plot, v []float64, label string, c color.NRGBA) error {
	pts := make(plotter.XYs, len(v))
	for i, val := range v {
		pts[i].X = float64(i)
		pts[i].Y = val
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = withAlpha(c, 0x80)

	marks, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	marks.GlyphStyle.Color = c
	marks.GlyphStyle.Radius = vg.Points(1.5)
	marks.GlyphStyle.Shape = draw.CircleGlyph{}

	st := stems{
		XYs: pts,
		LineStyle: draw.LineStyle{
			Color: withAlpha(c, 0x33),
			Width: vg.Points(1),
		},
	}

	p.Add(st, line, marks)
	p.Legend.Add(label, line, marks)

	return nil
}

// scatterPanel plots the first vector against the second, one point per
// dimension, with an identity line for reference. Both axes share the
// same limits so equal components land on the diagonal.
func scatterPanel(a, b []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Dimension-wise Comparison: %s vs %s", labelA, labelB)
	p.X.Label.Text = labelA
	p.Y.Label.Text = labelB

	pts := make(plotter.XYs, len(a))
	for i := range a {
		pts[i].X = a[i]
		pts[i].Y = b[i]
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = colorScatter
	sc.GlyphStyle.Radius = vg.Points(2)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}

	min, max := vector.Range(a, b)
	ident, err := plotter.NewLine(plotter.XYs{{X: min, Y: min}, {X: max, Y: max}})
	if err != nil {
		return nil, err
	}
	ident.Color = colorIdentity
	ident.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(sc, ident)

	p.X.Min, p.X.Max = min, max
	p.Y.Min, p.Y.Max = min, max

	return p, nil
}

// stems draws a vertical drop line from zero to each sample, giving the
// overlay its stem-plot look.
type stems struct {
	plotter.XYs
	draw.LineStyle
}

func (s stems) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	y0 := trY(0)
	for _, pt := range s.XYs {
		x := trX(pt.X)
		c.StrokeLine2(s.LineStyle, x, y0, x, trY(pt.Y))
	}
}

// DataRange widens the reported range to include zero so every stem has
// a visible baseline.
func (s stems) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax, ymin, ymax = plotter.XYRange(s.XYs)
	if ymin > 0 {
		ymin = 0
	}
	if ymax < 0 {
		ymax = 0
	}
	return xmin, xmax, ymin, ymax
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
