// Package render draws a sensitivity surface as a shaded 3-D projection.
//
// gonum/plot has no 3-D axes, so the surface is projected onto the page with
// a fixed camera and every grid quad is painted as a filled polygon, far
// quads first. Quads are colored by the delta overlay through a color map
// normalized to the overlay's own range, and a horizontal color bar is drawn
// under the surface.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/jwaldner/greeksurface/internal/surface"
)

// Options fixes the figure size and the camera.
type Options struct {
	Width     vg.Length
	Height    vg.Length
	Elevation float64 // degrees above the price/time plane
	Azimuth   float64 // degrees around the gamma axis

	InvertPrice bool
	InvertTime  bool
}

// DefaultOptions is a 12x8 inch figure seen from 40° up and 50° round, with
// both the price and time axes running backwards.
func DefaultOptions() Options {
	return Options{
		Width:       12 * vg.Inch,
		Height:      8 * vg.Inch,
		Elevation:   40,
		Azimuth:     50,
		InvertPrice: true,
		InvertTime:  true,
	}
}

// gamma axis height relative to the price/time footprint
const zAspect = 0.75

// legendShare is the fraction of the figure height given to the color bar.
const legendShare = 0.15

var (
	edgeColor = color.Gray{Y: 60}
	nanColor  = color.Gray{Y: 200}
)

// Renderer turns a surface into a PNG image.
type Renderer struct {
	opts Options
	cam  camera
}

// New returns a Renderer with its camera fixed by opts.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts, cam: newCamera(opts.Elevation, opts.Azimuth)}
}

// Render writes s as a PNG to w.
func (r *Renderer) Render(w io.Writer, s *surface.Surface) error {
	cmap := deltaColors(s)

	p, err := r.surfacePlot(s, cmap)
	if err != nil {
		return fmt.Errorf("surface plot: %w", err)
	}

	legend := plot.New()
	legend.HideY()
	legend.X.Label.Text = "Delta"
	legend.Add(&plotter.ColorBar{ColorMap: cmap, Colors: 128})

	img := vgimg.New(r.opts.Width, r.opts.Height)
	dc := draw.New(img)
	legendHeight := r.opts.Height * legendShare
	p.Draw(draw.Crop(dc, 0, 0, legendHeight, 0))
	legend.Draw(draw.Crop(dc, r.opts.Width/8, -r.opts.Width/8, 0, legendHeight-r.opts.Height))

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// deltaColors normalizes the color map to the overlay's range, falling back
// to [0, 1] when the overlay is flat.
func deltaColors(s *surface.Surface) palette.ColorMap {
	lo, hi := math.Inf(1), math.Inf(-1)
	rows, cols := s.Delta.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := s.Delta.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if !(hi > lo) {
		lo, hi = 0, 1
	}

	cmap := moreland.Kindlmann()
	cmap.SetMax(hi)
	cmap.SetMin(lo)
	return cmap
}

func (r *Renderer) surfacePlot(s *surface.Surface, cmap palette.ColorMap) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = surface.Title
	p.HideAxes()

	bx := newBox(s, r.opts)

	for _, q := range r.quads(s, bx) {
		poly, err := plotter.NewPolygon(q.xys)
		if err != nil {
			return nil, err
		}
		c, err := cmap.At(q.delta)
		if err != nil {
			c = nanColor
		}
		poly.Color = c
		poly.LineStyle.Color = edgeColor
		poly.LineStyle.Width = vg.Points(0.2)
		p.Add(poly)
	}

	if err := r.addAxes(p, bx); err != nil {
		return nil, err
	}
	return p, nil
}

type quad struct {
	xys   plotter.XYs
	depth float64
	delta float64
}

// quads projects every grid cell, ordered back to front.
func (r *Renderer) quads(s *surface.Surface, b box) []quad {
	rows, cols := s.Gamma.Dims()
	if rows < 2 || cols < 2 {
		return nil
	}

	out := make([]quad, 0, (rows-1)*(cols-1))
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			corners := [4][2]int{{i, j}, {i, j + 1}, {i + 1, j + 1}, {i + 1, j}}

			q := quad{xys: make(plotter.XYs, 0, 4)}
			finite := true
			for _, c := range corners {
				pt := b.point(s.Grid.Prices[c[1]], s.Grid.Months[c[0]], s.Gamma.At(c[0], c[1]))
				x, y, d := r.cam.project(pt)
				if math.IsNaN(d) || math.IsInf(d, 0) {
					finite = false
				}
				q.xys = append(q.xys, plotter.XY{X: x, Y: y})
				q.depth += d / 4
				q.delta += s.Delta.At(c[0], c[1]) / 4
			}
			// cells with undefined gamma are left as holes
			if finite {
				out = append(out, q)
			}
		}
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].depth < out[b].depth })
	return out
}

func (r *Renderer) addAxes(p *plot.Plot, b box) error {
	// Each horizontal axis runs along whichever floor edge faces the camera.
	monthEdge := b.months.lo
	if r.depthAt(b.point(b.prices.mid(), b.months.hi, b.gamma.lo)) > r.depthAt(b.point(b.prices.mid(), b.months.lo, b.gamma.lo)) {
		monthEdge = b.months.hi
	}
	priceEdge := b.prices.lo
	if r.depthAt(b.point(b.prices.hi, b.months.mid(), b.gamma.lo)) > r.depthAt(b.point(b.prices.lo, b.months.mid(), b.gamma.lo)) {
		priceEdge = b.prices.hi
	}
	// The gamma axis stands on the back corner.
	back := [2]float64{b.prices.lo, b.months.lo}
	best := math.Inf(1)
	for _, px := range []float64{b.prices.lo, b.prices.hi} {
		for _, mo := range []float64{b.months.lo, b.months.hi} {
			if d := r.depthAt(b.point(px, mo, b.gamma.lo)); d < best {
				best = d
				back = [2]float64{px, mo}
			}
		}
	}

	axes := []struct {
		title     string
		from, to  vec3
		ticks     []float64
		format    string
		tickPoint func(v float64) vec3
	}{
		{
			title:     "Stock Price ($)",
			from:      b.point(b.prices.lo, monthEdge, b.gamma.lo),
			to:        b.point(b.prices.hi, monthEdge, b.gamma.lo),
			ticks:     b.prices.ticks(6),
			format:    "%.0f",
			tickPoint: func(v float64) vec3 { return b.point(v, monthEdge, b.gamma.lo) },
		},
		{
			title:     "Time (months)",
			from:      b.point(priceEdge, b.months.lo, b.gamma.lo),
			to:        b.point(priceEdge, b.months.hi, b.gamma.lo),
			ticks:     b.months.ticks(5),
			format:    "%.1f",
			tickPoint: func(v float64) vec3 { return b.point(priceEdge, v, b.gamma.lo) },
		},
		{
			title:     "Gamma",
			from:      b.point(back[0], back[1], b.gamma.lo),
			to:        b.point(back[0], back[1], b.gamma.hi),
			ticks:     b.gamma.ticks(4),
			format:    "%.3f",
			tickPoint: func(v float64) vec3 { return b.point(back[0], back[1], v) },
		},
	}

	for _, ax := range axes {
		fx, fy, _ := r.cam.project(ax.from)
		tx, ty, _ := r.cam.project(ax.to)
		line, err := plotter.NewLine(plotter.XYs{{X: fx, Y: fy}, {X: tx, Y: ty}})
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)

		labels := plotter.XYLabels{}
		for _, v := range ax.ticks {
			x, y, _ := r.cam.project(ax.tickPoint(v))
			labels.XYs = append(labels.XYs, plotter.XY{X: x, Y: y})
			labels.Labels = append(labels.Labels, fmt.Sprintf(ax.format, v))
		}
		// Title sits just past the far end of the axis.
		labels.XYs = append(labels.XYs, plotter.XY{X: tx + (tx-fx)*0.08, Y: ty + (ty-fy)*0.08})
		labels.Labels = append(labels.Labels, ax.title)

		tickLabels, err := plotter.NewLabels(labels)
		if err != nil {
			return err
		}
		p.Add(tickLabels)
	}
	return nil
}

func (r *Renderer) depthAt(p vec3) float64 {
	_, _, d := r.cam.project(p)
	return d
}
