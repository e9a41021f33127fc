package render

import (
	"math"

	"github.com/jwaldner/greeksurface/internal/surface"
)

type vec3 [3]float64

func (a vec3) dot(b vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// camera is an orthographic view. eye points from the scene to the viewer,
// so a larger depth is nearer.
type camera struct {
	right, up, eye vec3
}

func newCamera(elevation, azimuth float64) camera {
	el := elevation * math.Pi / 180
	az := azimuth * math.Pi / 180
	return camera{
		right: vec3{-math.Sin(az), math.Cos(az), 0},
		up:    vec3{-math.Sin(el) * math.Cos(az), -math.Sin(el) * math.Sin(az), math.Cos(el)},
		eye:   vec3{math.Cos(el) * math.Cos(az), math.Cos(el) * math.Sin(az), math.Sin(el)},
	}
}

func (c camera) project(p vec3) (x, y, depth float64) {
	return p.dot(c.right), p.dot(c.up), p.dot(c.eye)
}

// span is the data extent of one axis.
type span struct {
	lo, hi float64
}

func spanOf(values []float64) span {
	s := span{lo: math.Inf(1), hi: math.Inf(-1)}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		s.lo = math.Min(s.lo, v)
		s.hi = math.Max(s.hi, v)
	}
	if math.IsInf(s.lo, 1) {
		return span{lo: 0, hi: 1}
	}
	return s
}

func (s span) mid() float64 { return (s.lo + s.hi) / 2 }

// unit maps v onto [-0.5, 0.5]; a flat span maps everything to 0.
func (s span) unit(v float64) float64 {
	if !(s.hi > s.lo) {
		return 0
	}
	return (v-s.lo)/(s.hi-s.lo) - 0.5
}

// ticks returns n+1 evenly spaced values from lo to hi.
func (s span) ticks(n int) []float64 {
	if !(s.hi > s.lo) || n < 1 {
		return []float64{s.lo}
	}
	out := make([]float64, n+1)
	for i := range out {
		out[i] = s.lo + float64(i)*(s.hi-s.lo)/float64(n)
	}
	return out
}

// box normalizes data coordinates into the unit footprint the camera sees.
type box struct {
	prices, months, gamma span

	invertPrice, invertTime bool
}

func newBox(s *surface.Surface, opts Options) box {
	rows, cols := s.Gamma.Dims()
	gammas := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			gammas = append(gammas, s.Gamma.At(i, j))
		}
	}
	gamma := spanOf(gammas)
	// gamma is never negative; anchor the floor at zero
	gamma.lo = math.Min(gamma.lo, 0)

	return box{
		prices:      spanOf(s.Grid.Prices),
		months:      spanOf(s.Grid.Months),
		gamma:       gamma,
		invertPrice: opts.InvertPrice,
		invertTime:  opts.InvertTime,
	}
}

func (b box) point(price, months, gamma float64) vec3 {
	x := b.prices.unit(price)
	if b.invertPrice {
		x = -x
	}
	y := b.months.unit(months)
	if b.invertTime {
		y = -y
	}
	return vec3{x, y, b.gamma.unit(gamma) * zAspect}
}
