package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/jwaldner/greeksurface/internal/grid"
	"github.com/jwaldner/greeksurface/internal/surface"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Width = 4 * vg.Inch
	opts.Height = 3 * vg.Inch
	return opts
}

func TestRenderWritesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(smallOptions()).Render(&buf, surface.Demo()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestRenderSingleRowGrid(t *testing.T) {
	g, err := grid.Build(grid.DefaultPriceRange, grid.Range{Start: 6, End: 6, Step: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, New(smallOptions()).Render(&buf, surface.Evaluate(g, surface.DemoMarket)))
	assert.NotZero(t, buf.Len())
}

func TestQuadsBackToFront(t *testing.T) {
	s := surface.Demo()
	r := New(DefaultOptions())

	quads := r.quads(s, newBox(s, r.opts))
	require.Len(t, quads, 22*60)
	for i := 1; i < len(quads); i++ {
		assert.LessOrEqual(t, quads[i-1].depth, quads[i].depth)
	}
	for _, q := range quads {
		assert.Len(t, q.xys, 4)
		assert.GreaterOrEqual(t, q.delta, 0.0)
		assert.LessOrEqual(t, q.delta, 1.0)
	}
}

func TestCameraTopDown(t *testing.T) {
	cam := newCamera(90, 0)

	x, y, d := cam.project(vec3{0.25, 0.5, 0.1})
	assert.InDelta(t, 0.5, x, 1e-12)
	assert.InDelta(t, -0.25, y, 1e-12)
	assert.InDelta(t, 0.1, d, 1e-12)
}

func TestCameraBasisIsOrthonormal(t *testing.T) {
	cam := newCamera(40, 50)
	for _, v := range []vec3{cam.right, cam.up, cam.eye} {
		assert.InDelta(t, 1, v.dot(v), 1e-12)
	}
	assert.InDelta(t, 0, cam.right.dot(cam.up), 1e-12)
	assert.InDelta(t, 0, cam.right.dot(cam.eye), 1e-12)
	assert.InDelta(t, 0, cam.up.dot(cam.eye), 1e-12)
}

func TestBoxInvertsAxes(t *testing.T) {
	s := surface.Demo()
	b := newBox(s, DefaultOptions())

	lo := b.point(10, 1, 0)
	hi := b.point(70, 12, b.gamma.hi)
	assert.Equal(t, 0.5, lo[0])
	assert.Equal(t, 0.5, lo[1])
	assert.Equal(t, -0.5, hi[0])
	assert.Equal(t, -0.5, hi[1])
	assert.InDelta(t, 0.5*zAspect, hi[2], 1e-12)
	assert.Equal(t, 0.0, b.gamma.lo)
}

func TestSpanIgnoresNonFinite(t *testing.T) {
	s := spanOf([]float64{math.NaN(), 2, math.Inf(1), 5})
	assert.Equal(t, span{lo: 2, hi: 5}, s)
	assert.Equal(t, span{lo: 0, hi: 1}, spanOf([]float64{math.NaN()}))
	assert.Equal(t, []float64{2, 3.5, 5}, s.ticks(2))
	assert.Equal(t, 0.0, span{lo: 3, hi: 3}.unit(3))
}
