package surface

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	greeks "github.com/jwaldner/greeksurface/greeks_lib"
	"github.com/jwaldner/greeksurface/internal/grid"
)

func TestDemoShapesMatchGrid(t *testing.T) {
	s := Demo()
	rows, cols := s.Grid.Dims()

	gr, gc := s.Gamma.Dims()
	dr, dc := s.Delta.Dims()
	assert.Equal(t, []int{rows, cols}, []int{gr, gc})
	assert.Equal(t, []int{rows, cols}, []int{dr, dc})
}

func TestDemoBounds(t *testing.T) {
	s := Demo()
	rows, cols := s.Grid.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.GreaterOrEqual(t, s.Gamma.At(i, j), 0.0)
			assert.GreaterOrEqual(t, s.Delta.At(i, j), 0.0)
			assert.LessOrEqual(t, s.Delta.At(i, j), 1.0)
		}
	}
}

func TestDemoCellsMatchScalarGreeks(t *testing.T) {
	s := Demo()

	// Row 22 is twelve months, column 30 is $40.
	assert.Equal(t, 40.0, s.Grid.Prices[30])
	assert.Equal(t, 12.0, s.Grid.Months[22])
	assert.InDelta(t, 0.025626, s.Gamma.At(22, 30), 1e-5)
	assert.InDelta(t, 0.6775, s.Delta.At(22, 30), 1e-3)
	assert.Equal(t, greeks.Gamma(25, 40, 0.10, 0.5, 0.35), s.Gamma.At(10, 15))
}

func TestSummary(t *testing.T) {
	s := Demo()
	summary, err := s.Summary()
	require.NoError(t, err)

	assert.Greater(t, summary.Gamma.Max, summary.Gamma.Mean)
	assert.GreaterOrEqual(t, summary.Gamma.Min, 0.0)
	assert.Less(t, summary.Delta.Min, 0.01)
	assert.Greater(t, summary.Delta.Max, 0.99)

	assert.Equal(t, 1.0, summary.PeakMonths)
	assert.GreaterOrEqual(t, summary.PeakPrice, 38.0)
	assert.LessOrEqual(t, summary.PeakPrice, 41.0)
}

func TestEvaluateCustomGrid(t *testing.T) {
	g, err := grid.Build(grid.Range{Start: 35, End: 45, Step: 5}, grid.Range{Start: 6, End: 12, Step: 6})
	require.NoError(t, err)

	s := Evaluate(g, DemoMarket)
	rows := Rows(s.Delta)
	require.Len(t, rows, 2)
	require.Len(t, rows[0], 3)
	assert.Less(t, rows[0][0], rows[0][2])
	assert.Equal(t, s.Delta.At(1, 1), rows[1][1])
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Demo().Table(&buf))

	out := buf.String()
	assert.Contains(t, out, "Gamma")
	assert.Contains(t, out, "Delta")
	assert.Contains(t, out, Title)
	assert.Contains(t, out, "23 x 61 grid")
}
