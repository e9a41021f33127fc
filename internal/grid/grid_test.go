package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAxes(t *testing.T) {
	g := Default()

	require.Len(t, g.Prices, 61)
	assert.Equal(t, 10.0, g.Prices[0])
	assert.Equal(t, 70.0, g.Prices[60])
	for j := 1; j < len(g.Prices); j++ {
		assert.Equal(t, 1.0, g.Prices[j]-g.Prices[j-1])
	}

	require.Len(t, g.Months, 23)
	assert.Equal(t, 1.0, g.Months[0])
	assert.Equal(t, 1.5, g.Months[1])
	assert.Equal(t, 12.0, g.Months[22])

	rows, cols := g.Dims()
	assert.Equal(t, 23, rows)
	assert.Equal(t, 61, cols)
}

func TestRowAndColumnInvariance(t *testing.T) {
	g := Default()
	rows, cols := g.Dims()

	tr, tc := g.T.Dims()
	require.Equal(t, rows, tr)
	require.Equal(t, cols, tc)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.Equal(t, g.Prices[j], g.S.At(i, j))
			assert.Equal(t, g.Years[i], g.T.At(i, j))
		}
	}
}

func TestYearsRoundTrip(t *testing.T) {
	g := Default()
	for i, y := range g.Years {
		assert.InDelta(t, g.Months[i], y*12, 1e-12)
	}
	assert.InDelta(t, 1.0/12, g.Years[0], 1e-15)
	assert.Equal(t, 1.0, g.Years[len(g.Years)-1])
}

func TestRangeLen(t *testing.T) {
	assert.Equal(t, 1, Range{Start: 5, End: 5, Step: 1}.Len())
	assert.Equal(t, 3, Range{Start: 0.1, End: 0.3, Step: 0.1}.Len())
	assert.Equal(t, 2, Range{Start: 1, End: 2.9, Step: 1}.Len())
}

func TestLongestAcceptedRange(t *testing.T) {
	r := Range{Start: 1, End: MaxPoints, Step: 1}
	assert.NoError(t, r.Validate())
	assert.Equal(t, MaxPoints, r.Len())

	r.End++
	assert.ErrorIs(t, r.Validate(), ErrTooManyPoints)
}

func TestBuildRejectsBadRanges(t *testing.T) {
	tests := []struct {
		name   string
		price  Range
		months Range
		want   error
	}{
		{"zero step", Range{10, 70, 0}, DefaultMonthRange, ErrNonPositiveStep},
		{"negative step", DefaultPriceRange, Range{1, 12, -0.5}, ErrNonPositiveStep},
		{"reversed", Range{70, 10, 1}, DefaultMonthRange, ErrEmptyRange},
		{"zero price", Range{0, 70, 1}, DefaultMonthRange, ErrNonPositiveBound},
		{"zero month", DefaultPriceRange, Range{0, 12, 0.5}, ErrNonPositiveBound},
		{"infinite end", Range{10, math.Inf(1), 1}, DefaultMonthRange, ErrNonPositiveBound},
		{"NaN end", Range{10, math.NaN(), 1}, DefaultMonthRange, ErrNonPositiveBound},
		{"infinite step", Range{10, 70, math.Inf(1)}, DefaultMonthRange, ErrNonPositiveStep},
		{"huge price axis", Range{1, 1e300, 1}, DefaultMonthRange, ErrTooManyPoints},
		{"tiny month step", DefaultPriceRange, Range{1, 12, 1e-12}, ErrTooManyPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.price, tt.months)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
