// Package grid builds the (time, price) domain a sensitivity surface is
// evaluated over. Rows are time points, columns are price points.
package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/jwaldner/greeksurface/internal/utils"
)

var (
	ErrNonPositiveStep  = errors.New("range step must be positive")
	ErrEmptyRange       = errors.New("range end is before its start")
	ErrNonPositiveBound = errors.New("range bounds must be positive")
	ErrTooManyPoints    = errors.New("range has too many points")
)

// MaxPoints caps the length of a single axis.
const MaxPoints = 1 << 16

// Range is an evenly spaced sequence with an inclusive end.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Step  float64 `json:"step"`
}

var (
	// DefaultPriceRange is $10 through $70 in whole dollars.
	DefaultPriceRange = Range{Start: 10, End: 70, Step: 1}
	// DefaultMonthRange is 1 through 12 months in half months.
	DefaultMonthRange = Range{Start: 1, End: 12, Step: 0.5}
)

// tolerance absorbs representation error when the end is an exact multiple of the step.
const tolerance = 1e-9

// Validate rejects ranges that cannot be materialized as a finite axis.
func (r Range) Validate() error {
	if !(r.Step > 0) || math.IsInf(r.Step, 1) {
		return fmt.Errorf("step %v: %w", r.Step, ErrNonPositiveStep)
	}
	if !(r.Start > 0) || !(r.End > 0) || math.IsInf(r.End, 1) {
		return fmt.Errorf("[%v, %v]: %w", r.Start, r.End, ErrNonPositiveBound)
	}
	if r.End < r.Start {
		return fmt.Errorf("[%v, %v]: %w", r.Start, r.End, ErrEmptyRange)
	}
	if n := (r.End - r.Start) / r.Step; n >= MaxPoints {
		return fmt.Errorf("[%v, %v] by %v: %w", r.Start, r.End, r.Step, ErrTooManyPoints)
	}
	return nil
}

// Len is the number of points in the range. It assumes a valid range.
func (r Range) Len() int {
	return int(math.Floor((r.End-r.Start)/r.Step+tolerance)) + 1
}

// Values materializes the range. Each point is computed from its index so
// no rounding error accumulates along the axis.
func (r Range) Values() []float64 {
	out := make([]float64, r.Len())
	for i := range out {
		out[i] = r.Start + float64(i)*r.Step
	}
	return out
}

// Grid is the cross product of a price axis and a time axis.
type Grid struct {
	Prices []float64 // column axis
	Months []float64 // row axis, in months
	Years  []float64 // row axis, in years

	S *mat.Dense // S.At(i, j) == Prices[j]
	T *mat.Dense // T.At(i, j) == Years[i]
}

// Build validates both ranges and broadcasts them into the price and time grids.
func Build(price, months Range) (*Grid, error) {
	if err := price.Validate(); err != nil {
		return nil, fmt.Errorf("price axis: %w", err)
	}
	if err := months.Validate(); err != nil {
		return nil, fmt.Errorf("time axis: %w", err)
	}

	prices := price.Values()
	monthValues := months.Values()
	years := make([]float64, len(monthValues))
	for i, m := range monthValues {
		years[i] = utils.MonthsToYears(m)
	}

	rows, cols := len(years), len(prices)
	s := mat.NewDense(rows, cols, nil)
	t := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		s.SetRow(i, prices)
		for j := 0; j < cols; j++ {
			t.Set(i, j, years[i])
		}
	}

	return &Grid{
		Prices: prices,
		Months: monthValues,
		Years:  years,
		S:      s,
		T:      t,
	}, nil
}

// Default builds the $10-$70 by 1-12 month demonstration grid.
func Default() *Grid {
	g, err := Build(DefaultPriceRange, DefaultMonthRange)
	if err != nil {
		panic(err)
	}
	return g
}

// Dims returns the number of time rows and price columns.
func (g *Grid) Dims() (rows, cols int) {
	return g.S.Dims()
}
