package surface

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/mat"

	greeks "github.com/jwaldner/greeksurface/greeks_lib"
	"github.com/jwaldner/greeksurface/internal/grid"
)

// Title is the caption shown on every rendering of the surface.
const Title = "Call Option Price Sensitivity"

// DemoMarket is the fixed contract the surface is drawn for: a $40 strike,
// 10% risk-free rate and 35% volatility.
var DemoMarket = greeks.Market{Strike: 40, Rate: 0.10, Volatility: 0.35}

// Surface is a gamma surface with its delta overlay, both shaped like the grid.
type Surface struct {
	Grid   *grid.Grid
	Market greeks.Market
	Gamma  *mat.Dense
	Delta  *mat.Dense
}

// Evaluate computes gamma and delta for every cell of g.
func Evaluate(g *grid.Grid, m greeks.Market) *Surface {
	rows, cols := g.Dims()
	k, r, sigma := greeks.MarketMatrices(rows, cols, m)

	return &Surface{
		Grid:   g,
		Market: m,
		Gamma:  greeks.GammaMatrix(g.S, k, r, g.T, sigma),
		Delta:  greeks.DeltaMatrix(g.S, k, r, g.T, sigma),
	}
}

// Demo evaluates the default grid on DemoMarket.
func Demo() *Surface {
	return Evaluate(grid.Default(), DemoMarket)
}

// Rows copies a surface matrix into nested slices, one per time point.
func Rows(m mat.Matrix) [][]float64 {
	rows, cols := m.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

func flatten(m mat.Matrix) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// Extent summarizes one surface matrix.
type Extent struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Summary describes a surface for logs, tables and the JSON API.
type Summary struct {
	Gamma Extent `json:"gamma"`
	Delta Extent `json:"delta"`

	// Location of the gamma peak.
	PeakPrice  float64 `json:"peak_price"`
	PeakMonths float64 `json:"peak_months"`
}

func extent(values []float64) (Extent, error) {
	lo, err := stats.Min(values)
	if err != nil {
		return Extent{}, fmt.Errorf("min: %w", err)
	}
	hi, err := stats.Max(values)
	if err != nil {
		return Extent{}, fmt.Errorf("max: %w", err)
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return Extent{}, fmt.Errorf("mean: %w", err)
	}
	return Extent{Min: lo, Max: hi, Mean: mean}, nil
}

// Summary reports the extent of both measures and where gamma peaks.
func (s *Surface) Summary() (Summary, error) {
	gamma, err := extent(flatten(s.Gamma))
	if err != nil {
		return Summary{}, fmt.Errorf("gamma: %w", err)
	}
	delta, err := extent(flatten(s.Delta))
	if err != nil {
		return Summary{}, fmt.Errorf("delta: %w", err)
	}

	summary := Summary{Gamma: gamma, Delta: delta}
	rows, cols := s.Gamma.Dims()
	best := -1.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := s.Gamma.At(i, j); v > best {
				best = v
				summary.PeakPrice = s.Grid.Prices[j]
				summary.PeakMonths = s.Grid.Months[i]
			}
		}
	}
	return summary, nil
}

// Table writes the market terms, grid shape and summary as a console table.
func (s *Surface) Table(w io.Writer) error {
	summary, err := s.Summary()
	if err != nil {
		return err
	}
	rows, cols := s.Grid.Dims()

	fmt.Fprintf(w, "%s\n", Title)
	fmt.Fprintf(w, "K=%s r=%s sigma=%s, %d x %d grid, gamma peaks at $%s / %s months\n",
		format(s.Market.Strike), format(s.Market.Rate), format(s.Market.Volatility),
		rows, cols, format(summary.PeakPrice), format(summary.PeakMonths))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Measure", "Min", "Max", "Mean"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{"Gamma", format(summary.Gamma.Min), format(summary.Gamma.Max), format(summary.Gamma.Mean)})
	table.Append([]string{"Delta", format(summary.Delta.Min), format(summary.Delta.Max), format(summary.Delta.Mean)})
	table.Render()

	return nil
}

func format(v float64) string {
	// decimal has no NaN or Inf
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).Round(6).String()
}
