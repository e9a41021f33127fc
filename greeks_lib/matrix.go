package greeks

import (
	"gonum.org/v1/gonum/mat"
)

// Fill returns a rows x cols matrix holding v in every cell. It is how
// scalar market terms are broadcast onto a grid.
func Fill(rows, cols int, v float64) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = v
	}
	return mat.NewDense(rows, cols, data)
}

// GammaMatrix evaluates Gamma cell by cell. All arguments must have the
// same shape; a mismatch panics with mat.ErrShape.
func GammaMatrix(s, k, r, t, sigma mat.Matrix) *mat.Dense {
	return elementwise(Gamma, s, k, r, t, sigma)
}

// DeltaMatrix evaluates Delta cell by cell under the same shape rule as
// GammaMatrix.
func DeltaMatrix(s, k, r, t, sigma mat.Matrix) *mat.Dense {
	return elementwise(Delta, s, k, r, t, sigma)
}

// MarketMatrices broadcasts m onto a rows x cols grid as strike, rate and
// volatility matrices.
func MarketMatrices(rows, cols int, m Market) (k, r, sigma *mat.Dense) {
	return Fill(rows, cols, m.Strike), Fill(rows, cols, m.Rate), Fill(rows, cols, m.Volatility)
}

func elementwise(fn func(s, k, r, t, sigma float64) float64, s, k, r, t, sigma mat.Matrix) *mat.Dense {
	rows, cols := s.Dims()
	for _, m := range []mat.Matrix{k, r, t, sigma} {
		if mr, mc := m.Dims(); mr != rows || mc != cols {
			panic(mat.ErrShape)
		}
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, fn(s.At(i, j), k.At(i, j), r.At(i, j), t.At(i, j), sigma.At(i, j)))
		}
	}
	return out
}
