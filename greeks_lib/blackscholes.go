package greeks

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Market holds the contract terms shared by every cell of a surface.
type Market struct {
	Strike     float64 `json:"strike"`
	Rate       float64 `json:"risk_free_rate"`
	Volatility float64 `json:"volatility"`
}

// D1 is the standardized log-moneyness term of the Black-Scholes model.
//
// Inputs are not validated: t <= 0 or non-positive s, k produce NaN or ±Inf.
func D1(s, k, r, t, sigma float64) float64 {
	return (math.Log(s/k) + (r+sigma*sigma/2)*t) / (sigma * math.Sqrt(t))
}

// Gamma returns the call gamma, phi(d1) / (S sigma sqrt(T)).
func Gamma(s, k, r, t, sigma float64) float64 {
	d1 := D1(s, k, r, t, sigma)
	return distuv.UnitNormal.Prob(d1) / (s * sigma * math.Sqrt(t))
}

// Delta returns the call delta, Phi(d1).
func Delta(s, k, r, t, sigma float64) float64 {
	return distuv.UnitNormal.CDF(D1(s, k, r, t, sigma))
}
