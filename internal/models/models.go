package models

import (
	greeks "github.com/jwaldner/greeksurface/greeks_lib"
	"github.com/jwaldner/greeksurface/internal/surface"
)

// SurfaceResponse represents the complete /api/surface response
type SurfaceResponse struct {
	Success bool             `json:"success"`
	Data    SurfaceData      `json:"data"`
	Meta    ResponseMetadata `json:"meta"`
}

// SurfaceData carries both axes and one row per time point for each measure.
type SurfaceData struct {
	Prices  []float64       `json:"prices"`
	Months  []float64       `json:"months"`
	Gamma   [][]float64     `json:"gamma"`
	Delta   [][]float64     `json:"delta"`
	Summary surface.Summary `json:"summary"`
}

type ResponseMetadata struct {
	Title           string        `json:"title"`
	Market          greeks.Market `json:"market"`
	Rows            int           `json:"rows"`
	Cols            int           `json:"cols"`
	Timestamp       string        `json:"timestamp"`
	ComputeDuration float64       `json:"compute_duration_ms"`
}

// GreeksResponse is a single-cell evaluation
type GreeksResponse struct {
	Spot   float64       `json:"spot"`
	Months float64       `json:"months"`
	Years  float64       `json:"years"`
	Delta  float64       `json:"delta"`
	Gamma  float64       `json:"gamma"`
	Market greeks.Market `json:"market"`
}

// ErrorResponse is written for rejected requests
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
