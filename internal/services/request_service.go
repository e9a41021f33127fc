package services

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/jwaldner/greeksurface/internal/dto"
)

// RequestService handles HTTP request parsing
type RequestService struct{}

// NewRequestService creates a new request service
func NewRequestService() *RequestService {
	return &RequestService{}
}

// ParseGreeksRequest reads ?spot=&months= from r. Both are required and
// must be positive and finite.
func (s *RequestService) ParseGreeksRequest(r *http.Request) (*dto.GreeksRequest, error) {
	spot, err := s.positiveParam(r, "spot")
	if err != nil {
		return nil, err
	}
	months, err := s.positiveParam(r, "months")
	if err != nil {
		return nil, err
	}

	return &dto.GreeksRequest{Spot: spot, Months: months}, nil
}

func (s *RequestService) positiveParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	if !(v > 0) || math.IsInf(v, 1) {
		return 0, fmt.Errorf("%s must be positive and finite, got %v", name, v)
	}
	return v, nil
}
