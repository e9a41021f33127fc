package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	greeks "github.com/jwaldner/greeksurface/greeks_lib"
	"github.com/jwaldner/greeksurface/internal/dto"
	"github.com/jwaldner/greeksurface/internal/logger"
	"github.com/jwaldner/greeksurface/internal/models"
	"github.com/jwaldner/greeksurface/internal/services"
	"github.com/jwaldner/greeksurface/internal/surface"
	"github.com/jwaldner/greeksurface/internal/utils"
)

// SurfaceRenderer draws a surface as an image.
type SurfaceRenderer interface {
	Render(w io.Writer, s *surface.Surface) error
}

// SurfaceHandler serves one precomputed surface.
type SurfaceHandler struct {
	surface         *surface.Surface
	summary         surface.Summary
	computeDuration time.Duration
	image           []byte
	engine          *greeks.Engine
	requests        *services.RequestService
	page            *template.Template
}

// NewSurfaceHandler renders s once up front; every request is served from
// that result.
func NewSurfaceHandler(s *surface.Surface, computeDuration time.Duration, renderer SurfaceRenderer, engine *greeks.Engine) (*SurfaceHandler, error) {
	summary, err := s.Summary()
	if err != nil {
		return nil, fmt.Errorf("summarize surface: %w", err)
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := renderer.Render(&buf, s); err != nil {
		return nil, fmt.Errorf("render surface: %w", err)
	}
	logger.Info.Printf("🎨 Surface rendered in %v (%d bytes)", time.Since(start), buf.Len())

	return &SurfaceHandler{
		surface:         s,
		summary:         summary,
		computeDuration: computeDuration,
		image:           buf.Bytes(),
		engine:          engine,
		requests:        services.NewRequestService(),
		page:            template.Must(template.New("home").Parse(homeTemplate)),
	}, nil
}

// Register mounts every endpoint on r.
func (h *SurfaceHandler) Register(r *mux.Router) {
	r.HandleFunc("/", h.HomeHandler).Methods("GET")
	r.HandleFunc("/surface.png", h.ImageHandler).Methods("GET")
	r.HandleFunc("/api/surface", h.SurfaceDataHandler).Methods("GET")
	r.HandleFunc("/api/greeks", h.GreeksHandler).Methods("GET")
}

// HomeHandler shows the rendered surface.
func (h *SurfaceHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	rows, cols := h.surface.Grid.Dims()
	data := dto.TemplateData{
		Title:      surface.Title,
		ImageURL:   "/surface.png",
		DataURL:    "/api/surface",
		Strike:     h.surface.Market.Strike,
		Rate:       h.surface.Market.Rate,
		Volatility: h.surface.Market.Volatility,
		Rows:       rows,
		Cols:       cols,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(w, data); err != nil {
		logger.Error.Printf("❌ Template execution failed: %v", err)
	}
}

// ImageHandler returns the cached PNG.
func (h *SurfaceHandler) ImageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(h.image)))
	if _, err := w.Write(h.image); err != nil {
		logger.Warn.Printf("⚠️ Writing surface image failed: %v", err)
	}
}

// SurfaceDataHandler returns both axes, the gamma surface, the delta
// overlay and their summary.
func (h *SurfaceHandler) SurfaceDataHandler(w http.ResponseWriter, r *http.Request) {
	rows, cols := h.surface.Grid.Dims()
	response := models.SurfaceResponse{
		Success: true,
		Data: models.SurfaceData{
			Prices:  h.surface.Grid.Prices,
			Months:  h.surface.Grid.Months,
			Gamma:   surface.Rows(h.surface.Gamma),
			Delta:   surface.Rows(h.surface.Delta),
			Summary: h.summary,
		},
		Meta: models.ResponseMetadata{
			Title:           surface.Title,
			Market:          h.surface.Market,
			Rows:            rows,
			Cols:            cols,
			Timestamp:       time.Now().Format(time.RFC3339),
			ComputeDuration: float64(h.computeDuration.Microseconds()) / 1000.0,
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// GreeksHandler evaluates one cell: ?spot=<price>&months=<tenor>.
func (h *SurfaceHandler) GreeksHandler(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.ParseGreeksRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	spot, months := req.Spot, req.Months

	years := utils.MonthsToYears(months)
	results, err := h.engine.CalculateGreeks([]greeks.OptionContract{
		greeks.Call("SURFACE", spot, years, h.surface.Market),
	})
	if err != nil {
		logger.Error.Printf("❌ Greeks calculation failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	logger.Debug.Printf("🧮 Greeks at spot=%.2f months=%.2f: delta=%.6f gamma=%.6f", spot, months, results[0].Delta, results[0].Gamma)

	// Extreme but valid inputs can underflow the formulas into NaN or Inf.
	if !finite(results[0].Delta) || !finite(results[0].Gamma) {
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: fmt.Sprintf("greeks are undefined at spot=%v months=%v", spot, months),
		})
		return
	}

	writeJSON(w, http.StatusOK, models.GreeksResponse{
		Spot:   spot,
		Months: months,
		Years:  years,
		Delta:  results[0].Delta,
		Gamma:  results[0].Gamma,
		Market: h.surface.Market,
	})
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// writeJSON encodes body before committing the status, so an unencodable
// body becomes a 500 instead of an empty reply.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	payload, err := json.Marshal(body)
	if err != nil {
		logger.Error.Printf("❌ Encoding response failed: %v", err)
		status = http.StatusInternalServerError
		payload, _ = json.Marshal(models.ErrorResponse{Error: "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(payload, '\n')); err != nil {
		logger.Warn.Printf("⚠️ Writing response failed: %v", err)
	}
}

const homeTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p>Strike ${{.Strike}}, risk-free rate {{.Rate}}, volatility {{.Volatility}} &middot; {{.Rows}} tenors &times; {{.Cols}} prices &middot; <a href="{{.DataURL}}">data</a></p>
  <img src="{{.ImageURL}}" alt="{{.Title}}">
</body>
</html>
`
