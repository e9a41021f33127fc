package dto

// TemplateData represents data passed to HTML templates
type TemplateData struct {
	Title      string
	ImageURL   string
	DataURL    string
	Strike     float64
	Rate       float64
	Volatility float64
	Rows       int
	Cols       int
}

// GreeksRequest is a single-cell evaluation request
type GreeksRequest struct {
	Spot   float64 `json:"spot"`
	Months float64 `json:"months"`
}
