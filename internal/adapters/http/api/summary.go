package api

import (
	"net/http"

	"github.com/okian/indiacovid/internal/domain/aggregate"
)

const ratePlaces = 2

// summaryResponse mirrors the OpenAPI schema for GET /api/summary. Rates
// are percentages rendered with two decimals.
type summaryResponse struct {
	Total        int    `json:"total"`
	Active       int    `json:"active"`
	Recovered    int    `json:"recovered"`
	Deceased     int    `json:"deceased"`
	RecoveryRate string `json:"recovery_rate"`
	FatalityRate string `json:"fatality_rate"`
}

// SummaryDependencies defines what the summary handler reads.
type SummaryDependencies interface {
	Counters() aggregate.Counters
}

// SummaryHandler handles summary requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleSummary handles GET /api/summary requests.
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	c := h.deps.Counters()
	writeJSON(w, http.StatusOK, summaryResponse{
		Total:        c.Total,
		Active:       c.Active,
		Recovered:    c.Recovered,
		Deceased:     c.Deceased,
		RecoveryRate: c.RecoveryRate().StringFixed(ratePlaces),
		FatalityRate: c.FatalityRate().StringFixed(ratePlaces),
	})
}
