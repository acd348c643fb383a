// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/okian/indiacovid/internal/domain/aggregate"
	"github.com/okian/indiacovid/internal/domain/chart"
	"github.com/okian/indiacovid/internal/domain/layout"
	"github.com/okian/indiacovid/internal/domain/model"
	"github.com/okian/indiacovid/pkg/logger"
)

// Route paths.
const (
	PathDashboard  = "/"
	PathStateGraph = "/callbacks/state-graph"
	PathSummary    = "/api/summary"
	PathStats      = "/api/stats"
	PathHealth     = "/healthz"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Layout returns the tree built at startup, nil until data is loaded.
	Layout() *layout.Node

	// Counters returns the load-time case counters.
	Counters() aggregate.Counters

	// StateGraph recomputes the bar chart for a status.
	StateGraph(ctx context.Context, status model.Status) chart.Figure
}

// Server wires HTTP routes for the dashboard.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	summaryHandler    *SummaryHandler
	stateGraphHandler *StateGraphHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	log := logger.Named("api")
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		summaryHandler:    NewSummaryHandler(deps),
		stateGraphHandler: NewStateGraphHandler(deps, log),
		dashboardHandler:  newDashboardHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc(PathHealth, MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc(PathStats, MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc(PathSummary, MetricsMiddleware(s.summaryHandler.HandleSummary, "summary"))
	mux.HandleFunc(PathStateGraph, MetricsMiddleware(s.stateGraphHandler.HandleStateGraph, "state_graph"))
	mux.HandleFunc(PathDashboard, MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprintf(w, "encode response: %v", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// methodNotAllowed answers a request whose method the route does not serve.
func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}
