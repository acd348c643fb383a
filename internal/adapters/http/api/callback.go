package api

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/okian/indiacovid/internal/domain/chart"
	"github.com/okian/indiacovid/internal/domain/model"
	"github.com/okian/indiacovid/pkg/logger"
)

// maxCallbackBody bounds the request body; a selection is a few bytes.
const maxCallbackBody = 4 << 10

// stateGraphRequest mirrors the OpenAPI schema for POST /callbacks/state-graph.
type stateGraphRequest struct {
	Status *string `json:"status"`
}

// StateGraphDependencies defines the interface the callback needs.
type StateGraphDependencies interface {
	StateGraph(ctx context.Context, status model.Status) chart.Figure
}

// StateGraphHandler serves the status dropdown callback. It holds no
// selection state: the browser posts the dropdown's current value on every
// change and gets back the replacement figure for the state-graph slot.
type StateGraphHandler struct {
	deps   StateGraphDependencies
	logger logger.Logger
}

// NewStateGraphHandler creates a new callback handler.
func NewStateGraphHandler(deps StateGraphDependencies, log logger.Logger) *StateGraphHandler {
	if log == nil {
		log = logger.Get()
	}
	return &StateGraphHandler{deps: deps, logger: log}
}

// HandleStateGraph handles POST /callbacks/state-graph requests. A status
// outside the dropdown options is not an error; it yields a chart with no
// bars.
func (h *StateGraphHandler) HandleStateGraph(w http.ResponseWriter, r *http.Request) {
	const op = "api.state_graph"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req stateGraphRequest
	body := http.MaxBytesReader(w, r.Body, maxCallbackBody)
	if err := sonic.ConfigStd.NewDecoder(body).Decode(&req); err != nil {
		err = wrapKind(op, ErrBadRequest, err)
		h.logger.Warn(r.Context(), "rejected state graph callback", logger.Error(err))
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if req.Status == nil {
		err := wrapKind(op, ErrBadRequest, errMissingStatus)
		h.logger.Warn(r.Context(), "rejected state graph callback", logger.Error(err))
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	status := model.ParseStatus(*req.Status)
	if !status.Valid() {
		h.logger.Debug(r.Context(), "state graph requested for unknown status",
			logger.String("status", *req.Status),
		)
	}
	writeJSON(w, http.StatusOK, h.deps.StateGraph(r.Context(), status))
}
