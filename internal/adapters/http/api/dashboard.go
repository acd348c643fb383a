package api

import (
	"bytes"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/okian/indiacovid/internal/domain/chart"
	"github.com/okian/indiacovid/internal/domain/layout"
	"github.com/okian/indiacovid/pkg/logger"
)

// LayoutProvider exposes the tree rendered at GET /.
type LayoutProvider interface {
	Layout() *layout.Node
}

// dashboardPage is the data handed to static/dashboard.html.
type dashboardPage struct {
	Title      string
	Root       *layout.Node
	StateGraph string
}

// dashboardHandler renders the layout tree as the dashboard page.
type dashboardHandler struct {
	deps   LayoutProvider
	logger logger.Logger
}

func newDashboardHandler(deps LayoutProvider, log logger.Logger) *dashboardHandler {
	return &dashboardHandler{deps: deps, logger: log}
}

// HandleDashboard handles GET / requests. Every other path under / that no
// more specific route claims is a 404.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard"
	if r.URL.Path != PathDashboard {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, "GET, HEAD")
		return
	}

	root := h.deps.Layout()
	if root == nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", ErrNotReady)
		return
	}

	var buf bytes.Buffer
	page := dashboardPage{Title: pageTitle(root), Root: root, StateGraph: PathStateGraph}
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		err = wrapKind(op, ErrRender, err)
		h.logger.Error(r.Context(), "failed to render dashboard", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrRender)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// pageTitle is the text of the first top-level heading.
func pageTitle(root *layout.Node) string {
	title := layout.DefaultTitle
	found := false
	root.Walk(func(n *layout.Node) {
		if !found && n.Kind == layout.KindHeading && n.Level == 1 {
			title, found = n.Text, true
		}
	})
	return title
}

func figureJSON(f *chart.Figure) (string, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := sonic.ConfigStd.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
