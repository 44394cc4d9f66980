// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/praxislabs/compass/internal/adapters/insight"
)

// Views the insight generator understands.
var insightViews = map[string]struct{}{
	"overview": {},
	"sessions": {},
	"impact":   {},
	"baseline": {},
}

// InsightHandler proxies view summaries to the external generator.
type InsightHandler struct {
	deps Dependencies
}

// NewInsightHandler creates a new insight handler.
func NewInsightHandler(deps Dependencies) *InsightHandler {
	return &InsightHandler{deps: deps}
}

// HandleGetInsight handles GET /api/insight?view=&filter=&value= requests.
// Generator failure classes map to distinct codes and statuses; the rest of
// the metrics endpoints are unaffected by a generator outage.
func (h *InsightHandler) HandleGetInsight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view := r.URL.Query().Get("view")
	if _, ok := insightViews[view]; !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrUnknownView)
		return
	}
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	out, err := h.deps.GenerateInsight(r.Context(), view, f)
	if err != nil {
		status, code := insightFailure(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// insightFailure maps generator failure classes onto HTTP responses.
func insightFailure(err error) (int, string) {
	switch {
	case errors.Is(err, insight.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, insight.ErrBadConfig):
		return http.StatusBadGateway, "bad_config"
	case errors.Is(err, insight.ErrModelUnavailable):
		return http.StatusBadGateway, "model_unavailable"
	default:
		return http.StatusBadGateway, "insight_failed"
	}
}
