// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// OverviewHandler handles KPI summary requests.
type OverviewHandler struct {
	deps Dependencies
}

// NewOverviewHandler creates a new overview handler.
func NewOverviewHandler(deps Dependencies) *OverviewHandler {
	return &OverviewHandler{deps: deps}
}

// HandleGetOverview handles GET /api/overview?filter=&value= requests.
func (h *OverviewHandler) HandleGetOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ComputeOverview(r.Context(), f))
}

// PeopleHandler handles per-person stat list requests.
type PeopleHandler struct {
	deps Dependencies
}

// NewPeopleHandler creates a new people handler.
func NewPeopleHandler(deps Dependencies) *PeopleHandler {
	return &PeopleHandler{deps: deps}
}

// HandleGetPeople handles GET /api/people?filter=&value= requests.
func (h *PeopleHandler) HandleGetPeople(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ComputePeople(r.Context(), f))
}

// TrendHandler handles monthly trend requests.
type TrendHandler struct {
	deps Dependencies
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(deps Dependencies) *TrendHandler {
	return &TrendHandler{deps: deps}
}

// HandleGetTrend handles GET /api/trend?filter=&value= requests.
func (h *TrendHandler) HandleGetTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	points := h.deps.ComputeTrend(r.Context(), f)
	if points == nil {
		// An empty series means "no data"; distinguish it from a zero line.
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// QuotesHandler handles qualitative excerpt requests.
type QuotesHandler struct {
	deps Dependencies
}

// NewQuotesHandler creates a new quotes handler.
func NewQuotesHandler(deps Dependencies) *QuotesHandler {
	return &QuotesHandler{deps: deps}
}

// HandleGetQuotes handles GET /api/quotes?filter=&value= requests.
func (h *QuotesHandler) HandleGetQuotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	out := h.deps.ComputeQuotes(r.Context(), f)
	if out == nil {
		out = []string{}
	}
	writeJSON(w, http.StatusOK, out)
}

// RefreshHandler handles snapshot reload requests.
type RefreshHandler struct {
	deps Dependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Dependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandlePostRefresh handles POST /api/refresh requests.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.Refresh(r.Context())
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refreshed"})
}
