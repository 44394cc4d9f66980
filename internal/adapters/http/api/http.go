// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/praxislabs/compass/internal/adapters/insight"
	service "github.com/praxislabs/compass/internal/app"
	"github.com/praxislabs/compass/internal/domain/cohort"
	"github.com/praxislabs/compass/internal/domain/rollup"
	"github.com/praxislabs/compass/internal/domain/trend"
)

// Dependencies required by HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	ComputeOverview(ctx context.Context, f cohort.Filter) service.Overview
	ComputePeople(ctx context.Context, f cohort.Filter) []*rollup.PersonStat
	ComputeTrend(ctx context.Context, f cohort.Filter) []trend.Point
	ComputeQuotes(ctx context.Context, f cohort.Filter) []string
	GenerateInsight(ctx context.Context, view string, f cohort.Filter) (*insight.Insight, error)
	Refresh(ctx context.Context)
}

// Server wires HTTP routes for the analytics API.
type Server struct {
	overviewHandler *OverviewHandler
	peopleHandler   *PeopleHandler
	trendHandler    *TrendHandler
	quotesHandler   *QuotesHandler
	insightHandler  *InsightHandler
	refreshHandler  *RefreshHandler
	statsHandler    *StatsHandler
	healthHandler   *HealthHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		overviewHandler: NewOverviewHandler(deps),
		peopleHandler:   NewPeopleHandler(deps),
		trendHandler:    NewTrendHandler(deps),
		quotesHandler:   NewQuotesHandler(deps),
		insightHandler:  NewInsightHandler(deps),
		refreshHandler:  NewRefreshHandler(deps),
		statsHandler:    NewStatsHandler(statsProvider),
		healthHandler:   NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/overview", MetricsMiddleware(s.overviewHandler.HandleGetOverview, "overview"))
	mux.HandleFunc("/api/people", MetricsMiddleware(s.peopleHandler.HandleGetPeople, "people"))
	mux.HandleFunc("/api/trend", MetricsMiddleware(s.trendHandler.HandleGetTrend, "trend"))
	mux.HandleFunc("/api/quotes", MetricsMiddleware(s.quotesHandler.HandleGetQuotes, "quotes"))
	mux.HandleFunc("/api/insight", MetricsMiddleware(s.insightHandler.HandleGetInsight, "insight"))
	mux.HandleFunc("/api/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
}

// filterFromQuery parses the filter/value query parameters into a cohort
// filter. Missing parameters default to the all filter.
func filterFromQuery(r *http.Request) (cohort.Filter, error) {
	kind := r.URL.Query().Get("filter")
	value := r.URL.Query().Get("value")

	switch cohort.Kind(kind) {
	case "", cohort.All:
		return cohort.Everything(), nil
	case cohort.Program:
		if value == "" {
			return cohort.Filter{}, fmt.Errorf("%w: program filter requires value", ErrBadRequest)
		}
		return cohort.ForProgram(value), nil
	case cohort.Cohort:
		if value == "" {
			return cohort.Filter{}, fmt.Errorf("%w: cohort filter requires value", ErrBadRequest)
		}
		return cohort.ForCohort(value), nil
	default:
		return cohort.Filter{}, fmt.Errorf("%w: unknown filter kind %q", ErrBadRequest, kind)
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
