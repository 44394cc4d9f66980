package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/praxislabs/compass/internal/adapters/http/api"
	"github.com/praxislabs/compass/internal/adapters/insight"
	service "github.com/praxislabs/compass/internal/app"
	"github.com/praxislabs/compass/internal/domain/cohort"
	"github.com/praxislabs/compass/internal/domain/rollup"
	"github.com/praxislabs/compass/internal/domain/trend"
	"github.com/praxislabs/compass/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

// stubDeps implements api.Dependencies and api.StatsProvider with canned
// responses, recording the last filter each handler received.
type stubDeps struct {
	lastFilter cohort.Filter

	people     []*rollup.PersonStat
	points     []trend.Point
	quotes     []string
	insight    *insight.Insight
	insightErr error
	refreshed  int
}

func (d *stubDeps) ComputeOverview(ctx context.Context, f cohort.Filter) service.Overview {
	d.lastFilter = f
	return service.Overview{SnapshotID: "snap-1", Filter: f, RosterCount: 4}
}

func (d *stubDeps) ComputePeople(ctx context.Context, f cohort.Filter) []*rollup.PersonStat {
	d.lastFilter = f
	return d.people
}

func (d *stubDeps) ComputeTrend(ctx context.Context, f cohort.Filter) []trend.Point {
	d.lastFilter = f
	return d.points
}

func (d *stubDeps) ComputeQuotes(ctx context.Context, f cohort.Filter) []string {
	d.lastFilter = f
	return d.quotes
}

func (d *stubDeps) GenerateInsight(ctx context.Context, view string, f cohort.Filter) (*insight.Insight, error) {
	d.lastFilter = f
	if d.insightErr != nil {
		return nil, d.insightErr
	}
	return d.insight, nil
}

func (d *stubDeps) Refresh(ctx context.Context) {
	d.refreshed++
}

func (d *stubDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func serve(deps *stubDeps, method, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	api.NewServer(deps, deps).Register(context.Background(), mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestFilterParsing(t *testing.T) {
	Convey("Given the overview endpoint", t, func() {
		deps := &stubDeps{}

		Convey("When no filter parameters are supplied", func() {
			rec := serve(deps, http.MethodGet, "/api/overview")

			Convey("Then the all filter is used", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastFilter.IsAll(), ShouldBeTrue)
			})
		})

		Convey("When a program filter carries a value", func() {
			rec := serve(deps, http.MethodGet, "/api/overview?filter=program&value=Leadership")

			Convey("Then the program filter is parsed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastFilter, ShouldResemble, cohort.ForProgram("Leadership"))
			})
		})

		Convey("When a cohort filter is missing its value", func() {
			rec := serve(deps, http.MethodGet, "/api/overview?filter=cohort")

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "bad_request")
			})
		})

		Convey("When the filter kind is unknown", func() {
			rec := serve(deps, http.MethodGet, "/api/overview?filter=team&value=x")

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestViewHandlers(t *testing.T) {
	Convey("Given the view endpoints", t, func() {
		Convey("When the overview is requested", func() {
			deps := &stubDeps{}
			rec := serve(deps, http.MethodGet, "/api/overview")

			Convey("Then the KPI summary is returned as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var ov service.Overview
				So(json.Unmarshal(rec.Body.Bytes(), &ov), ShouldBeNil)
				So(ov.SnapshotID, ShouldEqual, "snap-1")
				So(ov.RosterCount, ShouldEqual, 4)
			})
		})

		Convey("When people are requested", func() {
			deps := &stubDeps{people: []*rollup.PersonStat{{Key: "ada lovelace", Completed: 3}}}
			rec := serve(deps, http.MethodGet, "/api/people")

			Convey("Then the stat list is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "ada lovelace")
			})
		})

		Convey("When the trend has no data", func() {
			deps := &stubDeps{}
			rec := serve(deps, http.MethodGet, "/api/trend")

			Convey("Then an empty array is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldStartWith, "[]")
			})
		})

		Convey("When quotes come back empty", func() {
			deps := &stubDeps{}
			rec := serve(deps, http.MethodGet, "/api/quotes")

			Convey("Then an empty array is returned rather than null", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldStartWith, "[]")
			})
		})

		Convey("When a refresh is posted", func() {
			deps := &stubDeps{}
			rec := serve(deps, http.MethodPost, "/api/refresh")

			Convey("Then the reload is triggered", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				So(deps.refreshed, ShouldEqual, 1)
			})
		})

		Convey("When a refresh uses the wrong method", func() {
			deps := &stubDeps{}
			rec := serve(deps, http.MethodGet, "/api/refresh")

			Convey("Then nothing is reloaded", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				So(deps.refreshed, ShouldEqual, 0)
			})
		})

		Convey("When stats are requested", func() {
			deps := &stubDeps{}
			rec := serve(deps, http.MethodGet, "/stats")

			Convey("Then the provider output is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "started")
			})
		})
	})
}

func TestInsightHandler(t *testing.T) {
	Convey("Given the insight endpoint", t, func() {
		Convey("When the view is unknown", func() {
			deps := &stubDeps{}
			rec := serve(deps, http.MethodGet, "/api/insight?view=finance")

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the generator succeeds", func() {
			deps := &stubDeps{insight: &insight.Insight{Headline: "Strong start"}}
			rec := serve(deps, http.MethodGet, "/api/insight?view=overview")

			Convey("Then the commentary is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "Strong start")
			})
		})

		Convey("When the generator is rate limited", func() {
			deps := &stubDeps{insightErr: insight.ErrRateLimited}
			rec := serve(deps, http.MethodGet, "/api/insight?view=overview")

			Convey("Then the limit surfaces as 429", func() {
				So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
				So(rec.Body.String(), ShouldContainSubstring, "rate_limited")
			})
		})

		Convey("When the generator is misconfigured", func() {
			deps := &stubDeps{insightErr: insight.ErrBadConfig}
			rec := serve(deps, http.MethodGet, "/api/insight?view=impact")

			Convey("Then the failure surfaces as a gateway error", func() {
				So(rec.Code, ShouldEqual, http.StatusBadGateway)
				So(rec.Body.String(), ShouldContainSubstring, "bad_config")
			})
		})
	})
}
