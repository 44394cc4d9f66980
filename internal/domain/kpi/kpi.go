// Package kpi computes scalar program metrics from aggregated stats and raw
// survey/score inputs. Functions are pure and total: "no data" is reported
// as nil, never as a zero that could be mistaken for a measurement.
package kpi

import (
	"math"
	"strings"
	"time"

	"github.com/praxislabs/compass/internal/domain/cohort"
	"github.com/praxislabs/compass/internal/domain/model"
	"github.com/praxislabs/compass/internal/domain/rollup"
)

// Default policy constants. Both are overridable via options; the completion
// threshold in particular is an inherited policy choice, not a measured fact.
const (
	DefaultSessionsPerPerson   = 12
	DefaultCompletionThreshold = 5

	promoterFloor   = 9
	detractorCeil   = 6
	earlyPhaseShare = 0.33
	midPhaseShare   = 0.66
)

// Program phases reported to the insight generator.
const (
	PhaseEarly   = "Early"
	PhaseMid     = "Mid"
	PhaseLate    = "Late"
	PhaseUnknown = "Unknown"
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithDefaultSessionsPerPerson overrides the fallback sessions-per-person
// target used when no configuration row matches the account.
func WithDefaultSessionsPerPerson(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.defaultSessions = n
		}
	}
}

// WithCompletionThreshold overrides the minimum number of people with a
// valid pre/post pair required before a cohort counts as completed.
func WithCompletionThreshold(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.completionThreshold = n
		}
	}
}

// Calculator carries the policy knobs for metric computation.
type Calculator struct {
	defaultSessions     int
	completionThreshold int
}

// New creates a Calculator with default policy.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		defaultSessions:     DefaultSessionsPerPerson,
		completionThreshold: DefaultCompletionThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NPS computes the Net Promoter Score over responses with an answered NPS
// field. Returns nil when there are zero respondents so "no data" stays
// distinguishable from a true zero.
func NPS(responses []model.SurveyResponse) *int {
	var promoters, detractors, total int
	for _, r := range responses {
		if r.NPS == nil {
			continue
		}
		total++
		switch {
		case *r.NPS >= promoterFloor:
			promoters++
		case *r.NPS <= detractorCeil:
			detractors++
		}
	}
	if total == 0 {
		return nil
	}
	score := int(math.Round(float64(promoters-detractors) / float64(total) * 100))
	return &score
}

// CSAT computes the mean satisfaction score to one decimal place. Nil when
// no respondents answered the satisfaction question.
func CSAT(responses []model.SurveyResponse) *float64 {
	var sum float64
	var n int
	for _, r := range responses {
		if r.Satisfaction == nil {
			continue
		}
		sum += *r.Satisfaction
		n++
	}
	if n == 0 {
		return nil
	}
	avg := math.Round(sum/float64(n)*10) / 10
	return &avg
}

// CompetencyGrowth is the per-competency pre/post movement.
type CompetencyGrowth struct {
	Competency string  `json:"competency"`
	AvgPre     float64 `json:"avg_pre"`
	AvgPost    float64 `json:"avg_post"`
	GrowthPct  float64 `json:"growth_pct"`
	Pairs      int     `json:"pairs"`
}

// Growth averages pre and post scores per competency over record pairs where
// both values are strictly positive (zero denotes "not assessed"), then
// derives the growth percentage. Output order follows first encounter.
func Growth(scores []model.CompetencyScore) []CompetencyGrowth {
	type acc struct {
		pre, post float64
		n         int
	}
	byComp := make(map[string]*acc)
	var order []string

	for _, sc := range scores {
		if sc.Pre <= 0 || sc.Post <= 0 {
			continue
		}
		comp := strings.TrimSpace(sc.Competency)
		a, ok := byComp[comp]
		if !ok {
			a = &acc{}
			byComp[comp] = a
			order = append(order, comp)
		}
		a.pre += sc.Pre
		a.post += sc.Post
		a.n++
	}

	out := make([]CompetencyGrowth, 0, len(order))
	for _, comp := range order {
		a := byComp[comp]
		avgPre := a.pre / float64(a.n)
		avgPost := a.post / float64(a.n)
		g := CompetencyGrowth{
			Competency: comp,
			AvgPre:     avgPre,
			AvgPost:    avgPost,
			Pairs:      a.n,
		}
		if avgPre > 0 {
			g.GrowthPct = (avgPost - avgPre) / avgPre * 100
		}
		out = append(out, g)
	}
	return out
}

// Utilization is the share of roster people with at least one session,
// rounded to the nearest integer percentage.
func Utilization(stats []*rollup.PersonStat, rosterCount int) int {
	if rosterCount <= 0 {
		return 0
	}
	var engaged int
	for _, st := range stats {
		if st.Total > 0 {
			engaged++
		}
	}
	return int(math.Round(float64(engaged) / float64(rosterCount) * 100))
}

// Progress reports how far the program is through its session budget,
// capped at 100.
func Progress(completed, rosterCount, sessionsPerPerson int) int {
	target := rosterCount * sessionsPerPerson
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(target) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// SessionsPerPerson resolves the per-person session target from the
// configuration row matching the account name, falling back to the default.
func (c *Calculator) SessionsPerPerson(configs []model.ProgramConfig, account string) int {
	account = strings.TrimSpace(account)
	for _, cfg := range configs {
		if strings.TrimSpace(cfg.Account) == account && cfg.SessionsPerPerson > 0 {
			return cfg.SessionsPerPerson
		}
	}
	return c.defaultSessions
}

// Phase classifies how far the program is through its configured interval.
// Unknown when either boundary date is absent.
func Phase(cfg model.ProgramConfig, now time.Time) string {
	if cfg.StartDate == nil || cfg.EndDate == nil {
		return PhaseUnknown
	}
	total := cfg.EndDate.Sub(*cfg.StartDate)
	if total <= 0 {
		return PhaseUnknown
	}
	elapsed := now.Sub(*cfg.StartDate)
	switch frac := elapsed.Seconds() / total.Seconds(); {
	case frac <= earlyPhaseShare:
		return PhaseEarly
	case frac <= midPhaseShare:
		return PhaseMid
	default:
		return PhaseLate
	}
}

// Completed reports whether the filtered cohort counts as finished: a
// specific filter plus at least the threshold number of distinct people
// holding a valid pre/post pair. This is a heuristic completion signal
// inherited from the source data, not a status flag.
func (c *Calculator) Completed(f cohort.Filter, scores []model.CompetencyScore) bool {
	if f.IsAll() {
		return false
	}
	people := make(map[string]struct{})
	for _, sc := range scores {
		if sc.Pre <= 0 || sc.Post <= 0 {
			continue
		}
		if !cohort.MatchScore(sc, f) {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(sc.Email))
		if email == "" {
			continue
		}
		people[email] = struct{}{}
	}
	return len(people) >= c.completionThreshold
}
