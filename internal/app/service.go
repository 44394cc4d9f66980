// Package service provides the core business service that implements the
// dependencies required by the HTTP API: snapshot loading, per-view
// recomputation, and insight summarization.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/praxislabs/compass/internal/adapters/insight"
	"github.com/praxislabs/compass/internal/adapters/refresh"
	"github.com/praxislabs/compass/internal/adapters/store"
	"github.com/praxislabs/compass/internal/domain/cohort"
	"github.com/praxislabs/compass/internal/domain/exclusion"
	"github.com/praxislabs/compass/internal/domain/kpi"
	"github.com/praxislabs/compass/internal/domain/model"
	"github.com/praxislabs/compass/internal/domain/quotes"
	"github.com/praxislabs/compass/internal/domain/rollup"
	"github.com/praxislabs/compass/internal/domain/trend"
	"github.com/praxislabs/compass/pkg/logger"
	"github.com/praxislabs/compass/pkg/metrics"
)

// InsightGenerator abstracts the external commentary service.
type InsightGenerator interface {
	Generate(ctx context.Context, s insight.Summary) (*insight.Insight, error)
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the upstream data store.
func WithStore(st store.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithInsightGenerator sets the external insight client.
func WithInsightGenerator(g InsightGenerator) Option {
	return func(s *Service) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithHiddenIDs sets the person identifiers excluded from every rollup.
// The set is treated as an immutable input.
func WithHiddenIDs(ids []string) Option {
	return func(s *Service) {
		s.hidden = exclusion.NewSet(ids...)
	}
}

// WithRefreshInterval sets the background snapshot refresh cadence.
// Zero or negative disables the refresher.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		s.refreshInterval = d
	}
}

// WithCalculatorOptions forwards policy knobs to the metric calculator.
func WithCalculatorOptions(opts ...kpi.Option) Option {
	return func(s *Service) {
		s.calcOpts = opts
	}
}

// WithNow overrides the clock (used by tests for stable classification).
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service computes every view wholesale from the cached snapshot. All
// aggregation is synchronous; only the snapshot fetch fans out.
type Service struct {
	mu sync.RWMutex

	store     store.Store
	generator InsightGenerator
	calc      *kpi.Calculator
	calcOpts  []kpi.Option
	hidden    exclusion.Set
	refresher *refresh.Refresher

	refreshInterval time.Duration
	now             func() time.Time

	snapshot *model.Snapshot
	started  bool

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store: store.NewMemoryStore(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.calc = kpi.New(s.calcOpts...)
	return s
}

// Start loads the first snapshot and begins the background refresher.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting analytics service")
	s.Refresh(ctx)

	if s.refreshInterval > 0 {
		s.refresher = refresh.New(s.refreshInterval, s.Refresh,
			refresh.WithLogger(s.logger.Named("refresh")))
		s.refresher.Start(ctx)
	}

	s.logger.Info(ctx, "analytics service started",
		logger.Int("hidden_ids", s.hidden.Len()),
		logger.Bool("refresher", s.refreshInterval > 0),
	)
	return nil
}

// Stop halts the background refresher.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	if s.refresher != nil {
		s.refresher.Stop()
	}
	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// Refresh re-fetches the snapshot from the upstream store. Partial upstream
// failures surface as empty record sets inside the snapshot, never as an
// error here.
func (s *Service) Refresh(ctx context.Context) {
	snap := store.LoadSnapshot(ctx, s.store, s.log())

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

func (s *Service) log() logger.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logger.Get()
}

func (s *Service) current() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return &model.Snapshot{}
	}
	return s.snapshot
}

// Overview is the KPI summary for one filtered view.
type Overview struct {
	SnapshotID      string                 `json:"snapshot_id"`
	FetchedAt       time.Time              `json:"fetched_at"`
	Filter          cohort.Filter          `json:"filter"`
	RosterCount     int                    `json:"roster_count"`
	EngagedCount    int                    `json:"engaged_count"`
	Completed       int                    `json:"completed_sessions"`
	NoShows         int                    `json:"no_shows"`
	Scheduled       int                    `json:"scheduled_sessions"`
	TotalSessions   int                    `json:"total_sessions"`
	Utilization     int                    `json:"utilization_pct"`
	Progress        int                    `json:"progress_pct"`
	NPS             *int                   `json:"nps"`
	CSAT            *float64               `json:"csat"`
	Growth          []kpi.CompetencyGrowth `json:"growth"`
	Phase           string                 `json:"phase"`
	CohortCompleted bool                   `json:"cohort_completed"`
}

// ComputeOverview derives the scalar KPI summary for a filter.
func (s *Service) ComputeOverview(ctx context.Context, f cohort.Filter) Overview {
	snap := s.current()
	now := s.now()
	metrics.RecordRecompute("overview")

	stats := visible(rollup.Aggregate(snap.People, snap.Sessions, f, s.hidden, now))

	out := Overview{
		SnapshotID:  snap.ID,
		FetchedAt:   snap.FetchedAt,
		Filter:      f,
		RosterCount: len(stats),
		NPS:         kpi.NPS(snap.Surveys),
		CSAT:        kpi.CSAT(snap.Surveys),
		Growth:      kpi.Growth(filterScores(snap.Scores, f)),
		Phase:       kpi.PhaseUnknown,
	}

	for _, st := range stats {
		if st.Total > 0 {
			out.EngagedCount++
		}
		out.Completed += st.Completed
		out.NoShows += st.NoShow
		out.Scheduled += st.Scheduled
		out.TotalSessions += st.Total
	}

	out.Utilization = kpi.Utilization(stats, out.RosterCount)

	account := strings.TrimSpace(f.Value)
	perPerson := s.calc.SessionsPerPerson(snap.Configs, account)
	out.Progress = kpi.Progress(out.Completed, out.RosterCount, perPerson)
	if cfg := findConfig(snap.Configs, account); cfg != nil {
		out.Phase = kpi.Phase(*cfg, now)
	}
	out.CohortCompleted = s.calc.Completed(f, snap.Scores)

	return out
}

// ComputePeople derives the per-person stat list for a filter, limited to
// entries visible in the view.
func (s *Service) ComputePeople(ctx context.Context, f cohort.Filter) []*rollup.PersonStat {
	snap := s.current()
	metrics.RecordRecompute("people")
	return visible(rollup.Aggregate(snap.People, snap.Sessions, f, s.hidden, s.now()))
}

// ComputeTrend derives the monthly completed-session series for a filter.
func (s *Service) ComputeTrend(ctx context.Context, f cohort.Filter) []trend.Point {
	snap := s.current()
	metrics.RecordRecompute("trend")
	return trend.Monthly(snap.Sessions, f, s.now())
}

// ComputeQuotes extracts representative feedback excerpts. Completed cohorts
// draw from post-program competency feedback; everyone else from exit
// surveys, since only completed cohorts have meaningful reflections.
func (s *Service) ComputeQuotes(ctx context.Context, f cohort.Filter) []string {
	snap := s.current()
	metrics.RecordRecompute("quotes")

	var texts []string
	if s.calc.Completed(f, snap.Scores) {
		for _, sc := range filterScores(snap.Scores, f) {
			if sc.Feedback != "" {
				texts = append(texts, sc.Feedback)
			}
			if sc.Wins != "" {
				texts = append(texts, sc.Wins)
			}
		}
	} else {
		for _, r := range snap.Surveys {
			if r.Feedback != "" {
				texts = append(texts, r.Feedback)
			}
		}
	}
	return quotes.Extract(texts)
}

// GenerateInsight summarizes one view and forwards it to the external
// generator. Generator failures never disturb the computed metrics; the
// error carries its failure class for the API layer.
func (s *Service) GenerateInsight(ctx context.Context, view string, f cohort.Filter) (*insight.Insight, error) {
	if s.generator == nil {
		return nil, insight.ErrBadConfig
	}

	ov := s.ComputeOverview(ctx, f)
	growth := make(map[string]float64, len(ov.Growth))
	for _, g := range ov.Growth {
		growth[g.Competency] = g.GrowthPct
	}

	summary := insight.Summary{
		View:         view,
		Filter:       f.Value,
		Phase:        ov.Phase,
		RosterCount:  ov.RosterCount,
		Completed:    ov.Completed,
		NoShows:      ov.NoShows,
		Utilization:  ov.Utilization,
		Progress:     ov.Progress,
		NPS:          ov.NPS,
		CSAT:         ov.CSAT,
		GrowthByComp: growth,
		SampleQuotes: s.ComputeQuotes(ctx, f),
	}
	if cfg := findConfig(s.current().Configs, f.Value); cfg != nil {
		summary.ContextNotes = cfg.Notes
	}
	if view == "baseline" {
		summary.Baseline = baselineSummary(s.current().Baselines, f)
	}

	return s.generator.Generate(ctx, summary)
}

// baselineSummary averages the filtered onboarding survey entries. Nil when
// no entries match, so the generator sees "no data" rather than zeros.
func baselineSummary(entries []model.BaselineEntry, f cohort.Filter) *insight.BaselineSummary {
	out := &insight.BaselineSummary{FocusAreas: make(map[string]int)}
	for _, e := range entries {
		if !cohort.MatchBaseline(e, f) {
			continue
		}
		out.Count++
		out.AvgStress += e.Stress
		out.AvgEnergy += e.Energy
		out.AvgEngagement += e.Engagement
		for area, set := range e.FocusAreas {
			if set {
				out.FocusAreas[area]++
			}
		}
	}
	if out.Count == 0 {
		return nil
	}
	n := float64(out.Count)
	out.AvgStress /= n
	out.AvgEnergy /= n
	out.AvgEngagement /= n
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"hidden_ids": s.hidden.Len(),
	}
	if s.snapshot != nil {
		stats["snapshot_id"] = s.snapshot.ID
		stats["fetched_at"] = s.snapshot.FetchedAt
		stats["people"] = len(s.snapshot.People)
		stats["sessions"] = len(s.snapshot.Sessions)
		stats["scores"] = len(s.snapshot.Scores)
		stats["surveys"] = len(s.snapshot.Surveys)
		stats["baselines"] = len(s.snapshot.Baselines)
		stats["configs"] = len(s.snapshot.Configs)
	}
	return stats
}

// visible orders the stat map and drops bookkeeping-only entries.
func visible(stats map[string]*rollup.PersonStat) []*rollup.PersonStat {
	all := rollup.Sorted(stats)
	out := make([]*rollup.PersonStat, 0, len(all))
	for _, st := range all {
		if st.Visible {
			out = append(out, st)
		}
	}
	return out
}

// filterScores keeps the competency scores belonging to the filtered view.
func filterScores(scores []model.CompetencyScore, f cohort.Filter) []model.CompetencyScore {
	if f.IsAll() {
		return scores
	}
	out := make([]model.CompetencyScore, 0, len(scores))
	for _, sc := range scores {
		if cohort.MatchScore(sc, f) {
			out = append(out, sc)
		}
	}
	return out
}

// findConfig resolves the configuration row for an account name.
func findConfig(configs []model.ProgramConfig, account string) *model.ProgramConfig {
	account = strings.TrimSpace(account)
	if account == "" {
		return nil
	}
	for i := range configs {
		if strings.TrimSpace(configs[i].Account) == account {
			return &configs[i]
		}
	}
	return nil
}
