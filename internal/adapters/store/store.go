// Package store defines the upstream data-store boundary: six read
// operations, each returning one record set, plus the concurrent snapshot
// fetch that joins them.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/praxislabs/compass/internal/domain/model"
	"github.com/praxislabs/compass/pkg/logger"
	"github.com/praxislabs/compass/pkg/metrics"
)

// Store provides read access to the six upstream record sets.
type Store interface {
	People(ctx context.Context) ([]model.Person, error)
	Sessions(ctx context.Context) ([]model.Session, error)
	Scores(ctx context.Context) ([]model.CompetencyScore, error)
	Surveys(ctx context.Context) ([]model.SurveyResponse, error)
	Baselines(ctx context.Context) ([]model.BaselineEntry, error)
	Configs(ctx context.Context) ([]model.ProgramConfig, error)
}

// LoadSnapshot fans out the six reads concurrently and joins them into one
// immutable snapshot. A failed read degrades to an empty record set: the
// failure is logged and counted, never propagated, so downstream metrics
// report "no data" instead of erroring.
func LoadSnapshot(ctx context.Context, s Store, log logger.Logger) *model.Snapshot {
	start := time.Now()
	snap := &model.Snapshot{
		ID:        uuid.NewString(),
		FetchedAt: start,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap.People = fetch(ctx, "people", s.People, log)
		return nil
	})
	g.Go(func() error {
		snap.Sessions = fetch(ctx, "sessions", s.Sessions, log)
		return nil
	})
	g.Go(func() error {
		snap.Scores = fetch(ctx, "scores", s.Scores, log)
		return nil
	})
	g.Go(func() error {
		snap.Surveys = fetch(ctx, "surveys", s.Surveys, log)
		return nil
	})
	g.Go(func() error {
		snap.Baselines = fetch(ctx, "baselines", s.Baselines, log)
		return nil
	})
	g.Go(func() error {
		snap.Configs = fetch(ctx, "configs", s.Configs, log)
		return nil
	})
	_ = g.Wait() // goroutines only report via fetch; Wait is the join point

	metrics.RecordSnapshotLoad(float64(time.Since(start).Milliseconds()))
	log.Info(ctx, "snapshot loaded",
		logger.String("snapshot", snap.ID),
		logger.Int("people", len(snap.People)),
		logger.Int("sessions", len(snap.Sessions)),
		logger.Int("scores", len(snap.Scores)),
		logger.Int("surveys", len(snap.Surveys)),
		logger.Int("baselines", len(snap.Baselines)),
		logger.Int("configs", len(snap.Configs)),
	)
	return snap
}

// fetch runs one read, timing it and substituting an empty slice on error.
func fetch[T any](ctx context.Context, set string, read func(context.Context) ([]T, error), log logger.Logger) []T {
	start := time.Now()
	records, err := read(ctx)
	metrics.RecordFetchDuration(set, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordFetchError(set)
		log.Error(ctx, "record set fetch failed; substituting empty set",
			logger.String("set", set),
			logger.Error(err),
		)
		return nil
	}
	metrics.UpdateRecordCount(set, len(records))
	return records
}
