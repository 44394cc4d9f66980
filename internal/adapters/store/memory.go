package store

import (
	"context"

	"github.com/praxislabs/compass/internal/domain/model"
)

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithPeople seeds the roster record set.
func WithPeople(people []model.Person) MemoryOption {
	return func(m *MemoryStore) { m.people = people }
}

// WithSessions seeds the session record set.
func WithSessions(sessions []model.Session) MemoryOption {
	return func(m *MemoryStore) { m.sessions = sessions }
}

// WithScores seeds the competency-score record set.
func WithScores(scores []model.CompetencyScore) MemoryOption {
	return func(m *MemoryStore) { m.scores = scores }
}

// WithSurveys seeds the survey-response record set.
func WithSurveys(surveys []model.SurveyResponse) MemoryOption {
	return func(m *MemoryStore) { m.surveys = surveys }
}

// WithBaselines seeds the baseline-entry record set.
func WithBaselines(baselines []model.BaselineEntry) MemoryOption {
	return func(m *MemoryStore) { m.baselines = baselines }
}

// WithConfigs seeds the program-configuration record set.
func WithConfigs(configs []model.ProgramConfig) MemoryOption {
	return func(m *MemoryStore) { m.configs = configs }
}

// WithFailingSet makes one named record set return ErrNoDataSet, modelling
// an upstream fetch failure for tests and demos.
func WithFailingSet(set string) MemoryOption {
	return func(m *MemoryStore) { m.failing[set] = struct{}{} }
}

// MemoryStore is a fixture-backed Store used by tests and demo runs.
type MemoryStore struct {
	people    []model.Person
	sessions  []model.Session
	scores    []model.CompetencyScore
	surveys   []model.SurveyResponse
	baselines []model.BaselineEntry
	configs   []model.ProgramConfig
	failing   map[string]struct{}
}

// NewMemoryStore creates a MemoryStore from fixture options.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{failing: make(map[string]struct{})}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryStore) fail(set string) error {
	if _, ok := m.failing[set]; ok {
		return ErrNoDataSet
	}
	return nil
}

// People returns the roster record set.
func (m *MemoryStore) People(_ context.Context) ([]model.Person, error) {
	if err := m.fail("people"); err != nil {
		return nil, err
	}
	return m.people, nil
}

// Sessions returns the session record set.
func (m *MemoryStore) Sessions(_ context.Context) ([]model.Session, error) {
	if err := m.fail("sessions"); err != nil {
		return nil, err
	}
	return m.sessions, nil
}

// Scores returns the competency-score record set.
func (m *MemoryStore) Scores(_ context.Context) ([]model.CompetencyScore, error) {
	if err := m.fail("scores"); err != nil {
		return nil, err
	}
	return m.scores, nil
}

// Surveys returns the survey-response record set.
func (m *MemoryStore) Surveys(_ context.Context) ([]model.SurveyResponse, error) {
	if err := m.fail("surveys"); err != nil {
		return nil, err
	}
	return m.surveys, nil
}

// Baselines returns the baseline-entry record set.
func (m *MemoryStore) Baselines(_ context.Context) ([]model.BaselineEntry, error) {
	if err := m.fail("baselines"); err != nil {
		return nil, err
	}
	return m.baselines, nil
}

// Configs returns the program-configuration record set.
func (m *MemoryStore) Configs(_ context.Context) ([]model.ProgramConfig, error) {
	if err := m.fail("configs"); err != nil {
		return nil, err
	}
	return m.configs, nil
}
