package model

import "time"

// Snapshot is one immutable fetch of all six record sets. Every derived
// metric is recomputed wholesale from a snapshot; nothing is ever written
// back to it.
type Snapshot struct {
	ID        string // uuid assigned at fetch time
	FetchedAt time.Time

	People    []Person
	Sessions  []Session
	Scores    []CompetencyScore
	Surveys   []SurveyResponse
	Baselines []BaselineEntry
	Configs   []ProgramConfig
}
