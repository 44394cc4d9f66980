// Package rollup folds session records onto per-person accumulators keyed by
// normalized display name. One PersonStat exists per distinct key per pass;
// the pass is pure and fully recomputed from the snapshot every time.
package rollup

import (
	"sort"
	"strings"
	"time"

	"github.com/praxislabs/compass/internal/domain/cohort"
	"github.com/praxislabs/compass/internal/domain/exclusion"
	"github.com/praxislabs/compass/internal/domain/model"
	"github.com/praxislabs/compass/internal/domain/normalize"
)

// Outcome is the session status bucket used for counting.
type Outcome string

// Session outcome buckets. Every session lands in exactly one.
const (
	OutcomeCompleted Outcome = "completed"
	OutcomeNoShow    Outcome = "no_show"
	OutcomeScheduled Outcome = "scheduled"
)

// PersonStat is the per-person accumulator produced by Aggregate. Created
// fresh on every pass; never persisted.
type PersonStat struct {
	Key           string    `json:"key"`
	DisplayName   string    `json:"display_name"`
	PersonID      string    `json:"person_id,omitempty"`
	Email         string    `json:"email,omitempty"`
	Program       string    `json:"program,omitempty"`
	Cohort        string    `json:"cohort,omitempty"`
	Completed     int       `json:"completed"`
	NoShow        int       `json:"no_show"`
	Scheduled     int       `json:"scheduled"`
	Total         int       `json:"total"`
	LatestSession time.Time `json:"latest_session,omitzero"`

	// Visible marks entries that belong to the active view: roster people
	// whose own program/cohort satisfies the filter, plus anyone with at
	// least one counted session. Entries kept only for dedup bookkeeping
	// stay invisible.
	Visible bool `json:"-"`
}

// Classify buckets a free-text session status. First match wins:
// no-show variants, then completed (an empty status counts as completed
// once the session date has passed), then scheduled for everything else.
func Classify(status string, date, now time.Time) Outcome {
	s := strings.ToLower(strings.TrimSpace(status))
	switch {
	case strings.Contains(s, "no show"),
		strings.Contains(s, "noshow"),
		strings.Contains(s, "late cancel"):
		return OutcomeNoShow
	case strings.Contains(s, "completed"):
		return OutcomeCompleted
	case s == "" && !date.IsZero() && date.Before(now):
		return OutcomeCompleted
	default:
		return OutcomeScheduled
	}
}

// Aggregate produces the per-person stat map for one snapshot and filter.
//
// The map is seeded from the roster (skipping hidden and suppressed people),
// then sessions are folded on top. A session whose person is absent from the
// roster synthesizes an entry so activity is never silently dropped. Counts
// only move for sessions that pass the filter and are not hidden; metadata
// backfill never overwrites an already-populated field.
func Aggregate(
	roster []model.Person,
	sessions []model.Session,
	f cohort.Filter,
	hidden exclusion.Set,
	now time.Time,
) map[string]*PersonStat {
	stats := make(map[string]*PersonStat, len(roster))

	for _, p := range roster {
		name := normalize.DisplayName(p.FirstName, p.LastName, p.Email)
		if hidden.Contains(p.ID) || exclusion.SuppressedName(name) {
			continue
		}
		key := normalize.Key(name)
		if _, ok := stats[key]; ok {
			continue
		}
		stats[key] = &PersonStat{
			Key:         key,
			DisplayName: name,
			PersonID:    p.ID,
			Email:       strings.TrimSpace(p.Email),
			Program:     strings.TrimSpace(p.Program),
			Cohort:      strings.TrimSpace(p.Cohort),
			Visible:     cohort.MatchPerson(p, f),
		}
	}

	for _, s := range sessions {
		name := strings.TrimSpace(s.EmployeeName)
		if name == "" {
			name = normalize.UnknownName
		}
		if exclusion.SuppressedName(name) {
			continue
		}
		key := normalize.Key(name)

		st, ok := stats[key]
		if !ok {
			if hidden.Contains(s.PersonID) {
				continue
			}
			st = &PersonStat{
				Key:         key,
				DisplayName: name,
				PersonID:    strings.TrimSpace(s.PersonID),
			}
			stats[key] = st
		}

		backfill(st, s)

		if hidden.Contains(s.PersonID) || !cohort.MatchSession(s, f) {
			continue
		}

		switch Classify(s.Status, s.Date, now) {
		case OutcomeNoShow:
			st.NoShow++
		case OutcomeCompleted:
			st.Completed++
		case OutcomeScheduled:
			st.Scheduled++
		}
		st.Total++
		st.Visible = true

		if s.Date.After(st.LatestSession) {
			st.LatestSession = s.Date
		}
	}

	return stats
}

// backfill copies non-empty session metadata onto the stat without
// overwriting already-populated fields. First seen wins.
func backfill(st *PersonStat, s model.Session) {
	if st.Program == "" {
		if v := strings.TrimSpace(s.ProgramName); v != "" {
			st.Program = v
		} else if v := strings.TrimSpace(s.ProgramCode); v != "" {
			st.Program = v
		}
	}
	if st.Cohort == "" {
		if v := strings.TrimSpace(s.Cohort); v != "" {
			st.Cohort = v
		}
	}
	if st.Email == "" {
		if v := strings.TrimSpace(s.Email); v != "" {
			st.Email = v
		}
	}
	if st.PersonID == "" {
		if v := strings.TrimSpace(s.PersonID); v != "" {
			st.PersonID = v
		}
	}
}

// Sorted flattens the stat map into a deterministic list ordered by
// completed count descending, then key ascending. Keeps recomputation
// bit-identical across passes.
func Sorted(stats map[string]*PersonStat) []*PersonStat {
	out := make([]*PersonStat, 0, len(stats))
	for _, st := range stats {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return out[i].Completed > out[j].Completed
		}
		return out[i].Key < out[j].Key
	})
	return out
}
