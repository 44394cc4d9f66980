// Package cohort decides whether a record belongs to the active view.
//
// Each record type declares its candidate identifying fields as an ordered
// precedence table; matching walks the table and compares the first
// non-empty candidate exactly. Program identifiers are opaque codes, so
// comparison is exact after trimming, never substring: "CP-0028-extra" must
// not match a filter for "CP-0028".
package cohort

import (
	"strings"

	"github.com/praxislabs/compass/internal/domain/model"
)

// Kind selects the filter semantics.
type Kind string

// Filter kinds.
const (
	All     Kind = "all"
	Program Kind = "program"
	Cohort  Kind = "cohort"
)

// Filter is the active view criterion. The zero value matches everything.
type Filter struct {
	Kind  Kind
	Value string
}

// Everything returns the match-all filter.
func Everything() Filter {
	return Filter{Kind: All}
}

// ForProgram returns a filter for one program code.
func ForProgram(value string) Filter {
	return Filter{Kind: Program, Value: value}
}

// ForCohort returns a filter for one cohort label.
func ForCohort(value string) Filter {
	return Filter{Kind: Cohort, Value: value}
}

// IsAll reports whether the filter matches every record.
func (f Filter) IsAll() bool {
	return f.Kind == "" || f.Kind == All
}

// Candidate field precedence per record type, declared as data so each
// table is independently testable.
var (
	sessionFields = []func(model.Session) string{
		func(s model.Session) string { return s.ProgramName },
		func(s model.Session) string { return s.ProgramCode },
		func(s model.Session) string { return s.Cohort },
	}
	personFields = []func(model.Person) string{
		func(p model.Person) string { return p.Program },
		func(p model.Person) string { return p.Cohort },
	}
)

// MatchSession reports whether a session belongs to the filtered view.
// Precedence: explicit program name, legacy program code, cohort label.
func MatchSession(s model.Session, f Filter) bool {
	if f.IsAll() {
		return true
	}
	for _, field := range sessionFields {
		if v := strings.TrimSpace(field(s)); v != "" {
			return v == strings.TrimSpace(f.Value)
		}
	}
	return false
}

// MatchPerson reports whether a roster entry belongs to the filtered view.
func MatchPerson(p model.Person, f Filter) bool {
	if f.IsAll() {
		return true
	}
	for _, field := range personFields {
		if v := strings.TrimSpace(field(p)); v != "" {
			return v == strings.TrimSpace(f.Value)
		}
	}
	return false
}

// MatchScore reports whether a competency score belongs to the filtered view.
func MatchScore(c model.CompetencyScore, f Filter) bool {
	if f.IsAll() {
		return true
	}
	return strings.TrimSpace(c.Program) == strings.TrimSpace(f.Value)
}

// MatchBaseline reports whether a baseline entry belongs to the filtered
// view. Baseline rows identify their grouping by company label only.
func MatchBaseline(b model.BaselineEntry, f Filter) bool {
	if f.IsAll() {
		return true
	}
	return strings.TrimSpace(b.Company) == strings.TrimSpace(f.Value)
}
