// Package model contains domain records passed between layers.
package model

import "time"

// Person is one roster entry loaded from the upstream store. Identifying
// fields arrive inconsistently populated; the normalize package derives
// canonical keys from them.
type Person struct {
	ID         string // numeric upstream ids arrive as strings
	FirstName  string
	LastName   string
	Email      string
	Program    string
	Cohort     string
	Status     string
	Department string
}

// Session is a read-only coaching-session fact record. It references its
// person either by id or by the denormalized employee name.
type Session struct {
	ID              string
	EmployeeName    string
	PersonID        string
	Email           string
	Date            time.Time // zero when the upstream value was unparseable
	Status          string    // free text: "Completed", "No Show", "Scheduled", "Canceled", or empty
	DurationMinutes int
	Notes           string
	ProgramName     string
	ProgramCode     string
	Cohort          string
}

// CompetencyScore holds one pre/post competency measurement. Pre and Post are
// zero when the upstream value was missing or non-numeric; a zero means
// "not assessed", never a true score of zero.
type CompetencyScore struct {
	Email      string
	Program    string
	Competency string
	Pre        float64
	Post       float64
	Feedback   string
	Wins       string
}

// SurveyResponse is one exit-survey row. NPS and Satisfaction are pointers so
// "absent" stays distinguishable from an answered zero.
type SurveyResponse struct {
	Email        string
	NPS          *float64 // 0-10 when present
	Satisfaction *float64
	Feedback     string
}

// BaselineEntry is a pre-program onboarding survey record.
type BaselineEntry struct {
	Company         string
	Role            string
	YearsExperience string

	// Wellbeing scores on a 1-10 scale.
	Stress     float64
	Energy     float64
	Engagement float64

	// Self-rated competencies on a 1-5 scale.
	Competencies map[string]float64

	// Focus-area flags chosen during onboarding.
	FocusAreas map[string]bool
}

// ProgramConfig is the per-account program configuration row.
type ProgramConfig struct {
	Account           string
	SessionsPerPerson int
	ProgramType       string
	StartDate         *time.Time
	EndDate           *time.Time
	Notes             string
}
