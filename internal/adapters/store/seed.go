package store

import (
	"encoding/json"
	"time"

	"github.com/praxislabs/compass/internal/domain/model"
)

// decodeFloatMap unmarshals a jsonb column into a score map, tolerating
// NULL and malformed payloads.
func decodeFloatMap(raw []byte) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]float64
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// decodeBoolMap unmarshals a jsonb column into a flag map, tolerating NULL
// and malformed payloads.
func decodeBoolMap(raw []byte) map[string]bool {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]bool
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// NewDemoStore creates a MemoryStore pre-seeded with the demo fixtures. Used
// when no database is configured.
func NewDemoStore() *MemoryStore {
	return NewMemoryStore(
		WithPeople(demoPeople()),
		WithSessions(demoSessions()),
	)
}

// demoPeople is the roster inserted by Seed for empty databases.
func demoPeople() []model.Person {
	return []model.Person{
		{ID: "1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@acme.example", Program: "CP-0028", Cohort: "Acme Spring"},
		{ID: "2", FirstName: "Grace", LastName: "Hopper", Email: "grace@acme.example", Program: "CP-0028", Cohort: "Acme Spring"},
		{ID: "3", FirstName: "Alan", LastName: "Turing", Email: "alan@globex.example", Program: "CP-0031", Cohort: "Globex Fall"},
		{ID: "4", FirstName: "Edith", LastName: "Clarke", Email: "edith@globex.example", Program: "CP-0031", Cohort: "Globex Fall"},
	}
}

// demoSessions is the session history inserted by Seed for empty databases.
func demoSessions() []model.Session {
	base := time.Now().AddDate(0, -3, 0)
	return []model.Session{
		{ID: "s-1", EmployeeName: "Ada Lovelace", PersonID: "1", Date: base, Status: "Completed", ProgramName: "CP-0028"},
		{ID: "s-2", EmployeeName: "Ada Lovelace", PersonID: "1", Date: base.AddDate(0, 1, 0), Status: "Completed", ProgramName: "CP-0028"},
		{ID: "s-3", EmployeeName: "Grace Hopper", PersonID: "2", Date: base.AddDate(0, 1, 4), Status: "No Show", ProgramName: "CP-0028"},
		{ID: "s-4", EmployeeName: "Alan Turing", PersonID: "3", Date: base.AddDate(0, 2, 0), Status: "Completed", ProgramName: "CP-0031"},
		{ID: "s-5", EmployeeName: "Edith Clarke", PersonID: "4", Date: time.Now().AddDate(0, 1, 0), Status: "Scheduled", ProgramName: "CP-0031"},
	}
}
