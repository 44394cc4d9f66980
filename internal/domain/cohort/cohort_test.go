package cohort_test

import (
	"testing"

	"github.com/praxislabs/compass/internal/domain/cohort"
	"github.com/praxislabs/compass/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMatchSession(t *testing.T) {
	Convey("Given a program filter", t, func() {
		f := cohort.ForProgram("CP-0028")

		Convey("Then an exact program name matches", func() {
			s := model.Session{ProgramName: "CP-0028"}
			So(cohort.MatchSession(s, f), ShouldBeTrue)
		})

		Convey("Then a superstring code must NOT match", func() {
			s := model.Session{ProgramName: "CP-0028-extra"}
			So(cohort.MatchSession(s, f), ShouldBeFalse)
		})

		Convey("Then the legacy program code is consulted when the name is empty", func() {
			s := model.Session{ProgramCode: "CP-0028"}
			So(cohort.MatchSession(s, f), ShouldBeTrue)
		})

		Convey("Then the cohort label is the last resort", func() {
			s := model.Session{Cohort: "CP-0028"}
			So(cohort.MatchSession(s, f), ShouldBeTrue)
		})

		Convey("Then precedence stops at the first populated field", func() {
			// Program name wins even when a later field would match.
			s := model.Session{ProgramName: "Other", Cohort: "CP-0028"}
			So(cohort.MatchSession(s, f), ShouldBeFalse)
		})

		Convey("Then surrounding whitespace is ignored on both sides", func() {
			s := model.Session{ProgramName: " CP-0028 "}
			So(cohort.MatchSession(s, cohort.ForProgram(" CP-0028")), ShouldBeTrue)
		})

		Convey("Then a session with no identifying fields does not match", func() {
			So(cohort.MatchSession(model.Session{}, f), ShouldBeFalse)
		})
	})

	Convey("Given the all filter", t, func() {
		Convey("Then every session matches, including empty ones", func() {
			So(cohort.MatchSession(model.Session{}, cohort.Everything()), ShouldBeTrue)
			So(cohort.MatchSession(model.Session{}, cohort.Filter{}), ShouldBeTrue)
		})
	})
}

func TestMatchPerson(t *testing.T) {
	Convey("Given a cohort filter", t, func() {
		f := cohort.ForCohort("Acme Spring")

		Convey("Then the program field takes precedence over cohort", func() {
			p := model.Person{Program: "Acme Spring"}
			So(cohort.MatchPerson(p, f), ShouldBeTrue)

			p = model.Person{Program: "Other", Cohort: "Acme Spring"}
			So(cohort.MatchPerson(p, f), ShouldBeFalse)
		})

		Convey("Then the cohort field is used when program is blank", func() {
			p := model.Person{Cohort: "Acme Spring"}
			So(cohort.MatchPerson(p, f), ShouldBeTrue)
		})
	})
}

func TestMatchScoreAndBaseline(t *testing.T) {
	Convey("Given score and baseline records", t, func() {
		f := cohort.ForProgram("CP-0031")

		So(cohort.MatchScore(model.CompetencyScore{Program: "CP-0031"}, f), ShouldBeTrue)
		So(cohort.MatchScore(model.CompetencyScore{Program: "CP-0031b"}, f), ShouldBeFalse)

		So(cohort.MatchBaseline(model.BaselineEntry{Company: "CP-0031"}, f), ShouldBeTrue)
		So(cohort.MatchBaseline(model.BaselineEntry{Company: ""}, f), ShouldBeFalse)
		So(cohort.MatchBaseline(model.BaselineEntry{}, cohort.Everything()), ShouldBeTrue)
	})
}
