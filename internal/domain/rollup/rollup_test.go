package rollup_test

import (
	"testing"
	"time"

	"github.com/praxislabs/compass/internal/domain/cohort"
	"github.com/praxislabs/compass/internal/domain/exclusion"
	"github.com/praxislabs/compass/internal/domain/model"
	"github.com/praxislabs/compass/internal/domain/rollup"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	Convey("Given free-text session statuses", t, func() {
		Convey("Then no-show variants win first", func() {
			So(rollup.Classify("No Show", day(2024, 1, 5), now), ShouldEqual, rollup.OutcomeNoShow)
			So(rollup.Classify("NOSHOW", day(2024, 1, 5), now), ShouldEqual, rollup.OutcomeNoShow)
			So(rollup.Classify("Late Cancel", day(2024, 1, 5), now), ShouldEqual, rollup.OutcomeNoShow)
		})

		Convey("Then completed matches by substring", func() {
			So(rollup.Classify("Completed", day(2024, 1, 5), now), ShouldEqual, rollup.OutcomeCompleted)
			So(rollup.Classify("completed (rescheduled)", day(2024, 1, 5), now), ShouldEqual, rollup.OutcomeCompleted)
		})

		Convey("Then an empty status counts as completed once the date has passed", func() {
			So(rollup.Classify("", day(2024, 1, 5), now), ShouldEqual, rollup.OutcomeCompleted)
			So(rollup.Classify("", day(2025, 1, 5), now), ShouldEqual, rollup.OutcomeScheduled)
			So(rollup.Classify("", time.Time{}, now), ShouldEqual, rollup.OutcomeScheduled)
		})

		Convey("Then everything else is scheduled", func() {
			So(rollup.Classify("Scheduled", day(2024, 1, 5), now), ShouldEqual, rollup.OutcomeScheduled)
			So(rollup.Classify("Canceled", day(2024, 1, 5), now), ShouldEqual, rollup.OutcomeScheduled)
		})
	})
}

func TestAggregate(t *testing.T) {
	Convey("Given a roster and a session set", t, func() {
		roster := []model.Person{
			{ID: "1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@acme.com", Program: "CP-0028"},
			{ID: "2", FirstName: "Grace", LastName: "Hopper", Program: "CP-0028"},
			{ID: "3", FirstName: "Alan", LastName: "Turing", Program: "CP-0031"},
		}
		sessions := []model.Session{
			{ID: "s1", EmployeeName: "Ada Lovelace", Status: "Completed", Date: day(2024, 1, 5), ProgramName: "CP-0028"},
			{ID: "s2", EmployeeName: "ada lovelace", Status: "No Show", Date: day(2024, 2, 5), ProgramName: "CP-0028"},
			{ID: "s3", EmployeeName: "Grace Hopper", Status: "Scheduled", Date: day(2024, 9, 5), ProgramName: "CP-0028"},
			// Activity for someone missing from the roster entirely.
			{ID: "s4", EmployeeName: "Mary Shelley", PersonID: "9", Status: "Completed", Date: day(2024, 3, 5), ProgramName: "CP-0028"},
		}

		Convey("When aggregating with the all filter", func() {
			stats := rollup.Aggregate(roster, sessions, cohort.Everything(), exclusion.NewSet(), now)

			Convey("Then exactly one entry exists per normalized key", func() {
				So(len(stats), ShouldEqual, 4)
				So(stats["ada lovelace"], ShouldNotBeNil)
			})

			Convey("Then case variants of a name fold onto one entry", func() {
				ada := stats["ada lovelace"]
				So(ada.Completed, ShouldEqual, 1)
				So(ada.NoShow, ShouldEqual, 1)
				So(ada.Total, ShouldEqual, 2)
			})

			Convey("Then counters partition into the total", func() {
				for _, st := range stats {
					So(st.Completed+st.NoShow+st.Scheduled, ShouldEqual, st.Total)
				}
			})

			Convey("Then the latest session date is tracked", func() {
				So(stats["ada lovelace"].LatestSession, ShouldResemble, day(2024, 2, 5))
			})

			Convey("Then a roster-absent person is synthesized rather than dropped", func() {
				mary := stats["mary shelley"]
				So(mary, ShouldNotBeNil)
				So(mary.Completed, ShouldEqual, 1)
				So(mary.PersonID, ShouldEqual, "9")
			})

			Convey("Then zero-session roster people still appear", func() {
				alan := stats["alan turing"]
				So(alan, ShouldNotBeNil)
				So(alan.Total, ShouldEqual, 0)
				So(alan.Visible, ShouldBeTrue)
			})

			Convey("Then metadata backfill never overwrites roster values", func() {
				So(stats["ada lovelace"].Email, ShouldEqual, "ada@acme.com")
				So(stats["mary shelley"].Program, ShouldEqual, "CP-0028")
			})
		})

		Convey("When aggregating with a program filter", func() {
			stats := rollup.Aggregate(roster, sessions, cohort.ForProgram("CP-0031"), exclusion.NewSet(), now)

			Convey("Then non-matching sessions contribute zero counts but the entry remains", func() {
				ada := stats["ada lovelace"]
				So(ada, ShouldNotBeNil)
				So(ada.Total, ShouldEqual, 0)
				So(ada.Visible, ShouldBeFalse)
			})

			Convey("Then roster people matching the filter stay visible with zero sessions", func() {
				So(stats["alan turing"].Visible, ShouldBeTrue)
			})
		})

		Convey("When people are hidden", func() {
			stats := rollup.Aggregate(roster, sessions, cohort.Everything(), exclusion.NewSet("1", "9"), now)

			Convey("Then hidden roster people are skipped at seeding", func() {
				// Ada's sessions carry no PersonID, so a synthetic entry
				// reappears for the name, but her roster email does not.
				So(stats["ada lovelace"].Email, ShouldEqual, "")
			})

			Convey("Then sessions joined by a hidden person id never create entries", func() {
				So(stats["mary shelley"], ShouldBeNil)
			})
		})

		Convey("When the suppressed smoke-test account appears", func() {
			withTest := append(roster, model.Person{ID: "99", FirstName: "Test", LastName: "Test"})
			sessionsWithTest := append(sessions, model.Session{EmployeeName: "Test Test", Status: "Completed", Date: day(2024, 1, 9)})
			stats := rollup.Aggregate(withTest, sessionsWithTest, cohort.Everything(), exclusion.NewSet(), now)

			So(stats["test test"], ShouldBeNil)
		})

		Convey("Then the dedup invariant bounds the map size", func() {
			stats := rollup.Aggregate(roster, sessions, cohort.Everything(), exclusion.NewSet(), now)
			// |roster| + |sessions with unresolvable identity| = 3 + 1.
			So(len(stats), ShouldBeLessThanOrEqualTo, len(roster)+1)
		})

		Convey("Then two passes over the same input are identical", func() {
			a := rollup.Sorted(rollup.Aggregate(roster, sessions, cohort.Everything(), exclusion.NewSet(), now))
			b := rollup.Sorted(rollup.Aggregate(roster, sessions, cohort.Everything(), exclusion.NewSet(), now))
			So(len(a), ShouldEqual, len(b))
			for i := range a {
				So(*a[i], ShouldResemble, *b[i])
			}
		})
	})
}

func TestSorted(t *testing.T) {
	Convey("Given a stat map", t, func() {
		stats := map[string]*rollup.PersonStat{
			"b": {Key: "b", Completed: 1},
			"a": {Key: "a", Completed: 1},
			"c": {Key: "c", Completed: 5},
		}

		Convey("Then ordering is by completed desc, key asc", func() {
			out := rollup.Sorted(stats)
			So(out[0].Key, ShouldEqual, "c")
			So(out[1].Key, ShouldEqual, "a")
			So(out[2].Key, ShouldEqual, "b")
		})
	})
}
