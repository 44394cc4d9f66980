package normalize_test

import (
	"testing"

	"github.com/praxislabs/compass/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDisplayName(t *testing.T) {
	Convey("Given raw identifying fields", t, func() {
		Convey("When first and last name are present", func() {
			So(normalize.DisplayName("Ada", "Lovelace", "ada@example.com"), ShouldEqual, "Ada Lovelace")
		})

		Convey("When only one name part is present", func() {
			So(normalize.DisplayName("Ada", "", ""), ShouldEqual, "Ada")
			So(normalize.DisplayName("", "Lovelace", ""), ShouldEqual, "Lovelace")
		})

		Convey("When names are blank it falls back to email", func() {
			So(normalize.DisplayName("", "", "ada@example.com"), ShouldEqual, "ada@example.com")
		})

		Convey("When everything is blank it falls back to Unknown", func() {
			So(normalize.DisplayName("  ", "", " "), ShouldEqual, normalize.UnknownName)
		})

		Convey("When fields carry surrounding whitespace", func() {
			So(normalize.DisplayName(" Ada ", " Lovelace ", ""), ShouldEqual, "Ada Lovelace")
		})
	})
}

func TestKey(t *testing.T) {
	Convey("Given display names", t, func() {
		Convey("Then keys are lower-cased and trimmed", func() {
			So(normalize.Key("  Ada Lovelace "), ShouldEqual, "ada lovelace")
		})

		Convey("Then case variants collapse to the same key", func() {
			So(normalize.Key("ADA LOVELACE"), ShouldEqual, normalize.Key("ada lovelace"))
		})
	})
}

func TestNumber(t *testing.T) {
	Convey("Given numeric-like strings", t, func() {
		Convey("When the value parses", func() {
			v := normalize.Number(" 7.5 ")
			So(v, ShouldNotBeNil)
			So(*v, ShouldEqual, 7.5)
		})

		Convey("When the value is blank or garbage it returns nil, never NaN", func() {
			So(normalize.Number(""), ShouldBeNil)
			So(normalize.Number("   "), ShouldBeNil)
			So(normalize.Number("n/a"), ShouldBeNil)
		})

		Convey("When coercing to zero on failure", func() {
			So(normalize.NumberOrZero("abc"), ShouldEqual, 0)
			So(normalize.NumberOrZero("42"), ShouldEqual, 42)
		})
	})
}

func TestProgram(t *testing.T) {
	Convey("Given program labels", t, func() {
		So(normalize.Program(" CP-0028 "), ShouldEqual, "CP-0028")
		So(normalize.Program("  "), ShouldEqual, normalize.UnassignedProgram)
	})
}
