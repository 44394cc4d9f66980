package quotes_test

import (
	"testing"

	"github.com/praxislabs/compass/internal/domain/quotes"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtract(t *testing.T) {
	Convey("Given free-text feedback", t, func() {
		Convey("Then short texts are rejected regardless of content", func() {
			So(quotes.Extract([]string{"I learned a lot"}), ShouldBeEmpty)
		})

		Convey("Then negative-keyword texts are rejected regardless of length", func() {
			out := quotes.Extract([]string{"n/a, nothing to add but I did learn about confidence"})
			So(out, ShouldBeEmpty)
		})

		Convey("Then texts without a positive keyword are rejected", func() {
			out := quotes.Extract([]string{"The sessions were fine and I attended every one of them."})
			So(out, ShouldBeEmpty)
		})

		Convey("Then qualifying texts pass through", func() {
			text := "My coach helped me grow my confidence in difficult conversations."
			So(quotes.Extract([]string{text}), ShouldResemble, []string{text})
		})

		Convey("Then ranking favors action-word density with stable ties", func() {
			low := "I gained insight into how my team perceives me."
			high := "I learned to delegate, started weekly check-ins, and improved my confidence."
			mid := "I realized how much my mindset was holding back my growth."
			tie := "Great insight into my leadership blind spots overall."

			out := quotes.Extract([]string{low, tie, high, mid})
			So(out, ShouldHaveLength, 3)
			So(out[0], ShouldEqual, high)
			So(out[1], ShouldEqual, mid)
			// low and tie both score zero; encounter order breaks the tie.
			So(out[2], ShouldEqual, low)
		})

		Convey("Then at most three quotes are returned", func() {
			text := "Coaching helped me grow and I learned to set boundaries at work."
			out := quotes.Extract([]string{text, text, text, text, text})
			So(out, ShouldHaveLength, quotes.MaxQuotes)
		})

		Convey("Then empty input yields an empty result", func() {
			So(quotes.Extract(nil), ShouldBeEmpty)
		})
	})
}
