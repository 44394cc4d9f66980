// Package trend bins completed sessions into calendar-month buckets,
// producing an ordered time series. The series is recomputed wholesale per
// call; empty input yields an empty series so callers can distinguish
// "no data" from a flat zero line.
package trend

import (
	"fmt"
	"sort"
	"time"

	"github.com/praxislabs/compass/internal/domain/cohort"
	"github.com/praxislabs/compass/internal/domain/model"
	"github.com/praxislabs/compass/internal/domain/rollup"
)

// Point is one month's completed-session count.
type Point struct {
	Label string `json:"label"` // e.g. "Jan '24"
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Count int    `json:"count"`
}

// Monthly groups the filtered session set by (year, month) and counts
// sessions classified as completed, reapplying the rollup classification
// rule independently. Output is sorted ascending by year then month.
func Monthly(sessions []model.Session, f cohort.Filter, now time.Time) []Point {
	type key struct {
		year  int
		month time.Month
	}
	counts := make(map[key]int)

	for _, s := range sessions {
		if s.Date.IsZero() {
			continue
		}
		if !cohort.MatchSession(s, f) {
			continue
		}
		if rollup.Classify(s.Status, s.Date, now) != rollup.OutcomeCompleted {
			continue
		}
		counts[key{s.Date.Year(), s.Date.Month()}]++
	}

	if len(counts) == 0 {
		return nil
	}

	points := make([]Point, 0, len(counts))
	for k, n := range counts {
		points = append(points, Point{
			Label: fmt.Sprintf("%s '%02d", k.month.String()[:3], k.year%100),
			Year:  k.year,
			Month: int(k.month),
			Count: n,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Month < points[j].Month
	})
	return points
}
