// Package quotes surfaces a small set of representative free-text feedback
// statements using lexical heuristics. The keyword lists are fixed policy
// data; callers choose which feedback fields to feed in.
package quotes

import (
	"sort"
	"strings"
)

// Selection policy constants.
const (
	MaxQuotes = 3
	minLength = 20
)

// Keyword lists driving the filter and ranking stages. All matching is
// case-insensitive substring.
var (
	negativeKeywords = []string{
		"not sure",
		"n/a",
		"nothing",
		"waste",
		"too early",
		"don't know",
	}
	positiveKeywords = []string{
		"learn",
		"insight",
		"grow",
		"confidence",
		"help",
		"valuable",
		"clarity",
		"perspective",
		"aware",
	}
	actionWords = []string{
		"learned",
		"started",
		"realized",
		"improved",
		"changed",
		"built",
		"applied",
		"stopped",
	}
)

// Extract returns up to MaxQuotes representative statements. A candidate
// must be at least minLength characters, contain no negative keyword, and
// contain at least one positive keyword. Candidates are ranked by how many
// action words they contain; ties keep encounter order.
func Extract(texts []string) []string {
	type candidate struct {
		text    string
		actions int
	}

	var candidates []candidate
	for _, raw := range texts {
		text := strings.TrimSpace(raw)
		if len(text) < minLength {
			continue
		}
		lower := strings.ToLower(text)
		if containsAny(lower, negativeKeywords) {
			continue
		}
		if !containsAny(lower, positiveKeywords) {
			continue
		}
		candidates = append(candidates, candidate{
			text:    text,
			actions: countAny(lower, actionWords),
		})
	}

	// Action-word count descending; encounter order breaks ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].actions > candidates[j].actions
	})

	n := len(candidates)
	if n > MaxQuotes {
		n = MaxQuotes
	}
	out := make([]string, 0, n)
	for _, c := range candidates[:n] {
		out = append(out, c.text)
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func countAny(s string, keywords []string) int {
	var n int
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			n++
		}
	}
	return n
}
