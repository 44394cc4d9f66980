// Package exclusion holds the caller-supplied hidden-identifier set used to
// suppress people from every rollup. The set is a pure input: the engine
// never mutates it, and callers may persist it however they like.
package exclusion

import (
	"strings"

	"github.com/praxislabs/compass/internal/domain/normalize"
)

// suppressedNames are normalized display names that never enter a rollup.
// These are seeded accounts used for smoke-testing the upstream store.
var suppressedNames = map[string]struct{}{
	"test test": {},
}

// Set is an immutable collection of hidden person identifiers.
type Set struct {
	ids map[string]struct{}
}

// NewSet builds a Set from the caller's identifiers. Blank entries are
// ignored; ids are compared after trimming.
func NewSet(ids ...string) Set {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			m[id] = struct{}{}
		}
	}
	return Set{ids: m}
}

// Contains reports whether the person identifier is hidden.
func (s Set) Contains(id string) bool {
	if len(s.ids) == 0 {
		return false
	}
	_, ok := s.ids[strings.TrimSpace(id)]
	return ok
}

// Len returns the number of hidden identifiers.
func (s Set) Len() int {
	return len(s.ids)
}

// SuppressedName reports whether a display name belongs to a seeded test
// account that must never appear in any rollup.
func SuppressedName(name string) bool {
	_, ok := suppressedNames[normalize.Key(name)]
	return ok
}
