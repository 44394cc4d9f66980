// Package normalize canonicalizes the loosely-typed identifying and numeric
// fields that arrive from the upstream store. Every function is total:
// malformed input degrades to a safe default instead of an error.
package normalize

import (
	"strconv"
	"strings"
)

// Fallback values for records missing the relevant source fields.
const (
	UnknownName       = "Unknown"
	UnassignedProgram = "Unassigned"
)

// DisplayName derives a human-readable name from first/last name, falling
// back to email, then to UnknownName.
func DisplayName(first, last, email string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	}
	if email = strings.TrimSpace(email); email != "" {
		return email
	}
	return UnknownName
}

// Key lowers and trims a display name into the map key used for
// deduplication. Two records with the same Key refer to the same person.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Program returns a trimmed program label or UnassignedProgram when blank.
func Program(label string) string {
	if label = strings.TrimSpace(label); label != "" {
		return label
	}
	return UnassignedProgram
}

// Number parses a numeric-like string. It returns nil on failure rather than
// NaN so callers can distinguish "absent" from a real zero.
func Number(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// NumberOrZero parses a numeric-like string, coercing failures to 0.
func NumberOrZero(s string) float64 {
	if v := Number(s); v != nil {
		return *v
	}
	return 0
}
