package models

import "strings"

// PostalKeyLength is the number of digits in a normalized US postal code.
const PostalKeyLength = 5

// PostalKey is a normalized five digit postal code used as the coordinate cache key.
type PostalKey string

// ParsePostalKey normalizes raw by trimming whitespace and keeping its first five characters.
// It reports false when the result is not five ASCII digits.
func ParsePostalKey(raw string) (PostalKey, bool) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < PostalKeyLength {
		return "", false
	}

	key := trimmed[:PostalKeyLength]
	for i := range len(key) {
		if key[i] < '0' || key[i] > '9' {
			return "", false
		}
	}

	return PostalKey(key), true
}

// LocationQuery describes a place to resolve: a postal code preferred, else city and state.
type LocationQuery struct {
	PostalCode string // PostalCode is optional; ZIP+4 forms are accepted.
	City       string // City is optional and only carried into fallback results.
	State      string // State is an optional two-letter code.
}

// HasPostalCode reports whether a non-blank postal code was supplied.
func (q LocationQuery) HasPostalCode() bool { return strings.TrimSpace(q.PostalCode) != "" }

// NormalizedState returns the upper-cased, trimmed state code.
func (q LocationQuery) NormalizedState() string { return strings.ToUpper(strings.TrimSpace(q.State)) }

// NormalizedCity returns the trimmed city name.
func (q LocationQuery) NormalizedCity() string { return strings.TrimSpace(q.City) }
