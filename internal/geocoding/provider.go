package geocoding

import (
	"context"
	"errors"
	"net/http"
)

// ErrPostalCodeNotFound is returned by a PostalLookup when the postal code does not exist.
// Any other error from a PostalLookup is treated as a transient failure.
var ErrPostalCodeNotFound = errors.New("postal code not found")

// PostalRecord is what the lookup service knows about a postal code.
type PostalRecord struct {
	Latitude  float64 // Latitude of the postal code centroid.
	Longitude float64 // Longitude of the postal code centroid.
	City      string  // City is the primary place name for the code.
	State     string  // State is the two-letter state abbreviation.
}

// PostalLookup resolves a normalized five digit postal code to a PostalRecord.
// Implementations return ErrPostalCodeNotFound for unknown codes and must not cache results.
type PostalLookup interface {
	LookupPostalCode(ctx context.Context, code string) (*PostalRecord, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
