package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned when a latitude or longitude is not finite or lies outside
// geographic bounds.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Precision tells how a Coordinate was obtained.
type Precision string

const (
	// PrecisionUnspecified marks a coordinate supplied directly by the caller.
	PrecisionUnspecified Precision = "unspecified"
	// PrecisionPostalCode marks an exact postal code match from the lookup service.
	PrecisionPostalCode Precision = "postal_code"
	// PrecisionStateCentroid marks a coarse fallback to the geographic center of a state.
	PrecisionStateCentroid Precision = "state_centroid"
)

// Coordinate represents a validated geographical point. The zero value is not a valid
// coordinate produced by this package; use NewCoordinate or MustCoordinate.
type Coordinate struct {
	latitude  float64   // Latitude in degrees, within [-90, 90].
	longitude float64   // Longitude in degrees, within [-180, 180].
	city      string    // City reported by the resolver, if any.
	state     string    // Two-letter state reported by the resolver, if any.
	precision Precision // How the coordinate was obtained.
}

// NewCoordinate validates latitude and longitude and returns a Coordinate.
// Values outside bounds are rejected, never clamped.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, lon)
	}

	return Coordinate{latitude: lat, longitude: lon, precision: PrecisionUnspecified}, nil
}

// MustCoordinate is like NewCoordinate but panics on invalid input.
// It is meant for values known at compile time and for tests.
func MustCoordinate(lat, lon float64) Coordinate {
	c, err := NewCoordinate(lat, lon)
	if err != nil {
		panic(err.Error())
	}

	return c
}

// Latitude returns the latitude in degrees.
func (c Coordinate) Latitude() float64 { return c.latitude }

// Longitude returns the longitude in degrees.
func (c Coordinate) Longitude() float64 { return c.longitude }

// City returns the resolved city name, or an empty string.
func (c Coordinate) City() string { return c.city }

// State returns the resolved two-letter state, or an empty string.
func (c Coordinate) State() string { return c.state }

// Precision returns how the coordinate was obtained.
func (c Coordinate) Precision() Precision {
	if c.precision == "" {
		return PrecisionUnspecified
	}
	return c.precision
}

// IsApproximate reports whether the coordinate came from a coarse fallback.
func (c Coordinate) IsApproximate() bool { return c.precision == PrecisionStateCentroid }

// WithPlace returns a copy of c carrying the given city and state.
func (c Coordinate) WithPlace(city, state string) Coordinate {
	c.city = city
	c.state = state
	return c
}

// WithPrecision returns a copy of c tagged with p.
func (c Coordinate) WithPrecision(p Precision) Coordinate {
	c.precision = p
	return c
}

// SamePoint reports whether two coordinates denote the same position, ignoring place metadata.
func (c Coordinate) SamePoint(o Coordinate) bool {
	return c.latitude == o.latitude && c.longitude == o.longitude
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.latitude, c.longitude)
}
