// Package geo implements the pure distance functions used for detour scoring.
//
// Distances are great-circle miles computed with the haversine formula. Route legs are
// approximated as straight lines in latitude/longitude space, which is adequate for
// intra-US detours but not accurate below a mile.
package geo

import (
	"math"

	"github.com/UnknownOlympus/loadmatch/internal/models"
)

// EarthRadiusMiles is the fixed Earth radius used by Distance.
const EarthRadiusMiles = 3958.8

// Distance returns the great-circle distance between a and b in miles.
func Distance(a, b models.Coordinate) float64 {
	lat1 := degToRad(a.Latitude())
	lat2 := degToRad(b.Latitude())
	dLat := degToRad(b.Latitude() - a.Latitude())
	dLon := degToRad(b.Longitude() - a.Longitude())

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	// Rounding can push h a hair above 1 for antipodal points.
	h = math.Min(1, h)

	return 2 * EarthRadiusMiles * math.Asin(math.Sqrt(h))
}

// RouteLength returns the summed distance of consecutive points. A single point has zero length.
func RouteLength(points []models.Coordinate) float64 {
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += Distance(points[i], points[i+1])
	}
	return total
}

// SegmentProjectionDistance returns the distance in miles from point to the closest point on the
// segment start→end. The segment is interpolated linearly in (lat, lng) space and the projection
// is clamped to the segment's endpoints.
func SegmentProjectionDistance(start, end, point models.Coordinate) float64 {
	dLat := end.Latitude() - start.Latitude()
	dLon := end.Longitude() - start.Longitude()

	// Distinct endpoints can still be so close that the squared length underflows to zero.
	denom := dLat*dLat + dLon*dLon
	if !(denom > 0) {
		return Distance(start, point)
	}

	t := ((point.Latitude()-start.Latitude())*dLat + (point.Longitude()-start.Longitude())*dLon) / denom
	t = math.Max(0, math.Min(1, t))

	// Interpolation between in-range endpoints stays in range up to rounding.
	closest := models.MustCoordinate(
		math.Max(-90, math.Min(90, start.Latitude()+t*dLat)),
		math.Max(-180, math.Min(180, start.Longitude()+t*dLon)),
	)

	return Distance(closest, point)
}

// AddedMiles returns the extra distance of travelling routeStart→detourPoint→routeEnd instead
// of routeStart→routeEnd. The result is floored at zero.
func AddedMiles(routeStart, routeEnd, detourPoint models.Coordinate) float64 {
	added := Distance(routeStart, detourPoint) + Distance(detourPoint, routeEnd) - Distance(routeStart, routeEnd)

	return math.Max(0, added)
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
