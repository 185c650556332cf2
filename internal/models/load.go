package models

// Route is an ordered sequence of waypoints in a driver's intended path.
type Route []Coordinate

// CandidateLoad is a load a driver might add to their route.
type CandidateLoad struct {
	ID            string     // ID identifies the load in the caller's system.
	Pickup        Coordinate // Pickup is the resolved pickup location.
	StatedRevenue *float64   // StatedRevenue is the quoted revenue, nil when unknown.
}

// DetourScore is the ranking output for one candidate load.
type DetourScore struct {
	CandidateID         string
	AddedMiles          float64  // Extra miles of the cheapest detour, never negative.
	RevenuePerAddedMile *float64 // Nil when revenue is unknown or AddedMiles is zero.
	Rank                int      // 1-based position in the ranked result.
	LegIndex            int      // 0-based index of the route leg the detour branches from.
	OffRouteMiles       float64  // Distance from the pickup to that leg.
	Approximate         bool     // True when the pickup or any waypoint is a state-centroid fallback.
}
