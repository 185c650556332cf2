// Package matcher ranks candidate loads by how cheaply they fit into a driver's route.
package matcher

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/UnknownOlympus/loadmatch/internal/geo"
	"github.com/UnknownOlympus/loadmatch/internal/models"
)

// ErrInsufficientRoute is returned when a route has fewer than two waypoints.
var ErrInsufficientRoute = errors.New("route needs at least two waypoints")

// MinWaypoints is the smallest route that has a direction.
const MinWaypoints = 2

// Matcher scores candidate loads against a route. The zero value is ready to use.
type Matcher struct {
	maxAddedMiles float64
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithMaxAddedMiles drops candidates whose detour exceeds miles. Zero or less disables the filter.
func WithMaxAddedMiles(miles float64) Option {
	return func(m *Matcher) {
		m.maxAddedMiles = miles
	}
}

// New creates a Matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RankCandidates scores every candidate against the route leg where its detour is cheapest and
// returns the scores ranked: candidates with a revenue per added mile first (highest first), then
// the rest by added miles (lowest first). Ties keep input order.
func (m *Matcher) RankCandidates(route models.Route, candidates []models.CandidateLoad) ([]models.DetourScore, error) {
	if len(route) < MinWaypoints {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientRoute, len(route))
	}

	routeApproximate := false
	for _, wp := range route {
		if wp.IsApproximate() {
			routeApproximate = true
			break
		}
	}

	scores := make([]models.DetourScore, 0, len(candidates))
	for _, c := range candidates {
		score := scoreCandidate(route, c)
		if m.maxAddedMiles > 0 && score.AddedMiles > m.maxAddedMiles {
			continue
		}
		score.Approximate = routeApproximate || c.Pickup.IsApproximate()
		scores = append(scores, score)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return ranksBefore(scores[i], scores[j])
	})

	for i := range scores {
		scores[i].Rank = i + 1
	}

	return scores, nil
}

// scoreCandidate finds the leg with the smallest detour for c.
func scoreCandidate(route models.Route, c models.CandidateLoad) models.DetourScore {
	best := models.DetourScore{CandidateID: c.ID, AddedMiles: math.Inf(1)}

	for i := 0; i < len(route)-1; i++ {
		added := geo.AddedMiles(route[i], route[i+1], c.Pickup)
		if added < best.AddedMiles {
			best.AddedMiles = added
			best.LegIndex = i
		}
	}

	best.OffRouteMiles = geo.SegmentProjectionDistance(route[best.LegIndex], route[best.LegIndex+1], c.Pickup)

	if c.StatedRevenue != nil && best.AddedMiles > 0 {
		rpm := *c.StatedRevenue / best.AddedMiles
		best.RevenuePerAddedMile = &rpm
	}

	return best
}

// ranksBefore reports whether a strictly precedes b.
func ranksBefore(a, b models.DetourScore) bool {
	switch {
	case a.RevenuePerAddedMile != nil && b.RevenuePerAddedMile != nil:
		return *a.RevenuePerAddedMile > *b.RevenuePerAddedMile
	case a.RevenuePerAddedMile != nil:
		return true
	case b.RevenuePerAddedMile != nil:
		return false
	default:
		return a.AddedMiles < b.AddedMiles
	}
}
