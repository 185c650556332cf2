package api

import (
	"fmt"

	"github.com/UnknownOlympus/loadmatch/internal/models"
	"github.com/UnknownOlympus/loadmatch/internal/service"
)

// LocationRequest is either a coordinate pair or a postal descriptor.
type LocationRequest struct {
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	PostalCode string   `json:"postal_code,omitempty"`
	City       string   `json:"city,omitempty"`
	State      string   `json:"state,omitempty"`
}

// CandidateRequest is a load offered for matching.
type CandidateRequest struct {
	ID       string          `json:"id"`
	Location LocationRequest `json:"location"`
	Revenue  *float64        `json:"revenue,omitempty"`
}

// MatchRequest is the body of POST /v1/match. Omitted candidates select the open load board.
type MatchRequest struct {
	Route         []LocationRequest  `json:"route"`
	Candidates    []CandidateRequest `json:"candidates"`
	MaxAddedMiles float64            `json:"max_added_miles"`
}

// CoordinateResponse is a resolved location with its precision tag.
type CoordinateResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Precision string  `json:"precision"`
}

// DistanceResponse is the great-circle distance in miles.
type DistanceResponse struct {
	Miles float64 `json:"miles"`
}

// ScoreResponse is one ranked candidate.
type ScoreResponse struct {
	CandidateID         string   `json:"candidate_id"`
	Rank                int      `json:"rank"`
	AddedMiles          float64  `json:"added_miles"`
	RevenuePerAddedMile *float64 `json:"revenue_per_added_mile"`
	LegIndex            int      `json:"leg_index"`
	OffRouteMiles       float64  `json:"off_route_miles"`
	Approximate         bool     `json:"approximate"`
}

// MatchResponse lists candidates in rank order.
type MatchResponse struct {
	Scores []ScoreResponse `json:"scores"`
}

func (l LocationRequest) toLocation() (service.Location, error) {
	switch {
	case l.Latitude != nil && l.Longitude != nil:
		coord, err := models.NewCoordinate(*l.Latitude, *l.Longitude)
		if err != nil {
			return service.Location{}, err
		}
		return service.Location{Coordinate: &coord}, nil
	case l.Latitude != nil || l.Longitude != nil:
		return service.Location{}, fmt.Errorf("%w: latitude and longitude must be given together",
			models.ErrInvalidCoordinate)
	default:
		return service.Location{
			Query: models.LocationQuery{PostalCode: l.PostalCode, City: l.City, State: l.State},
		}, nil
	}
}

func (req MatchRequest) route() ([]service.Location, error) {
	route := make([]service.Location, 0, len(req.Route))
	for i, wp := range req.Route {
		loc, err := wp.toLocation()
		if err != nil {
			return nil, fmt.Errorf("route waypoint %d: %w", i, err)
		}
		route = append(route, loc)
	}

	return route, nil
}

func (req MatchRequest) candidates() ([]service.Candidate, error) {
	candidates := make([]service.Candidate, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		loc, err := c.Location.toLocation()
		if err != nil {
			return nil, fmt.Errorf("candidate %q: %w", c.ID, err)
		}
		candidates = append(candidates, service.Candidate{ID: c.ID, Pickup: loc, Revenue: c.Revenue})
	}

	return candidates, nil
}

func newCoordinateResponse(c models.Coordinate) CoordinateResponse {
	return CoordinateResponse{
		Latitude:  c.Latitude(),
		Longitude: c.Longitude(),
		City:      c.City(),
		State:     c.State(),
		Precision: string(c.Precision()),
	}
}

func newMatchResponse(scores []models.DetourScore) MatchResponse {
	res := MatchResponse{Scores: make([]ScoreResponse, 0, len(scores))}
	for _, s := range scores {
		res.Scores = append(res.Scores, ScoreResponse{
			CandidateID:         s.CandidateID,
			Rank:                s.Rank,
			AddedMiles:          s.AddedMiles,
			RevenuePerAddedMile: s.RevenuePerAddedMile,
			LegIndex:            s.LegIndex,
			OffRouteMiles:       s.OffRouteMiles,
			Approximate:         s.Approximate,
		})
	}

	return res
}
