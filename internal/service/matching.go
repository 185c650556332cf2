package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/UnknownOlympus/loadmatch/internal/geo"
	"github.com/UnknownOlympus/loadmatch/internal/matcher"
	"github.com/UnknownOlympus/loadmatch/internal/metrics"
	"github.com/UnknownOlympus/loadmatch/internal/models"
	"github.com/UnknownOlympus/loadmatch/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Location is either an already resolved coordinate or a descriptor to geocode.
type Location struct {
	Coordinate *models.Coordinate
	Query      models.LocationQuery
}

// Candidate is a load offered for matching, possibly with an unresolved pickup.
type Candidate struct {
	ID      string
	Pickup  Location
	Revenue *float64
}

// MatchRequest asks for candidates ranked against a route.
type MatchRequest struct {
	Route         []Location
	Candidates    []Candidate
	MaxAddedMiles float64
}

// MatchingService resolves route and candidate locations and ranks the candidates.
type MatchingService struct {
	log        *slog.Logger
	resolver   Resolver
	repo       repository.Interface
	metrics    *metrics.Metrics
	numWorkers int
}

// NewMatchingService creates a MatchingService. numWorkers bounds concurrent geocoding per request.
func NewMatchingService(
	log *slog.Logger,
	resolver Resolver,
	repo repository.Interface,
	metrics *metrics.Metrics,
	numWorkers int,
) *MatchingService {
	return &MatchingService{
		log:        log,
		resolver:   resolver,
		repo:       repo,
		metrics:    metrics,
		numWorkers: max(1, numWorkers),
	}
}

// Geocode resolves a single location descriptor.
func (ms *MatchingService) Geocode(ctx context.Context, query models.LocationQuery) (models.Coordinate, error) {
	return ms.resolver.Geocode(ctx, query)
}

// DistanceBetween returns the great-circle distance between a and b in miles.
func (ms *MatchingService) DistanceBetween(a, b models.Coordinate) float64 {
	return geo.Distance(a, b)
}

// Rank resolves every location in req and ranks the candidates. Any unresolved location fails
// the whole request.
func (ms *MatchingService) Rank(ctx context.Context, req MatchRequest) ([]models.DetourScore, error) {
	if len(req.Route) < matcher.MinWaypoints {
		ms.metrics.RankRequests.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: got %d", matcher.ErrInsufficientRoute, len(req.Route))
	}

	route := make(models.Route, len(req.Route))
	candidates := make([]models.CandidateLoad, len(req.Candidates))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(ms.numWorkers)

	for i, wp := range req.Route {
		grp.Go(func() error {
			coord, err := ms.resolve(gctx, wp)
			if err != nil {
				return fmt.Errorf("route waypoint %d: %w", i, err)
			}
			route[i] = coord
			return nil
		})
	}

	for i, c := range req.Candidates {
		grp.Go(func() error {
			coord, err := ms.resolve(gctx, c.Pickup)
			if err != nil {
				return fmt.Errorf("candidate %q: %w", c.ID, err)
			}
			candidates[i] = models.CandidateLoad{ID: c.ID, Pickup: coord, StatedRevenue: c.Revenue}
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		ms.metrics.RankRequests.WithLabelValues("unresolved").Inc()
		return nil, err
	}

	return ms.rank(route, candidates, req.MaxAddedMiles)
}

// MatchOpenLoads ranks up to limit open loads from the load board against route.
func (ms *MatchingService) MatchOpenLoads(
	ctx context.Context,
	route []Location,
	maxAddedMiles float64,
	limit int,
) ([]models.DetourScore, error) {
	if len(route) < matcher.MinWaypoints {
		ms.metrics.RankRequests.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: got %d", matcher.ErrInsufficientRoute, len(route))
	}

	loads, err := ms.repo.FetchOpenLoads(ctx, limit)
	if err != nil {
		ms.metrics.RankRequests.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("failed to fetch open loads: %w", err)
	}

	candidates := make([]Candidate, 0, len(loads))
	for _, load := range loads {
		coord, errCoord := models.NewCoordinate(load.Latitude, load.Longitude)
		if errCoord != nil {
			ms.log.WarnContext(ctx, "Skipping open load with invalid pickup", "load", load.ID, "error", errCoord)
			continue
		}
		coord = coord.WithPrecision(load.Precision)
		candidates = append(candidates, Candidate{
			ID:      strconv.Itoa(load.ID),
			Pickup:  Location{Coordinate: &coord},
			Revenue: load.Revenue,
		})
	}

	return ms.Rank(ctx, MatchRequest{Route: route, Candidates: candidates, MaxAddedMiles: maxAddedMiles})
}

func (ms *MatchingService) resolve(ctx context.Context, loc Location) (models.Coordinate, error) {
	if loc.Coordinate != nil {
		return *loc.Coordinate, nil
	}
	return ms.resolver.Geocode(ctx, loc.Query)
}

func (ms *MatchingService) rank(
	route models.Route,
	candidates []models.CandidateLoad,
	maxAddedMiles float64,
) ([]models.DetourScore, error) {
	scores, err := matcher.New(matcher.WithMaxAddedMiles(maxAddedMiles)).RankCandidates(route, candidates)
	if err != nil {
		ms.metrics.RankRequests.WithLabelValues("rejected").Inc()
		return nil, err
	}

	ms.metrics.RankRequests.WithLabelValues("success").Inc()
	ms.metrics.CandidatesRated.Add(float64(len(candidates)))

	return scores, nil
}
