package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/loadmatch/internal/models"
	"github.com/UnknownOlympus/loadmatch/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Matching is the part of service.MatchingService the HTTP surface depends on.
type Matching interface {
	Geocode(ctx context.Context, query models.LocationQuery) (models.Coordinate, error)
	DistanceBetween(a, b models.Coordinate) float64
	Rank(ctx context.Context, req service.MatchRequest) ([]models.DetourScore, error)
	MatchOpenLoads(
		ctx context.Context,
		route []service.Location,
		maxAddedMiles float64,
		limit int,
	) ([]models.DetourScore, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the geocode, distance and match endpoints.
type Handler struct {
	log        *slog.Logger
	matching   Matching
	db         Pinger
	matchLimit int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// matchLimit bounds the number of open loads ranked when a match request carries no candidates.
func NewRouter(
	log *slog.Logger,
	matching Matching,
	db Pinger,
	gatherer prometheus.Gatherer,
	matchLimit int,
) http.Handler {
	h := &Handler{log: log, matching: matching, db: db, matchLimit: matchLimit}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(log))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/geocode", h.Geocode)
		r.Get("/distance", h.Distance)
		r.Post("/match", h.Match)
	})

	return r
}
