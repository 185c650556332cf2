package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/loadmatch/internal/geocoding"
	"github.com/UnknownOlympus/loadmatch/internal/metrics"
	"github.com/UnknownOlympus/loadmatch/internal/models"
	"github.com/UnknownOlympus/loadmatch/internal/repository"
)

// Resolver turns a location descriptor into a coordinate. *geocoding.Geocoder implements it.
type Resolver interface {
	Geocode(ctx context.Context, query models.LocationQuery) (models.Coordinate, error)
}

// GeocodingService resolves pickup coordinates for posted loads in the background,
// using a pool of workers per polling round.
type GeocodingService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Load board access
	resolver     Resolver             // Resolver for pickup locations
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval between polling rounds
	batchSize    int                  // Maximum loads fetched per round
}

// NewGeocodingService creates a new instance of GeocodingService.
func NewGeocodingService(
	log *slog.Logger,
	repo repository.Interface,
	resolver Resolver,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
	batchSize int,
) *GeocodingService {
	return &GeocodingService{
		log:          log,
		repo:         repo,
		resolver:     resolver,
		metrics:      metrics,
		numWorkers:   max(1, numWorkers),
		pollInterval: pollInterval,
		batchSize:    batchSize,
	}
}

// Run starts the geocoding service, which periodically polls for loads to geocode.
// It listens for a cancellation signal from the context to gracefully stop the service.
func (gs *GeocodingService) Run(ctx context.Context) {
	ticker := time.NewTicker(gs.pollInterval)
	defer ticker.Stop()

	gs.log.InfoContext(ctx, "Pickup geocoding service started...")

	for {
		select {
		case <-ctx.Done():
			gs.log.InfoContext(ctx, "Pickup geocoding service stopped.")
			return
		case <-ticker.C:
			gs.log.InfoContext(ctx, "Polling for loads without pickup coordinates...")
			gs.processLoads(ctx)
		}
	}
}

// processLoads fetches a batch of loads, fans them out to the worker pool and waits for it to drain.
func (gs *GeocodingService) processLoads(ctx context.Context) {
	tasks, err := gs.repo.FetchLoadsForGeocoding(ctx, gs.batchSize)
	if err != nil {
		gs.log.ErrorContext(ctx, "Failed to fetch loads", "error", err)
		return
	}
	if len(tasks) == 0 {
		gs.log.InfoContext(ctx, "No loads to process.")
		return
	}

	gs.log.InfoContext(
		ctx,
		"Found loads to process. Starting worker pool.",
		"jobs", len(tasks),
		"num_workers", gs.numWorkers,
	)

	jobs := make(chan models.LoadTask, len(tasks))
	var wgr sync.WaitGroup

	for i := 1; i <= gs.numWorkers; i++ {
		wgr.Add(1)
		go gs.worker(ctx, i, &wgr, jobs)
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	wgr.Wait()
	gs.log.InfoContext(ctx, "Processing batch finished")
}

// worker resolves pickups from the jobs channel. Transient lookup failures leave the load
// untouched so it is retried on the next round; other failures consume an attempt.
func (gs *GeocodingService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.LoadTask) {
	defer wg.Done()
	for task := range jobs {
		gs.metrics.ActiveWorkers.Inc()
		gs.process(ctx, idx, task)
		gs.metrics.ActiveWorkers.Dec()
	}
}

func (gs *GeocodingService) process(ctx context.Context, idx int, task models.LoadTask) {
	gs.log.DebugContext(ctx, "Processing load", "worker", idx, "load", task.ID)

	coord, err := gs.resolver.Geocode(ctx, task.Location)
	if errors.Is(err, geocoding.ErrLookupUnavailable) {
		gs.log.WarnContext(ctx, "Postal lookup unavailable, will retry", "worker", idx, "load", task.ID, "error", err)
		gs.metrics.LoadsProcessed.WithLabelValues("retry").Inc()
		return
	}
	if err != nil {
		gs.log.ErrorContext(ctx, "Failed to geocode pickup", "worker", idx, "load", task.ID, "error", err)
		gs.metrics.LoadsProcessed.WithLabelValues("failure").Inc()

		if err = gs.repo.IncrementFailureCount(ctx, task.ID, err.Error()); err != nil {
			gs.log.ErrorContext(
				ctx,
				"Could not update failure count for load",
				"worker", idx,
				"load", task.ID,
				"error", err,
			)
		}
		return
	}

	gs.metrics.LoadsProcessed.WithLabelValues("success").Inc()

	if err = gs.repo.UpdateLoadCoordinates(ctx, task.ID, coord); err != nil {
		gs.log.ErrorContext(
			ctx,
			"Failed to update pickup coordinates for load",
			"worker", idx,
			"load", task.ID,
			"error", err,
		)
		return
	}

	gs.log.DebugContext(ctx, "Worker successfully processed the load",
		"worker", idx, "load", task.ID, "precision", coord.Precision())
}
