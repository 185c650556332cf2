package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/UnknownOlympus/loadmatch/internal/geocoding"
	"github.com/UnknownOlympus/loadmatch/internal/metrics"
	"github.com/UnknownOlympus/loadmatch/internal/models"
	"github.com/UnknownOlympus/loadmatch/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestProcessLoads(t *testing.T) {
	mockRepo := mocks.NewInterface(t)
	mockResolver := mocks.NewResolver(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)
	ctx := t.Context()
	service := NewGeocodingService(logger, mockRepo, mockResolver, appMetrics, 2, 1*time.Second, 100)

	phoenixQuery := models.LocationQuery{PostalCode: "85001", City: "Phoenix", State: "AZ"}
	phoenix := models.MustCoordinate(33.4484, -112.0740).
		WithPlace("Phoenix", "AZ").
		WithPrecision(models.PrecisionPostalCode)

	t.Run("successful processing", func(t *testing.T) {
		sampleTasks := []models.LoadTask{{ID: 1, Location: phoenixQuery}}

		mockRepo.On("FetchLoadsForGeocoding", ctx, 100).Return(sampleTasks, nil).Once()
		mockResolver.On("Geocode", ctx, phoenixQuery).Return(phoenix, nil).Once()
		mockRepo.On("UpdateLoadCoordinates", ctx, 1, phoenix).Return(nil).Once()

		service.processLoads(ctx)

		mockRepo.AssertExpectations(t)
		mockResolver.AssertExpectations(t)
	})

	t.Run("fetch loads return error", func(t *testing.T) {
		mockRepo.On("FetchLoadsForGeocoding", ctx, 100).Return(nil, assert.AnError).Once()

		service.processLoads(ctx)

		mockRepo.AssertExpectations(t)
		mockResolver.AssertExpectations(t)
	})

	t.Run("fetch loads return empty list", func(t *testing.T) {
		mockRepo.On("FetchLoadsForGeocoding", ctx, 100).Return([]models.LoadTask{}, nil).Once()

		service.processLoads(ctx)

		mockRepo.AssertExpectations(t)
		mockResolver.AssertExpectations(t)
	})

	t.Run("unresolved location consumes an attempt", func(t *testing.T) {
		query := models.LocationQuery{PostalCode: "00000"}
		sampleTasks := []models.LoadTask{{ID: 2, Location: query}}
		geocodeErr := fmt.Errorf("%w: postal code %q, state %q", geocoding.ErrLocationUnresolved, "00000", "")

		mockRepo.On("FetchLoadsForGeocoding", ctx, 100).Return(sampleTasks, nil).Once()
		mockResolver.On("Geocode", ctx, query).Return(models.Coordinate{}, geocodeErr).Once()
		mockRepo.On("IncrementFailureCount", ctx, 2, geocodeErr.Error()).Return(nil).Once()

		service.processLoads(ctx)

		mockRepo.AssertExpectations(t)
		mockResolver.AssertExpectations(t)
	})

	t.Run("error to increment failure count", func(t *testing.T) {
		query := models.LocationQuery{PostalCode: "ABCDE"}
		sampleTasks := []models.LoadTask{{ID: 2, Location: query}}
		geocodeErr := fmt.Errorf("%w: bad postal code", geocoding.ErrInvalidLocationInput)

		mockRepo.On("FetchLoadsForGeocoding", ctx, 100).Return(sampleTasks, nil).Once()
		mockResolver.On("Geocode", ctx, query).Return(models.Coordinate{}, geocodeErr).Once()
		mockRepo.On("IncrementFailureCount", ctx, 2, geocodeErr.Error()).Return(assert.AnError).Once()

		service.processLoads(ctx)

		mockRepo.AssertExpectations(t)
		mockResolver.AssertExpectations(t)
	})

	t.Run("lookup unavailable leaves the load for the next round", func(t *testing.T) {
		sampleTasks := []models.LoadTask{{ID: 3, Location: phoenixQuery}}
		geocodeErr := fmt.Errorf("%w: postal code 85001: %w", geocoding.ErrLookupUnavailable, assert.AnError)

		mockRepo.On("FetchLoadsForGeocoding", ctx, 100).Return(sampleTasks, nil).Once()
		mockResolver.On("Geocode", ctx, phoenixQuery).Return(models.Coordinate{}, geocodeErr).Once()

		service.processLoads(ctx)

		mockRepo.AssertExpectations(t)
		mockResolver.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "IncrementFailureCount", ctx, 3, geocodeErr.Error())
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.LoadsProcessed.WithLabelValues("retry")), 0)
	})

	t.Run("error to update load coordinates", func(t *testing.T) {
		sampleTasks := []models.LoadTask{{ID: 1, Location: phoenixQuery}}

		mockRepo.On("FetchLoadsForGeocoding", ctx, 100).Return(sampleTasks, nil).Once()
		mockResolver.On("Geocode", ctx, phoenixQuery).Return(phoenix, nil).Once()
		mockRepo.On("UpdateLoadCoordinates", ctx, 1, phoenix).Return(assert.AnError).Once()

		service.processLoads(ctx)

		mockRepo.AssertExpectations(t)
		mockResolver.AssertExpectations(t)
	})

	t.Run("start context cancelled", func(t *testing.T) {
		tctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		service.Run(tctx)
	})
}
