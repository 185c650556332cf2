package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/loadmatch/internal/cache"
	"github.com/UnknownOlympus/loadmatch/internal/metrics"
	"github.com/UnknownOlympus/loadmatch/internal/models"
)

// Errors returned by Geocoder.Geocode.
var (
	// ErrInvalidLocationInput means the postal code is malformed and no usable state was given.
	ErrInvalidLocationInput = errors.New("invalid location input")
	// ErrLocationUnresolved means neither the postal code nor the state produced a location.
	ErrLocationUnresolved = errors.New("location unresolved")
	// ErrLookupUnavailable means the postal lookup service failed transiently; callers may retry.
	ErrLookupUnavailable = errors.New("postal lookup unavailable")
)

// DefaultLookupTimeout bounds a single call to the postal lookup service.
const DefaultLookupTimeout = 5 * time.Second

// errDeclined is returned by a strategy that cannot resolve the query, letting the next one try.
var errDeclined = errors.New("strategy declined")

// strategy is one step of the resolution chain.
type strategy interface {
	name() string
	resolve(ctx context.Context, query models.LocationQuery) (models.Coordinate, error)
}

// Geocoder resolves location descriptors to coordinates. It tries the postal code first
// (cache, then lookup service) and falls back to the center of the given state.
type Geocoder struct {
	strategies []strategy
	log        *slog.Logger
}

// Option configures a Geocoder.
type Option func(*options)

type options struct {
	lookupTimeout time.Duration
}

// WithLookupTimeout sets the timeout applied to each postal lookup call.
func WithLookupTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.lookupTimeout = d
		}
	}
}

// NewGeocoder creates a Geocoder backed by lookup and the shared coordinate cache.
func NewGeocoder(
	lookup PostalLookup,
	coords *cache.Coordinates,
	log *slog.Logger,
	metrics *metrics.Metrics,
	opts ...Option,
) *Geocoder {
	o := options{lookupTimeout: DefaultLookupTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	return &Geocoder{
		strategies: []strategy{
			&postalStrategy{
				lookup:  lookup,
				cache:   coords,
				timeout: o.lookupTimeout,
				log:     log,
				metrics: metrics,
			},
			&stateStrategy{log: log, metrics: metrics},
		},
		log: log,
	}
}

// Geocode resolves query to a coordinate tagged with its precision.
//
// It returns ErrLookupUnavailable when the lookup service fails transiently, ErrInvalidLocationInput
// when a malformed postal code has no state fallback, and ErrLocationUnresolved otherwise.
// It never returns a placeholder coordinate together with an error.
func (g *Geocoder) Geocode(ctx context.Context, query models.LocationQuery) (models.Coordinate, error) {
	for _, s := range g.strategies {
		coord, err := s.resolve(ctx, query)
		if err == nil {
			g.log.DebugContext(ctx, "Location resolved",
				"strategy", s.name(),
				"postal_code", query.PostalCode,
				"state", query.State,
				"precision", coord.Precision())
			return coord, nil
		}
		if !errors.Is(err, errDeclined) {
			return models.Coordinate{}, err
		}
	}

	if query.HasPostalCode() {
		if _, ok := models.ParsePostalKey(query.PostalCode); !ok {
			return models.Coordinate{}, fmt.Errorf(
				"%w: postal code %q is not a 5-digit code and state %q is not usable",
				ErrInvalidLocationInput, query.PostalCode, query.State,
			)
		}
	}

	return models.Coordinate{}, fmt.Errorf(
		"%w: postal code %q, state %q",
		ErrLocationUnresolved, query.PostalCode, query.State,
	)
}

// postalStrategy resolves well-formed postal codes through the cache and the lookup service.
type postalStrategy struct {
	lookup  PostalLookup
	cache   *cache.Coordinates
	timeout time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics
}

func (ps *postalStrategy) name() string { return "postal_code" }

func (ps *postalStrategy) resolve(ctx context.Context, query models.LocationQuery) (models.Coordinate, error) {
	key, ok := models.ParsePostalKey(query.PostalCode)
	if !ok {
		return models.Coordinate{}, errDeclined
	}

	if coord, hit := ps.cache.Get(key); hit {
		ps.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return coord, nil
	}
	ps.metrics.CacheLookups.WithLabelValues("miss").Inc()

	lookupCtx, cancel := context.WithTimeout(ctx, ps.timeout)
	defer cancel()

	startTime := time.Now()
	record, err := ps.lookup.LookupPostalCode(lookupCtx, string(key))
	ps.metrics.LookupSeconds.Observe(time.Since(startTime).Seconds())

	if errors.Is(err, ErrPostalCodeNotFound) {
		ps.metrics.LookupErrors.WithLabelValues("not_found").Inc()
		ps.log.DebugContext(ctx, "Postal code not found", "postal_code", key)
		return models.Coordinate{}, errDeclined
	}
	if err != nil {
		ps.metrics.LookupErrors.WithLabelValues("unavailable").Inc()
		return models.Coordinate{}, fmt.Errorf("%w: postal code %s: %w", ErrLookupUnavailable, key, err)
	}

	coord, err := models.NewCoordinate(record.Latitude, record.Longitude)
	if err != nil {
		ps.metrics.LookupErrors.WithLabelValues("invalid").Inc()
		return models.Coordinate{}, fmt.Errorf("%w: postal code %s: %w", ErrLookupUnavailable, key, err)
	}
	coord = coord.WithPlace(record.City, record.State).WithPrecision(models.PrecisionPostalCode)

	ps.cache.Put(key, coord)

	return coord, nil
}

// stateStrategy resolves a recognized state code to its approximate geographic center.
type stateStrategy struct {
	log     *slog.Logger
	metrics *metrics.Metrics
}

func (ss *stateStrategy) name() string { return "state_centroid" }

func (ss *stateStrategy) resolve(ctx context.Context, query models.LocationQuery) (models.Coordinate, error) {
	state := query.NormalizedState()
	center, ok := StateCenter(state)
	if !ok {
		return models.Coordinate{}, errDeclined
	}

	ss.metrics.Fallbacks.Inc()
	ss.log.InfoContext(ctx, "Using state center fallback",
		"postal_code", query.PostalCode,
		"city", query.City,
		"state", state)

	return center.
		WithPlace(query.NormalizedCity(), state).
		WithPrecision(models.PrecisionStateCentroid), nil
}
