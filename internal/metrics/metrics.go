package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CacheLookups    *prometheus.CounterVec
	LookupErrors    *prometheus.CounterVec
	LookupSeconds   prometheus.Histogram
	Fallbacks       prometheus.Counter
	LoadsProcessed  *prometheus.CounterVec
	ActiveWorkers   prometheus.Gauge
	RankRequests    *prometheus.CounterVec
	CandidatesRated prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CacheLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "loadmatch_coordinate_cache_lookups_total",
			Help: "Total number of postal code cache lookups by result.",
		}, []string{"result"}),
		LookupErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "loadmatch_postal_lookup_errors_total",
			Help: "Total number of unsuccessful postal code lookups by kind.",
		}, []string{"kind"}),
		LookupSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "loadmatch_postal_lookup_duration_seconds",
			Help:    "Duration of requests to the postal code lookup service.",
			Buckets: prometheus.DefBuckets,
		}),
		Fallbacks: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "loadmatch_state_fallbacks_total",
			Help: "Total number of locations resolved to a state center.",
		}),
		LoadsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "loadmatch_pickups_geocoded_total",
			Help: "Total number of load pickups processed by the geocoding service.",
		}, []string{"status"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "loadmatch_geocoding_active_workers",
			Help: "Current number of active workers geocoding load pickups.",
		}),
		RankRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "loadmatch_rank_requests_total",
			Help: "Total number of candidate ranking requests by outcome.",
		}, []string{"status"}),
		CandidatesRated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "loadmatch_candidates_scored_total",
			Help: "Total number of candidate loads scored against a route.",
		}),
	}
}
