package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests          *prometheus.CounterVec
	CounterWorkoutsGenerated prometheus.Counter
	CounterWorkoutsCompleted prometheus.Counter
	CounterSetsUpdated       prometheus.Counter
	CounterInvitesSent       prometheus.Counter
	CounterRequestPanic      prometheus.Counter
	CounterCatalogCacheHits  prometheus.Counter
	CounterCatalogCacheMisses  prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("gymbuddy", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("gymbuddy", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterWorkoutsGenerated: counter("workouts_generated", "The total number of generated workouts"),
		CounterWorkoutsCompleted: counter("workouts_completed", "The total number of completed workouts"),
		CounterSetsUpdated:       counter("exercise_sets_updated", "The total number of exercise set updates"),
		CounterInvitesSent:       counter("partner_invites_sent", "The total number of partner invites sent"),
		CounterRequestPanic:      counter("handle_request_panic", "The total number of serve request panics"),
		CounterCatalogCacheHits:  counter("catalog_cache_hits", "The total number of catalog reads served from cache"),
		CounterCatalogCacheMisses:  counter("catalog_cache_misses", "The total number of catalog reads that went to the store"),
		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of requests served",
		}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
		}, []string{"route"}),
	}
}
