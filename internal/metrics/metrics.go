package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query kind labels for the analytics counters.
const (
	QueryMTBF         = "mtbf"
	QueryMTTR         = "mttr"
	QueryAvailability = "availability"
	QueryFMEA         = "fmea"
	QueryWeibull      = "weibull"
	QueryScore        = "reliability_score"
	QueryPredictive   = "predictive"
	QueryFleet        = "fleet_summary"
)

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reliability_engine",
			Name:      "queries_total",
			Help:      "Total number of analytics queries served, partitioned by query kind.",
		},
		[]string{"query"},
	)

	queryDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "reliability_engine",
			Name:      "query_seconds",
			Help:      "Analytics query latency in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	loadedEvents = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reliability_engine",
			Name:      "loaded_events",
			Help:      "Number of failure events in the currently loaded batch.",
		},
	)
)

// Register attaches the engine collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		queriesTotal,
		queryDurationSeconds,
		loadedEvents,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveQuery records one analytics query by kind and duration.
func ObserveQuery(kind string, duration time.Duration) {
	queriesTotal.WithLabelValues(kind).Inc()
	if duration < 0 {
		duration = 0
	}
	queryDurationSeconds.Observe(duration.Seconds())
}

// SetLoadedEvents records the size of the active event batch.
func SetLoadedEvents(count int) {
	loadedEvents.Set(float64(count))
}
