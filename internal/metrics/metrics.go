package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ActiveSessions      prometheus.Gauge
	BroadcastsTotal     prometheus.Counter
	SlowClientEvictions prometheus.Counter

	CommandsTotal *prometheus.CounterVec

	UpstreamFetchesTotal  *prometheus.CounterVec
	UpstreamFetchDuration prometheus.Histogram

	CacheLoadsTotal prometheus.Counter
	CacheSavesTotal prometheus.Counter
}

func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ActiveSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "chat_active_sessions",
				Help: "Number of currently connected chat sessions",
			},
		),

		BroadcastsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chat_broadcasts_total",
				Help: "Total number of chat messages fanned out",
			},
		),

		SlowClientEvictions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chat_slow_client_evictions_total",
				Help: "Total number of sessions dropped for a full send buffer",
			},
		),

		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commands_total",
				Help: "Total number of processed inbound commands",
			},
			[]string{"kind"},
		),

		UpstreamFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_fetches_total",
				Help: "Total number of upstream day-rate fetches",
			},
			[]string{"outcome"},
		),

		UpstreamFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "upstream_fetch_duration_seconds",
				Help:    "Upstream day-rate fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		CacheLoadsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_cache_loads_total",
				Help: "Total number of rate cache store loads",
			},
		),

		CacheSavesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_cache_saves_total",
				Help: "Total number of rate cache store saves",
			},
		),
	}
}
