package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PowerAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paradecast_power_api_calls_total",
			Help: "Total NASA POWER API calls",
		},
		[]string{"status"},
	)

	PowerAPILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paradecast_power_api_latency_seconds",
			Help:    "POWER API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	RecordsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paradecast_records_ingested_total",
			Help: "Total daily records written to the cache",
		},
		[]string{"source"},
	)

	AnalyzeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paradecast_analyze_requests_total",
			Help: "Total window analysis requests",
		},
		[]string{"activity", "status"},
	)

	AnalyzeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paradecast_analyze_latency_seconds",
			Help:    "Window analysis latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"activity"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paradecast_history_cache_total",
			Help: "History cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
