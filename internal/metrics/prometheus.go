package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the ingestion pipeline

var (
	// API call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nba_api_calls_total",
			Help: "Total number of balldontlie API calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nba_api_call_duration_seconds",
			Help:    "Duration of API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Pipeline metrics
	DatesProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nba_dates_processed_total",
			Help: "Total number of dates processed by the pipeline",
		},
		[]string{"pass", "status"},
	)

	DatesQueued = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nba_dates_queued",
			Help: "Number of dates remaining in the current pass",
		},
	)

	GamesIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nba_games_ingested_total",
			Help: "Total number of game rows emitted by the transformer",
		},
	)

	// Database metrics
	BatchWriteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nba_batch_write_duration_seconds",
			Help:    "Duration of per-date batch writes in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	BatchWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nba_batch_writes_total",
			Help: "Total number of per-date batch write transactions",
		},
		[]string{"status"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nba_system_uptime_seconds",
			Help: "Worker uptime in seconds",
		},
	)
)
