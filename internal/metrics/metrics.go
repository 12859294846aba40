package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ghtracker_events_fetched_total",
		Help: "Total number of raw events fetched from the GitHub API.",
	})

	EventsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ghtracker_events_inserted_total",
		Help: "Total number of events actually inserted into the store.",
	})

	EventsUnknown = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ghtracker_events_unknown_total",
		Help: "Total number of events normalized to the unknown variant.",
	})

	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ghtracker_fetch_failures_total",
		Help: "Total number of failed GitHub API fetches.",
	})

	StoreFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ghtracker_store_failures_total",
		Help: "Total number of failed store operations.",
	})

	CyclesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ghtracker_cycles_completed_total",
		Help: "Total number of completed ingestion cycles.",
	})

	CyclesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ghtracker_cycles_skipped_total",
		Help: "Total number of cycles skipped because a previous cycle was still running.",
	})

	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ghtracker_cycle_duration_seconds",
		Help:    "Duration of a full ingestion cycle in seconds.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})
)
