// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CollaborationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collaboration_runs_total",
			Help: "Total number of collaboration pipeline runs",
		},
		[]string{"status"},
	)

	CollaborationProjectUnits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "collaboration_project_units_total",
			Help: "Total number of per-project units executed",
		},
	)

	CollaborationFacts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "collaboration_facts_total",
			Help: "Total number of positive project overlap facts recorded",
		},
	)

	CollaborationRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collaboration_run_duration_seconds",
			Help:    "Duration of collaboration pipeline runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
	)

	IngestRowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collaboration_ingest_rows_skipped_total",
			Help: "Total number of input rows skipped during ingestion",
		},
		[]string{"reason"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collaboration_cache_lookups_total",
			Help: "Total number of result cache lookups",
		},
		[]string{"result"},
	)
)
