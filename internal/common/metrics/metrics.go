// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DialogTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_turns_total",
			Help: "Total number of dialog turns handled, by intent and disposition",
		},
		[]string{"intent", "disposition"},
	)

	DialogTurnFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_turn_failures_total",
			Help: "Total number of dialog turns that ended in a Failed close",
		},
		[]string{"intent", "error_code"},
	)

	JobsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fulfillment_jobs_processed_total",
			Help: "Total number of fulfillment jobs processed",
		},
	)

	JobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_jobs_failed_total",
			Help: "Total number of fulfillment jobs that were marked for redelivery",
		},
		[]string{"error_code"},
	)

	JobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "fulfillment_job_duration_seconds",
			Help: "Duration of one normalize-then-fulfill job in seconds",
		},
	)

	EmailsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suggestion_emails_sent_total",
			Help: "Total number of suggestion emails delivered",
		},
	)
)
