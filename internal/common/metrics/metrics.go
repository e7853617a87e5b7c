// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_classifications_total",
			Help: "Total number of intent classifications by method and intent",
		},
		[]string{"method", "intent"},
	)

	TriageCompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_completions_total",
			Help: "Total number of completed triage interviews by category",
		},
		[]string{"category"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "llm_request_duration_seconds",
			Help: "Duration of outbound chat-completion calls in seconds",
		},
		[]string{"purpose"},
	)

	LLMRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_request_errors_total",
			Help: "Total number of failed chat-completion calls",
		},
		[]string{"purpose", "reason"},
	)

	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_processed_total",
			Help: "Total number of chat turns processed by category",
		},
		[]string{"category", "outcome"},
	)
)
