package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LLM call counters
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nyx",
			Subsystem: "core",
			Name:      "llm_requests_total",
			Help:      "Total LLM provider requests",
		},
		[]string{"model", "status"},
	)

	// LLM call duration
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nyx",
			Subsystem: "core",
			Name:      "llm_request_duration_seconds",
			Help:      "LLM provider request duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)

	// Tool execution counters
	ToolExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nyx",
			Subsystem: "core",
			Name:      "tool_executions_total",
			Help:      "Total tool invocations",
		},
		[]string{"tool", "status"},
	)

	// Tool execution duration
	ToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nyx",
			Subsystem: "core",
			Name:      "tool_duration_seconds",
			Help:      "Tool execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"tool"},
	)

	// Slide asset fetches
	AssetFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nyx",
			Subsystem: "deck",
			Name:      "asset_fetches_total",
			Help:      "Total slide asset fetch attempts",
		},
		[]string{"kind", "status"},
	)

	// Deck generations
	DeckGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nyx",
			Subsystem: "deck",
			Name:      "generations_total",
			Help:      "Total deck layout generations",
		},
		[]string{"status"},
	)

	// Deck render duration
	DeckRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "nyx",
			Subsystem: "deck",
			Name:      "render_duration_seconds",
			Help:      "Deck render duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)
)
