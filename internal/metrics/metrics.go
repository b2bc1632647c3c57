// Package metrics exposes Prometheus counters and histograms for the
// reasoning pipeline's major stages: assertion, query, strategy
// execution, and router scoring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every counter and histogram the Coordinator and its
// collaborators record against.
type Metrics struct {
	// AssertDuration measures assertNL latency in seconds.
	// Labels: strategy_id, status (success|error)
	AssertDuration *prometheus.HistogramVec

	// QueryDuration measures queryNL latency in seconds.
	// Labels: strategy_id, status (success|error)
	QueryDuration *prometheus.HistogramVec

	// StrategyExecutions counts Strategy Executor runs.
	// Labels: strategy_id, operation (Assert|Query), status
	StrategyExecutions *prometheus.CounterVec

	// RouterRecommendations counts Input Router decisions.
	// Labels: mode (keyword|semantic), matched (true|false)
	RouterRecommendations *prometheus.CounterVec

	// ClausesAsserted counts clauses successfully appended to sessions.
	// Labels: strategy_id
	ClausesAsserted *prometheus.CounterVec

	// LLMTokensUsed tracks token consumption by the LLM Gateway.
	// Labels: provider, type (prompt|output)
	LLMTokensUsed *prometheus.CounterVec
}

// New registers and returns a fresh Metrics bundle against the default
// Prometheus registry.
func New() *Metrics {
	return &Metrics{
		AssertDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcr_assert_duration_seconds",
				Help:    "Duration of assertNL calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"strategy_id", "status"},
		),
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcr_query_duration_seconds",
				Help:    "Duration of queryNL calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"strategy_id", "status"},
		),
		StrategyExecutions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcr_strategy_executions_total",
				Help: "Total Strategy Executor runs by strategy, operation, and status",
			},
			[]string{"strategy_id", "operation", "status"},
		),
		RouterRecommendations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcr_router_recommendations_total",
				Help: "Total Input Router decisions by mode and whether a strategy was recommended",
			},
			[]string{"mode", "matched"},
		),
		ClausesAsserted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcr_clauses_asserted_total",
				Help: "Total clauses appended to sessions by strategy",
			},
			[]string{"strategy_id"},
		),
		LLMTokensUsed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcr_llm_tokens_total",
				Help: "Total LLM tokens consumed by provider and token type",
			},
			[]string{"provider", "type"},
		),
	}
}
