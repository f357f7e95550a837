// Package metrics provides the centralized Prometheus metrics registry for the
// recommendation pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PipelineRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "pipeline_runs_total",
		Help:      "Total number of pipeline runs by terminal status",
	}, []string{"status"})
	RecommendationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "recommendations_total",
		Help:      "Total number of recommended bets emitted",
	})
	UnmatchedTeamsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "unmatched_teams_total",
		Help:      "Total number of market quotes dropped with no probability match",
	})
)

// Gauge metrics
var (
	ModelAccuracy = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "model_accuracy",
		Help:      "Cross-validated accuracy of the most recently fitted model",
	})
	LastRunBetCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "last_run_bet_count",
		Help:      "Number of bets recommended by the most recent run",
	})
	LastRunQuoteCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "last_run_quote_count",
		Help:      "Number of market quotes processed by the most recent run",
	})
)

// Histogram metrics
var (
	FetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of upstream data fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "pipeline_duration_seconds",
		Help:      "End-to-end duration of pipeline runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PipelineRunsTotal)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(UnmatchedTeamsTotal)

		registry.MustRegister(ModelAccuracy)
		registry.MustRegister(LastRunBetCount)
		registry.MustRegister(LastRunQuoteCount)

		registry.MustRegister(FetchDuration)
		registry.MustRegister(PipelineDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPipelineRun records a completed pipeline run.
func RecordPipelineRun(status string, durationSeconds float64) {
	PipelineRunsTotal.WithLabelValues(status).Inc()
	PipelineDuration.Observe(durationSeconds)
}

// RecordRecommendations records the number of bets emitted by a run.
func RecordRecommendations(count int) {
	RecommendationsTotal.Add(float64(count))
	LastRunBetCount.Set(float64(count))
}

// RecordUnmatchedTeams records quotes dropped in the probability join.
func RecordUnmatchedTeams(count int) {
	UnmatchedTeamsTotal.Add(float64(count))
}

// RecordFetchDuration records the duration of one upstream fetch.
func RecordFetchDuration(source string, durationSeconds float64) {
	FetchDuration.WithLabelValues(source).Observe(durationSeconds)
}

// UpdateModelAccuracy updates the model accuracy gauge.
func UpdateModelAccuracy(accuracy float64) {
	ModelAccuracy.Set(accuracy)
}

// UpdateQuoteCount updates the last-run quote count gauge.
func UpdateQuoteCount(count int) {
	LastRunQuoteCount.Set(float64(count))
}
