// Package monitoring provides Prometheus instrumentation for the
// planning pipeline.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	// Generation metrics
	planGenerationsTotal  *prometheus.CounterVec
	planGenerationSeconds *prometheus.HistogramVec
	generatorRequests     *prometheus.CounterVec
	generatorSeconds      *prometheus.HistogramVec

	// Retrieval metrics
	candidatesSelected  prometheus.Histogram
	retrievalShortfalls *prometheus.CounterVec
	searchFallbacks     prometheus.Counter

	// Scoring metrics
	alternativesServed prometheus.Histogram
	constraintWarnings prometheus.Counter

	// Cache metrics
	cacheOperations *prometheus.CounterVec
}

// NewMetricsCollector creates a new metrics collector registered against
// reg. Pass prometheus.DefaultRegisterer in production; tests use a fresh
// prometheus.NewRegistry so collectors never collide.
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &MetricsCollector{
		planGenerationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plan_generations_total",
				Help: "Total number of week plan generation attempts",
			},
			[]string{"status"},
		),
		planGenerationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "plan_generation_duration_seconds",
				Help:    "Week plan generation duration in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"status"},
		),
		generatorRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generator_requests_total",
				Help: "Total number of plan generator requests",
			},
			[]string{"provider", "status"},
		),
		generatorSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "generator_request_duration_seconds",
				Help:    "Plan generator request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"provider"},
		),
		candidatesSelected: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "candidates_selected",
				Help:    "Number of candidate recipes selected per retrieval",
				Buckets: []float64{0, 5, 10, 15, 20, 30, 50},
			},
		),
		retrievalShortfalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retrieval_shortfalls_total",
				Help: "Retrievals that missed the per-meal-type coverage floor",
			},
			[]string{"meal_type"},
		),
		searchFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "search_fallbacks_total",
				Help: "Retrievals served by keyword search instead of similarity search",
			},
		),
		alternativesServed: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "alternatives_served",
				Help:    "Number of swap alternatives returned per request",
				Buckets: []float64{0, 1, 2, 3, 5, 10},
			},
		),
		constraintWarnings: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "constraint_warnings_total",
				Help: "Total allergy and dislike warnings raised",
			},
		),
		cacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_operations_total",
				Help: "Total number of cache operations",
			},
			[]string{"operation", "status"},
		),
	}
}

// PlanGeneration records one generation attempt and its duration.
func (m *MetricsCollector) PlanGeneration(status string, duration time.Duration) {
	m.planGenerationsTotal.WithLabelValues(status).Inc()
	m.planGenerationSeconds.WithLabelValues(status).Observe(duration.Seconds())
}

// GeneratorRequest records one call to the plan generator backend.
func (m *MetricsCollector) GeneratorRequest(provider, status string, duration time.Duration) {
	m.generatorRequests.WithLabelValues(provider, status).Inc()
	m.generatorSeconds.WithLabelValues(provider).Observe(duration.Seconds())
}

// CandidatesSelected records the size of a retrieved candidate set.
func (m *MetricsCollector) CandidatesSelected(count int) {
	m.candidatesSelected.Observe(float64(count))
}

// RetrievalShortfall records a meal type left under its coverage floor.
func (m *MetricsCollector) RetrievalShortfall(mealType string) {
	m.retrievalShortfalls.WithLabelValues(mealType).Inc()
}

// SearchFallback records a retrieval served by the keyword fallback.
func (m *MetricsCollector) SearchFallback() {
	m.searchFallbacks.Inc()
}

// AlternativesServed records the size of a returned alternatives list.
func (m *MetricsCollector) AlternativesServed(count int) {
	m.alternativesServed.Observe(float64(count))
}

// ConstraintWarnings records warnings raised by a constraint check.
func (m *MetricsCollector) ConstraintWarnings(count int) {
	m.constraintWarnings.Add(float64(count))
}

// CacheOperation records one cache access.
func (m *MetricsCollector) CacheOperation(operation, status string) {
	m.cacheOperations.WithLabelValues(operation, status).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}
