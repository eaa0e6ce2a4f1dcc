// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Recommendation engine
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrisaur_recommendation_requests_total",
			Help: "Recommendation requests by result source (cache, computed, fallback)",
		},
		[]string{"source"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nutrisaur_recommendation_duration_seconds",
			Help:    "Time spent producing a ranked list",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nutrisaur_recommendation_candidates",
			Help:    "Size of the candidate set passed to scoring",
			Buckets: []float64{0, 10, 30, 50, 75, 100, 125, 150},
		},
	)

	RecommendationCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nutrisaur_recommendation_cache_entries",
			Help: "Current number of cached ranked lists",
		},
	)

	RecommendationCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutrisaur_recommendation_cache_evictions_total",
			Help: "Cache entries evicted on overflow",
		},
	)

	CatalogDishes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nutrisaur_catalog_dishes",
			Help: "Dishes in the loaded catalog snapshot",
		},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nutrisaur_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrisaur_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutrisaur_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutrisaur_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// ObserveRecommendation records one finished recommendation request.
func ObserveRecommendation(source string, candidates int, evicted bool, cacheEntries int, elapsed time.Duration) {
	RecommendationRequests.WithLabelValues(source).Inc()
	RecommendationDuration.Observe(elapsed.Seconds())
	if source != "cache" {
		RecommendationCandidates.Observe(float64(candidates))
	}
	if evicted {
		RecommendationCacheEvictions.Inc()
	}
	RecommendationCacheEntries.Set(float64(cacheEntries))
}

// Middleware records request latency by matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
