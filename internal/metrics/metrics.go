// Package metrics declares the storefront's domain Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

var (
	// ReviewsSubmitted counts accepted reviews by their overall sentiment.
	ReviewsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_submitted_total",
			Help:      "Total number of reviews appended to the catalog",
		},
		[]string{"sentiment"},
	)

	// SuggestionsSubmitted counts accepted suggestions.
	SuggestionsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_submitted_total",
			Help:      "Total number of suggestions appended to the catalog",
		},
		[]string{"source", "sentiment"},
	)

	// CatalogQueryDuration observes the latency of catalog reads, including
	// any simulated delay for deferred queries.
	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_query_duration_seconds",
			Help:      "Duration of catalog queries in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// CatalogQueryResults observes how many products a query returned.
	CatalogQueryResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_query_results",
			Help:      "Number of products returned by catalog queries",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"operation"},
	)

	// CartOperations counts cart ledger mutations.
	CartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Total number of cart operations",
		},
		[]string{"operation"},
	)

	// CartItems tracks the current cart item count.
	CartItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_items",
			Help:      "Current number of items in the cart",
		},
	)
)
