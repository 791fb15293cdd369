// Package metrics holds the Prometheus collectors of the query service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booksim_queries_total",
			Help: "Similarity and ranking queries by operation, metric and outcome",
		},
		[]string{"operation", "metric", "reason"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booksim_query_duration_seconds",
			Help:    "Query duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booksim_cache_requests_total",
			Help: "Neighbor cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	DatasetRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "booksim_dataset_records",
			Help: "Records in the loaded dataset by kind (books, users, ratings)",
		},
		[]string{"kind"},
	)
)

// RecordQuery counts one query and observes its duration.
func RecordQuery(operation, metric, reason string, d time.Duration) {
	QueriesTotal.WithLabelValues(operation, metric, reason).Inc()
	QueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func RecordCache(result string) {
	CacheRequests.WithLabelValues(result).Inc()
}

func SetDataset(books, users, ratings int) {
	DatasetRecords.WithLabelValues("books").Set(float64(books))
	DatasetRecords.WithLabelValues("users").Set(float64(users))
	DatasetRecords.WithLabelValues("ratings").Set(float64(ratings))
}
