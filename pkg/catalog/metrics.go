package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_catalog_fetches_total",
		Help: "The total number of catalog api requests",
	}, []string{"endpoint"})
	fetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_catalog_failures_total",
		Help: "The total number of failed catalog api requests",
	}, []string{"endpoint", "kind"})
	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_catalog_fetch_seconds",
		Help:    "Catalog api request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)
