package devserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devcatalog_requests_total",
		Help: "The total number of handled api requests",
	}, []string{"endpoint", "status"})
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devcatalog_cache_lookups_total",
		Help: "Response cache lookups by result",
	}, []string{"result"})
	catalogSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "devcatalog_products",
		Help: "Number of products loaded",
	})
)
