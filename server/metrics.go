package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "solana_server_operations_total",
	Help: "Number of served operations by result",
}, []string{"operation", "result"})

var operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "solana_server_operation_duration_seconds",
	Help:    "Time spent serving an operation",
	Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
}, []string{"operation"})

var rateLimited = promauto.NewCounter(prometheus.CounterOpts{
	Name: "solana_server_rate_limited_total",
	Help: "Number of requests rejected by the rate limiter",
})
