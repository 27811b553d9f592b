package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FareQuotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "goride", Name: "fare_quotes_total", Help: "Total fare quotes served"})

	RidesRequestedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "goride", Name: "rides_requested_total", Help: "Total ride requests accepted"})

	RideRequestsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "goride", Name: "ride_requests_rejected_total", Help: "Total ride requests rejected by validation"})

	AccessDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "goride", Name: "access_decisions_total", Help: "Access gate decisions by outcome"},
		[]string{"decision"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "goride", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "goride",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
