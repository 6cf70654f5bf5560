package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ResponseTimeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "Histogram of response times",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PurchasesProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_processed_total",
			Help: "Total number of purchases by final status",
		},
		[]string{"status"},
	)

	CommissionCreditedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "commission_credited_rupiah_total",
			Help: "Total commission credited in rupiah",
		},
	)

	WithdrawalDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "withdrawal_decisions_total",
			Help: "Total number of withdrawal decisions by resulting status",
		},
		[]string{"status"},
	)

	ContactFormSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_form_submissions_total",
			Help: "Total number of contact form submissions by result",
		},
		[]string{"result"},
	)
)
