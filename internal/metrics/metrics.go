package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "reservations_created_total",
			Help:      "Successfully created reservations.",
		},
	)

	conflictsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "reservation_conflicts_total",
			Help:      "Reservation attempts rejected due to date conflicts.",
		},
	)

	tokensIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "tokens_issued_total",
			Help:      "Issued token pairs by source.",
		},
		[]string{"source"},
	)

	tokensRevoked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "tokens_revoked_total",
			Help:      "Refresh tokens revoked via logout.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			reservationsCreated,
			conflictsRejected,
			tokensIssued,
			tokensRevoked,
		)
	})
}

// IncHTTP increments the counter for an endpoint and status label.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

func IncReservationCreated() {
	reservationsCreated.Inc()
}

func IncConflictRejected() {
	conflictsRejected.Inc()
}

// IncTokensIssued counts a pair issue; source is "login" or "refresh".
func IncTokensIssued(source string) {
	tokensIssued.WithLabelValues(source).Inc()
}

func IncTokensRevoked() {
	tokensRevoked.Inc()
}
