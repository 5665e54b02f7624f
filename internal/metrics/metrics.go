package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wheelshare",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		},
		[]string{"route", "method", "status"},
	)

	paymentsSettled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wheelshare",
			Name:      "payments_settled_total",
			Help:      "Payments settled by final status.",
		},
		[]string{"status"},
	)

	bookingsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wheelshare",
			Name:      "bookings_completed_total",
			Help:      "Bookings flipped to COMPLETED by the scheduler.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, paymentsSettled, bookingsCompleted)
	})
}

// IncHTTP increments the request counter for a route.
func IncHTTP(route, method, status string) {
	httpRequests.WithLabelValues(route, method, status).Inc()
}

// IncPaymentSettled counts a payment reaching a terminal settle status.
func IncPaymentSettled(status string) {
	paymentsSettled.WithLabelValues(status).Inc()
}

// AddBookingsCompleted counts scheduler completions.
func AddBookingsCompleted(n int) {
	bookingsCompleted.Add(float64(n))
}
