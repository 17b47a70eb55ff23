// payment-simulator-poc/pkg/metrics/metrics.go
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
    // Label "service" dipertahankan supaya query bisa bandingkan beberapa instance
    PaymentRequestsTotal = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "payment",
            Name:      "requests_total",
            Help:      "Total request pembayaran per service",
        },
        []string{"service", "status", "method"},
    )

    PaymentRequestDuration = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "payment",
            Name:      "request_duration_seconds",
            Help:      "Durasi proses request pembayaran per service",
            // bucket cukup rapat di sub-second
            Buckets: []float64{
                0.01, 0.02, 0.03, 0.05, 0.08, 0.12,
                0.2, 0.3, 0.5, 0.8, 1.2, 2, 3, 5,
            },
        },
        []string{"service", "status"},
    )

    // Outcome simulasi (succeeded/refunded/card_declined/...) supaya test suite
    // bisa scrape seberapa sering injected failure terpicu.
    SimulatedOutcomesTotal = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "payment",
            Name:      "simulated_outcomes_total",
            Help:      "Total outcome simulasi per service",
        },
        []string{"service", "outcome"},
    )
)

func init() {
    prometheus.MustRegister(PaymentRequestsTotal, PaymentRequestDuration, SimulatedOutcomesTotal)
}

// Helper biar rapi dipanggil dari handler
func IncRequest(service, status, method string) {
    PaymentRequestsTotal.WithLabelValues(service, status, method).Inc()
}
func ObserveDuration(service, status string, seconds float64) {
    PaymentRequestDuration.WithLabelValues(service, status).Observe(seconds)
}
func IncOutcome(service, outcome string) {
    SimulatedOutcomesTotal.WithLabelValues(service, outcome).Inc()
}
