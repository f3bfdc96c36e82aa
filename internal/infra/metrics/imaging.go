package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		removalRequests,
		removalDuration,
	)
}

var (
	removalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "background_removal_requests_total",
			Help: "Background removal calls by provider and result (ok/fail).",
		},
		[]string{"provider", "result"},
	)

	removalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "background_removal_duration_seconds",
			Help:    "Duration of background removal provider calls in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider"},
	)
)

func ObserveRemoval(provider string, seconds float64, ok bool) {
	result := "ok"
	if !ok {
		result = "fail"
	}
	removalRequests.WithLabelValues(norm(provider), result).Inc()
	removalDuration.WithLabelValues(norm(provider)).Observe(seconds)
}
