package recommender

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ColdStartFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommender_cold_start_fallbacks_total",
			Help: "Count of user recommendation requests answered by the best-seller fallback.",
		},
	)
)

func init() {
	prometheus.MustRegister(ColdStartFallbacksTotal)
}
