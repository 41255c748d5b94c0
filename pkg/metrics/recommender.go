package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the user recommendations HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommender_user_latency_seconds",
		Help:    "Latency of user recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of user recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommender_user_requests_total",
		Help: "Total number of user recommendation requests",
	})

	// Total number of similar-item requests served
	SimilarItemRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommender_similar_requests_total",
		Help: "Total number of similar item requests",
	})

	// Total number of retrain runs triggered over HTTP
	RetrainRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommender_retrain_runs_total",
		Help: "Total number of retrain runs triggered",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		SimilarItemRequests,
		RetrainRuns,
	)
}
