package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 搜索结果状态标签
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusDenied  = "denied"
	StatusError   = "error"
)

var (
	searchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agora",
			Name:      "search_requests_total",
			Help:      "Total number of post searches by outcome",
		},
		[]string{"sort_by", "status"},
	)

	searchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agora",
			Name:      "search_duration_seconds",
			Help:      "Post search execution time in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"sort_by"},
	)

	candidateCapHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agora",
			Name:      "search_candidate_cap_hits_total",
			Help:      "Number of searches whose candidate set was truncated at the cap",
		},
	)

	searchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "agora",
			Name:      "search_results",
			Help:      "Number of results returned per search page",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)
)

func init() {
	prometheus.MustRegister(searchRequestsTotal, searchDuration, searchResults, candidateCapHits)
}

// ObserveSearch 记录一次成功的搜索
func ObserveSearch(sortBy string, elapsed time.Duration, count int) {
	searchRequestsTotal.WithLabelValues(sortBy, StatusOK).Inc()
	searchDuration.WithLabelValues(sortBy).Observe(elapsed.Seconds())
	searchResults.Observe(float64(count))
}

// ObserveSearchFailure 记录被拒绝或失败的搜索
func ObserveSearchFailure(sortBy, status string) {
	searchRequestsTotal.WithLabelValues(sortBy, status).Inc()
}

// ObserveCandidateCapHit 记录一次候选集触顶截断
func ObserveCandidateCapHit() {
	candidateCapHits.Inc()
}
