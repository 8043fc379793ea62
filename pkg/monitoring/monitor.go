package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_submissions_total",
			Help: "Total number of graded challenge submissions",
		},
		[]string{"type"},
	)

	SubmissionScore = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "challenge_submission_score",
			Help:    "Distribution of challenge submission scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"type"},
	)

	LeaderboardCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_cache_requests_total",
			Help: "Leaderboard cache lookups by result",
		},
		[]string{"result"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(SubmissionCounter)
	prometheus.MustRegister(SubmissionScore)
	prometheus.MustRegister(LeaderboardCache)
}

// ObserveSubmission 记录一次评分结果
func ObserveSubmission(challengeType string, score float64) {
	SubmissionCounter.WithLabelValues(challengeType).Inc()
	SubmissionScore.WithLabelValues(challengeType).Observe(score)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
