package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheRequests counts cache lookups by key prefix and outcome (hit/miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_cache_requests_total",
		Help: "Total number of cache lookups by key prefix and outcome",
	}, []string{"prefix", "outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "murmur_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsCreated counts posts created, partitioned into top-level posts and replies.
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_posts_created_total",
		Help: "Total number of posts created",
	}, []string{"kind"})

	// LikeToggles counts like toggles by resulting state.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_like_toggles_total",
		Help: "Total number of like toggles by resulting state",
	}, []string{"state"})

	// MessagesSent counts direct messages sent.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "murmur_messages_sent_total",
		Help: "Total number of direct messages sent",
	})

	// AccessDenials counts authorization denials by operation.
	AccessDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_access_denials_total",
		Help: "Total number of authorization denials by operation",
	}, []string{"operation"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordCacheHit increments the cache hit counter for the key prefix.
func RecordCacheHit(prefix string) {
	CacheRequests.WithLabelValues(prefix, "hit").Inc()
}

// RecordCacheMiss increments the cache miss counter for the key prefix.
func RecordCacheMiss(prefix string) {
	CacheRequests.WithLabelValues(prefix, "miss").Inc()
}
