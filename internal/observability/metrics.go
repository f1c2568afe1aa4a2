package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application-level metrics, registered on the default prometheus registry
// and exposed alongside the fiberprometheus request metrics.
var (
	// GithubLookupFailures counts GitHub repo lookups that collapsed into a
	// not-found response, by failure kind (transport, status, decode).
	GithubLookupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_github_lookup_failures_total",
		Help: "GitHub repo lookups that failed, by failure kind",
	}, []string{"kind"})

	// CacheRequests counts cache-aside lookups by key prefix and outcome
	// (hit, miss, bypass).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_cache_requests_total",
		Help: "Cache-aside lookups by key prefix and outcome",
	}, []string{"prefix", "outcome"})

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_redis_errors_total",
		Help: "Redis command failures by command",
	}, []string{"command"})
)
