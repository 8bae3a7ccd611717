package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics keeps its own registry so multiple servers (tests) never collide on
// the global one.
type metrics struct {
	registry *prometheus.Registry
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	self := &metrics{
		registry: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playground_queries_total",
			Help: "Queries executed, by engine and HTTP status.",
		}, []string{"engine", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "playground_query_duration_seconds",
			Help:    "Query execution latency by engine.",
			Buckets: prometheus.DefBuckets,
		}, []string{"engine"}),
	}
	self.registry.MustRegister(self.queries, self.duration)
	return self
}

func (self *metrics) observe(engine string, status string, d time.Duration) {
	self.queries.WithLabelValues(engine, status).Inc()
	self.duration.WithLabelValues(engine).Observe(d.Seconds())
}

func (self *metrics) handler() http.Handler {
	return promhttp.HandlerFor(self.registry, promhttp.HandlerOpts{})
}
