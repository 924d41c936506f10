package sink

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the sink's Prometheus metrics. Each collector owns its
// registry, so constructing one per server (and per test) never trips the
// duplicate-registration panic of the global registry.
type Collector struct {
	registry *prometheus.Registry

	commitsReceived prometheus.Counter
	commitsAccepted prometheus.Counter
	commitsRejected prometheus.Counter
	commitLatency   prometheus.Histogram
}

// NewCollector creates and registers the sink metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		commitsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sink_commits_received_total",
			Help: "Total number of commit requests received",
		}),
		commitsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sink_commits_accepted_total",
			Help: "Total number of commit requests accepted and stored",
		}),
		commitsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sink_commits_rejected_total",
			Help: "Total number of commit requests rejected",
		}),
		commitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sink_commit_latency_seconds",
			Help:    "Commit request handling latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	c.registry.MustRegister(c.commitsReceived)
	c.registry.MustRegister(c.commitsAccepted)
	c.registry.MustRegister(c.commitsRejected)
	c.registry.MustRegister(c.commitLatency)

	return c
}

// RecordReceived counts an incoming commit request.
func (c *Collector) RecordReceived() {
	c.commitsReceived.Inc()
}

// RecordAccepted counts a stored commit and observes its handling latency.
func (c *Collector) RecordAccepted(latencySeconds float64) {
	c.commitsAccepted.Inc()
	c.commitLatency.Observe(latencySeconds)
}

// RecordRejected counts a rejected commit request.
func (c *Collector) RecordRejected() {
	c.commitsRejected.Inc()
}

// Handler returns the /metrics HTTP handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
