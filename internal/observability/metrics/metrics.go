package metrics

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devmentor_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devmentor_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	domainEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devmentor_domain_events_total",
		Help: "Count of domain operations by event and outcome",
	}, []string{"event", "outcome"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// Events records domain events on the process-wide registry.
type Events struct{}

// RecordEvent increments the counter for event and outcome.
func (Events) RecordEvent(event, outcome string) {
	domainEvents.WithLabelValues(event, outcome).Inc()
}

// StoreCollector exports the record count of each store collection as a gauge.
type StoreCollector struct {
	counts func() map[string]int
	desc   *prometheus.Desc
}

// NewStoreCollector returns a collector reading counts on every scrape.
func NewStoreCollector(counts func() map[string]int) *StoreCollector {
	return &StoreCollector{
		counts: counts,
		desc: prometheus.NewDesc(
			"devmentor_store_records",
			"Number of records held per in-memory collection",
			[]string{"collection"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	if c.counts == nil {
		return
	}
	counts := c.counts()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(counts[name]), name)
	}
}
