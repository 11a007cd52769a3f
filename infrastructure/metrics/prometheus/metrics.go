// ABOUTME: Prometheus implementation of the metrics interface plus HTTP request metrics
// ABOUTME: Each collector owns its registry so tests and servers never collide on registration

package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Graph metrics
	Builds        *prometheus.CounterVec
	BuildDuration *prometheus.HistogramVec
	GraphNodes    prometheus.Histogram
	GraphEdges    prometheus.Histogram
	DroppedLinks  *prometheus.CounterVec

	// Corpus metrics
	CorpusFetches *prometheus.CounterVec
}

// NewCollector creates a collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graph_builds_total",
				Help:      "Total number of graph builds",
			},
			[]string{"mode"},
		),
		BuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_build_duration_seconds",
				Help:      "Graph build duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		GraphNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_nodes",
				Help:      "Number of nodes per built graph",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		GraphEdges: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_edges",
				Help:      "Number of edges per built graph",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		DroppedLinks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dropped_links_total",
				Help:      "Links that produced no node or edge",
			},
			[]string{"reason"},
		),
		CorpusFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "corpus_fetches_total",
				Help:      "Outbound corpus fetches by source and outcome",
			},
			[]string{"source", "status"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Builds,
		c.BuildDuration,
		c.GraphNodes,
		c.GraphEdges,
		c.DroppedLinks,
		c.CorpusFetches,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

func mode(isolate bool) string {
	if isolate {
		return "isolate"
	}
	return "global"
}

// ObserveBuild records one finished graph build
func (c *Collector) ObserveBuild(isolate bool, nodes, edges int, duration time.Duration) {
	m := mode(isolate)
	c.Builds.WithLabelValues(m).Inc()
	c.BuildDuration.WithLabelValues(m).Observe(duration.Seconds())
	c.GraphNodes.Observe(float64(nodes))
	c.GraphEdges.Observe(float64(edges))
}

// IncDroppedLinks adds count dropped links for reason
func (c *Collector) IncDroppedLinks(reason string, count int) {
	if count <= 0 {
		return
	}
	c.DroppedLinks.WithLabelValues(reason).Add(float64(count))
}

// IncCorpusFetch counts one fetch of source
func (c *Collector) IncCorpusFetch(source string, success bool) {
	status := "error"
	if success {
		status = "ok"
	}
	c.CorpusFetches.WithLabelValues(source, status).Inc()
}

// ObserveHTTP records one served request
func (c *Collector) ObserveHTTP(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
