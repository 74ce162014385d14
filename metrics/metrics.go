package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service's Prometheus instruments. A nil *Registry is
// valid and records nothing.
type Registry struct {
	reg             *prometheus.Registry
	HTTPRequests    *prometheus.CounterVec
	HTTPLatencySec  *prometheus.HistogramVec
	QueryLatencySec *prometheus.HistogramVec
	QueryErrors     *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	queryLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_query_duration_seconds",
		Help:    "Latency of a single dashboard sub-query.",
		Buckets: prometheus.DefBuckets,
	}, []string{"dashboard", "query"})
	queryErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_query_errors_total",
		Help: "Failed dashboard sub-queries.",
	}, []string{"dashboard", "query"})

	r.MustRegister(httpRequests, httpLatency, queryLatency, queryErrors)
	return &Registry{
		reg:             r,
		HTTPRequests:    httpRequests,
		HTTPLatencySec:  httpLatency,
		QueryLatencySec: queryLatency,
		QueryErrors:     queryErrors,
	}
}

func (r *Registry) ObserveHTTP(method, route, status string, d time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(method, route, status).Inc()
	r.HTTPLatencySec.WithLabelValues(method, route).Observe(d.Seconds())
}

func (r *Registry) ObserveQuery(dashboard, query string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.QueryLatencySec.WithLabelValues(dashboard, query).Observe(d.Seconds())
	if err != nil {
		r.QueryErrors.WithLabelValues(dashboard, query).Inc()
	}
}

func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
