package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the dashboard's Prometheus collectors.
type Metrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	charts       *prometheus.CounterVec
	loadFailures prometheus.Counter
	emptyResults prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		charts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_charts_rendered_total",
			Help: "Charts rendered by kind.",
		}, []string{"kind"}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_dataset_load_failures_total",
			Help: "Requests aborted because the dataset could not be loaded.",
		}),
		emptyResults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_empty_filter_results_total",
			Help: "Filter selections that matched no rows.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.charts, m.loadFailures, m.emptyResults)
	return m
}

// Instrument records request counts and latency per chi route pattern.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
