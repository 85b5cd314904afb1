// Package metrics provides Prometheus instrumentation for upstream calls,
// built reports and served HTTP requests.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/albapepper/bballscorer/internal/provider"
)

const namespace = "bballscorer"

// Upstream call outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeNoRows = "no_rows"
	OutcomeError  = "error"
)

// Recorder owns a dedicated registry and every collector on it. A disabled
// recorder (or a nil one) accepts every call and records nothing.
type Recorder struct {
	enabled  bool
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	reportsBuilt     *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// New creates a recorder. When enabled is false nothing is registered.
func New(enabled bool) *Recorder {
	r := &Recorder{enabled: enabled, registry: prometheus.NewRegistry()}
	if !enabled {
		return r
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(r.registry)

	r.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Requests sent to the statistics API by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	r.upstreamDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Statistics API request latency, including rate-limit wait",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	r.reportsBuilt = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_built_total",
		Help:      "Report builds by kind and outcome (ok, absent, invalid)",
	}, []string{"kind", "outcome"})

	r.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code",
	}, []string{"method", "route", "status"})

	return r
}

// Enabled reports whether metrics are being recorded.
func (r *Recorder) Enabled() bool {
	return r != nil && r.enabled
}

// Registry exposes the dedicated registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveUpstream records one statistics API call.
func (r *Recorder) ObserveUpstream(endpoint string, err error, elapsed time.Duration) {
	if !r.Enabled() {
		return
	}
	r.upstreamRequests.WithLabelValues(endpoint, upstreamOutcome(err)).Inc()
	r.upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func upstreamOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, provider.ErrNoRows):
		return OutcomeNoRows
	default:
		return OutcomeError
	}
}

// ObserveReport records one report build.
func (r *Recorder) ObserveReport(kind, outcome string) {
	if !r.Enabled() {
		return
	}
	r.reportsBuilt.WithLabelValues(kind, outcome).Inc()
}

// Middleware counts served requests by chi route pattern, so path
// parameters do not explode the label set.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	if !r.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.httpRequests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
