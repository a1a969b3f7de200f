// Package metrics exposes Prometheus counters for the assistant pipeline.
// A nil *Recorder is valid and records nothing, so callers and tests can pass
// nil when metrics are not wanted.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry and the assistant's collectors.
type Recorder struct {
	registry *prometheus.Registry

	questions      *prometheus.CounterVec
	faults         *prometheus.CounterVec
	backendCalls   *prometheus.CounterVec
	backendErrors  *prometheus.CounterVec
	backendLatency *prometheus.HistogramVec
	ambiguous      prometheus.Counter
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		questions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assistant_questions_total",
			Help: "Questions answered, by intent and answering path.",
		}, []string{"intent", "path"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assistant_execution_faults_total",
			Help: "Statements that failed or were refused by the executor.",
		}, []string{"reason"}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assistant_llm_calls_total",
			Help: "LLM backend completion attempts.",
		}, []string{"backend"}),
		backendErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assistant_llm_errors_total",
			Help: "Failed LLM backend completion attempts.",
		}, []string{"backend"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assistant_llm_duration_seconds",
			Help:    "LLM backend completion latency.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"backend"}),
		ambiguous: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "assistant_ambiguous_matches_total",
			Help: "Team fragments that matched more than one team.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.registry.MustRegister(
		r.questions, r.faults, r.backendCalls, r.backendErrors,
		r.backendLatency, r.ambiguous, r.httpRequests, r.httpLatency,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordQuestion counts an answered question. path is "template",
// "generative" or "help".
func (r *Recorder) RecordQuestion(intent, path string) {
	if r == nil {
		return
	}
	r.questions.WithLabelValues(intent, path).Inc()
}

// RecordExecutionFault counts a statement the executor swallowed.
func (r *Recorder) RecordExecutionFault(reason string) {
	if r == nil {
		return
	}
	r.faults.WithLabelValues(reason).Inc()
}

// RecordBackendAttempt counts one LLM completion attempt and its latency.
func (r *Recorder) RecordBackendAttempt(backend string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.backendCalls.WithLabelValues(backend).Inc()
	r.backendLatency.WithLabelValues(backend).Observe(duration.Seconds())
	if err != nil {
		r.backendErrors.WithLabelValues(backend).Inc()
	}
}

// RecordAmbiguousMatch counts a fragment that resolved to several teams.
func (r *Recorder) RecordAmbiguousMatch() {
	if r == nil {
		return
	}
	r.ambiguous.Inc()
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}
