package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Streams
	StreamsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pagegen_streams_started_total",
			Help: "Total number of page generation streams started",
		},
	)
	StreamsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagegen_streams_finished_total",
			Help: "Page generation streams by terminal outcome",
		},
		[]string{"outcome"}, // complete|not_landing_page|error|canceled
	)
	ActiveStreams = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pagegen_streams_active",
			Help: "Current number of running page generation streams",
		},
	)

	// Sections
	SectionsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagegen_sections_completed_total",
			Help: "Generated sections by the source that produced the code",
		},
		[]string{"source"}, // primary|secondary|fallback
	)
	SectionDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pagegen_section_duration_seconds",
			Help:    "Histogram of section generation durations in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8), // 1s..128s
		},
	)
	Fallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagegen_fallbacks_total",
			Help: "Fallback templates substituted for provider output",
		},
		[]string{"kind"}, // template|simple_template
	)

	// Validation
	ValidationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagegen_validation_runs_total",
			Help: "Number of validation runs by validator type and result",
		},
		[]string{"validator", "result"}, // result: pass|fail
	)
	ValidationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagegen_validation_duration_seconds",
			Help:    "Duration of validation runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"validator"},
	)

	// LLM providers
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagegen_llm_requests_total",
			Help: "Number of LLM requests by provider and model",
		},
		[]string{"provider", "model"},
	)
	LLMDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagegen_llm_request_duration_seconds",
			Help:    "Duration of LLM provider calls",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
		},
		[]string{"provider"},
	)

	// DB ops
	DBOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagegen_db_ops_total",
			Help: "Database operations performed",
		},
		[]string{"op"}, // op: get|put|delete|list
	)

	// Websockets
	WebsocketConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pagegen_ws_connections",
			Help: "Current number of open websocket connections",
		},
	)

	// HTTP
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path"},
	)
	HTTPErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP request errors.",
		},
		[]string{"method", "path", "status"},
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagegen_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		// Streams
		StreamsStarted,
		StreamsFinished,
		ActiveStreams,
		// Sections
		SectionsCompleted,
		SectionDurationSeconds,
		Fallbacks,
		// Validation
		ValidationRuns,
		ValidationDurationSeconds,
		// LLM
		LLMRequests,
		LLMDurationSeconds,
		// DB
		DBOps,
		// WS
		WebsocketConnections,
		// HTTP
		HTTPRequestDuration,
		HTTPRequests,
		HTTPErrors,
		// Errors
		Errors,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Streams
func IncStreamStarted() {
	StreamsStarted.Inc()
	ActiveStreams.Inc()
}

func IncStreamFinished(outcome string) {
	StreamsFinished.WithLabelValues(outcome).Inc()
	ActiveStreams.Dec()
}

// Sections
func IncSectionCompleted(source string) {
	SectionsCompleted.WithLabelValues(source).Inc()
}

func ObserveSectionDuration(d time.Duration) {
	SectionDurationSeconds.Observe(d.Seconds())
}

func IncFallback(kind string) {
	Fallbacks.WithLabelValues(kind).Inc()
}

// Validation
func IncValidationRun(validator, result string) {
	ValidationRuns.WithLabelValues(validator, result).Inc()
}

func ObserveValidationDuration(validator string, d time.Duration) {
	ValidationDurationSeconds.WithLabelValues(validator).Observe(d.Seconds())
}

// LLM
func IncLLMRequest(provider, model string) {
	LLMRequests.WithLabelValues(provider, model).Inc()
}

func ObserveLLMDuration(provider string, d time.Duration) {
	LLMDurationSeconds.WithLabelValues(provider).Observe(d.Seconds())
}

// DB
func IncDBOp(op string) {
	DBOps.WithLabelValues(op).Inc()
}

// Websocket
func IncWSConnections() {
	WebsocketConnections.Inc()
}

func DecWSConnections() {
	WebsocketConnections.Dec()
}

// HTTP
func ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	statusStr := strconv.Itoa(status)
	HTTPRequests.WithLabelValues(method, path).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(d.Seconds())
	if status >= 400 {
		HTTPErrors.WithLabelValues(method, path, statusStr).Inc()
	}
}

// Errors
func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
