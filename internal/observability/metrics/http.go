package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	invoicesValidatedTotal   *prometheus.CounterVec
	ruleErrorsTotal          *prometheus.CounterVec
	documentsExtractedTotal  *prometheus.CounterVec
	extractionDuration       *prometheus.HistogramVec
	validationBatchSize      *prometheus.HistogramVec
	reportsExportedTotal     *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invqc",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "invqc",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "invqc",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	invoicesValidatedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invqc",
			Subsystem: "validation",
			Name:      "invoices_total",
			Help:      "Total invoices validated by outcome.",
		},
		[]string{"service", "status"},
	)
	ruleErrorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invqc",
			Subsystem: "validation",
			Name:      "rule_errors_total",
			Help:      "Total validation rule failures by error code.",
		},
		[]string{"service", "code"},
	)
	documentsExtractedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invqc",
			Subsystem: "extraction",
			Name:      "documents_total",
			Help:      "Total documents run through field extraction by outcome.",
		},
		[]string{"service", "status"},
	)
	extractionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "invqc",
			Subsystem: "extraction",
			Name:      "duration_seconds",
			Help:      "Extraction batch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	validationBatchSize := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "invqc",
			Subsystem: "validation",
			Name:      "batch_size",
			Help:      "Distribution of invoices per validation batch.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"service", "endpoint"},
	)
	reportsExportedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invqc",
			Subsystem: "reports",
			Name:      "exported_total",
			Help:      "Total summary reports exported by format.",
		},
		[]string{"service", "format"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		invoicesValidatedTotal,
		ruleErrorsTotal,
		documentsExtractedTotal,
		extractionDuration,
		validationBatchSize,
		reportsExportedTotal,
	)

	return &HTTPServerMetrics{
		registry:                registry,
		requestTotal:            requestTotal,
		requestDuration:         requestDuration,
		requestInFlight:         requestInFlight,
		invoicesValidatedTotal:  invoicesValidatedTotal,
		ruleErrorsTotal:         ruleErrorsTotal,
		documentsExtractedTotal: documentsExtractedTotal,
		extractionDuration:      extractionDuration,
		validationBatchSize:     validationBatchSize,
		reportsExportedTotal:    reportsExportedTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/documents/"):
		return "/v1/documents/{document_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordInvoiceValidated(service string, valid bool) {
	status := "valid"
	if !valid {
		status = "invalid"
	}
	m.invoicesValidatedTotal.WithLabelValues(service, status).Inc()
}

func (m *HTTPServerMetrics) RecordRuleErrors(service string, errorCounts map[string]int) {
	for code, count := range errorCounts {
		if count <= 0 {
			continue
		}
		m.ruleErrorsTotal.WithLabelValues(service, code).Add(float64(count))
	}
}

func (m *HTTPServerMetrics) RecordExtraction(service string, succeeded, failed int, elapsed time.Duration) {
	if succeeded > 0 {
		m.documentsExtractedTotal.WithLabelValues(service, "ok").Add(float64(succeeded))
	}
	if failed > 0 {
		m.documentsExtractedTotal.WithLabelValues(service, "error").Add(float64(failed))
	}
	m.extractionDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}

func (m *HTTPServerMetrics) RecordValidationBatch(service, endpoint string, size int) {
	if size <= 0 {
		return
	}
	m.validationBatchSize.WithLabelValues(service, endpoint).Observe(float64(size))
}

func (m *HTTPServerMetrics) RecordReportExported(service, format string) {
	if format == "" {
		format = "unknown"
	}
	m.reportsExportedTotal.WithLabelValues(service, format).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
