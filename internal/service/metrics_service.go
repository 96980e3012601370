package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the scheduling engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	runTotal        *prometheus.CounterVec
	runDuration     prometheus.Histogram
	coverageRatio   prometheus.Gauge
	unscheduled     prometheus.Gauge

	requestCount uint64
	runCount     uint64
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	runTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_runs_total",
		Help: "Completed scheduling runs by winning strategy",
	}, []string{"strategy"})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_run_duration_seconds",
		Help:    "Wall-clock duration of scheduling runs",
		Buckets: prometheus.DefBuckets,
	})

	coverageRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scheduler_coverage_ratio",
		Help: "Fraction of applicants fully scheduled in the latest run",
	})

	unscheduled := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scheduler_unscheduled_applicants",
		Help: "Applicants missing at least one interview in the latest run",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, runTotal, runDuration, coverageRatio, unscheduled, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		runTotal:        runTotal,
		runDuration:     runDuration,
		coverageRatio:   coverageRatio,
		unscheduled:     unscheduled,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
}

// ObserveSchedulerRun records the outcome of one engine run.
func (m *MetricsService) ObserveSchedulerRun(strategy string, duration time.Duration, applicants, fullyScheduled int) {
	if m == nil {
		return
	}
	m.runTotal.WithLabelValues(strategy).Inc()
	m.runDuration.Observe(duration.Seconds())
	if applicants > 0 {
		m.coverageRatio.Set(float64(fullyScheduled) / float64(applicants))
	}
	m.unscheduled.Set(float64(applicants - fullyScheduled))
	atomic.AddUint64(&m.runCount, 1)
}

// RunCount reports how many scheduling runs this process has served.
func (m *MetricsService) RunCount() uint64 {
	if m == nil {
		return 0
	}
	return atomic.LoadUint64(&m.runCount)
}
