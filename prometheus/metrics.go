package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login attempts
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "registry_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Authentication and request errors by type
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "invalid_credentials", "captcha_failed", "invalid_session", etc.
	)

	// CAPTCHA verification outcomes
	CaptchaResultCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_captcha_results_total",
			Help: "Total number of CAPTCHA verification outcomes",
		},
		[]string{"outcome"}, // "success", "failure", "error" (error = failed open)
	)

	// Wizard step submissions by record kind and step
	WizardStepCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_wizard_steps_total",
			Help: "Total number of wizard step submissions",
		},
		[]string{"kind", "step"},
	)

	// Finalized records by kind
	RecordCreatedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_records_created_total",
			Help: "Total number of records created through the wizard",
		},
		[]string{"kind"},
	)

	// Document uploads by outcome
	UploadCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_uploads_total",
			Help: "Total number of document upload attempts",
		},
		[]string{"outcome"}, // "stored", "rejected", "error"
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registry_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registry_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert"
	)
)

// Gauge metrics
var (
	// Active sessions
	ActiveSessionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_active_sessions",
			Help: "Number of currently active login sessions",
		},
	)

	// Live wizard slots
	WizardSlotsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_wizard_slots",
			Help: "Number of in-progress wizard slots",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "registry_info",
			Help: "Information about the registry service",
		},
		[]string{"version"},
	)
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(CaptchaResultCounter)
	prometheus.MustRegister(WizardStepCounter)
	prometheus.MustRegister(RecordCreatedCounter)
	prometheus.MustRegister(UploadCounter)
	prometheus.MustRegister(HTTPRequestCounter)

	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	prometheus.MustRegister(ActiveSessionsGauge)
	prometheus.MustRegister(WizardSlotsGauge)
	prometheus.MustRegister(InfoGauge)

	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// RecordAuthError increments the auth error counter for the given type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordCaptchaResult increments the CAPTCHA outcome counter
func RecordCaptchaResult(outcome string) {
	CaptchaResultCounter.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// RecordWizardStep increments the wizard step counter
func RecordWizardStep(kind string, step int) {
	WizardStepCounter.With(prometheus.Labels{
		"kind": kind,
		"step": strconv.Itoa(step),
	}).Inc()
}

// RecordCreated increments the created-records counter
func RecordCreated(kind string) {
	RecordCreatedCounter.With(prometheus.Labels{"kind": kind}).Inc()
}

// RecordUpload increments the upload outcome counter
func RecordUpload(outcome string) {
	UploadCounter.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}
