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
	// Login counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "faturaime_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Signup counters
	SignupCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "faturaime_signup_total",
			Help: "Total number of signups",
		},
	)

	// Invitation counter
	InvitationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faturaime_invitations_total",
			Help: "Total number of invitation operations",
		},
		[]string{"operation"}, // "create", "accept"
	)

	// Business operation counter
	BusinessOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faturaime_business_operations_total",
			Help: "Total number of business operations",
		},
		[]string{"operation"},
	)

	// Invoice operation counter
	InvoiceOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faturaime_invoice_operations_total",
			Help: "Total number of invoice operations",
		},
		[]string{"operation"},
	)

	// View-mode preference counter
	PreferenceCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faturaime_preference_operations_total",
			Help: "Total number of view-mode preference reads and writes",
		},
		[]string{"operation", "collection"},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faturaime_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faturaime_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "login_failure", "invalid_token", "db_error" etc.
	)

	// Scope resolution counter
	ScopeResolutionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faturaime_scope_resolutions_total",
			Help: "Total number of business scope resolutions by outcome",
		},
		[]string{"outcome"}, // "route_param", "selection", "issuer", "first_visible", "none"
	)

	// Stale reload counter
	StaleReloadCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "faturaime_stale_reloads_discarded_total",
			Help: "Total number of scope-dependent reload results discarded as stale",
		},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "faturaime_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "faturaime_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Active tokens
	ActiveTokensGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "faturaime_active_tokens",
			Help: "Number of currently active authentication tokens",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "faturaime_info",
			Help: "Information about the admin API service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(SignupCounter)
	prometheus.MustRegister(InvitationCounter)
	prometheus.MustRegister(BusinessOperationCounter)
	prometheus.MustRegister(InvoiceOperationCounter)
	prometheus.MustRegister(PreferenceCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(ScopeResolutionCounter)
	prometheus.MustRegister(StaleReloadCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveTokensGauge)
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// RecordAuthError increments the auth error counter for the given error type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// IncreaseActiveTokens increments the active tokens gauge
func IncreaseActiveTokens() {
	ActiveTokensGauge.Inc()
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

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
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
