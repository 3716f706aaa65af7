package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Request duration histogram by endpoint and status
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notes_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Login counter by result ("success" or "failure")
	LoginCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_login_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	// Notes created counter
	NoteCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notes_created_total",
			Help: "Total number of notes created",
		},
	)

	// Plan limit rejection counter
	PlanLimitRejectionCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notes_plan_limit_rejections_total",
			Help: "Total number of note creations rejected by the free plan cap",
		},
	)

	// Tenant upgrade counter
	TenantUpgradeCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notes_tenant_upgrades_total",
			Help: "Total number of tenant plan upgrades",
		},
	)

	// Notes per tenant gauge, refreshed by the usage snapshot job
	NotesPerTenantGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "notes_per_tenant",
			Help: "Current number of notes per tenant",
		},
		[]string{"tenant_slug"},
	)

	// Active tenants gauge, refreshed by the usage snapshot job
	ActiveTenantsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "notes_active_tenants",
			Help: "Current number of tenants",
		},
	)
)

// Register registers all metrics with the default prometheus registry.
func Register() {
	prometheus.MustRegister(
		HTTPRequestCounter,
		RequestDuration,
		LoginCounter,
		NoteCreatedCounter,
		PlanLimitRejectionCounter,
		TenantUpgradeCounter,
		NotesPerTenantGauge,
		ActiveTenantsGauge,
	)
}

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware creates a middleware function that captures metrics for each request
func Middleware() echo.MiddlewareFunc {
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
