package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avasquez/dental-api/internal/handler"
	authhandler "github.com/avasquez/dental-api/internal/handler/auth"
	"github.com/avasquez/dental-api/internal/handler/health"
	"github.com/avasquez/dental-api/internal/middleware"
	"github.com/avasquez/dental-api/internal/model"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	CORSConfig     middleware.CORSConfig
	MetricsPrefix  string
	ReleaseMode    bool
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authH        *authhandler.Handler
	userH        Handler
	patientH     PatientHandler
	appointmentH Handler
	treatmentH   TreatmentHandler
	billingH     Handler
	dashboardH   Handler
	healthH      *health.Handler
	h            *handler.Handler
	metrics      *routerMetrics
}

// TreatmentHandler registers the catalog and the record routes on
// separately guarded groups.
type TreatmentHandler interface {
	Handler
	RegisterRecordRoutes(*gin.RouterGroup)
}

// PatientHandler registers the demographic routes and, separately, the
// routes that expose the patient's billing data.
type PatientHandler interface {
	Handler
	RegisterBillingRoutes(*gin.RouterGroup)
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authhandler.Handler,
	userH Handler,
	patientH PatientHandler,
	appointmentH Handler,
	treatmentH TreatmentHandler,
	billingH Handler,
	dashboardH Handler,
	healthH *health.Handler,
	h *handler.Handler,
	config Config,
) *Router {
	if config.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	metrics := initRouterMetrics(config.MetricsPrefix)

	r := &Router{
		engine:       engine,
		auth:         auth,
		authH:        authH,
		userH:        userH,
		patientH:     patientH,
		appointmentH: appointmentH,
		treatmentH:   treatmentH,
		billingH:     billingH,
		dashboardH:   dashboardH,
		healthH:      healthH,
		h:            h,
		metrics:      metrics,
	}

	timeout := config.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: timeout}),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimitRPS > 0 {
		rateLimiter := middleware.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst)
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	// Public routes
	r.authH.RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.authH.RegisterProtectedRoutes(protected)
	r.patientH.RegisterRoutes(protected)
	r.appointmentH.RegisterRoutes(protected)
	r.treatmentH.RegisterRoutes(protected)
	r.dashboardH.RegisterRoutes(protected)

	// User management is an admin concern.
	admin := protected.Group("")
	admin.Use(r.auth.RequireRole())
	r.userH.RegisterRoutes(admin)

	// Treatment records are written by clinical staff.
	clinical := protected.Group("")
	clinical.Use(r.auth.RequireRole(
		string(model.UserRoleDentist),
		string(model.UserRoleHygienist),
	))
	r.treatmentH.RegisterRecordRoutes(clinical)

	// Billing is handled at the front desk. Per-patient invoice
	// listings carry the same gate.
	frontdesk := protected.Group("")
	frontdesk.Use(r.auth.RequireRole(string(model.UserRoleReceptionist)))
	r.billingH.RegisterRoutes(frontdesk)
	r.patientH.RegisterBillingRoutes(frontdesk)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	r.healthH.RegisterRoutes(rg)
	rg.GET("/health/metrics", r.h.MetricsHandler)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "dental_api"
	}
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
