package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// options configures the router.
type options struct {
	logger      *slog.Logger
	ids         IDGenerator
	registry    *prometheus.Registry
	metricsPath string
	stored      func() float64
	limiter     *rate.Limiter
}

// Option allows configuration of router parameters.
type Option func(*options)

// WithLogger sets the access and error logger.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithIDGenerator sets the request id generator.
// Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) {
		o.ids = g
	}
}

// WithMetrics enables Prometheus metrics on reg, served at path.
// stored, when non-nil, reports the number of stored strings.
func WithMetrics(reg *prometheus.Registry, path string, stored func() float64) Option {
	return func(o *options) {
		o.registry = reg
		o.metricsPath = path
		o.stored = stored
	}
}

// WithRateLimit enables a global token bucket of rps requests per second
// with the given burst. A non-positive rps leaves limiting disabled.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		if rps > 0 {
			o.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewRouter builds the HTTP handler for svc.
func NewRouter(svc Service, opts ...Option) *gin.Engine {
	o := &options{
		logger: slog.Default(),
		ids:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(o)
	}

	r := gin.New()
	r.Use(recovery(o.logger), requestID(o.ids), accessLog(o.logger))

	var onReject func()
	if o.registry != nil {
		m := NewMetrics(o.registry, o.stored)
		r.Use(m.instrument())
		onReject = m.RateLimited.Inc
		r.GET(o.metricsPath, gin.WrapH(promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})))
	}

	r.GET("/health", health)

	h := &handlers{svc: svc}
	strs := r.Group("/strings")
	if o.limiter != nil {
		strs.Use(rateLimit(o.limiter, onReject))
	}
	{
		strs.POST("", h.createString)
		strs.GET("", h.listStrings)
		strs.GET("/*value", h.getString)
		strs.DELETE("/*value", h.deleteString)
	}

	r.NoRoute(func(c *gin.Context) {
		abortWithMessage(c, http.StatusNotFound, msgNotFound)
	})

	return r
}
