package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "stringsvc"
	httpSubsystem    = "http"
)

// unmatchedRoute labels requests that hit no route, keeping label
// cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics holds the Prometheus collectors for the HTTP layer.
//
// Thread-safety: all operations are safe for concurrent use.
type Metrics struct {
	// RequestsTotal counts requests.
	// Labels: method, route (gin route pattern), status
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures handler latency.
	// Labels: method, route
	RequestDuration *prometheus.HistogramVec

	// RateLimited counts requests rejected by the limiter.
	RateLimited prometheus.Counter
}

// NewMetrics registers the HTTP collectors with reg.
//
// storedRecords, when non-nil, backs a gauge of stored strings that is
// sampled at scrape time.
func NewMetrics(reg prometheus.Registerer, storedRecords func() float64) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: httpSubsystem,
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: httpSubsystem,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"method", "route"}),

		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: httpSubsystem,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}),
	}

	if storedRecords != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "strings_stored",
			Help:      "Number of strings currently stored",
		}, storedRecords)
	}

	return m
}

// instrument records request count and latency.
func (m *Metrics) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
