package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fintrack/internal/logger"
)

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fintrack",
			Name:      "requests_total",
			Help:      "How many HTTP requests processed, partitioned by status code, method and route.",
		},
		[]string{"code", "method", "url"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fintrack",
			Name:      "request_duration_seconds",
			Help:      "The HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "method", "url"},
	)

	registerOnce sync.Once
)

// registerMetrics adds the collectors to the default registry once per
// process. Routers built repeatedly in tests share them.
func registerMetrics() {
	registerOnce.Do(func() {
		for _, c := range []prometheus.Collector{requestCount, requestDuration} {
			if err := prometheus.Register(c); err != nil {
				var already prometheus.AlreadyRegisteredError
				if !errors.As(err, &already) {
					logger.Named("metrics").Errorw("could not register collector", "error", err)
				}
			}
		}
	})
}

// routeLabel replaces path parameter values with their names to keep label
// cardinality bounded.
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	url := c.Request.URL.Path
	for _, p := range c.Params {
		url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
	}
	return url
}

// MetricsMiddleware updates Prometheus request metrics.
func MetricsMiddleware() gin.HandlerFunc {
	registerMetrics()
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start).Seconds()
		url := routeLabel(c)

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}

// MetricsHandler exposes the default registry in the Prometheus text format.
func MetricsHandler() gin.HandlerFunc {
	registerMetrics()
	return gin.WrapH(promhttp.Handler())
}
