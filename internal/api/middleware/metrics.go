// Package middleware provides Echo middleware for phone-catalog-tracker.
package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mhodgson/phone-catalog-tracker/internal/metrics"
)

// healthGauges maps probe paths to their up/down gauge.
var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records per-route duration and
// status for requests under apiPrefix, the prefix the server registers its
// API group on. Routes outside it are operational: health probes update
// their gauge and everything else (e.g. /metrics itself) records nothing,
// so scrapes and probes cannot drown the request signal.
func Metrics(apiPrefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			if !strings.HasPrefix(path, apiPrefix) {
				err := next(c)
				if gauge, ok := healthGauges[path]; ok {
					setProbeGauge(gauge, c.Response().Status)
				}
				return err
			}

			start := time.Now()
			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

// setProbeGauge sets a health gauge to 1 on a 2xx probe and 0 otherwise.
func setProbeGauge(gauge prometheus.Gauge, status int) {
	if status >= 200 && status < 300 {
		gauge.Set(1)
	} else {
		gauge.Set(0)
	}
}
