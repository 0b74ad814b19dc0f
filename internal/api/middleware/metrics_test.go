package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/mhodgson/phone-catalog-tracker/internal/api/middleware"
	"github.com/mhodgson/phone-catalog-tracker/internal/metrics"
)

const testAPIPrefix = "/api/v1"

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		handler    echo.HandlerFunc
		wantStatus int
	}{
		{
			name:   "records 200 response",
			method: http.MethodGet,
			path:   "/api/v1/products",
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "records 404 response",
			method: http.MethodGet,
			path:   "/api/v1/missing",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "records POST request",
			method: http.MethodPost,
			path:   "/api/v1/scrape",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusAccepted)
			},
			wantStatus: http.StatusAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(mw.Metrics(testAPIPrefix))
			e.Add(tt.method, tt.path, tt.handler)

			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			statusStr := strconv.Itoa(tt.wantStatus)

			counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(
				tt.method, tt.path, statusStr,
			)
			require.NoError(t, err)
			assert.Greater(t, ptestutil.ToFloat64(counter), float64(0))
		})
	}
}

// Routes outside the API prefix stay out of the request counter entirely.
func TestMetricsMiddlewareIgnoresNonAPIPaths(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics(testAPIPrefix))
	e.GET("/metrics", func(c echo.Context) error {
		return c.String(http.StatusOK, "# scrape output")
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(
		http.MethodGet, "/metrics", "200",
	)
	require.NoError(t, err)
	assert.Equal(t, float64(0), ptestutil.ToFloat64(counter))
}

func TestMetricsMiddlewareSkipsHealthPaths(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics(testAPIPrefix))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Health endpoints update the gauge, not the request counter.
	assert.Equal(t, float64(1), ptestutil.ToFloat64(metrics.HealthzUp))

	counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(
		http.MethodGet, "/healthz", "200",
	)
	require.NoError(t, err)
	assert.Equal(t, float64(0), ptestutil.ToFloat64(counter))
}

func TestMetricsMiddlewareFailedProbeZeroesGauge(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics(testAPIPrefix))
	e.GET("/readyz", func(c echo.Context) error {
		return c.NoContent(http.StatusServiceUnavailable)
	})

	req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, float64(0), ptestutil.ToFloat64(metrics.ReadyzUp))
}
