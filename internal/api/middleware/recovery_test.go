package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecoveryServer(buf *bytes.Buffer) *echo.Echo {
	e := echo.New()
	e.Use(RequestLog(slog.New(slog.NewTextHandler(buf, nil))))
	e.Use(Recovery())
	return e
}

func TestRecovery_NoPanic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newRecoveryServer(&buf)
	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, buf.String(), "panic recovered")
}

func TestRecovery_Panic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newRecoveryServer(&buf)
	e.GET("/panic", func(echo.Context) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", http.NoBody)
	req.Header.Set(requestIDHeader, "panic-req-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "boom")

	// The panic log and the response body both carry the request ID.
	assert.Contains(t, buf.String(), "panic-req-1")
	assert.Contains(t, rec.Body.String(), `"request_id":"panic-req-1"`)
}

// A panic answered with 500 logs the request line at Warn.
func TestRecovery_PanicLogsRequestAtWarn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newRecoveryServer(&buf)
	e.GET("/panic", func(echo.Context) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "level=WARN")
}
