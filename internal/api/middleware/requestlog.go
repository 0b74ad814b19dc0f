package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// loggerKey is the echo context key holding the request-scoped logger.
const loggerKey = "request_logger"

// RequestLog returns Echo middleware that assigns each request an ID
// (honouring an incoming X-Request-ID header), derives a request-scoped
// logger tagged with that ID, and logs one line per completed request.
// Server errors log at Warn so they stand out from routine traffic.
// Handlers reach the tagged logger through Logger.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Response().Header().Set(requestIDHeader, reqID)

			reqLog := log.With("request_id", reqID)
			c.Set(loggerKey, reqLog)

			err := next(c)

			attrs := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if q := c.Request().URL.RawQuery; q != "" {
				attrs = append(attrs, "query", q)
			}

			if c.Response().Status >= 500 {
				reqLog.Warn("request", attrs...)
			} else {
				reqLog.Info("request", attrs...)
			}

			return err
		}
	}
}

// Logger returns the request-scoped logger installed by RequestLog, so
// handler log lines carry the request ID. Falls back to slog.Default()
// when the middleware is not in the chain.
func Logger(c echo.Context) *slog.Logger {
	if l, ok := c.Get(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
