package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// Recovery returns Echo middleware that turns handler panics into 500
// responses. The stack trace goes to the request-scoped logger so it
// carries the request ID, and the response body echoes the ID back for
// correlation. Install after RequestLog.
func Recovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					Logger(c).Error("panic recovered",
						"error", fmt.Sprint(r),
						"method", c.Request().Method,
						"path", c.Request().URL.Path,
						"stack", string(debug.Stack()),
					)

					body := map[string]string{"error": "internal server error"}
					if id := c.Response().Header().Get(requestIDHeader); id != "" {
						body["request_id"] = id
					}
					err = c.JSON(http.StatusInternalServerError, body)
				}
			}()
			return next(c)
		}
	}
}
