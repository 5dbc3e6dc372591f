package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rescuekit/tokend/log"
)

// RequestLogger emits one structured log line per request with the common
// HTTP fields. Handler errors are logged with the same fields attached.
func RequestLogger(appLogger log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			fields := map[string]interface{}{
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     c.Response().Status,
				"latency":    time.Since(start).String(),
				"ip":         c.RealIP(),
				"user_agent": c.Request().UserAgent(),
				"request_id": RequestIDFrom(c),
			}

			if err != nil {
				appLogger.Error(c.Request().Context(), "HTTP request failed", err, fields)
				return err
			}
			appLogger.Info(c.Request().Context(), "HTTP request", fields)
			return nil
		}
	}
}
