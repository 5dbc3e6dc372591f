package middleware

import (
	"github.com/labstack/echo/v4"
	zlog "github.com/rs/zerolog/log"
)

// ContextLogger binds the global zerolog logger, tagged with the request id,
// to the request context. Downstream packages log through log.Ctx, which
// resolves to a disabled logger unless one is attached here. Register after
// RequestID.
func ContextLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := zlog.Logger.With().Str("request_id", RequestIDFrom(c)).Logger()
			ctx := logger.WithContext(c.Request().Context())
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
