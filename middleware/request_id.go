package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderRequestID is the header carrying the request correlation id.
const HeaderRequestID = "X-Request-ID"

// RequestID assigns each request a uuid correlation id, honoring one already
// supplied by an upstream proxy, and echoes it in the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set("request_id", id)
			c.Response().Header().Set(HeaderRequestID, id)
			return next(c)
		}
	}
}

// RequestIDFrom returns the correlation id assigned by RequestID, or "".
func RequestIDFrom(c echo.Context) string {
	id, _ := c.Get("request_id").(string)
	return id
}
