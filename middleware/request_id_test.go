package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDAssigned(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = RequestIDFrom(c)
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
}

func TestRequestIDHonorsUpstream(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "upstream-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "upstream-id", rec.Header().Get(HeaderRequestID))
}
