package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	tokenapi "github.com/rescuekit/tokend/api/echo"
	"github.com/rescuekit/tokend/config"
	"github.com/rescuekit/tokend/log"
	"github.com/rescuekit/tokend/middleware"
)

// NewHTTPServer creates and configures the Echo HTTP server hosting the
// token API, the Prometheus endpoint, and the health check.
func NewHTTPServer(cfg *config.ServerConfig, appLogger log.Logger, tokenAPI *tokenapi.TokenAPI) *http.Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.ContextLogger())
	e.Use(middleware.RequestLogger(appLogger))
	e.Use(otelecho.Middleware(cfg.OtelServiceName))

	tokenAPI.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      e,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
