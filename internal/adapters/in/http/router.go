package http

import (
	"log/slog"
	"net/http"
	"time"

	"orderflow/internal/adapters/in/http/api"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig wires the echo instance.
type RouterConfig struct {
	Server         *Server
	Verifier       *TokenVerifier
	Observer       RequestObserver
	MetricsHandler http.Handler
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

// NewRouter builds the echo instance:
//
//	GET  /health, /metrics, /swagger/*    public
//	/api/v1/*                             bearer token, OpenAPI validation
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	doc, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(RequestLogger(cfg.Logger))
	if cfg.Observer != nil {
		e.Use(RequestMetrics(cfg.Observer))
	}
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeout(cfg.RequestTimeout))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", cfg.Verifier.Middleware(), validator)
	api.RegisterHandlers(v1, cfg.Server)

	return e, nil
}
