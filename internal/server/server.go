package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ServerConfig tunes the proxy's listening surface. RateLimit and
// RateBurst apply only to the swap endpoints; quote traffic is not
// limited by the proxy.
type ServerConfig struct {
	Addr      string  // bind address, e.g. ":8090"
	DevMode   bool    // include error details in responses
	APIKey    string  // when set, every request needs X-API-Key
	RateLimit float64 // swap requests per second
	RateBurst int     // swap request burst allowance
}

// ServerDeps bundles what the proxy needs to serve requests.
type ServerDeps struct {
	Handlers *Handlers
	Config   ServerConfig
}

// Server is the echo server fronting the swap API, with shutdown
// tracking so main can wait for in-flight requests to drain.
type Server struct {
	e      *echo.Echo
	cfg    ServerConfig
	closed chan struct{}
}

// NewServer assembles the proxy server: recovery and request logging,
// conservative timeouts, and the v1 route set.
func NewServer(deps ServerDeps) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 75 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	RegisterRoutes(e, deps.Handlers, deps.Config)

	return &Server{e: e, cfg: deps.Config, closed: make(chan struct{})}, nil
}

// Start serves until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	return s.e.Start(s.cfg.Addr)
}

// Shutdown drains in-flight requests, giving them at most 10 seconds.
func (s *Server) Shutdown(ctx context.Context) error {
	defer close(s.closed)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.e.Shutdown(ctx)
}

// WaitClosed blocks until shutdown completes or ctx expires.
func (s *Server) WaitClosed(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.closed:
		return nil
	}
}

// SetNoCacheHeaders marks responses uncacheable; quotes go stale in
// seconds and must never be served from an intermediary cache.
func SetNoCacheHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store")
		return next(c)
	}
}

// SetJSONContentType defaults responses to JSON; streaming handlers
// override it before writing.
func SetJSONContentType(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return next(c)
	}
}
