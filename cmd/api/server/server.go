package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "storefront-api/internal/adapter/gin/handler"
	"storefront-api/internal/adapter/gin/middleware"
	ginrouter "storefront-api/internal/adapter/gin/router"
	"storefront-api/internal/config"
)

// Server holds the HTTP server serving the REST API
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance
func New(
	cfg *config.Config,
	l *zap.Logger,
	userHandler *ginhandler.UserHandler,
	productHandler *ginhandler.ProductHandler,
	rateLimiter *middleware.RateLimiter,
) *Server {
	router := ginrouter.SetupRouter(userHandler, productHandler, rateLimiter, l)

	addr := ":" + cfg.App.HTTPPort
	l.Info("REST API configured", zap.String("address", addr))

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
