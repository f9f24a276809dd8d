package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/receita/backend/config"
	"github.com/pageza/receita/backend/internal/metrics"
	"github.com/pageza/receita/backend/internal/router"
	"github.com/pageza/receita/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New creates a new server instance with every route and middleware wired
func New(cfg *config.Config, recipeService service.IRecipeService, m *metrics.Metrics, logger *zap.Logger) *Server {
	engine := router.SetupRouter(recipeService, m, logger)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight requests
// until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
