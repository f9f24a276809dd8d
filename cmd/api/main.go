package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/receita/backend/config"
	"github.com/pageza/receita/backend/internal/logger"
	"github.com/pageza/receita/backend/internal/metrics"
	"github.com/pageza/receita/backend/internal/server"
	"github.com/pageza/receita/backend/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run wires the server and blocks until it stops. Errors are returned rather
// than fatally logged so deferred log flushing always happens.
func run() error {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	zlog := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Debug,
	})
	defer func() { _ = zlog.Sync() }()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// One generator for the whole process, shared read-only by all requests
	generator, err := service.NewGenerator(cfg)
	if err != nil {
		zlog.Error("failed to create LLM client", zap.Error(err))
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	m := metrics.New()
	recipeService := service.NewRecipeService(generator, m, zlog, cfg.LLMTimeout)

	srv := server.New(cfg, recipeService, m, zlog)
	zlog.Info("starting server",
		zap.String("env", string(config.GetEnvironment())),
		zap.String("provider", generator.Provider()),
		zap.Duration("llm_timeout", cfg.LLMTimeout),
		zap.Bool("debug", cfg.Debug),
	)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		if err != nil {
			zlog.Error("server error", zap.Error(err))
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		zlog.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	zlog.Info("shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown error", zap.Error(err))
		return fmt.Errorf("server shutdown error: %w", err)
	}
	zlog.Info("server stopped")
	return nil
}
