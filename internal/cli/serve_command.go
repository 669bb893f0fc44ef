package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"task-manager/internal/api"
	"task-manager/internal/config"
)

// ServeCommand runs the HTTP server until its context is canceled
type ServeCommand struct {
	app          *App
	errorHandler *ErrorHandler
	// started is called with the bound address once the listener is open.
	started func(addr net.Addr)
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute opens the store, serves HTTP and shuts down gracefully when ctx ends
func (c *ServeCommand) Execute(ctx context.Context, _ []string) error {
	cfg := c.app.config
	log := c.app.logger

	container, repo, err := c.app.OpenServices(ctx)
	if err != nil {
		return c.errorHandler.Handle("open task store", err)
	}
	defer repo.Close()

	if cfg.App.Environment == config.EnvironmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.New(container, repo, api.Options{
		RequestTimeout: cfg.Server.RequestTimeout,
		EnableSwagger:  cfg.Server.EnableSwagger,
		EnableMetrics:  cfg.Server.EnableMetrics,
		Logger:         log,
	}).Router()

	listener, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Addr, err)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()

	log.Info("server listening",
		"addr", listener.Addr().String(),
		"provider", cfg.Database.Provider,
		"environment", cfg.App.Environment,
	)
	if c.started != nil {
		c.started(listener.Addr())
	}

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	log.Info("server stopped")
	return nil
}
