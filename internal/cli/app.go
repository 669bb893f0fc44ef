package cli

import (
	"context"
	"fmt"
	"io"

	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/repository"
	"task-manager/internal/services"
)

// App carries the resolved configuration and shared dependencies of a command run
type App struct {
	config *config.Config
	logger logging.Logger
	out    io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(cfg *config.Config, logger logging.Logger, out io.Writer) *App {
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &App{
		config: cfg,
		logger: logger,
		out:    out,
	}
}

// Config returns the resolved configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// OpenServices opens the configured store and wires the services over it.
// The caller closes the returned repository.
func (a *App) OpenServices(ctx context.Context) (*services.ServiceContainer, repository.Repository, error) {
	loc, err := a.config.Location()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	repo, err := config.CreateRepository(ctx, a.config)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Debug("store opened", "provider", a.config.Database.Provider)
	return services.NewServiceContainer(repo, services.NewTimeService(loc)), repo, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
