package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/Uchennaokeke444/Gradle/internal/ctxlog"
	"github.com/Uchennaokeke444/Gradle/internal/evaluator"
	"github.com/Uchennaokeke444/Gradle/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	registry  *registry.Registry
	evaluator *evaluator.Evaluator
}

// NewApp is the constructor for the main application. Logs go to logW and
// reports to outW. Without modules, the core modules are registered.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules))

	provider := registry.NewProvider(reg)
	if err := provider.ValidateRegistry(ctx); err != nil {
		// A host type that cannot become a schema is a programmer error.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:      outW,
		logger:    logger,
		registry:  reg,
		evaluator: evaluator.New(provider),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
