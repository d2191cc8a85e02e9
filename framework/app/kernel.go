package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/logging"
	"github.com/km-arc/go-inject/framework/providers"
	"github.com/km-arc/go-inject/framework/routing"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// Application is the top-level application. It embeds the Container so
// user code can call app.Register and app.Resolve directly.
type Application struct {
	*container.Container
	Modules *container.ModuleRegistry

	// closes the log output opened by New
	logCloser io.Closer
}

// New loads configuration, builds the logger and container, and registers
// the framework modules (config, logger, router).
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)

	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("app: build logger: %w", err)
	}
	a, err := NewWith(cfg, log)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	a.logCloser = closer
	return a, nil
}

// NewWith is like New but takes an already loaded config and logger.
func NewWith(cfg *config.Config, log zerolog.Logger) (*Application, error) {
	c := container.New(
		container.WithLogger(log.With().Str("component", "container").Logger()),
		container.WithMaxDepth(cfg.Container.MaxDepth),
	)
	a := &Application{
		Container: c,
		Modules:   container.NewModuleRegistry(c),
	}

	// Order matters: the router resolves the logger.
	for _, m := range []container.Module{
		&providers.ConfigModule{Config: cfg},
		&providers.LoggingModule{Logger: log},
		&providers.RoutingModule{},
	} {
		if err := a.Modules.Register(m); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Use registers a module with the application.
func (a *Application) Use(m container.Module) error {
	return a.Modules.Register(m)
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, providers.ConfigToken)
}

// Logger resolves the application logger from the container.
func (a *Application) Logger() zerolog.Logger {
	return container.MustResolve[zerolog.Logger](a.Container, providers.LoggerToken)
}

// Router resolves the singleton *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, providers.RouterClass)
}

// Close releases the log output opened by New. It is safe to call more
// than once and on applications built with NewWith.
func (a *Application) Close() error {
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }

// Run serves the router on APP_PORT until ctx is cancelled, then shuts the
// server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	cfg := a.Config()
	log := a.Logger()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           a.Router().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("app", cfg.App.Name).
			Str("env", cfg.App.Env).
			Str("addr", srv.Addr).
			Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	return nil
}
