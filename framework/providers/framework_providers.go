package providers

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/routing"
)

// Tokens bound by the framework modules.
var (
	ConfigToken = container.Name("config")
	LoggerToken = container.Name("logger")

	// RouterClass builds a *routing.Router from the logger bound under
	// LoggerToken.
	RouterClass = container.MustInjectable(
		container.MustClass("Router", routing.New),
		LoggerToken,
	)
)

// ── ConfigModule ──────────────────────────────────────────────────────────────

// ConfigModule binds the loaded configuration.
//
// Bound tokens:
//   - "config"  → *config.Config (value)
type ConfigModule struct {
	Config *config.Config
}

func (m *ConfigModule) Register(c *container.Container) error {
	if m.Config == nil {
		return errors.New("providers: config module has no config")
	}
	c.Register(ConfigToken, container.UseValue(m.Config))
	return nil
}

// ── LoggingModule ─────────────────────────────────────────────────────────────

// LoggingModule binds the application logger.
//
// Bound tokens:
//   - "logger"  → zerolog.Logger (value)
type LoggingModule struct {
	Logger zerolog.Logger
}

func (m *LoggingModule) Register(c *container.Container) error {
	c.Register(LoggerToken, container.UseValue(m.Logger))
	return nil
}

// ── RoutingModule ─────────────────────────────────────────────────────────────

// RoutingModule registers the HTTP router.
//
// Bound tokens:
//   - Class(Router)  → *routing.Router (singleton, depends on "logger")
type RoutingModule struct{}

func (m *RoutingModule) Register(c *container.Container) error {
	c.Register(RouterClass, container.UseClass(RouterClass, container.Singleton))
	return nil
}
