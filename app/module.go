package app

import (
	"errors"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/providers"
)

// Tokens bound by Module.
var (
	// ConfigToken holds the *config.APIConfig used to build API clients.
	ConfigToken = container.Name("cfg")

	// APIToken resolves to a fresh *APIClient on every call.
	APIToken = container.NewSymbol("Api")

	AuditLogClass = container.MustInjectable(
		container.MustClass("AuditLog", NewAuditLog),
		providers.LoggerToken,
	)

	GreeterClass = container.MustInjectable(
		container.MustClass("Greeter", NewGreeter),
		AuditLogClass,
	)
)

// ErrNoAPIConfig is returned when the "cfg" token holds no API config.
var ErrNoAPIConfig = errors.New("app: api config is not set")

// Module registers the demo services. It needs the framework config module
// to be registered first.
type Module struct{}

func (m *Module) Register(c *container.Container) error {
	cfg, err := container.Resolve[*config.Config](c, providers.ConfigToken)
	if err != nil {
		return err
	}

	c.Register(ConfigToken, container.UseValue(&cfg.API))
	c.Register(APIToken, container.UseFactory(newAPIClient))
	c.Register(AuditLogClass, container.UseClass(AuditLogClass, container.Singleton))
	c.Register(GreeterClass, container.UseClass(GreeterClass))
	return nil
}

func newAPIClient(c *container.Container) (any, error) {
	cfg, err := container.Resolve[*config.APIConfig](c, ConfigToken)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrNoAPIConfig
	}
	return NewAPIClient(cfg), nil
}
