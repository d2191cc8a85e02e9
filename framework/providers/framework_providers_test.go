package providers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/providers"
	"github.com/km-arc/go-inject/framework/routing"
)

func TestConfigModule(t *testing.T) {
	c := container.New()
	cfg := &config.Config{App: config.AppConfig{Name: "Demo"}}

	require.NoError(t, (&providers.ConfigModule{Config: cfg}).Register(c))

	got, err := container.Resolve[*config.Config](c, providers.ConfigToken)
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}

func TestConfigModule_NilConfig(t *testing.T) {
	c := container.New()
	err := (&providers.ConfigModule{}).Register(c)
	require.Error(t, err)
	assert.False(t, c.Has(providers.ConfigToken))
}

func TestLoggingModule(t *testing.T) {
	c := container.New()
	var buf bytes.Buffer
	require.NoError(t, (&providers.LoggingModule{Logger: zerolog.New(&buf)}).Register(c))

	log, err := container.Resolve[zerolog.Logger](c, providers.LoggerToken)
	require.NoError(t, err)
	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestRoutingModule_BuildsRouterFromLogger(t *testing.T) {
	c := container.New()
	var buf bytes.Buffer
	registry := container.NewModuleRegistry(c)
	require.NoError(t, registry.Register(&providers.LoggingModule{Logger: zerolog.New(&buf)}))
	require.NoError(t, registry.Register(&providers.RoutingModule{}))

	router, err := container.Resolve[*routing.Router](c, providers.RouterClass)
	require.NoError(t, err)

	again, err := container.Resolve[*routing.Router](c, providers.RouterClass)
	require.NoError(t, err)
	assert.Same(t, router, again, "router is a singleton")

	router.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Contains(t, buf.String(), `"path":"/ping"`, "router logs through the bound logger")
}

func TestRoutingModule_MissingLogger(t *testing.T) {
	c := container.New()
	require.NoError(t, (&providers.RoutingModule{}).Register(c))

	_, err := c.Resolve(providers.RouterClass)
	require.ErrorIs(t, err, container.ErrNoProvider)
	assert.False(t, c.Resolved(providers.RouterClass))
}

func TestRouterClass_Metadata(t *testing.T) {
	deps := container.DefaultMetadata().Lookup(providers.RouterClass)
	assert.Equal(t, []container.Token{providers.LoggerToken}, deps)
}
