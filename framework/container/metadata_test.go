package container_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

func TestMetadata_LookupUnknownClassIsEmpty(t *testing.T) {
	m := container.NewMetadata()
	got := m.Lookup(container.MustClass("Logger", newLogger))
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, m.Lookup(nil))
}

func TestMetadata_RecordReplacesPriorAssociation(t *testing.T) {
	m := container.NewMetadata()
	class := container.MustClass("Service", newService)

	require.NoError(t, m.Record(class, container.Name("a")))
	require.NoError(t, m.Record(class, container.Name("b"), container.Name("c")))

	assert.Equal(t, []container.Token{container.Name("b"), container.Name("c")}, m.Lookup(class))
	assert.Equal(t, 1, m.Len())
}

func TestMetadata_RecordRejectsNonClassTargets(t *testing.T) {
	var nilClass *container.Class

	tests := []struct {
		name   string
		target any
	}{
		{"nil", nil},
		{"nil class", nilClass},
		{"string", "Service"},
		{"name token", container.Name("Service")},
		{"symbol token", container.NewSymbol("Service")},
		{"constructor func", newService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := container.NewMetadata()
			err := m.Record(tt.target, container.Name("a"))
			requireKind(t, err, container.ErrNotInjectable)
			assert.Equal(t, 0, m.Len())
		})
	}
}

func TestMetadata_IsolatesCallerSlices(t *testing.T) {
	m := container.NewMetadata()
	class := container.MustClass("Service", newService)
	deps := []container.Token{container.Name("a")}
	require.NoError(t, m.Record(class, deps...))

	deps[0] = container.Name("mutated")
	got := m.Lookup(class)
	got[0] = container.Name("mutated too")

	assert.Equal(t, []container.Token{container.Name("a")}, m.Lookup(class))
}

func TestMetadata_DoesNotRetainClasses(t *testing.T) {
	m := container.NewMetadata()

	func() {
		class := container.MustClass("Ephemeral", newLogger)
		require.NoError(t, m.Record(class, container.Name("a")))
		require.Equal(t, 1, m.Len())
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return m.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestInjectable_RecordsIntoDefaultMetadata(t *testing.T) {
	class := container.MustClass("DefaultStoreService", newService)
	loggerClass := container.MustClass("DefaultStoreLogger", newLogger)

	require.NoError(t, container.Injectable(class, loggerClass))
	assert.Equal(t, []container.Token{loggerClass}, container.DefaultMetadata().Lookup(class))

	svc, err := container.Resolve[*service](container.New(), class)
	require.NoError(t, err)
	assert.NotNil(t, svc.logger)
}

func TestInjectable_Misuse(t *testing.T) {
	err := container.Injectable(container.Name("not a class"))
	cerr := requireKind(t, err, container.ErrNotInjectable)
	assert.Contains(t, cerr.Error(), "container.Name")

	assert.Panics(t, func() { container.MustInjectable(struct{}{}) })
}

func TestMustInjectable_ReturnsClass(t *testing.T) {
	class := container.MustClass("MustInjectableService", newService)
	loggerClass := container.MustClass("MustInjectableLogger", newLogger)

	assert.Same(t, class, container.MustInjectable(class, loggerClass))
	assert.Equal(t, []container.Token{loggerClass}, container.DefaultMetadata().Lookup(class))
}
