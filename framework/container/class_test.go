package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

func TestNewClass_RejectsUnusableConstructors(t *testing.T) {
	var nilFunc func() *logger

	tests := []struct {
		name string
		ctor any
	}{
		{"nil", nil},
		{"typed nil func", nilFunc},
		{"not a func", 42},
		{"no results", func() {}},
		{"second result not error", func() (*logger, int) { return nil, 0 }},
		{"three results", func() (*logger, int, error) { return nil, 0, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, err := container.NewClass("Bad", tt.ctor)
			assert.Nil(t, class)
			requireKind(t, err, container.ErrInvalidClass)
		})
	}
}

func TestNewClass_DefaultsNameToResultType(t *testing.T) {
	class, err := container.NewClass("", newLogger)
	require.NoError(t, err)
	assert.Equal(t, "*container_test.logger", class.Name())
	assert.Equal(t, "Class(*container_test.logger)", class.String())
}

func TestNewClass_Arity(t *testing.T) {
	assert.Equal(t, 0, container.MustClass("Logger", newLogger).Arity())
	assert.Equal(t, 1, container.MustClass("Service", newService).Arity())
	assert.Equal(t, 1, container.MustClass("Recorder", newRecorder).Arity())
}

func TestMustClass_Panics(t *testing.T) {
	assert.Panics(t, func() { container.MustClass("Bad", "not a func") })
}

func TestClass_VariadicConstructorAcceptsAnyCount(t *testing.T) {
	c, m := newIsolated(t)
	recorderClass := container.MustClass("Recorder", newRecorder)

	r, err := container.Resolve[*recorder](c, recorderClass)
	require.NoError(t, err)
	assert.Empty(t, r.args)

	other := container.MustClass("Recorder2", newRecorder)
	record(t, m, other, container.Name("x"), container.Name("y"))
	c.Register(container.Name("x"), container.UseValue(1))
	c.Register(container.Name("y"), container.UseValue(nil))

	r, err = container.Resolve[*recorder](c, other)
	require.NoError(t, err)
	assert.Equal(t, []any{1, nil}, r.args)
}

func TestClass_InterfaceParameterAcceptsImplementation(t *testing.T) {
	type stringer interface{ String() string }
	c, m := newIsolated(t)
	class := container.MustClass("Describer", func(s stringer) string { return "got " + s.String() })
	record(t, m, class, container.Name("sym"))
	c.Register(container.Name("sym"), container.UseValue(container.NewSymbol("Api")))

	got, err := c.Resolve(class)
	require.NoError(t, err)
	assert.Equal(t, "got Symbol(Api)", got)
}

func TestTokens_String(t *testing.T) {
	var nilSymbol *container.Symbol
	var nilClass *container.Class

	assert.Equal(t, `"cfg"`, container.Name("cfg").String())
	assert.Equal(t, "Symbol(Api)", container.NewSymbol("Api").String())
	assert.Equal(t, "Api", container.NewSymbol("Api").Description())
	assert.Equal(t, "Symbol(<nil>)", nilSymbol.String())
	assert.Equal(t, "Class(<nil>)", nilClass.String())
}
