package container_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

var seq atomic.Int64

type logger struct{ id int64 }

func newLogger() *logger { return &logger{id: seq.Add(1)} }

type service struct {
	id     int64
	logger *logger
}

func newService(l *logger) *service { return &service{id: seq.Add(1), logger: l} }

type apiConfig struct{ APIKey string }

type apiClient struct{ key string }

// recorder keeps the arguments its constructor received, in order.
type recorder struct {
	id   int64
	args []any
}

func newRecorder(args ...any) *recorder { return &recorder{id: seq.Add(1), args: args} }

// ── helpers ───────────────────────────────────────────────────────────────────

// newIsolated returns a container with its own metadata store so tests do
// not leak class metadata into each other.
func newIsolated(t *testing.T, opts ...container.Option) (*container.Container, *container.Metadata) {
	t.Helper()
	m := container.NewMetadata()
	opts = append([]container.Option{container.WithMetadata(m)}, opts...)
	return container.New(opts...), m
}

// record records deps for class in m and fails the test on error.
func record(t *testing.T, m *container.Metadata, class *container.Class, deps ...container.Token) {
	t.Helper()
	require.NoError(t, m.Record(class, deps...))
}

// requireKind asserts err is a *container.Error of the given kind.
func requireKind(t *testing.T, err error, kind error) *container.Error {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	var cerr *container.Error
	require.True(t, errors.As(err, &cerr), "expected *container.Error, got %T", err)
	return cerr
}
