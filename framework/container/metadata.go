package container

import (
	"runtime"
	"slices"
	"sync"
	"weak"
)

// Metadata records, per class, the ordered tokens its constructor needs.
//
// Entries are keyed by a weak pointer to the class, so recording metadata
// never keeps a class alive; the entry is dropped once the class is
// collected. A Metadata is safe for concurrent use.
type Metadata struct {
	mu   sync.RWMutex
	deps map[weak.Pointer[Class]][]Token
}

// NewMetadata returns an empty store.
func NewMetadata() *Metadata {
	return &Metadata{deps: make(map[weak.Pointer[Class]][]Token)}
}

var defaultMetadata = NewMetadata()

// DefaultMetadata returns the process-wide store used by Injectable and by
// containers created without WithMetadata.
func DefaultMetadata() *Metadata { return defaultMetadata }

// Record associates tokens with target, replacing any earlier association.
// target must be a non-nil *Class.
func (m *Metadata) Record(target any, tokens ...Token) error {
	class, ok := target.(*Class)
	if !ok || class == nil {
		return notInjectableError(target)
	}

	key := weak.Make(class)

	m.mu.Lock()
	_, known := m.deps[key]
	m.deps[key] = slices.Clone(tokens)
	m.mu.Unlock()

	if !known {
		runtime.AddCleanup(class, m.forget, key)
	}
	return nil
}

// Lookup returns the tokens recorded for class, or an empty slice.
func (m *Metadata) Lookup(class *Class) []Token {
	if class == nil {
		return []Token{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	tokens, ok := m.deps[weak.Make(class)]
	if !ok {
		return []Token{}
	}
	return append([]Token{}, tokens...)
}

// Len returns the number of classes with recorded metadata.
func (m *Metadata) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.deps)
}

func (m *Metadata) forget(key weak.Pointer[Class]) {
	m.mu.Lock()
	delete(m.deps, key)
	m.mu.Unlock()
}

// Injectable marks target as a class whose constructor needs deps, in
// parameter order. It records into DefaultMetadata.
//
//	var ServiceClass = container.MustInjectable(
//	    container.MustClass("Service", NewService),
//	    LoggerClass, container.Name("cfg"),
//	)
func Injectable(target any, deps ...Token) error {
	return defaultMetadata.Record(target, deps...)
}

// MustInjectable is like Injectable but panics on misuse and returns the
// class, so it can be used in package-level declarations.
func MustInjectable(target any, deps ...Token) *Class {
	if err := Injectable(target, deps...); err != nil {
		panic(err)
	}
	return target.(*Class)
}
