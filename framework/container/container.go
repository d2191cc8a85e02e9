package container

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container maps tokens to providers and resolves tokens into values,
// building class instances through their recorded dependencies.
//
// It holds two tables:
//   - providers: token → Provider (last Register wins)
//   - instances: token → singleton instance, filled lazily
//
// The tables are guarded by a mutex, but resolution itself is meant for a
// single goroutine at a time: the build stack used to detect cycles is
// shared by the whole container.
type Container struct {
	mu sync.RWMutex

	// token → provider
	providers map[Token]Provider

	// token → resolved singleton instance
	instances map[Token]any

	// singletons built during the current outermost Resolve, committed to
	// instances only if it succeeds
	pending map[Token]any

	// tokens currently being resolved, outermost first
	buildStack []Token

	metadata *Metadata
	log      zerolog.Logger
	maxDepth int
}

// Option configures a Container.
type Option func(*Container)

// WithMetadata makes the container read class dependencies from m instead
// of DefaultMetadata.
func WithMetadata(m *Metadata) Option {
	return func(c *Container) {
		if m != nil {
			c.metadata = m
		}
	}
}

// WithLogger sets the logger used for debug events. The default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Container) { c.log = l }
}

// WithMaxDepth limits how deeply resolutions may nest. Zero means no limit;
// cycles are detected either way.
func WithMaxDepth(n int) Option {
	return func(c *Container) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		providers: make(map[Token]Provider),
		instances: make(map[Token]any),
		pending:   make(map[Token]any),
		metadata:  defaultMetadata,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register stores p under token, replacing any earlier provider. The
// provider is not checked until the token is resolved.
//
//	c.Register(LoggerClass, container.UseClass(LoggerClass, container.Singleton))
//	c.Register(container.Name("cfg"), container.UseValue(cfg))
func (c *Container) Register(token Token, p Provider) {
	c.mu.Lock()
	c.providers[token] = p
	c.mu.Unlock()

	c.log.Debug().
		Str("token", tokenString(token)).
		Str("provider", providerKind(p)).
		Msg("provider registered")
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns the value for token.
//
// Registered providers win. An unregistered *Class token is built and cached
// as a singleton. Any other unregistered token fails with ErrNoProvider.
// A failed resolution leaves the container unchanged, including singletons
// built for dependencies before the failure.
func (c *Container) Resolve(token Token) (any, error) {
	if err := c.enter(token); err != nil {
		return nil, err
	}
	ok := false
	defer func() { c.leave(ok) }()

	v, err := c.resolve(token)
	ok = err == nil
	return v, err
}

func (c *Container) resolve(token Token) (any, error) {
	c.mu.RLock()
	p, ok := c.providers[token]
	c.mu.RUnlock()

	if ok && p != nil {
		return c.resolveProvider(token, p)
	}

	if class, isClass := token.(*Class); isClass && class != nil {
		return c.resolveClass(token, class, Singleton)
	}

	err := noProviderError(token)
	c.log.Debug().Err(err).Str("token", tokenString(token)).Msg("resolve failed")
	return nil, err
}

func (c *Container) resolveProvider(token Token, p Provider) (any, error) {
	switch p := p.(type) {
	case ValueProvider:
		c.log.Debug().Str("token", tokenString(token)).Str("provider", "value").Msg("resolved")
		return p.Value, nil

	case FactoryProvider:
		if p.Factory == nil {
			return nil, invalidProviderError(token, "factory is nil")
		}
		v, err := p.Factory(c)
		if err != nil {
			return nil, err
		}
		c.log.Debug().Str("token", tokenString(token)).Str("provider", "factory").Msg("resolved")
		return v, nil

	case ClassProvider:
		if p.Class == nil {
			return nil, invalidProviderError(token, "class is nil")
		}
		return c.resolveClass(token, p.Class, p.Scope)

	default:
		return nil, invalidProviderError(token, fmt.Sprintf("unsupported provider %T", p))
	}
}

// resolveClass serves a class under token, honouring scope.
func (c *Container) resolveClass(token Token, class *Class, scope Scope) (any, error) {
	if scope == Singleton {
		c.mu.RLock()
		inst, ok := c.instances[token]
		if !ok {
			inst, ok = c.pending[token]
		}
		c.mu.RUnlock()
		if ok {
			c.log.Debug().Str("token", tokenString(token)).Bool("cached", true).Msg("resolved")
			return inst, nil
		}
	}

	inst, err := c.construct(class)
	if err != nil {
		return nil, err
	}

	if scope == Singleton {
		c.mu.Lock()
		c.pending[token] = inst
		c.mu.Unlock()
	}

	c.log.Debug().
		Str("token", tokenString(token)).
		Str("class", class.Name()).
		Stringer("scope", scope).
		Msg("resolved")
	return inst, nil
}

// construct resolves the class's dependencies left to right on this
// container, then calls its constructor with them.
func (c *Container) construct(class *Class) (any, error) {
	deps := c.metadata.Lookup(class)
	args := make([]any, 0, len(deps))
	for _, dep := range deps {
		v, err := c.Resolve(dep)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return class.construct(args)
}

// enter pushes token on the build stack, failing on cycles and depth.
func (c *Container) enter(token Token) error {
	if i := slices.Index(c.buildStack, token); i >= 0 {
		path := append(slices.Clone(c.buildStack[i:]), token)
		return circularError(path)
	}
	if c.maxDepth > 0 && len(c.buildStack) >= c.maxDepth {
		path := append(slices.Clone(c.buildStack), token)
		return maxDepthError(path, c.maxDepth)
	}
	c.buildStack = append(c.buildStack, token)
	return nil
}

// leave pops the build stack. When the outermost resolution ends, pending
// singletons are kept if it succeeded and discarded otherwise.
func (c *Container) leave(ok bool) {
	c.buildStack = c.buildStack[:len(c.buildStack)-1]
	if len(c.buildStack) > 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		for token, inst := range c.pending {
			c.instances[token] = inst
		}
	} else if len(c.pending) > 0 {
		c.log.Debug().Int("discarded", len(c.pending)).Msg("resolve failed, singletons dropped")
	}
	clear(c.pending)
}

// ── Reset ─────────────────────────────────────────────────────────────────────

// Clear drops every provider and every cached singleton. Class metadata is
// not touched. Clear is idempotent.
func (c *Container) Clear() {
	c.mu.Lock()
	c.providers = make(map[Token]Provider)
	c.instances = make(map[Token]any)
	clear(c.pending)
	c.mu.Unlock()

	c.log.Debug().Msg("container cleared")
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Has reports whether a provider is registered for token.
func (c *Container) Has(token Token) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.providers[token]
	return ok && p != nil
}

// Resolved reports whether a singleton instance is cached for token.
func (c *Container) Resolved(token Token) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[token]
	return ok
}

// Tokens returns the registered tokens sorted by their string form.
func (c *Container) Tokens() []Token {
	c.mu.RLock()
	tokens := lo.Keys(c.providers)
	c.mu.RUnlock()

	slices.SortFunc(tokens, func(a, b Token) int {
		return strings.Compare(tokenString(a), tokenString(b))
	})
	return tokens
}

// Metadata returns the store the container reads class dependencies from.
func (c *Container) Metadata() *Metadata { return c.metadata }

func providerKind(p Provider) string {
	if p == nil {
		return "<nil>"
	}
	return p.kind()
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve resolves token and asserts the result to T.
//
//	cfg, err := container.Resolve[*Config](c, container.Name("cfg"))
func Resolve[T any](c *Container, token Token) (T, error) {
	var zero T
	v, err := c.Resolve(token)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, &Error{
			Kind:  ErrWrongType,
			Token: token,
			Msg:   fmt.Sprintf("token %s resolved to %T, want %s", tokenString(token), v, reflect.TypeFor[T]()),
		}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error. Use it during startup
// wiring where a missing dependency is fatal.
func MustResolve[T any](c *Container, token Token) T {
	v, err := Resolve[T](c, token)
	if err != nil {
		panic(err)
	}
	return v
}
