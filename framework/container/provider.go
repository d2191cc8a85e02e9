package container

// Scope controls instance reuse for class providers.
type Scope int

const (
	// Transient builds a new instance on every resolution. It is the default.
	Transient Scope = iota

	// Singleton builds once per container and reuses the instance until Clear.
	Singleton
)

func (s Scope) String() string {
	switch s {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// Factory builds a value from the container. It runs on every resolution;
// it may resolve other tokens from c.
type Factory func(c *Container) (any, error)

// Provider describes how to produce a value for a token. It is one of
// ValueProvider, FactoryProvider or ClassProvider.
type Provider interface {
	kind() string
}

// ValueProvider returns Value verbatim, including a nil Value.
type ValueProvider struct {
	Value any
}

// FactoryProvider calls Factory on every resolution. Nothing is cached.
type FactoryProvider struct {
	Factory Factory
}

// ClassProvider constructs Class through the dependency graph, caching the
// instance when Scope is Singleton.
type ClassProvider struct {
	Class *Class
	Scope Scope
}

func (ValueProvider) kind() string   { return "value" }
func (FactoryProvider) kind() string { return "factory" }
func (ClassProvider) kind() string   { return "class" }

// UseValue returns a provider for a precomputed value.
//
//	c.Register(container.Name("cfg"), container.UseValue(&Config{APIKey: "X"}))
func UseValue(v any) Provider { return ValueProvider{Value: v} }

// UseFactory returns a provider that calls fn on every resolution.
//
//	c.Register(apiToken, container.UseFactory(func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*Config](c, container.Name("cfg"))
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewAPIClient(cfg), nil
//	}))
func UseFactory(fn Factory) Provider { return FactoryProvider{Factory: fn} }

// UseClass returns a class provider. scope is optional and defaults to
// Transient; only the first value is used.
//
//	c.Register(LoggerClass, container.UseClass(LoggerClass, container.Singleton))
func UseClass(class *Class, scope ...Scope) Provider {
	p := ClassProvider{Class: class}
	if len(scope) > 0 {
		p.Scope = scope[0]
	}
	return p
}
