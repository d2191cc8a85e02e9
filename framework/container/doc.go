// Package container provides a small dependency-injection registry.
//
// # Overview
//
// A Container maps tokens to providers. Resolving a token produces a value;
// for classes it first resolves every dependency the class declared, in
// order, and passes them to the class constructor.
//
// # Tokens
//
//	container.Name("cfg")          // string token, compared by value
//	container.NewSymbol("Api")     // unique token, compared by identity
//	LoggerClass                    // *container.Class, compared by identity
//
// # Classes and dependency metadata
//
// A class is a named constructor. Its dependencies are declared once, next
// to the declaration, and stored in a Metadata store:
//
//	var LoggerClass = container.MustClass("Logger", NewLogger)
//
//	var ServiceClass = container.MustInjectable(
//	    container.MustClass("Service", NewService), // func NewService(l *Logger) *Service
//	    LoggerClass,
//	)
//
// Injectable records into DefaultMetadata. Tests that want isolation can
// build their own store with NewMetadata and pass it with WithMetadata.
//
// # Providers
//
//	// Value: returned as is
//	c.Register(container.Name("cfg"), container.UseValue(&Config{APIKey: "X"}))
//
//	// Factory: called on every Resolve
//	c.Register(apiToken, container.UseFactory(func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*Config](c, container.Name("cfg"))
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewAPIClient(cfg), nil
//	}))
//
//	// Class: Transient by default, or Singleton
//	c.Register(LoggerClass, container.UseClass(LoggerClass, container.Singleton))
//	c.Register(ServiceClass, container.UseClass(ServiceClass))
//
// # Resolving
//
//	raw, err := c.Resolve(ServiceClass)
//	svc, err := container.Resolve[*Service](c, ServiceClass)
//
// A class token that was never registered still resolves, as a singleton.
// Any other unregistered token fails with ErrNoProvider. A dependency cycle
// fails with ErrCircularDependency instead of recursing forever.
//
// # Reset
//
//	c.Clear() // drops providers and singletons, keeps class metadata
//
// # Modules
//
//	registry := container.NewModuleRegistry(c)
//	if err := registry.Register(&StorageModule{DSN: dsn}); err != nil { ... }
//	if err := registry.Reset(); err != nil { ... } // Clear + re-register
package container
