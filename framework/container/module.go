package container

// ── Module interface ──────────────────────────────────────────────────────────

// Module groups related registrations.
//
//	type StorageModule struct{ DSN string }
//
//	func (m *StorageModule) Register(c *container.Container) error {
//	    c.Register(container.Name("dsn"), container.UseValue(m.DSN))
//	    c.Register(RepoClass, container.UseClass(RepoClass, container.Singleton))
//	    return nil
//	}
type Module interface {
	// Register adds the module's providers to c. It may resolve tokens
	// registered by earlier modules.
	Register(c *Container) error
}

// ── ModuleRegistry ────────────────────────────────────────────────────────────

// ModuleRegistry loads modules into a container, remembering them so the
// container can be rebuilt after Clear.
type ModuleRegistry struct {
	c          *Container
	modules    []Module
	registered map[Module]bool
}

// NewModuleRegistry creates a registry bound to c.
func NewModuleRegistry(c *Container) *ModuleRegistry {
	return &ModuleRegistry{
		c:          c,
		registered: make(map[Module]bool),
	}
}

// Register calls m.Register on the container. Registering the same module
// value twice is a no-op. m must be comparable, typically a pointer.
func (r *ModuleRegistry) Register(m Module) error {
	if r.registered[m] {
		return nil
	}
	if err := m.Register(r.c); err != nil {
		return err
	}
	r.registered[m] = true
	r.modules = append(r.modules, m)
	return nil
}

// Modules returns the loaded modules in registration order.
func (r *ModuleRegistry) Modules() []Module { return r.modules }

// Container returns the container the registry loads into.
func (r *ModuleRegistry) Container() *Container { return r.c }

// Reset clears the container and registers every loaded module again, in
// order. Singletons are rebuilt lazily on the next resolution.
func (r *ModuleRegistry) Reset() error {
	r.c.Clear()
	for _, m := range r.modules {
		if err := m.Register(r.c); err != nil {
			return err
		}
	}
	return nil
}
