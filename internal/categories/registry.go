// internal/categories/registry.go
package categories

import "salamatbot/internal/models"

// Registry maps each intent to its module instance. It is populated once at
// process start via explicit Register calls and read-only thereafter; no
// locking is needed because the category set is closed and registration
// happens before the server accepts traffic.
type Registry struct {
	modules map[models.Intent]Module
}

func NewRegistry() *Registry {
	return &Registry{modules: make(map[models.Intent]Module)}
}

// Register binds a module to its intent. Re-registering an intent replaces
// the previous module.
func (r *Registry) Register(m Module) {
	r.modules[m.Intent()] = m
}

// Get returns the module for an intent, or nil when none is registered.
func (r *Registry) Get(intent models.Intent) Module {
	return r.modules[intent]
}

// IsRegistered reports whether a module exists for the intent.
func (r *Registry) IsRegistered(intent models.Intent) bool {
	_, ok := r.modules[intent]
	return ok
}

// All returns the registered modules keyed by intent. The map is a copy;
// mutating it does not affect the registry.
func (r *Registry) All() map[models.Intent]Module {
	out := make(map[models.Intent]Module, len(r.modules))
	for k, v := range r.modules {
		out[k] = v
	}
	return out
}
