package xmlobj

import (
	"arvoren.net/strongxml/internal/ordered"
	"arvoren.net/strongxml/model"
)

// A Factory constructs one empty object for an element name.
type Factory func() SchemaElement

// A Registry maps element names to object factories. Read resolves
// document root elements against a registry, and instances whose
// collections hold wildcards use it to construct arbitrary children.
// Names match exactly; there is no pattern or suffix matching.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds an element name to a factory. Binding a name twice
// fails with *model.DuplicateError.
func (r *Registry) Register(name string, fn Factory) error {
	if _, ok := r.factories[name]; ok {
		return &model.DuplicateError{Name: name}
	}
	r.factories[name] = fn
	return nil
}

// New constructs an object for the element called name. Names with no
// factory fail with *UnknownChildError.
func (r *Registry) New(name string) (SchemaElement, error) {
	fn, ok := r.factories[name]
	if !ok {
		return nil, &UnknownChildError{Name: name}
	}
	return fn(), nil
}

// Names returns the registered element names, sorted.
func (r *Registry) Names() []string {
	return ordered.Keys(r.factories)
}

// NewModelRegistry builds a registry over every class and alias of a
// compiled model. Its objects are *Instance values bound to the registry
// itself, so wildcard collections can construct anything the model
// knows. The model guarantees unique names, so no Register call here
// can fail.
func NewModelRegistry(m *model.Model) *Registry {
	r := NewRegistry()
	for _, def := range m.Defs() {
		if cls, ok := def.(*model.Class); ok {
			r.factories[cls.Name] = instanceFactory(cls, cls.Name, r)
		}
	}
	for _, name := range m.Aliases() {
		r.factories[name] = instanceFactory(m.AliasTarget(name), name, r)
	}
	return r
}

func instanceFactory(cls *model.Class, name string, r *Registry) Factory {
	return func() SchemaElement { return NewInstance(cls, name, r) }
}
