package lollipop

import (
	"fmt"
	"sync"
)

// TypeRegistry is an append-only, name-keyed set of Types supporting
// forward references (§4.9): Ref returns a proxy Type immediately, even
// before the named Type is Register-ed, so mutually-referencing schemas
// (Person <-> Book) can be built without a two-pass construction dance.
// Modeled on the teacher's schema.Registry (RWMutex-guarded map,
// append-only Register, O(1) lookup).
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]Type)}
}

// Register binds name to t. Registering the same name twice panics: the
// registry is append-only by design, matching the teacher's Register
// (which likewise rejects redefinition rather than silently overwriting).
func (r *TypeRegistry) Register(name string, t Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; exists {
		panic(fmt.Sprintf("lollipop: type %q already registered", name))
	}
	r.types[name] = t
}

// Lookup returns the Type registered under name, if any.
func (r *TypeRegistry) Lookup(name string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// All returns every registered name, in no particular order (callers
// that need determinism should sort it themselves).
func (r *TypeRegistry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}

// Ref returns a lazily-resolving proxy Type for name (§4.9): the proxy
// can be embedded into another Object/List/etc. right away, and resolves
// name against the registry only when it is actually Loaded, Dumped, or
// Validated (each time, without caching) — by which point the real
// registration has normally happened.
func (r *TypeRegistry) Ref(name string) Type {
	return &typeRef{registry: r, name: name}
}

// typeRef is the proxy Type Ref returns. It resolves name against the
// registry on every call rather than caching the result, since a ref may
// legitimately be constructed and used before the target is registered
// (forward references), and caching a resolution failure would make a
// later, now-valid, Load spuriously fail forever.
type typeRef struct {
	registry *TypeRegistry
	name     string
}

func (p *typeRef) resolve() Type {
	t, ok := p.registry.Lookup(p.name)
	if !ok {
		panic(fmt.Sprintf("lollipop: unresolved type reference %q", p.name))
	}
	return t
}

// Name implements Type.
func (p *typeRef) Name() string { return p.name }

// Description implements Type.
func (p *typeRef) Description() string { return "a reference to " + p.name }

// Validators implements Type; the referenced type's own validators run
// through its own Load, so a ref contributes none of its own.
func (p *typeRef) Validators() []Validator { return nil }

// Load implements Type.
func (p *typeRef) Load(v Value, ctx any) (any, *ValidationError) {
	return p.resolve().Load(v, ctx)
}

// Dump implements Type.
func (p *typeRef) Dump(internal any, ctx any) (Value, *ValidationError) {
	return p.resolve().Dump(internal, ctx)
}

// Validate implements Type.
func (p *typeRef) Validate(v Value, ctx any) *ValidationError {
	return p.resolve().Validate(v, ctx)
}

func (p *typeRef) sealed(sealer) {}
