package persona

// Registry exposes persona retrieval for the chat core and HTTP
// handlers. Lookups never fail: unknown ids resolve to the default
// persona, so corrupted references degrade gracefully.
type Registry interface {
	List() []Persona
	Get(id string) Persona
}

// StaticRegistry implements Registry over a fixed in-memory catalog.
type StaticRegistry struct {
	items []Persona
}

// NewStaticRegistry returns a StaticRegistry preloaded with the
// supplied personas. The first persona acts as the default; the list
// must not be empty.
func NewStaticRegistry(items []Persona) *StaticRegistry {
	if len(items) == 0 {
		panic("persona: registry requires at least one persona")
	}
	return &StaticRegistry{items: append([]Persona(nil), items...)}
}

// List returns the catalog in seed order.
func (r *StaticRegistry) List() []Persona {
	return append([]Persona(nil), r.items...)
}

// Get looks up a persona by identifier, falling back to the default
// persona when the id is empty or unknown.
func (r *StaticRegistry) Get(id string) Persona {
	for _, item := range r.items {
		if item.ID == id {
			return item
		}
	}
	return r.items[0]
}
