package material

import "sort"

// Registry maps material names to material values
type Registry struct {
	materials map[string]Material
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{materials: make(map[string]Material)}
}

// Add registers or replaces a material
func (r *Registry) Add(name string, m Material) {
	r.materials[name] = m
}

// Get looks up a material by name
func (r *Registry) Get(name string) (Material, bool) {
	m, ok := r.materials[name]
	return m, ok
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.materials))
	for name := range r.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered materials
func (r *Registry) Len() int {
	return len(r.materials)
}
