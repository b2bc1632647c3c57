// Package ontology provides the read-only Ontology Registry view: a
// fixed body of global clause text supplied to every session's pipeline
// alongside its own clauses.
package ontology

import "strings"

// Registry supplies global clause text to the pipeline. It is
// read-only from the Coordinator's perspective; nothing in a request
// path mutates it.
type Registry interface {
	// Snapshot returns every globally-registered ontology's clauses,
	// concatenated in registration order.
	Snapshot() []string
}

// StaticRegistry holds a fixed set of named ontologies, each a list of
// clause strings, assembled once at startup.
type StaticRegistry struct {
	names     []string
	ontologies map[string][]string
}

// NewStaticRegistry builds an empty StaticRegistry.
func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{ontologies: make(map[string][]string)}
}

// Add registers an ontology's clauses under name, appending to
// registration order. Calling Add twice with the same name replaces
// the prior clause set in place without reordering.
func (r *StaticRegistry) Add(name string, clauses []string) {
	if _, exists := r.ontologies[name]; !exists {
		r.names = append(r.names, name)
	}
	r.ontologies[name] = clauses
}

func (r *StaticRegistry) Snapshot() []string {
	var out []string
	for _, name := range r.names {
		out = append(out, r.ontologies[name]...)
	}
	return out
}

// Text joins a Registry's snapshot into a single newline-separated
// string, the shape the Coordinator assembles into the reasoner KB.
func Text(r Registry) string {
	return strings.Join(r.Snapshot(), "\n")
}
