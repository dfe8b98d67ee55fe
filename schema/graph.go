package schema

// Graph is a finalized type graph: a set of named record definitions plus a
// distinguished root node. Once the deduplicator returns it, the graph is
// read-only; multiple renderers may consume it concurrently.
//
// Invariants: the graph contains no inline recursion (cycles go through
// References), every Reference resolves to a definition, and record field
// order is preserved.
type Graph struct {
	// RootName is the display name assigned to the root.
	RootName string
	// Root is the distinguished root node. For object-shaped input it is a
	// Reference to the root record; array, union, or scalar roots are legal
	// and renderers emit them as a named alias.
	Root Type

	defs   []*Record
	byName map[string]*Record
}

// NewGraph creates an empty graph with the given root name.
func NewGraph(rootName string) *Graph {
	return &Graph{
		RootName: rootName,
		byName:   make(map[string]*Record),
	}
}

// Add registers a record definition. Definition order is first-seen and is
// preserved by Records.
func (g *Graph) Add(r *Record) {
	if _, exists := g.byName[r.Name]; exists {
		return
	}
	g.defs = append(g.defs, r)
	g.byName[r.Name] = r
}

// Remove drops a record definition by name. Used only by the deduplicator
// while the graph is being finalized.
func (g *Graph) Remove(name string) {
	if _, ok := g.byName[name]; !ok {
		return
	}
	delete(g.byName, name)
	for i, r := range g.defs {
		if r.Name == name {
			g.defs = append(g.defs[:i], g.defs[i+1:]...)
			break
		}
	}
}

// Lookup resolves a record definition by name.
func (g *Graph) Lookup(name string) (*Record, bool) {
	r, ok := g.byName[name]
	return r, ok
}

// Records returns the record definitions in first-seen order.
func (g *Graph) Records() []*Record {
	return g.defs
}

// RootRecord returns the root record definition if the root is a Reference.
func (g *Graph) RootRecord() (*Record, bool) {
	ref, ok := g.Root.(*Reference)
	if !ok {
		return nil, false
	}
	return g.Lookup(ref.Name)
}
