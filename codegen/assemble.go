package codegen

import "github.com/typeforge-dev/typeforge/schema"

// Order returns the graph's record definitions in emission order:
// dependencies before dependents, via a depth-first post-order walk starting
// at the root. The walk follows field types in declaration order, so the
// result is deterministic for a given graph. Cycles are broken by skipping
// records already on the walk stack; targets that need forward declarations
// detect those with CyclicRecords.
func Order(g *schema.Graph) []*schema.Record {
	out := make([]*schema.Record, 0, len(g.Records()))
	done := make(map[string]bool)
	visiting := make(map[string]bool)

	var visit func(name string)
	visit = func(name string) {
		if done[name] || visiting[name] {
			return
		}
		def, ok := g.Lookup(name)
		if !ok {
			return
		}
		visiting[name] = true
		for _, f := range def.Fields {
			walkReferences(f.Type, visit)
		}
		visiting[name] = false
		done[name] = true
		out = append(out, def)
	}

	walkReferences(g.Root, visit)
	// Unreachable definitions should not exist in a finalized graph, but a
	// renderer must never silently drop a declaration.
	for _, rec := range g.Records() {
		visit(rec.Name)
	}
	return out
}

// CyclicRecords reports which record names participate in a reference cycle.
// Renderers use this to insert indirection (Box, pointers, z.lazy) where the
// target language needs it.
func CyclicRecords(g *schema.Graph) map[string]bool {
	cyclic := make(map[string]bool)
	for _, rec := range g.Records() {
		if reaches(g, rec.Name, rec.Name, make(map[string]bool)) {
			cyclic[rec.Name] = true
		}
	}
	return cyclic
}

// reaches reports whether following references from the record named from
// arrives back at target.
func reaches(g *schema.Graph, from, target string, seen map[string]bool) bool {
	def, ok := g.Lookup(from)
	if !ok {
		return false
	}
	found := false
	for _, f := range def.Fields {
		walkReferences(f.Type, func(name string) {
			if found {
				return
			}
			if name == target {
				found = true
				return
			}
			if !seen[name] {
				seen[name] = true
				if reaches(g, name, target, seen) {
					found = true
				}
			}
		})
		if found {
			return true
		}
	}
	return false
}

// walkReferences invokes fn for every Reference nested anywhere inside t.
func walkReferences(t schema.Type, fn func(name string)) {
	switch v := t.(type) {
	case *schema.Reference:
		fn(v.Name)
	case *schema.Array:
		walkReferences(v.Elem, fn)
	case *schema.Optional:
		walkReferences(v.Inner, fn)
	case *schema.Map:
		walkReferences(v.Value, fn)
	case *schema.Union:
		for _, vt := range v.Variants {
			walkReferences(vt, fn)
		}
	case *schema.Record:
		for _, f := range v.Fields {
			walkReferences(f.Type, fn)
		}
	}
}
