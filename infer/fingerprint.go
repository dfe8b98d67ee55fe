package infer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/typeforge-dev/typeforge/schema"
)

// fingerprint returns a canonical string describing a type's structural
// shape, ignoring generated record names. Record fields and union variants
// are sorted so the fingerprint is insensitive to observation order.
// References resolve through the graph; a reference back into a record
// currently on the resolution stack collapses to a relative-depth marker so
// recursive shapes produce finite, position-stable fingerprints.
func fingerprint(t schema.Type, g *schema.Graph, stack []string) string {
	switch tt := t.(type) {
	case nil:
		return "any"
	case *schema.Primitive:
		return tt.Prim.String()
	case *schema.Any:
		return "any"
	case *schema.Array:
		return "array(" + fingerprint(tt.Elem, g, stack) + ")"
	case *schema.Optional:
		return "optional(" + fingerprint(tt.Inner, g, stack) + ")"
	case *schema.Map:
		return "map(" + fingerprint(tt.Value, g, stack) + ")"
	case *schema.Union:
		parts := make([]string, len(tt.Variants))
		for i, v := range tt.Variants {
			parts[i] = fingerprint(v, g, stack)
		}
		sort.Strings(parts)
		return "union(" + strings.Join(parts, "|") + ")"
	case *schema.Record:
		return recordFingerprint(tt, g, append(stack, tt.Name))
	case *schema.Reference:
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] == tt.Name {
				return fmt.Sprintf("rec@%d", len(stack)-i)
			}
		}
		if g != nil {
			if def, ok := g.Lookup(tt.Name); ok {
				return recordFingerprint(def, g, append(stack, def.Name))
			}
		}
		return "ref(" + tt.Name + ")"
	default:
		return "unknown"
	}
}

func recordFingerprint(r *schema.Record, g *schema.Graph, stack []string) string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.Name + ":" + fingerprint(f.Type, g, stack)
	}
	sort.Strings(parts)
	return "record(" + strings.Join(parts, ",") + ")"
}
