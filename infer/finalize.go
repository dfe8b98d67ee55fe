package infer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/typeforge-dev/typeforge/schema"

	ustrings "github.com/typeforge-dev/typeforge/internal/util/strings"
)

// maxNameAttempts bounds numeric disambiguation before giving up.
const maxNameAttempts = 10000

// NamingCollisionError is returned when numeric disambiguation is exhausted
// for a generated type name. With a 10000-suffix budget this is practically
// unreachable.
type NamingCollisionError struct {
	Base string
}

func (e *NamingCollisionError) Error() string {
	return fmt.Sprintf("infer: could not find a free name for %q after %d attempts", e.Base, maxNameAttempts)
}

// nameContext tracks used type names within a single finalize run, so
// repeated invocations in one process stay deterministic and independent.
type nameContext struct {
	used     map[string]bool
	counters map[string]int
}

func newNameContext() *nameContext {
	return &nameContext{
		used:     make(map[string]bool),
		counters: make(map[string]int),
	}
}

// claim turns a context hint into a collision-free PascalCase identifier.
// Collisions get numeric suffixes in first-seen order.
func (c *nameContext) claim(base string) (string, error) {
	name := ustrings.SafeIdentifier(ustrings.ToPascalCase(base))
	if name == "" || name == "_" {
		name = "Type"
	}

	if !c.used[name] {
		c.used[name] = true
		return name, nil
	}

	for {
		c.counters[name]++
		n := c.counters[name]
		if n > maxNameAttempts {
			return "", &NamingCollisionError{Base: name}
		}
		candidate := fmt.Sprintf("%s%d", name, n)
		if !c.used[candidate] {
			c.used[candidate] = true
			return candidate, nil
		}
	}
}

// Finalize walks the unified raw type bottom-up and produces the canonical
// graph: every anonymous record becomes a named definition referenced from
// its use sites, structurally identical records collapse to a single
// definition, and recursive shapes are closed with References instead of
// being inlined infinitely.
func Finalize(root schema.Type, rootName string) (*schema.Graph, error) {
	if rootName == "" {
		rootName = "Root"
	}

	f := &finalizer{names: newNameContext()}

	display, err := f.names.claim(rootName)
	if err != nil {
		return nil, err
	}
	f.graph = schema.NewGraph(display)

	converted, err := f.convertRoot(root, display)
	if err != nil {
		return nil, err
	}
	f.graph.Root = converted

	f.dedup()
	return f.graph, nil
}

type finalizer struct {
	graph *schema.Graph
	names *nameContext
	stack []*ancestorFrame
}

// ancestorFrame is one record on the current conversion path. raw is the
// pre-finalize record (its full field set is known up front), rec the
// definition under construction.
type ancestorFrame struct {
	key string
	raw *schema.Record
	rec *schema.Record
}

// convertRoot places the pre-claimed root name on the root record, or keeps
// it for the alias renderers emit when the root is not a record.
func (f *finalizer) convertRoot(t schema.Type, name string) (schema.Type, error) {
	if rec, ok := t.(*schema.Record); ok {
		return f.defineRecord(rec, name)
	}
	if arr, ok := t.(*schema.Array); ok {
		elem, err := f.convert(arr.Elem, "Item")
		if err != nil {
			return nil, err
		}
		return schema.NewArray(elem), nil
	}
	return f.convert(t, name)
}

func (f *finalizer) convert(t schema.Type, hint string) (schema.Type, error) {
	switch tt := t.(type) {
	case nil:
		return &schema.Any{}, nil
	case *schema.Primitive, *schema.Any, *schema.Reference:
		return t, nil
	case *schema.Optional:
		inner, err := f.convert(tt.Inner, hint)
		if err != nil {
			return nil, err
		}
		return schema.NewOptional(inner), nil
	case *schema.Array:
		elem, err := f.convert(tt.Elem, elementHint(hint))
		if err != nil {
			return nil, err
		}
		return schema.NewArray(elem), nil
	case *schema.Map:
		value, err := f.convert(tt.Value, elementHint(hint))
		if err != nil {
			return nil, err
		}
		return schema.NewMap(value), nil
	case *schema.Union:
		variants := make([]schema.Type, len(tt.Variants))
		for i, v := range tt.Variants {
			cv, err := f.convert(v, hint)
			if err != nil {
				return nil, err
			}
			variants[i] = cv
		}
		return schema.NewUnion(variants...), nil
	case *schema.Record:
		return f.convertRecord(tt, hint)
	default:
		return t, nil
	}
}

func (f *finalizer) convertRecord(rec *schema.Record, hint string) (schema.Type, error) {
	key := shapeKey(rec)

	// A record whose field set matches an ancestor on the current path and
	// whose field types are shape-compatible is the same logical entity
	// observed one level deeper. Fold it into the ancestor and close the
	// cycle with a Reference; this is what guarantees termination on
	// recursive structures.
	for i := len(f.stack) - 1; i >= 0; i-- {
		fr := f.stack[i]
		if fr.key == key && compatibleRecords(fr.raw, rec) {
			if err := f.mergeIntoAncestor(fr, rec); err != nil {
				return nil, err
			}
			return schema.NewReference(fr.rec.Name), nil
		}
	}

	name, err := f.names.claim(hint)
	if err != nil {
		return nil, err
	}
	return f.defineRecord(rec, name)
}

// defineRecord registers a named definition for rec and converts its fields
// with the definition on the ancestor stack, so descendants can fold back
// into it.
func (f *finalizer) defineRecord(rec *schema.Record, name string) (schema.Type, error) {
	def := &schema.Record{
		Name:   name,
		Doc:    fmt.Sprintf("Auto-generated %s type", name),
		Fields: make([]schema.Field, len(rec.Fields)),
	}
	for i, fl := range rec.Fields {
		def.Fields[i].Name = fl.Name
	}
	f.graph.Add(def)

	f.stack = append(f.stack, &ancestorFrame{key: shapeKey(rec), raw: rec, rec: def})
	defer func() { f.stack = f.stack[:len(f.stack)-1] }()

	for i, fl := range rec.Fields {
		ct, err := f.convert(fl.Type, fl.Name)
		if err != nil {
			return nil, err
		}
		// A descendant merge may have filled this field already; unify
		// rather than overwrite.
		if existing := def.Fields[i].Type; existing != nil {
			def.Fields[i].Type = Unify(existing, ct)
		} else {
			def.Fields[i].Type = ct
		}
	}

	return schema.NewReference(name), nil
}

// mergeIntoAncestor folds a deeper observation of a record into the
// ancestor's definition. Field sets match by construction (same shape key),
// so merging is a per-field unification.
func (f *finalizer) mergeIntoAncestor(fr *ancestorFrame, rec *schema.Record) error {
	for _, fl := range rec.Fields {
		ct, err := f.convert(fl.Type, fl.Name)
		if err != nil {
			return err
		}
		for i := range fr.rec.Fields {
			if fr.rec.Fields[i].Name != fl.Name {
				continue
			}
			if existing := fr.rec.Fields[i].Type; existing != nil {
				fr.rec.Fields[i].Type = Unify(existing, ct)
			} else {
				fr.rec.Fields[i].Type = ct
			}
			break
		}
	}
	return nil
}

// shapeKey is the sorted field-name set of a record.
func shapeKey(rec *schema.Record) string {
	names := rec.FieldNames()
	sort.Strings(names)
	return strings.Join(names, "\x1f")
}

// compatibleRecords reports whether two records with the same field-name set
// also agree on field shapes closely enough to be the same logical entity.
func compatibleRecords(a, b *schema.Record) bool {
	for _, fl := range a.Fields {
		bt, ok := b.FieldType(fl.Name)
		if !ok || !compatibleShapes(fl.Type, bt) {
			return false
		}
	}
	return true
}

// compatibleShapes is a loose structural compatibility check used only by
// recursion folding. Any matches everything, null and Optional are
// transparent, and int matches float.
func compatibleShapes(a, b schema.Type) bool {
	if a == nil || b == nil {
		return true
	}
	if a.Kind() == schema.KindAny || b.Kind() == schema.KindAny {
		return true
	}
	if isNull(a) || isNull(b) {
		return true
	}
	if aOpt, ok := a.(*schema.Optional); ok {
		return compatibleShapes(aOpt.Inner, b)
	}
	if bOpt, ok := b.(*schema.Optional); ok {
		return compatibleShapes(a, bOpt.Inner)
	}

	switch at := a.(type) {
	case *schema.Primitive:
		bp, ok := b.(*schema.Primitive)
		if !ok {
			return false
		}
		if at.Prim == bp.Prim {
			return true
		}
		isNumeric := func(p schema.PrimitiveKind) bool {
			return p == schema.PrimInt || p == schema.PrimFloat
		}
		return isNumeric(at.Prim) && isNumeric(bp.Prim)
	case *schema.Array:
		ba, ok := b.(*schema.Array)
		return ok && compatibleShapes(at.Elem, ba.Elem)
	case *schema.Map:
		bm, ok := b.(*schema.Map)
		return ok && compatibleShapes(at.Value, bm.Value)
	case *schema.Record:
		br, ok := b.(*schema.Record)
		if !ok {
			return false
		}
		if shapeKey(at) != shapeKey(br) {
			return false
		}
		return compatibleRecords(at, br)
	case *schema.Reference:
		// References only appear on the converted side; the raw side has
		// none, so a reference is compatible with any record-shaped node.
		return true
	case *schema.Union:
		bu, ok := b.(*schema.Union)
		return ok && len(at.Variants) == len(bu.Variants)
	default:
		return false
	}
}

// elementHint derives the name hint for array and map element types from the
// enclosing field name: plural field names are singularized (users -> User),
// anything else is reused as-is.
func elementHint(hint string) string {
	return ustrings.Singularize(hint)
}

// dedup collapses structurally identical record definitions into the
// first-seen one and rewrites all references. Fingerprints resolve through
// the graph, so definitions that only differ by referencing distinct-but-
// identical records still collapse in a single pass.
func (f *finalizer) dedup() {
	canonical := make(map[string]string)
	rename := make(map[string]string)

	for _, rec := range f.graph.Records() {
		fp := fingerprint(rec, f.graph, nil)
		if first, ok := canonical[fp]; ok {
			rename[rec.Name] = first
		} else {
			canonical[fp] = rec.Name
		}
	}

	for _, rec := range f.graph.Records() {
		if _, dropped := rename[rec.Name]; dropped {
			continue
		}
		for i := range rec.Fields {
			rec.Fields[i].Type = rewriteType(rec.Fields[i].Type, rename)
		}
	}
	f.graph.Root = rewriteType(f.graph.Root, rename)

	for old := range rename {
		f.graph.Remove(old)
	}
}

// rewriteType applies a reference rename map, deduplicating union variants
// that become identical after the rename.
func rewriteType(t schema.Type, rename map[string]string) schema.Type {
	switch tt := t.(type) {
	case *schema.Reference:
		if canonical, ok := rename[tt.Name]; ok {
			return schema.NewReference(canonical)
		}
		return tt
	case *schema.Optional:
		return schema.NewOptional(rewriteType(tt.Inner, rename))
	case *schema.Array:
		return schema.NewArray(rewriteType(tt.Elem, rename))
	case *schema.Map:
		return schema.NewMap(rewriteType(tt.Value, rename))
	case *schema.Union:
		var variants []schema.Type
		for _, v := range tt.Variants {
			rv := rewriteType(v, rename)
			duplicate := false
			for _, existing := range variants {
				if existing.Equals(rv) {
					duplicate = true
					break
				}
			}
			if !duplicate {
				variants = append(variants, rv)
			}
		}
		if len(variants) == 1 {
			return variants[0]
		}
		return schema.NewUnion(variants...)
	default:
		return t
	}
}
