package schema

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a Type node.
type Kind int

const (
	KindPrimitive Kind = iota
	KindAny
	KindArray
	KindOptional
	KindMap
	KindUnion
	KindRecord
	KindReference
)

// PrimitiveKind enumerates the scalar types the engine can observe.
type PrimitiveKind int

const (
	PrimNull PrimitiveKind = iota
	PrimBool
	PrimInt
	PrimFloat
	PrimString
)

func (p PrimitiveKind) String() string {
	switch p {
	case PrimNull:
		return "null"
	case PrimBool:
		return "bool"
	case PrimInt:
		return "int"
	case PrimFloat:
		return "float"
	case PrimString:
		return "string"
	default:
		return fmt.Sprintf("primitive(%d)", int(p))
	}
}

// Type is a node in the type graph.
//
// Equality is structural: union variant order and record field order do not
// affect Equals, and record names are ignored, so two graphs inferred from
// the same samples in different order compare equal. Field and variant order
// are still preserved because they drive generated output.
type Type interface {
	// Kind returns the variant of this node
	Kind() Kind

	// Equals checks structural equality with another node
	Equals(other Type) bool

	// String returns the human-readable representation of the type
	String() string
}

// Primitive represents a scalar type observation.
type Primitive struct {
	Prim PrimitiveKind
}

// NewPrimitive creates a primitive type node of the given kind.
func NewPrimitive(p PrimitiveKind) *Primitive {
	return &Primitive{Prim: p}
}

func (p *Primitive) Kind() Kind     { return KindPrimitive }
func (p *Primitive) String() string { return p.Prim.String() }

// Equals checks if other is the same primitive kind.
func (p *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && p.Prim == o.Prim
}

// Any represents an unconstrained type: the element type of an empty array,
// or the deterministic fallback a renderer uses for constructs its target
// cannot express. Any unified with X yields X.
type Any struct{}

func (a *Any) Kind() Kind     { return KindAny }
func (a *Any) String() string { return "any" }

func (a *Any) Equals(other Type) bool {
	_, ok := other.(*Any)
	return ok
}

// Array represents a homogeneous sequence type.
type Array struct {
	Elem Type
}

// NewArray creates an array type with the given element type.
func NewArray(elem Type) *Array {
	return &Array{Elem: elem}
}

func (a *Array) Kind() Kind     { return KindArray }
func (a *Array) String() string { return fmt.Sprintf("array<%s>", a.Elem.String()) }

func (a *Array) Equals(other Type) bool {
	o, ok := other.(*Array)
	return ok && a.Elem.Equals(o.Elem)
}

// Optional wraps a type that was absent (or null) in at least one sample.
// It never nests directly inside another Optional; use NewOptional.
type Optional struct {
	Inner Type
}

// NewOptional wraps t in an Optional, collapsing nested Optionals.
func NewOptional(t Type) *Optional {
	if opt, ok := t.(*Optional); ok {
		return opt
	}
	return &Optional{Inner: t}
}

func (o *Optional) Kind() Kind     { return KindOptional }
func (o *Optional) String() string { return o.Inner.String() + "?" }

func (o *Optional) Equals(other Type) bool {
	oo, ok := other.(*Optional)
	return ok && o.Inner.Equals(oo.Inner)
}

// Map represents a dynamic-key object. Keys are always strings and are
// therefore not represented on the node.
type Map struct {
	Value Type
}

// NewMap creates a map type with the given value type.
func NewMap(value Type) *Map {
	return &Map{Value: value}
}

func (m *Map) Kind() Kind     { return KindMap }
func (m *Map) String() string { return fmt.Sprintf("map<string, %s>", m.Value.String()) }

func (m *Map) Equals(other Type) bool {
	o, ok := other.(*Map)
	return ok && m.Value.Equals(o.Value)
}

// Union holds incompatible type observations for a single position.
// Variants are kept in first-seen order, structurally deduplicated, with at
// most one primitive per kind and at most one array, map, and record member.
type Union struct {
	Variants []Type
}

// NewUnion creates a union over the given variants. The caller is expected
// to have flattened and deduplicated them (see infer.Unify).
func NewUnion(variants ...Type) *Union {
	return &Union{Variants: variants}
}

func (u *Union) Kind() Kind { return KindUnion }

func (u *Union) String() string {
	parts := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		parts[i] = v.String()
	}
	return "union<" + strings.Join(parts, " | ") + ">"
}

// Equals compares unions as sets: variant order does not matter.
func (u *Union) Equals(other Type) bool {
	o, ok := other.(*Union)
	if !ok || len(u.Variants) != len(o.Variants) {
		return false
	}

	matched := make([]bool, len(o.Variants))
	for _, v := range u.Variants {
		found := false
		for j, ov := range o.Variants {
			if !matched[j] && v.Equals(ov) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Field is a single record field. Optionality is expressed on the type via
// Optional, not as a field flag.
type Field struct {
	Name string
	Type Type
}

// Record represents a fixed-shape object. During inference records are
// anonymous and inline; the deduplicator assigns names and replaces inline
// occurrences with References.
type Record struct {
	Name   string
	Doc    string
	Fields []Field
}

// NewRecord creates an anonymous record with the given fields.
func NewRecord(fields ...Field) *Record {
	return &Record{Fields: fields}
}

func (r *Record) Kind() Kind { return KindRecord }

func (r *Record) String() string {
	if r.Name != "" {
		return r.Name
	}
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Equals compares records structurally: generated names are ignored and
// field order does not matter, only the field set and field types.
func (r *Record) Equals(other Type) bool {
	o, ok := other.(*Record)
	if !ok || len(r.Fields) != len(o.Fields) {
		return false
	}

	// Build a map of the other record's fields for order-independent comparison
	otherFields := make(map[string]Type, len(o.Fields))
	for _, f := range o.Fields {
		otherFields[f.Name] = f.Type
	}

	for _, f := range r.Fields {
		ot, ok := otherFields[f.Name]
		if !ok || !f.Type.Equals(ot) {
			return false
		}
	}
	return true
}

// FieldType looks up a field's type by name.
func (r *Record) FieldType(name string) (Type, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// FieldNames returns the field names in declaration order.
func (r *Record) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Reference is a named indirection to a Record definition. It expresses
// sharing and recursion without inlining a record twice or infinitely.
type Reference struct {
	Name string
}

// NewReference creates a reference to the named record.
func NewReference(name string) *Reference {
	return &Reference{Name: name}
}

func (r *Reference) Kind() Kind     { return KindReference }
func (r *Reference) String() string { return r.Name }

func (r *Reference) Equals(other Type) bool {
	o, ok := other.(*Reference)
	return ok && r.Name == o.Name
}
