// Package schema defines the generic value tree consumed by the inference
// engine and the type graph it produces. Values are format-agnostic: the
// parse package builds them from JSON, YAML, or TOML documents.
package schema

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
	ValueArray
	ValueObject
)

// Value is one parsed sample node. It has no identity beyond its content;
// object key order is preserved because it drives generated field order.
type Value struct {
	Kind ValueKind

	Bool  bool
	Int   int64
	Float float64
	// IsInt distinguishes integer literals from floats. It is decided at
	// parse time: no fractional part and within int64 range means integer.
	IsInt bool
	Str   string

	Items  []Value
	Fields []ObjectField
}

// ObjectField is a single key/value entry of an object, in source order.
type ObjectField struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value {
	return Value{Kind: ValueNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{Kind: ValueBool, Bool: b}
}

// Int returns an integer number value.
func Int(i int64) Value {
	return Value{Kind: ValueNumber, Int: i, IsInt: true}
}

// Float returns a floating point number value.
func Float(f float64) Value {
	return Value{Kind: ValueNumber, Float: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// List returns an array value with the given elements. The name avoids
// clashing with the Array type of the graph side of this package.
func List(items ...Value) Value {
	return Value{Kind: ValueArray, Items: items}
}

// Object returns an object value with the given fields, preserving order.
func Object(fields ...ObjectField) Value {
	return Value{Kind: ValueObject, Fields: fields}
}

// F builds a single object field. It keeps test fixtures and callers terse.
func F(key string, v Value) ObjectField {
	return ObjectField{Key: key, Value: v}
}

// Get looks up an object field by key.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}
