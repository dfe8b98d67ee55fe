package infer

import "github.com/typeforge-dev/typeforge/schema"

// classifyObject decides whether an object value denotes a fixed-field
// record or a dynamic key-to-value map.
//
// Objects used as symbol tables (IDs or timestamps as keys) have large,
// variable key vocabularies and homogeneous values, unlike fixed-shape
// records. An object classifies as a map when its key count exceeds
// Options.MapThreshold and the unified type of all its values is not a
// union, or is a union no wider than Options.MapUnionLimit.
func classifyObject(v schema.Value, o Options) schema.Type {
	if len(v.Fields) > o.MapThreshold {
		var value schema.Type
		for _, f := range v.Fields {
			value = Unify(value, inferValue(f.Value, o))
		}
		if isHomogeneous(value, o.MapUnionLimit) {
			return schema.NewMap(value)
		}
	}

	fields := make([]schema.Field, 0, len(v.Fields))
	for _, f := range v.Fields {
		fields = append(fields, schema.Field{Name: f.Key, Type: inferValue(f.Value, o)})
	}
	return schema.NewRecord(fields...)
}

// isHomogeneous reports whether t is an acceptable map value type.
func isHomogeneous(t schema.Type, unionLimit int) bool {
	switch tt := t.(type) {
	case *schema.Optional:
		return isHomogeneous(tt.Inner, unionLimit)
	case *schema.Union:
		return len(tt.Variants) <= unionLimit
	default:
		return true
	}
}
