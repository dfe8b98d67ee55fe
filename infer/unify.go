package infer

import "github.com/typeforge-dev/typeforge/schema"

// Unify merges two type observations for the same logical position into one
// consistent type. It is the engine's central algorithm and is applied as a
// pairwise, associative fold, so sample order never changes the result
// structurally.
//
// Rules, in order:
//   - nil acts as identity, Any yields the other side
//   - anything unified with Optional unifies the payload and re-wraps
//   - null unified with a non-null type makes that type Optional
//   - identical nodes unify to themselves
//   - int and float widen to float; no other cross-primitive widening
//   - arrays unify element-wise, maps value-wise, records field-wise
//   - everything else is a shape mismatch and produces a flattened,
//     deduplicated Union
func Unify(a, b schema.Type) schema.Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	if a.Kind() == schema.KindAny {
		return b
	}
	if b.Kind() == schema.KindAny {
		return a
	}

	if aOpt, ok := a.(*schema.Optional); ok {
		return schema.NewOptional(Unify(aOpt.Inner, payload(b)))
	}
	if bOpt, ok := b.(*schema.Optional); ok {
		return schema.NewOptional(Unify(a, bOpt.Inner))
	}

	if isNull(a) && isNull(b) {
		return a
	}
	if isNull(a) {
		return schema.NewOptional(b)
	}
	if isNull(b) {
		return schema.NewOptional(a)
	}

	if a.Equals(b) {
		return a
	}

	switch at := a.(type) {
	case *schema.Primitive:
		if bt, ok := b.(*schema.Primitive); ok {
			if widened, ok := widenNumeric(at, bt); ok {
				return widened
			}
		}
	case *schema.Array:
		if bt, ok := b.(*schema.Array); ok {
			return schema.NewArray(Unify(at.Elem, bt.Elem))
		}
	case *schema.Map:
		if bt, ok := b.(*schema.Map); ok {
			return schema.NewMap(Unify(at.Value, bt.Value))
		}
	case *schema.Record:
		if bt, ok := b.(*schema.Record); ok {
			return unifyRecords(at, bt)
		}
	}

	return unionOf(a, b)
}

func payload(t schema.Type) schema.Type {
	if opt, ok := t.(*schema.Optional); ok {
		return opt.Inner
	}
	return t
}

func isNull(t schema.Type) bool {
	p, ok := t.(*schema.Primitive)
	return ok && p.Prim == schema.PrimNull
}

// widenNumeric applies the int/float widening rule.
func widenNumeric(a, b *schema.Primitive) (schema.Type, bool) {
	if a.Prim == schema.PrimInt && b.Prim == schema.PrimFloat ||
		a.Prim == schema.PrimFloat && b.Prim == schema.PrimInt {
		return schema.NewPrimitive(schema.PrimFloat), true
	}
	return nil, false
}

// unifyRecords merges two record observations field-wise. The result's
// field set is the union of both, in first-seen order; a field present on
// only one side becomes Optional. Fields present on both sides unify their
// payloads, so optionality is added only when width or shape actually
// differs.
func unifyRecords(a, b *schema.Record) schema.Type {
	fields := make([]schema.Field, 0, len(a.Fields))

	for _, f := range a.Fields {
		if bt, ok := b.FieldType(f.Name); ok {
			fields = append(fields, schema.Field{Name: f.Name, Type: Unify(f.Type, bt)})
		} else {
			fields = append(fields, schema.Field{Name: f.Name, Type: schema.NewOptional(f.Type)})
		}
	}
	for _, f := range b.Fields {
		if _, ok := a.FieldType(f.Name); !ok {
			fields = append(fields, schema.Field{Name: f.Name, Type: schema.NewOptional(f.Type)})
		}
	}

	return schema.NewRecord(fields...)
}

// unionOf builds a union over the given types, flattening nested unions and
// deduplicating members structurally. The variant list keeps at most one
// primitive of each kind and at most one array, map, and record member;
// same-shape members are unified into the existing slot so the slot keeps
// its first-seen position.
func unionOf(types ...schema.Type) schema.Type {
	var variants []schema.Type
	for _, t := range types {
		variants = addVariant(variants, t)
	}
	if len(variants) == 1 {
		return variants[0]
	}
	return schema.NewUnion(variants...)
}

func addVariant(variants []schema.Type, t schema.Type) []schema.Type {
	if u, ok := t.(*schema.Union); ok {
		for _, v := range u.Variants {
			variants = addVariant(variants, v)
		}
		return variants
	}

	switch tt := t.(type) {
	case *schema.Primitive:
		for i, v := range variants {
			vp, ok := v.(*schema.Primitive)
			if !ok {
				continue
			}
			if vp.Prim == tt.Prim {
				return variants
			}
			// Numeric widening collapses int and float into one slot,
			// keeping the slot's first-seen position.
			if vp.Prim == schema.PrimInt && tt.Prim == schema.PrimFloat {
				variants[i] = tt
				return variants
			}
			if vp.Prim == schema.PrimFloat && tt.Prim == schema.PrimInt {
				return variants
			}
		}
	case *schema.Array:
		for i, v := range variants {
			if _, ok := v.(*schema.Array); ok {
				variants[i] = Unify(v, tt)
				return variants
			}
		}
	case *schema.Map:
		for i, v := range variants {
			if _, ok := v.(*schema.Map); ok {
				variants[i] = Unify(v, tt)
				return variants
			}
		}
	case *schema.Record:
		for i, v := range variants {
			if _, ok := v.(*schema.Record); ok {
				variants[i] = Unify(v, tt)
				return variants
			}
		}
	default:
		for _, v := range variants {
			if v.Equals(t) {
				return variants
			}
		}
	}

	return append(variants, t)
}
