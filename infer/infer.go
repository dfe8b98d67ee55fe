// Package infer implements the type inference engine: it walks one or more
// sample value trees, unifies the observations into a single type, and
// finalizes the result into a canonical, deduplicated type graph.
package infer

import (
	"errors"

	"github.com/typeforge-dev/typeforge/schema"
)

// ErrEmptyInput is returned when no samples are supplied.
var ErrEmptyInput = errors.New("infer: no input samples")

// Default heuristic thresholds. They are policy, not algorithm, so Options
// can override them.
const (
	DefaultMapThreshold  = 4
	DefaultMapUnionLimit = 2
)

// Options carries the inference heuristics.
type Options struct {
	// MapThreshold is the key count an object must exceed before it is
	// considered a candidate for map classification.
	MapThreshold int
	// MapUnionLimit is the largest union cardinality still accepted as a
	// homogeneous-enough map value type.
	MapUnionLimit int
}

func (o Options) withDefaults() Options {
	if o.MapThreshold <= 0 {
		o.MapThreshold = DefaultMapThreshold
	}
	if o.MapUnionLimit <= 0 {
		o.MapUnionLimit = DefaultMapUnionLimit
	}
	return o
}

// Infer unifies all samples observed for one root and returns the finalized
// type graph. Samples are folded pairwise, so sample order never changes the
// resulting graph structurally. A union-shaped root (samples of fundamentally
// different shapes) is valid output, not an error.
func Infer(samples []schema.Value, rootName string, opts Options) (*schema.Graph, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}
	o := opts.withDefaults()

	var unified schema.Type
	for _, s := range samples {
		unified = Unify(unified, inferValue(s, o))
	}

	return Finalize(unified, rootName)
}

// inferValue is the per-sample structural walk.
func inferValue(v schema.Value, o Options) schema.Type {
	switch v.Kind {
	case schema.ValueNull:
		return schema.NewPrimitive(schema.PrimNull)
	case schema.ValueBool:
		return schema.NewPrimitive(schema.PrimBool)
	case schema.ValueNumber:
		if v.IsInt {
			return schema.NewPrimitive(schema.PrimInt)
		}
		return schema.NewPrimitive(schema.PrimFloat)
	case schema.ValueString:
		return schema.NewPrimitive(schema.PrimString)
	case schema.ValueArray:
		var elem schema.Type
		for _, item := range v.Items {
			elem = Unify(elem, inferValue(item, o))
		}
		if elem == nil {
			elem = &schema.Any{}
		}
		return schema.NewArray(elem)
	case schema.ValueObject:
		return classifyObject(v, o)
	default:
		return &schema.Any{}
	}
}
