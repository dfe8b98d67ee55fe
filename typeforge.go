// Package typeforge turns example documents into type declarations. It ties
// together the three stages of the pipeline: parse (samples to value trees),
// infer (value trees to a canonical type graph), and codegen (type graph to
// source text for a target language).
package typeforge

import (
	"github.com/typeforge-dev/typeforge/codegen"
	"github.com/typeforge-dev/typeforge/infer"
	"github.com/typeforge-dev/typeforge/schema"
)

// Options bundles the knobs of the inference and rendering stages.
type Options struct {
	Infer  infer.Options
	Render codegen.Options
}

// Generate infers a type graph from the samples and renders it for the
// target language. The target is resolved before inference runs, so an
// unknown target fails fast instead of after a potentially large unification
// pass. Samples must all describe the same logical entity; at least one is
// required.
func Generate(samples []schema.Value, rootName, target string, opts Options) (string, error) {
	renderer, err := codegen.Lookup(target)
	if err != nil {
		return "", err
	}
	g, err := infer.Infer(samples, rootName, opts.Infer)
	if err != nil {
		return "", err
	}
	return renderer.Render(g, opts.Render)
}

// Targets returns the registered target language identifiers.
func Targets() []string {
	return codegen.Targets()
}
