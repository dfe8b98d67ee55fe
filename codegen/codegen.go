// Package codegen renders a finalized type graph into source text for a
// target language. Every target implements the Renderer contract and is
// looked up through a closed registry populated at init time; there is no
// runtime plugin loading.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/typeforge-dev/typeforge/schema"
)

// Options enumerates the knobs every renderer recognizes, plus the
// target-specific ones recovered from each backend.
type Options struct {
	// RootName overrides the display name of the root declaration. Empty
	// means use the graph's root name.
	RootName string
	// Indent is the indentation unit. Empty selects the target's
	// conventional default.
	Indent string
	// IncludeComments annotates declarations with provenance comments.
	IncludeComments bool
	// Strict makes renderers fail with UnsupportedConstructError instead of
	// falling back to their documented "any"-style construct.
	Strict bool

	// Readonly marks TypeScript interface fields readonly.
	Readonly bool
	// DeriveMacros is the Rust derive list; nil selects the default of
	// Debug, Clone, Serialize, Deserialize.
	DeriveMacros []string
	// PrivateFields drops the pub modifier from Rust struct fields.
	PrivateFields bool
}

func (o Options) indentOr(def string) string {
	if o.Indent != "" {
		return o.Indent
	}
	return def
}

// Renderer is the contract every target-language backend implements.
// Renderers are stateless: the same graph and options always produce
// byte-identical output, and a finalized graph may be rendered by several
// targets concurrently.
type Renderer interface {
	// Render emits the full source text for the graph. Declarations appear
	// in assembler order and each named record is emitted exactly once.
	Render(g *schema.Graph, opts Options) (string, error)

	// FileExtension returns the conventional file extension for the output.
	FileExtension() string

	// Name returns a human-readable name for the target.
	Name() string
}

// UnregisteredTargetError is returned when no renderer is registered for the
// requested target. It carries the known targets so callers can suggest one.
type UnregisteredTargetError struct {
	Target string
	Known  []string
}

func (e *UnregisteredTargetError) Error() string {
	return fmt.Sprintf("codegen: no renderer registered for target %q (known: %s)",
		e.Target, strings.Join(e.Known, ", "))
}

// UnsupportedConstructError is returned when a renderer cannot represent a
// node even through its fallback. It fails that render invocation only; the
// graph stays valid for other targets.
type UnsupportedConstructError struct {
	Target    string
	Construct string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("codegen: target %s cannot represent %s", e.Target, e.Construct)
}

var registry = make(map[string]Renderer)

// Register adds a renderer under a target identifier. It is called from the
// init functions of the renderer files and panics on duplicates, which would
// be a programming error.
func Register(target string, r Renderer) {
	key := strings.ToLower(target)
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("codegen: duplicate renderer registration for %q", key))
	}
	registry[key] = r
}

// Lookup resolves a renderer by target identifier, case-insensitively.
func Lookup(target string) (Renderer, error) {
	if r, ok := registry[strings.ToLower(target)]; ok {
		return r, nil
	}
	return nil, &UnregisteredTargetError{Target: target, Known: Targets()}
}

// Targets returns the registered target identifiers, sorted.
func Targets() []string {
	out := make([]string, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// writer accumulates indented source lines.
type writer struct {
	b      strings.Builder
	indent string
	depth  int
}

func newWriter(indent string) *writer {
	return &writer{indent: indent}
}

func (w *writer) line(format string, args ...interface{}) {
	for i := 0; i < w.depth; i++ {
		w.b.WriteString(w.indent)
	}
	if len(args) > 0 {
		fmt.Fprintf(&w.b, format, args...)
	} else {
		w.b.WriteString(format)
	}
	w.b.WriteString("\n")
}

func (w *writer) blank() {
	w.b.WriteString("\n")
}

func (w *writer) in()  { w.depth++ }
func (w *writer) out() { w.depth-- }

func (w *writer) String() string {
	return w.b.String()
}

// rootAlias decides whether a renderer must emit a named alias for the root
// and under which name. Roots that are plain references to a record need no
// alias unless the caller overrides the display name.
func rootAlias(g *schema.Graph, opts Options) (string, bool) {
	name := g.RootName
	if opts.RootName != "" {
		name = opts.RootName
	}
	if ref, ok := g.Root.(*schema.Reference); ok {
		if name == ref.Name {
			return "", false
		}
	}
	return name, true
}
