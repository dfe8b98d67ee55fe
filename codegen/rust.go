package codegen

import (
	"fmt"
	"strings"

	ustrings "github.com/typeforge-dev/typeforge/internal/util/strings"
	"github.com/typeforge-dev/typeforge/schema"
)

func init() {
	Register("rust", rust{})
}

// rust emits serde-annotated structs. Unions and the any type have no
// structural Rust counterpart and fall back to serde_json::Value; Strict
// mode turns that fallback into an error instead.
type rust struct{}

func (rust) Name() string          { return "Rust" }
func (rust) FileExtension() string { return "rs" }

var defaultDerives = []string{"Debug", "Clone", "Serialize", "Deserialize"}

var rustKeywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "crate": true,
	"dyn": true, "else": true, "enum": true, "extern": true, "false": true,
	"fn": true, "for": true, "if": true, "impl": true, "in": true,
	"let": true, "loop": true, "match": true, "mod": true, "move": true,
	"mut": true, "pub": true, "ref": true, "return": true, "self": true,
	"static": true, "struct": true, "super": true, "trait": true,
	"true": true, "type": true, "unsafe": true, "use": true, "where": true,
	"while": true, "async": true, "await": true,
}

func (r rust) Render(g *schema.Graph, opts Options) (string, error) {
	ordered := Order(g)
	cyclic := CyclicRecords(g)

	if opts.Strict {
		for _, rec := range ordered {
			for _, f := range rec.Fields {
				if construct, bad := rustUnsupported(f.Type); bad {
					return "", &UnsupportedConstructError{Target: "rust", Construct: construct}
				}
			}
		}
		if construct, bad := rustUnsupported(g.Root); bad {
			return "", &UnsupportedConstructError{Target: "rust", Construct: construct}
		}
	}

	derives := opts.DeriveMacros
	if derives == nil {
		derives = defaultDerives
	}

	needsMap := false
	for _, rec := range ordered {
		for _, f := range rec.Fields {
			walkTypes(f.Type, func(n schema.Type) {
				if _, ok := n.(*schema.Map); ok {
					needsMap = true
				}
			})
		}
	}

	w := newWriter(opts.indentOr("    "))
	if hasDerive(derives, "Serialize") || hasDerive(derives, "Deserialize") {
		w.line("use serde::{Deserialize, Serialize};")
	}
	if needsMap {
		w.line("use std::collections::HashMap;")
	}

	visibility := "pub "
	if opts.PrivateFields {
		visibility = ""
	}

	for _, rec := range ordered {
		w.blank()
		if opts.IncludeComments && rec.Doc != "" {
			w.line("/// %s", rec.Doc)
		}
		if len(derives) > 0 {
			w.line("#[derive(%s)]", strings.Join(derives, ", "))
		}
		w.line("pub struct %s {", rec.Name)
		w.in()
		for _, f := range rec.Fields {
			name := rustFieldName(f.Name)
			rename := strings.TrimPrefix(name, "r#")
			if rename != f.Name {
				w.line("#[serde(rename = %q)]", f.Name)
			}
			w.line("%s%s: %s,", visibility, name, rustType(f.Type, cyclic, false))
		}
		w.out()
		w.line("}")
	}

	if name, ok := rootAlias(g, opts); ok {
		w.blank()
		w.line("pub type %s = %s;", name, rustType(g.Root, cyclic, true))
	}
	return w.String(), nil
}

func rustFieldName(name string) string {
	safe := ustrings.ToSnakeCase(ustrings.SafeIdentifier(name))
	if rustKeywords[safe] {
		return "r#" + safe
	}
	return safe
}

// rustType renders t. boxed is true when t already sits behind heap
// indirection (Vec, HashMap), in which case cyclic references need no Box.
func rustType(t schema.Type, cyclic map[string]bool, boxed bool) string {
	switch v := t.(type) {
	case *schema.Primitive:
		switch v.Prim {
		case schema.PrimNull:
			return "serde_json::Value"
		case schema.PrimBool:
			return "bool"
		case schema.PrimInt:
			return "i64"
		case schema.PrimFloat:
			return "f64"
		case schema.PrimString:
			return "String"
		}
	case *schema.Any:
		return "serde_json::Value"
	case *schema.Array:
		return fmt.Sprintf("Vec<%s>", rustType(v.Elem, cyclic, true))
	case *schema.Optional:
		return fmt.Sprintf("Option<%s>", rustType(v.Inner, cyclic, boxed))
	case *schema.Map:
		return fmt.Sprintf("HashMap<String, %s>", rustType(v.Value, cyclic, true))
	case *schema.Union:
		return "serde_json::Value"
	case *schema.Reference:
		if cyclic[v.Name] && !boxed {
			return fmt.Sprintf("Box<%s>", v.Name)
		}
		return v.Name
	}
	return "serde_json::Value"
}

// rustUnsupported reports the first construct under t that only renders via
// the serde_json::Value fallback.
func rustUnsupported(t schema.Type) (string, bool) {
	var construct string
	walkTypes(t, func(n schema.Type) {
		if construct != "" {
			return
		}
		if u, ok := n.(*schema.Union); ok {
			construct = u.String()
		}
	})
	return construct, construct != ""
}

func hasDerive(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}
