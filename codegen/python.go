package codegen

import (
	"fmt"
	"sort"
	"strings"

	ustrings "github.com/typeforge-dev/typeforge/internal/util/strings"
	"github.com/typeforge-dev/typeforge/schema"
)

func init() {
	Register("python", python{})
}

// python emits Pydantic models. Field names that are not valid Python
// identifiers are rewritten and wired back to the source key with a Field
// alias, so round-trip parsing keeps working.
type python struct{}

func (python) Name() string          { return "Python" }
func (python) FileExtension() string { return "py" }

// pythonKeywords covers the reserved words a sample key could realistically
// collide with. Soft keywords (match, type) are included since Pydantic
// models break on them anyway.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true,
	"else": true, "except": true, "finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true,
	"yield": true, "match": true, "type": true,
}

func (python) Render(g *schema.Graph, opts Options) (string, error) {
	ordered := Order(g)

	needsField := false
	typing := map[string]bool{}
	noteTyping := func(t schema.Type) {
		walkTypes(t, func(n schema.Type) {
			switch n.(type) {
			case *schema.Any:
				typing["Any"] = true
			case *schema.Optional:
				typing["Optional"] = true
			case *schema.Union:
				typing["Union"] = true
			}
		})
	}
	for _, rec := range ordered {
		for _, f := range rec.Fields {
			noteTyping(f.Type)
			if pyFieldName(f.Name) != f.Name {
				needsField = true
			}
		}
	}
	aliasName, emitAlias := rootAlias(g, opts)
	if emitAlias {
		noteTyping(g.Root)
	}

	w := newWriter(opts.indentOr("    "))
	w.line("from __future__ import annotations")
	w.blank()
	if needsField {
		w.line("from pydantic import BaseModel, Field")
	} else {
		w.line("from pydantic import BaseModel")
	}
	if len(typing) > 0 {
		names := make([]string, 0, len(typing))
		for n := range typing {
			names = append(names, n)
		}
		sort.Strings(names)
		w.line("from typing import %s", strings.Join(names, ", "))
	}

	for _, rec := range ordered {
		w.blank()
		w.blank()
		w.line("class %s(BaseModel):", rec.Name)
		w.in()
		if opts.IncludeComments && rec.Doc != "" {
			w.line(`"""%s"""`, rec.Doc)
		}
		if len(rec.Fields) == 0 {
			w.line("pass")
		}
		for _, f := range rec.Fields {
			name := pyFieldName(f.Name)
			ft, optional := f.Type, false
			if opt, ok := ft.(*schema.Optional); ok {
				ft, optional = opt.Inner, true
			}
			typ := pyType(ft)
			if optional {
				typ = fmt.Sprintf("Optional[%s]", typ)
			}
			switch {
			case optional && name != f.Name:
				w.line("%s: %s = Field(default=None, alias=%q)", name, typ, f.Name)
			case optional:
				w.line("%s: %s = None", name, typ)
			case name != f.Name:
				w.line("%s: %s = Field(alias=%q)", name, typ, f.Name)
			default:
				w.line("%s: %s", name, typ)
			}
		}
		w.out()
	}

	if emitAlias {
		w.blank()
		w.blank()
		w.line("%s = %s", aliasName, pyType(g.Root))
	}
	return w.String(), nil
}

func pyFieldName(name string) string {
	safe := ustrings.SafeIdentifier(name)
	if pythonKeywords[safe] {
		return safe + "_"
	}
	return safe
}

func pyType(t schema.Type) string {
	switch v := t.(type) {
	case *schema.Primitive:
		switch v.Prim {
		case schema.PrimNull:
			return "None"
		case schema.PrimBool:
			return "bool"
		case schema.PrimInt:
			return "int"
		case schema.PrimFloat:
			return "float"
		case schema.PrimString:
			return "str"
		}
	case *schema.Any:
		return "Any"
	case *schema.Array:
		return fmt.Sprintf("list[%s]", pyType(v.Elem))
	case *schema.Optional:
		return fmt.Sprintf("Optional[%s]", pyType(v.Inner))
	case *schema.Map:
		return fmt.Sprintf("dict[str, %s]", pyType(v.Value))
	case *schema.Union:
		parts := make([]string, len(v.Variants))
		for i, vt := range v.Variants {
			parts[i] = pyType(vt)
		}
		return fmt.Sprintf("Union[%s]", strings.Join(parts, ", "))
	case *schema.Reference:
		return v.Name
	}
	return "Any"
}

// walkTypes invokes fn for t and every type nested inside it, except record
// bodies behind references, which belong to their own declarations.
func walkTypes(t schema.Type, fn func(schema.Type)) {
	fn(t)
	switch v := t.(type) {
	case *schema.Array:
		walkTypes(v.Elem, fn)
	case *schema.Optional:
		walkTypes(v.Inner, fn)
	case *schema.Map:
		walkTypes(v.Value, fn)
	case *schema.Union:
		for _, vt := range v.Variants {
			walkTypes(vt, fn)
		}
	case *schema.Record:
		for _, f := range v.Fields {
			walkTypes(f.Type, fn)
		}
	}
}
