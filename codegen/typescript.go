package codegen

import (
	"fmt"
	"strconv"
	"strings"

	ustrings "github.com/typeforge-dev/typeforge/internal/util/strings"
	"github.com/typeforge-dev/typeforge/schema"
)

func init() {
	Register("typescript", typeScript{})
}

// typeScript emits interface declarations. Every graph node has an exact
// TypeScript counterpart, so this renderer never fails.
type typeScript struct{}

func (typeScript) Name() string          { return "TypeScript" }
func (typeScript) FileExtension() string { return "ts" }

func (typeScript) Render(g *schema.Graph, opts Options) (string, error) {
	w := newWriter(opts.indentOr("  "))
	for i, rec := range Order(g) {
		if i > 0 {
			w.blank()
		}
		if opts.IncludeComments && rec.Doc != "" {
			w.line("/** %s */", rec.Doc)
		}
		w.line("export interface %s {", rec.Name)
		w.in()
		for _, f := range rec.Fields {
			ft := f.Type
			marker := ""
			if opt, ok := ft.(*schema.Optional); ok {
				ft = opt.Inner
				marker = "?"
			}
			key := f.Name
			if !ustrings.IsIdentifier(key) {
				key = strconv.Quote(key)
			}
			modifier := ""
			if opts.Readonly {
				modifier = "readonly "
			}
			w.line("%s%s%s: %s;", modifier, key, marker, tsType(ft))
		}
		w.out()
		w.line("}")
	}

	if name, ok := rootAlias(g, opts); ok {
		if len(g.Records()) > 0 {
			w.blank()
		}
		w.line("export type %s = %s;", name, tsType(g.Root))
	}
	return w.String(), nil
}

func tsType(t schema.Type) string {
	switch v := t.(type) {
	case *schema.Primitive:
		switch v.Prim {
		case schema.PrimNull:
			return "null"
		case schema.PrimBool:
			return "boolean"
		case schema.PrimInt, schema.PrimFloat:
			return "number"
		case schema.PrimString:
			return "string"
		}
	case *schema.Any:
		return "any"
	case *schema.Array:
		elem := tsType(v.Elem)
		if strings.Contains(elem, " | ") {
			return fmt.Sprintf("(%s)[]", elem)
		}
		return elem + "[]"
	case *schema.Optional:
		return tsType(v.Inner) + " | null"
	case *schema.Map:
		return fmt.Sprintf("Record<string, %s>", tsType(v.Value))
	case *schema.Union:
		parts := make([]string, len(v.Variants))
		for i, vt := range v.Variants {
			parts[i] = tsType(vt)
		}
		return strings.Join(parts, " | ")
	case *schema.Reference:
		return v.Name
	}
	return "unknown"
}
