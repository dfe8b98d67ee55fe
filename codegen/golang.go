package codegen

import (
	"fmt"
	"strings"

	ustrings "github.com/typeforge-dev/typeforge/internal/util/strings"
	"github.com/typeforge-dev/typeforge/schema"
)

func init() {
	Register("go", golang{})
}

// golang emits plain structs with json tags. Unions collapse to any (an
// error in Strict mode), optional fields become pointers with omitempty, and
// cyclic bare references become pointers so the structs have finite size.
type golang struct{}

func (golang) Name() string          { return "Go" }
func (golang) FileExtension() string { return "go" }

// Common initialisms that should be all caps in Go field names.
var goInitialisms = map[string]string{
	"id":    "ID",
	"url":   "URL",
	"uri":   "URI",
	"uuid":  "UUID",
	"api":   "API",
	"http":  "HTTP",
	"https": "HTTPS",
	"json":  "JSON",
	"xml":   "XML",
	"html":  "HTML",
	"css":   "CSS",
	"sql":   "SQL",
	"ip":    "IP",
	"tcp":   "TCP",
	"udp":   "UDP",
}

func (golang) Render(g *schema.Graph, opts Options) (string, error) {
	ordered := Order(g)
	cyclic := CyclicRecords(g)

	if opts.Strict {
		check := func(t schema.Type) error {
			if construct, bad := rustUnsupported(t); bad {
				return &UnsupportedConstructError{Target: "go", Construct: construct}
			}
			return nil
		}
		for _, rec := range ordered {
			for _, f := range rec.Fields {
				if err := check(f.Type); err != nil {
					return "", err
				}
			}
		}
		if err := check(g.Root); err != nil {
			return "", err
		}
	}

	w := newWriter(opts.indentOr("\t"))
	if opts.IncludeComments {
		w.line("// Code generated by typeforge. DO NOT EDIT.")
		w.blank()
	}
	w.line("package types")

	for _, rec := range ordered {
		w.blank()
		if opts.IncludeComments && rec.Doc != "" {
			w.line("// %s %s", rec.Name, rec.Doc)
		}
		w.line("type %s struct {", rec.Name)
		w.in()
		for _, f := range rec.Fields {
			tag := f.Name
			if _, ok := f.Type.(*schema.Optional); ok {
				tag += ",omitempty"
			}
			w.line("%s %s `json:%q`", goFieldName(f.Name), goType(f.Type, cyclic, false), tag)
		}
		w.out()
		w.line("}")
	}

	if name, ok := rootAlias(g, opts); ok {
		w.blank()
		w.line("type %s = %s", name, goType(g.Root, cyclic, true))
	}
	return w.String(), nil
}

// goFieldName converts a source key to an exported Go field name, upcasing
// known initialisms (user_id -> UserID).
func goFieldName(name string) string {
	snake := ustrings.ToSnakeCase(ustrings.SafeIdentifier(name))
	parts := strings.Split(snake, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if upper, ok := goInitialisms[strings.ToLower(part)]; ok {
			parts[i] = upper
		} else {
			parts[i] = strings.ToUpper(part[0:1]) + part[1:]
		}
	}
	out := strings.Join(parts, "")
	if out == "" {
		return "Field"
	}
	return out
}

// goType renders t. indirect is true when t already sits behind a slice or
// map, so cyclic references need no extra pointer.
func goType(t schema.Type, cyclic map[string]bool, indirect bool) string {
	switch v := t.(type) {
	case *schema.Primitive:
		switch v.Prim {
		case schema.PrimNull:
			return "any"
		case schema.PrimBool:
			return "bool"
		case schema.PrimInt:
			return "int64"
		case schema.PrimFloat:
			return "float64"
		case schema.PrimString:
			return "string"
		}
	case *schema.Any:
		return "any"
	case *schema.Array:
		return "[]" + goType(v.Elem, cyclic, true)
	case *schema.Optional:
		inner := goType(v.Inner, cyclic, indirect)
		if strings.HasPrefix(inner, "*") || strings.HasPrefix(inner, "[]") || strings.HasPrefix(inner, "map[") || inner == "any" {
			return inner
		}
		return "*" + inner
	case *schema.Map:
		return fmt.Sprintf("map[string]%s", goType(v.Value, cyclic, true))
	case *schema.Union:
		return "any"
	case *schema.Reference:
		if cyclic[v.Name] && !indirect {
			return "*" + v.Name
		}
		return v.Name
	}
	return "any"
}
