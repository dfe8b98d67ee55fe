package codegen

import (
	"fmt"
	"strconv"
	"strings"

	ustrings "github.com/typeforge-dev/typeforge/internal/util/strings"
	"github.com/typeforge-dev/typeforge/schema"
)

func init() {
	Register("zod", zod{})
}

// zod emits runtime validation schemas plus inferred static types. Schemas
// are emitted dependency-first, so only back-edges of reference cycles need
// z.lazy; those schema constants lose precise inference and are annotated
// z.ZodTypeAny. Every schema still gets a type alias so consumers see a
// uniform surface, even though a cyclic alias infers to any.
type zod struct{}

func (zod) Name() string          { return "Zod" }
func (zod) FileExtension() string { return "ts" }

func (zod) Render(g *schema.Graph, opts Options) (string, error) {
	ordered := Order(g)
	cyclic := CyclicRecords(g)
	emitted := make(map[string]bool)

	w := newWriter(opts.indentOr("  "))
	w.line(`import { z } from "zod";`)

	for _, rec := range ordered {
		w.blank()
		if opts.IncludeComments && rec.Doc != "" {
			w.line("/** %s */", rec.Doc)
		}
		annotation := ""
		if cyclic[rec.Name] {
			annotation = ": z.ZodTypeAny"
		}
		w.line("export const %sSchema%s = z.object({", rec.Name, annotation)
		w.in()
		for _, f := range rec.Fields {
			key := f.Name
			if !ustrings.IsIdentifier(key) {
				key = strconv.Quote(key)
			}
			ft := f.Type
			suffix := ""
			if opt, ok := ft.(*schema.Optional); ok {
				ft = opt.Inner
				suffix = ".optional()"
			}
			w.line("%s: %s%s,", key, zodType(ft, emitted), suffix)
		}
		w.out()
		w.line("});")
		emitted[rec.Name] = true
		w.line("export type %s = z.infer<typeof %sSchema>;", rec.Name, rec.Name)
	}

	if name, ok := rootAlias(g, opts); ok {
		w.blank()
		w.line("export const %sSchema = %s;", name, zodType(g.Root, emitted))
		w.line("export type %s = z.infer<typeof %sSchema>;", name, name)
	}
	return w.String(), nil
}

// zodType renders a schema expression. References to records that have not
// been emitted yet can only arise from cycles and are wrapped in z.lazy.
func zodType(t schema.Type, emitted map[string]bool) string {
	switch v := t.(type) {
	case *schema.Primitive:
		switch v.Prim {
		case schema.PrimNull:
			return "z.null()"
		case schema.PrimBool:
			return "z.boolean()"
		case schema.PrimInt:
			return "z.number().int()"
		case schema.PrimFloat:
			return "z.number()"
		case schema.PrimString:
			return "z.string()"
		}
	case *schema.Any:
		return "z.any()"
	case *schema.Array:
		return fmt.Sprintf("z.array(%s)", zodType(v.Elem, emitted))
	case *schema.Optional:
		return zodType(v.Inner, emitted) + ".nullable()"
	case *schema.Map:
		return fmt.Sprintf("z.record(z.string(), %s)", zodType(v.Value, emitted))
	case *schema.Union:
		parts := make([]string, len(v.Variants))
		for i, vt := range v.Variants {
			parts[i] = zodType(vt, emitted)
		}
		return fmt.Sprintf("z.union([%s])", strings.Join(parts, ", "))
	case *schema.Reference:
		if !emitted[v.Name] {
			return fmt.Sprintf("z.lazy(() => %sSchema)", v.Name)
		}
		return v.Name + "Schema"
	}
	return "z.any()"
}
