package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/typeforge-dev/typeforge/schema"
)

func TestZodRender(t *testing.T) {
	got := render(t, "zod", userGraph(), Options{})

	want := `import { z } from "zod";

export const AddressSchema = z.object({
  street: z.string(),
  city: z.string(),
});
export type Address = z.infer<typeof AddressSchema>;

export const UserSchema = z.object({
  id: z.number().int(),
  name: z.string(),
  email: z.string().optional(),
  tags: z.array(z.string()),
  address: AddressSchema,
});
export type User = z.infer<typeof UserSchema>;
`
	assert.Equal(t, want, got)
}

func TestZodCycleUsesLazy(t *testing.T) {
	got := render(t, "zod", selfGraph(), Options{})

	// The self reference is a back-edge: not emitted yet, so z.lazy.
	assert.Contains(t, got, "children: z.array(z.lazy(() => NodeSchema)),")
	assert.Contains(t, got, "parent: z.lazy(() => NodeSchema).optional(),")
	// Cyclic schemas carry an explicit annotation but keep their type alias.
	assert.Contains(t, got, "export const NodeSchema: z.ZodTypeAny = z.object({")
	assert.Contains(t, got, "export type Node = z.infer<typeof NodeSchema>;")
}

func TestZodScalarsAndContainers(t *testing.T) {
	g := schema.NewGraph("Root")
	g.Add(&schema.Record{Name: "Root", Fields: []schema.Field{
		{Name: "flag", Type: schema.NewPrimitive(schema.PrimBool)},
		{Name: "score", Type: f64t()},
		{Name: "labels", Type: schema.NewMap(str())},
		{Name: "value", Type: schema.NewUnion(i64(), str())},
		{Name: "blob", Type: &schema.Any{}},
		{Name: "nested", Type: schema.NewOptional(schema.NewOptional(str()))},
	}})
	g.Root = schema.NewReference("Root")

	got := render(t, "zod", g, Options{})
	assert.Contains(t, got, "flag: z.boolean(),")
	assert.Contains(t, got, "score: z.number(),")
	assert.Contains(t, got, "labels: z.record(z.string(), z.string()),")
	assert.Contains(t, got, "value: z.union([z.number().int(), z.string()]),")
	assert.Contains(t, got, "blob: z.any(),")
}

func TestZodQuotesNonIdentifierKeys(t *testing.T) {
	g := schema.NewGraph("Root")
	g.Add(&schema.Record{Name: "Root", Fields: []schema.Field{
		{Name: "content-type", Type: str()},
	}})
	g.Root = schema.NewReference("Root")

	got := render(t, "zod", g, Options{})
	assert.Contains(t, got, `"content-type": z.string(),`)
}

func TestZodRootAlias(t *testing.T) {
	g := schema.NewGraph("Users")
	g.Add(&schema.Record{Name: "Item", Fields: []schema.Field{
		{Name: "id", Type: i64()},
	}})
	g.Root = schema.NewArray(schema.NewReference("Item"))

	got := render(t, "zod", g, Options{})
	assert.Contains(t, got, "export const UsersSchema = z.array(ItemSchema);")
	assert.Contains(t, got, "export type Users = z.infer<typeof UsersSchema>;")
}

func TestZodComments(t *testing.T) {
	got := render(t, "zod", userGraph(), Options{IncludeComments: true})
	assert.Contains(t, got, "/** Auto-generated User type */")
}
