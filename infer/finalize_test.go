package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge-dev/typeforge/schema"
)

func address(street, city string) schema.Value {
	return schema.Object(
		schema.F("street", schema.String(street)),
		schema.F("city", schema.String(city)),
	)
}

func TestFinalizeDefaultRootName(t *testing.T) {
	g, err := Finalize(schema.NewRecord(
		schema.Field{Name: "id", Type: schema.NewPrimitive(schema.PrimInt)},
	), "")
	require.NoError(t, err)

	root, ok := g.RootRecord()
	require.True(t, ok)
	assert.Equal(t, "Root", root.Name)
}

func TestFinalizeDeduplicatesIdenticalRecords(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(
			schema.F("billing_address", address("1 Main St", "Springfield")),
			schema.F("shipping_address", address("2 Oak Ave", "Shelbyville")),
		),
	}, "Order", Options{})
	require.NoError(t, err)

	// Root plus exactly one shared address definition.
	require.Len(t, g.Records(), 2)
	_, ok := g.Lookup("BillingAddress")
	assert.True(t, ok, "first-seen name survives dedup")
	_, ok = g.Lookup("ShippingAddress")
	assert.False(t, ok)

	root, _ := g.RootRecord()
	for _, field := range []string{"billing_address", "shipping_address"} {
		ft, _ := root.FieldType(field)
		ref, ok := ft.(*schema.Reference)
		require.True(t, ok, "%s should be a reference, got %s", field, ft)
		assert.Equal(t, "BillingAddress", ref.Name)
	}
}

func TestFinalizeDedupResolvesThroughReferences(t *testing.T) {
	// The two wrappers are identical only after their inner addresses
	// collapse; fingerprinting resolves references through the graph, so
	// both levels dedup in one pass.
	wrapped := func(street string) schema.Value {
		return schema.Object(schema.F("address", address(street, "Springfield")))
	}
	g, err := Infer([]schema.Value{
		schema.Object(
			schema.F("home", wrapped("1 Main St")),
			schema.F("work", wrapped("9 Elm St")),
		),
	}, "Contact", Options{})
	require.NoError(t, err)

	// Root, one wrapper, one address.
	assert.Len(t, g.Records(), 3)
}

func TestFinalizeNamingCollisionGetsSuffix(t *testing.T) {
	// Both field names PascalCase to "UserData" but the shapes differ, so
	// dedup cannot collapse them and the second claim gets a suffix.
	g, err := Infer([]schema.Value{
		schema.Object(
			schema.F("user_data", schema.Object(schema.F("id", schema.Int(1)))),
			schema.F("userData", schema.Object(schema.F("email", schema.String("a@b.c")))),
		),
	}, "Root", Options{})
	require.NoError(t, err)

	_, ok := g.Lookup("UserData")
	assert.True(t, ok)
	_, ok = g.Lookup("UserData1")
	assert.True(t, ok)
}

func TestFinalizeFoldsRecursion(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(
			schema.F("name", schema.String("root")),
			schema.F("child", schema.Object(
				schema.F("name", schema.String("leaf")),
				schema.F("child", schema.Null()),
			)),
		),
	}, "Node", Options{})
	require.NoError(t, err)

	// The nested observation folds into its ancestor: one definition that
	// refers to itself, never an inline copy.
	require.Len(t, g.Records(), 1)

	root, _ := g.RootRecord()
	child, _ := root.FieldType("child")
	opt, ok := child.(*schema.Optional)
	require.True(t, ok, "child should be optional, got %s", child)
	ref, ok := opt.Inner.(*schema.Reference)
	require.True(t, ok, "child should close the cycle with a reference, got %s", opt.Inner)
	assert.Equal(t, "Node", ref.Name)
}

func TestFinalizeFoldsRecursionThroughArrays(t *testing.T) {
	node := func(children ...schema.Value) schema.Value {
		return schema.Object(
			schema.F("label", schema.String("n")),
			schema.F("children", schema.List(children...)),
		)
	}
	g, err := Infer([]schema.Value{node(node(), node(node()))}, "Tree", Options{})
	require.NoError(t, err)

	require.Len(t, g.Records(), 1)
	root, _ := g.RootRecord()
	children, _ := root.FieldType("children")
	arr, ok := children.(*schema.Array)
	require.True(t, ok)
	ref, ok := arr.Elem.(*schema.Reference)
	require.True(t, ok, "expected self reference, got %s", arr.Elem)
	assert.Equal(t, "Tree", ref.Name)
}

func TestFinalizeNonRecordRootPassesThrough(t *testing.T) {
	g, err := Finalize(schema.NewPrimitive(schema.PrimString), "Greeting")
	require.NoError(t, err)
	assert.True(t, g.Root.Equals(schema.NewPrimitive(schema.PrimString)))
	assert.Empty(t, g.Records())
}

func TestClaimSanitizesAndSuffixes(t *testing.T) {
	c := newNameContext()

	n, err := c.claim("user name")
	require.NoError(t, err)
	assert.Equal(t, "UserName", n)

	n, err = c.claim("user_name")
	require.NoError(t, err)
	assert.Equal(t, "UserName1", n)

	n, err = c.claim("UserName")
	require.NoError(t, err)
	assert.Equal(t, "UserName2", n)

	n, err = c.claim("")
	require.NoError(t, err)
	assert.Equal(t, "Type", n)
}
