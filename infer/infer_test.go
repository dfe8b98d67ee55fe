package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge-dev/typeforge/schema"
)

func userSample(id int64, name string) schema.Value {
	return schema.Object(
		schema.F("id", schema.Int(id)),
		schema.F("name", schema.String(name)),
	)
}

func TestInferEmptyInput(t *testing.T) {
	_, err := Infer(nil, "Root", Options{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestInferFlatObject(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(
			schema.F("id", schema.Int(1)),
			schema.F("name", schema.String("ada")),
			schema.F("active", schema.Bool(true)),
			schema.F("score", schema.Float(9.5)),
		),
	}, "User", Options{})
	require.NoError(t, err)

	root, ok := g.RootRecord()
	require.True(t, ok)
	assert.Equal(t, "User", root.Name)
	assert.Equal(t, []string{"id", "name", "active", "score"}, root.FieldNames())

	id, _ := root.FieldType("id")
	assert.True(t, id.Equals(schema.NewPrimitive(schema.PrimInt)))
	score, _ := root.FieldType("score")
	assert.True(t, score.Equals(schema.NewPrimitive(schema.PrimFloat)))
}

func TestInferAbsentFieldBecomesOptional(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(
			schema.F("id", schema.Int(1)),
			schema.F("nickname", schema.String("ada")),
		),
		schema.Object(
			schema.F("id", schema.Int(2)),
		),
	}, "User", Options{})
	require.NoError(t, err)

	root, _ := g.RootRecord()
	nick, ok := root.FieldType("nickname")
	require.True(t, ok)
	assert.True(t, nick.Equals(schema.NewOptional(schema.NewPrimitive(schema.PrimString))))

	id, _ := root.FieldType("id")
	assert.True(t, id.Equals(schema.NewPrimitive(schema.PrimInt)))
}

func TestInferNullFieldBecomesOptional(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(schema.F("bio", schema.Null())),
		schema.Object(schema.F("bio", schema.String("hello"))),
	}, "Profile", Options{})
	require.NoError(t, err)

	root, _ := g.RootRecord()
	bio, _ := root.FieldType("bio")
	assert.True(t, bio.Equals(schema.NewOptional(schema.NewPrimitive(schema.PrimString))))
}

func TestInferConflictingFieldBecomesUnion(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(schema.F("value", schema.Int(7))),
		schema.Object(schema.F("value", schema.String("seven"))),
	}, "Measurement", Options{})
	require.NoError(t, err)

	root, _ := g.RootRecord()
	value, _ := root.FieldType("value")
	u, ok := value.(*schema.Union)
	require.True(t, ok, "expected union, got %s", value)
	assert.Len(t, u.Variants, 2)
}

func TestInferNumericWideningAcrossSamples(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(schema.F("price", schema.Int(10))),
		schema.Object(schema.F("price", schema.Float(10.5))),
	}, "Product", Options{})
	require.NoError(t, err)

	root, _ := g.RootRecord()
	price, _ := root.FieldType("price")
	assert.True(t, price.Equals(schema.NewPrimitive(schema.PrimFloat)))
}

func TestInferMapClassification(t *testing.T) {
	// Six keys, all string values: exceeds the default threshold with a
	// homogeneous value type, so this is a map, not a record.
	g, err := Infer([]schema.Value{
		schema.Object(
			schema.F("wrapper", schema.Object(
				schema.F("en", schema.String("hello")),
				schema.F("fr", schema.String("bonjour")),
				schema.F("de", schema.String("hallo")),
				schema.F("es", schema.String("hola")),
				schema.F("it", schema.String("ciao")),
				schema.F("pt", schema.String("ola")),
			)),
		),
	}, "Translations", Options{})
	require.NoError(t, err)

	root, _ := g.RootRecord()
	wrapper, _ := root.FieldType("wrapper")
	m, ok := wrapper.(*schema.Map)
	require.True(t, ok, "expected map, got %s", wrapper)
	assert.True(t, m.Value.Equals(schema.NewPrimitive(schema.PrimString)))
	// No nested record was promoted to a definition.
	assert.Len(t, g.Records(), 1)
}

func TestInferSmallObjectStaysRecord(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(
			schema.F("labels", schema.Object(
				schema.F("en", schema.String("hello")),
				schema.F("fr", schema.String("bonjour")),
			)),
		),
	}, "Root", Options{})
	require.NoError(t, err)

	root, _ := g.RootRecord()
	labels, _ := root.FieldType("labels")
	_, ok := labels.(*schema.Reference)
	assert.True(t, ok, "expected reference to a nested record, got %s", labels)
}

func TestInferHeterogeneousObjectStaysRecord(t *testing.T) {
	// Above the key threshold, but value types are too diverse for a map.
	g, err := Infer([]schema.Value{
		schema.Object(
			schema.F("meta", schema.Object(
				schema.F("a", schema.String("x")),
				schema.F("b", schema.Int(1)),
				schema.F("c", schema.Bool(true)),
				schema.F("d", schema.Float(1.5)),
				schema.F("e", schema.List(schema.Int(1))),
				schema.F("f", schema.Null()),
			)),
		),
	}, "Root", Options{})
	require.NoError(t, err)

	root, _ := g.RootRecord()
	meta, _ := root.FieldType("meta")
	_, ok := meta.(*schema.Reference)
	assert.True(t, ok, "expected reference to a nested record, got %s", meta)
}

func TestInferMapThresholdOverride(t *testing.T) {
	sample := schema.Object(
		schema.F("labels", schema.Object(
			schema.F("en", schema.String("hello")),
			schema.F("fr", schema.String("bonjour")),
		)),
	)

	g, err := Infer([]schema.Value{sample}, "Root", Options{MapThreshold: 1})
	require.NoError(t, err)

	root, _ := g.RootRecord()
	labels, _ := root.FieldType("labels")
	_, ok := labels.(*schema.Map)
	assert.True(t, ok, "expected map with threshold 1, got %s", labels)
}

func TestInferEmptyArray(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(schema.F("tags", schema.List())),
	}, "Root", Options{})
	require.NoError(t, err)

	root, _ := g.RootRecord()
	tags, _ := root.FieldType("tags")
	arr, ok := tags.(*schema.Array)
	require.True(t, ok)
	_, isAny := arr.Elem.(*schema.Any)
	assert.True(t, isAny, "empty array element should be any, got %s", arr.Elem)
}

func TestInferEmptyArrayRefinedByLaterSample(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(schema.F("tags", schema.List())),
		schema.Object(schema.F("tags", schema.List(schema.String("go")))),
	}, "Root", Options{})
	require.NoError(t, err)

	root, _ := g.RootRecord()
	tags, _ := root.FieldType("tags")
	assert.True(t, tags.Equals(schema.NewArray(schema.NewPrimitive(schema.PrimString))))
}

func TestInferNestedRecordsNamedAfterFields(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(
			schema.F("billing_address", schema.Object(
				schema.F("street", schema.String("1 Main St")),
				schema.F("city", schema.String("Springfield")),
			)),
		),
	}, "Order", Options{})
	require.NoError(t, err)

	_, ok := g.Lookup("BillingAddress")
	assert.True(t, ok, "nested record should be named after its field")
}

func TestInferArrayFieldElementNameSingularized(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.Object(
			schema.F("users", schema.List(userSample(1, "ada"), userSample(2, "bob"))),
		),
	}, "Team", Options{})
	require.NoError(t, err)

	_, ok := g.Lookup("User")
	assert.True(t, ok, "array element records take the singularized field name")
}

func TestInferRootArray(t *testing.T) {
	g, err := Infer([]schema.Value{
		schema.List(userSample(1, "ada"), userSample(2, "bob")),
	}, "Users", Options{})
	require.NoError(t, err)

	arr, ok := g.Root.(*schema.Array)
	require.True(t, ok, "root should be an array, got %s", g.Root)
	ref, ok := arr.Elem.(*schema.Reference)
	require.True(t, ok)
	assert.Equal(t, "Item", ref.Name)
}

func TestInferScalarRoot(t *testing.T) {
	g, err := Infer([]schema.Value{schema.String("hello")}, "Greeting", Options{})
	require.NoError(t, err)
	assert.True(t, g.Root.Equals(schema.NewPrimitive(schema.PrimString)))
	assert.Empty(t, g.Records())
}

func TestInferUnionRoot(t *testing.T) {
	// Samples of fundamentally different shapes produce a union root, not
	// an error.
	g, err := Infer([]schema.Value{
		schema.String("hello"),
		schema.Int(42),
	}, "Root", Options{})
	require.NoError(t, err)

	_, ok := g.Root.(*schema.Union)
	assert.True(t, ok, "expected union root, got %s", g.Root)
}

func TestInferSampleOrderInvariance(t *testing.T) {
	a := schema.Object(
		schema.F("id", schema.Int(1)),
		schema.F("name", schema.String("ada")),
	)
	b := schema.Object(
		schema.F("id", schema.Int(2)),
		schema.F("email", schema.String("ada@example.com")),
	)
	c := schema.Object(
		schema.F("id", schema.Float(3.5)),
	)

	g1, err := Infer([]schema.Value{a, b, c}, "User", Options{})
	require.NoError(t, err)
	g2, err := Infer([]schema.Value{c, b, a}, "User", Options{})
	require.NoError(t, err)

	r1, _ := g1.RootRecord()
	r2, _ := g2.RootRecord()
	assert.True(t, r1.Equals(r2), "graphs differ by sample order:\n%s\nvs\n%s", r1, r2)
}
