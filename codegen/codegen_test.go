package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge-dev/typeforge/schema"
)

func TestTargetsRegistered(t *testing.T) {
	assert.Equal(t, []string{"go", "python", "rust", "typescript", "zod"}, Targets())
}

func TestLookupCaseInsensitive(t *testing.T) {
	r, err := Lookup("TypeScript")
	require.NoError(t, err)
	assert.Equal(t, "ts", r.FileExtension())

	r, err = Lookup("RUST")
	require.NoError(t, err)
	assert.Equal(t, "rs", r.FileExtension())
}

func TestLookupUnknownTarget(t *testing.T) {
	_, err := Lookup("kotlin")
	var ute *UnregisteredTargetError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "kotlin", ute.Target)
	assert.Equal(t, Targets(), ute.Known)
	assert.Contains(t, err.Error(), "kotlin")
	assert.Contains(t, err.Error(), "typescript")
}

func TestRendererMetadata(t *testing.T) {
	tests := []struct {
		target string
		name   string
		ext    string
	}{
		{"typescript", "TypeScript", "ts"},
		{"zod", "Zod", "ts"},
		{"python", "Python", "py"},
		{"rust", "Rust", "rs"},
		{"go", "Go", "go"},
	}
	for _, tt := range tests {
		r, err := Lookup(tt.target)
		require.NoError(t, err, tt.target)
		assert.Equal(t, tt.name, r.Name())
		assert.Equal(t, tt.ext, r.FileExtension())
	}
}

func TestRootAlias(t *testing.T) {
	g := schema.NewGraph("User")
	g.Add(&schema.Record{Name: "User"})
	g.Root = schema.NewReference("User")

	// A reference root under its own name needs no alias.
	_, ok := rootAlias(g, Options{})
	assert.False(t, ok)

	// An explicit override that differs does.
	name, ok := rootAlias(g, Options{RootName: "Account"})
	require.True(t, ok)
	assert.Equal(t, "Account", name)

	// An override equal to the referenced record is still redundant.
	_, ok = rootAlias(g, Options{RootName: "User"})
	assert.False(t, ok)

	// Non-reference roots always alias.
	arr := schema.NewGraph("Users")
	arr.Root = schema.NewArray(schema.NewPrimitive(schema.PrimInt))
	name, ok = rootAlias(arr, Options{})
	require.True(t, ok)
	assert.Equal(t, "Users", name)
}

func TestIndentOr(t *testing.T) {
	assert.Equal(t, "  ", Options{}.indentOr("  "))
	assert.Equal(t, "\t", Options{Indent: "\t"}.indentOr("  "))
}
