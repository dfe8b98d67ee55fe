package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "typeforge", root.Use)
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"version", "generate", "targets", "watch", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestSubcommandLookup(t *testing.T) {
	root := NewRootCommand()

	cmd, _, err := root.Find([]string{"gen"})
	require.NoError(t, err)
	assert.Equal(t, "generate", cmd.Name())

	cmd, _, err = root.Find([]string{"targets"})
	require.NoError(t, err)
	assert.Equal(t, "targets", cmd.Name())
}
