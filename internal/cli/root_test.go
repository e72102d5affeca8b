package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{
		"deploy": false,
		"render": false,
		"backup": false,
		"status": false,
		"doctor": false,
		"setup":  false,
	}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		assert.True(t, found, "missing subcommand %s", name)
	}
}

func TestDeployCommandHasYesFlag(t *testing.T) {
	root := newRootCmd()
	deploy, _, err := root.Find([]string{"deploy"})
	require.NoError(t, err)
	assert.NotNil(t, deploy.Flags().Lookup("yes"))
}

func TestRootHasConfigFlag(t *testing.T) {
	root := newRootCmd()
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
}
