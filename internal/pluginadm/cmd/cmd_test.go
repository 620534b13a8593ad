package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPluginAdmCommand_Tree(t *testing.T) {
	cmd := NewPluginAdmCommand(&bytes.Buffer{}, &bytes.Buffer{}, &bytes.Buffer{})

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"view", "serve", "show", "install", "configure", "uninstall", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "graphql.endpoint", "registry.url", "server.bind-address", "log.level", "profile"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestNewPluginAdmCommand_Help(t *testing.T) {
	var out bytes.Buffer
	cmd := NewPluginAdmCommand(&bytes.Buffer{}, &out, &bytes.Buffer{})
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Page Commands:")
	assert.Contains(t, out.String(), "Scripting Commands:")
}
