package install

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdtesting "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/testing"
	"github.com/kiosk404/pluginadm/pkg/cli/genericclioptions"
)

func run(t *testing.T, plugins *cmdtesting.Plugins) (string, error) {
	t.Helper()
	streams, _, out, _ := genericclioptions.NewTestIOStreams()
	o := NewInstallOptions(cmdtesting.NewFactory(plugins, cmdtesting.NewMetadata()), streams)
	require.NoError(t, o.Complete([]string{"gatsby-plugin-sass"}))
	err := o.Run(context.Background())
	return out.String(), err
}

func TestInstall(t *testing.T) {
	plugins := cmdtesting.NewPlugins()

	out, err := run(t, plugins)
	require.NoError(t, err)
	assert.Contains(t, out, "gatsby-plugin-sass installed")
	assert.Equal(t, []string{"gatsby-plugin-sass"}, plugins.Creates)
	assert.True(t, plugins.Has("gatsby-plugin-sass"))
}

func TestInstall_AlreadyInstalled(t *testing.T) {
	plugins := cmdtesting.NewPlugins(cmdtesting.Installed("gatsby-plugin-sass", `{}`))

	out, err := run(t, plugins)
	require.NoError(t, err)
	assert.Contains(t, out, "already installed")
	assert.Empty(t, plugins.Creates)
}

func TestInstall_Failure(t *testing.T) {
	plugins := cmdtesting.NewPlugins()
	plugins.CreateErr = errors.New("npm failed")

	_, err := run(t, plugins)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be installed")
}
