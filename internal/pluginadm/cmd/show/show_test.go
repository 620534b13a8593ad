package show

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdtesting "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/testing"
	"github.com/kiosk404/pluginadm/internal/pluginadm/page"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
	"github.com/kiosk404/pluginadm/pkg/cli/genericclioptions"
	"github.com/kiosk404/pluginadm/pkg/objlit"
)

func TestShow_Installed(t *testing.T) {
	desc := "Provides drop-in support for Sass"
	record := cmdtesting.Installed("gatsby-plugin-sass", `{"precision":6}`)
	record.Description = &desc
	f := cmdtesting.NewFactory(cmdtesting.NewPlugins(record), cmdtesting.NewMetadata(&entity.PackageMetadata{
		Name:          "gatsby-plugin-sass",
		RepositoryURL: "https://github.com/gatsbyjs/gatsby",
		Readme:        "# gatsby-plugin-sass",
	}))
	streams, _, out, _ := genericclioptions.NewTestIOStreams()

	o := NewShowOptions(f, streams)
	require.NoError(t, o.Complete([]string{"gatsby-plugin-sass"}))
	require.NoError(t, o.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "gatsby-plugin-sass")
	assert.Contains(t, got, "installed")
	assert.NotContains(t, got, "not installed")
	assert.Contains(t, got, desc)
	assert.Contains(t, got, "https://github.com/gatsbyjs/gatsby")
	assert.Contains(t, got, "{\n  \"precision\": 6\n}")
	assert.NotContains(t, got, page.SaveHint)
}

func TestShow_NotInstalled(t *testing.T) {
	f := cmdtesting.NewFactory(cmdtesting.NewPlugins(), cmdtesting.NewMetadata())
	streams, _, out, _ := genericclioptions.NewTestIOStreams()

	o := NewShowOptions(f, streams)
	o.Readme = true
	require.NoError(t, o.Complete([]string{"gatsby-plugin-sass"}))
	require.NoError(t, o.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "not installed")
	assert.Contains(t, got, "https://ghub.io/gatsby-plugin-sass")
	assert.Contains(t, got, objlit.EmptyPlaceholder)
	assert.Contains(t, got, page.SaveHint)
	assert.Contains(t, got, "No readme found.")
}

func TestShow_QueryError(t *testing.T) {
	plugins := cmdtesting.NewPlugins()
	plugins.GetErr = errors.New("connection refused")
	f := cmdtesting.NewFactory(plugins, cmdtesting.NewMetadata())
	streams, _, out, _ := genericclioptions.NewTestIOStreams()

	o := NewShowOptions(f, streams)
	require.NoError(t, o.Complete([]string{"gatsby-plugin-sass"}))
	assert.EqualError(t, o.Run(context.Background()), "connection refused")
	assert.Empty(t, out.String())
}

func TestShow_CompleteDefaultsWidth(t *testing.T) {
	o := NewShowOptions(nil, genericclioptions.IOStreams{})
	o.Width = 3
	require.NoError(t, o.Complete([]string{"x"}))
	assert.Equal(t, 100, o.Width)
}
