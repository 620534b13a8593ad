package uninstall

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdtesting "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/testing"
	"github.com/kiosk404/pluginadm/internal/pluginadm/pkg/errno"
	"github.com/kiosk404/pluginadm/pkg/cli/genericclioptions"
)

func TestAsk(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "yes\n", want: true},
		{input: " Y \n", want: true},
		{input: "YES", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "sure\n", want: false},
		{input: "", want: false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got := Ask(strings.NewReader(tt.input), &out, "Remove it?")
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Remove it? [y/N]: ")
		})
	}
}

func newOptions(t *testing.T, plugins *cmdtesting.Plugins) (*UninstallOptions, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	streams, _, out, errOut := genericclioptions.NewTestIOStreams()
	o := NewUninstallOptions(cmdtesting.NewFactory(plugins, cmdtesting.NewMetadata()), streams)
	require.NoError(t, o.Complete([]string{"gatsby-plugin-sass"}))
	return o, out, errOut
}

func TestUninstall_Yes(t *testing.T) {
	plugins := cmdtesting.NewPlugins(cmdtesting.Installed("gatsby-plugin-sass", `{}`))
	o, out, _ := newOptions(t, plugins)
	o.Yes = true

	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, []string{"gatsby-plugin-sass"}, plugins.Destroys)
	assert.Contains(t, out.String(), "gatsby-plugin-sass uninstalled")
}

func TestUninstall_NoTerminalDeclines(t *testing.T) {
	plugins := cmdtesting.NewPlugins(cmdtesting.Installed("gatsby-plugin-sass", `{}`))
	o, _, errOut := newOptions(t, plugins)

	assert.ErrorIs(t, o.Run(context.Background()), errno.ErrDeclined)
	assert.Empty(t, plugins.Destroys)
	assert.Contains(t, errOut.String(), "Are you sure you want to uninstall gatsby-plugin-sass?")
	assert.Contains(t, errOut.String(), "--yes")
}

func TestUninstall_NotInstalled(t *testing.T) {
	o, _, _ := newOptions(t, cmdtesting.NewPlugins())
	o.Yes = true

	assert.ErrorIs(t, o.Run(context.Background()), errno.ErrNotInstalled)
}

func TestUninstall_DestroyFails(t *testing.T) {
	plugins := cmdtesting.NewPlugins(cmdtesting.Installed("gatsby-plugin-sass", `{}`))
	plugins.DestroyErr = errors.New("npm failed")
	o, _, _ := newOptions(t, plugins)
	o.Yes = true

	err := o.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still installed")
}
