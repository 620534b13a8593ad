package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/gg/gptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
	"github.com/kiosk404/pluginadm/pkg/graphql"
	"github.com/kiosk404/pluginadm/pkg/objlit"
	"github.com/kiosk404/pluginadm/pkg/utils/json"
)

func installed(name, options string) *entity.Plugin {
	return &entity.Plugin{
		ID:          name,
		Name:        name,
		Description: gptr.Of("Description of " + name),
		Options:     json.RawMessage(options),
	}
}

type fixture struct {
	page     *Page
	plugins  *fakePlugins
	metadata *fakeMetadata
	rec      *recorder
}

func newFixture(t *testing.T, name string, records ...*entity.Plugin) *fixture {
	t.Helper()
	f := &fixture{
		plugins:  newFakePlugins(records...),
		metadata: newFakeMetadata(),
		rec:      &recorder{},
	}
	f.page = New(name, Deps{
		Plugins:  f.plugins,
		Metadata: f.metadata,
		Confirm:  f.rec.confirm,
		Navigate: f.rec.navigate,
	})
	return f
}

func (f *fixture) run(t require.TestingT, cmds []Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, Run(ctx, f.page, cmds...))
}

var pluginName = rapid.StringMatching(`(@[a-z]{1,6}/)?gatsby-[a-z0-9-]{1,16}`)

func TestPage_NotInstalledShowsInstall(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(t, pluginName.Draw(rt, "name"))
		f.run(rt, f.page.Init())

		assert.False(rt, f.page.IsInstalled())
		v := f.page.View()
		assert.Equal(rt, ControlInstall, v.Control)
		assert.False(rt, v.SaveEnabled)
		assert.Equal(rt, SaveHint, v.SaveHint)
	})
}

func TestPage_InstalledShowsUninstall(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := pluginName.Draw(rt, "name")
		f := newFixture(t, name, installed(name, `{"a":1}`))
		f.run(rt, f.page.Init())

		assert.True(rt, f.page.IsInstalled())
		v := f.page.View()
		assert.Equal(rt, ControlUninstall, v.Control)
		assert.True(rt, v.SaveEnabled)
		assert.Empty(rt, v.SaveHint)
		assert.Equal(rt, "Description of "+name, v.Description)
	})
}

func TestPage_LoadingShowsSpinnerOnly(t *testing.T) {
	f := newFixture(t, "gatsby-plugin-sass", installed("gatsby-plugin-sass", `{}`))
	_ = f.page.Init()

	v := f.page.View()
	assert.Equal(t, ControlSpinner, v.Control)
	assert.True(t, v.DraftLoading)
	assert.True(t, v.ReadmeLoading)
	assert.False(t, f.page.IsInstalled())
	assert.Nil(t, f.page.Install())
	assert.Nil(t, f.page.Uninstall())
}

func TestPage_DraftFormatting(t *testing.T) {
	tests := []struct {
		name    string
		options string
		want    string
	}{
		{name: "empty object", options: `{}`, want: "{\n  \n}"},
		{name: "absent", options: ``, want: "{\n  \n}"},
		{name: "null", options: `null`, want: "{\n  \n}"},
		{name: "object", options: `{"a":1}`, want: "{\n  \"a\": 1\n}"},
		{name: "server key order", options: `{"z":true,"a":[1]}`, want: "{\n  \"z\": true,\n  \"a\": [\n    1\n  ]\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "p", installed("p", tt.options))
			f.run(t, f.page.Init())

			draft, ok := f.page.Draft()
			require.True(t, ok)
			assert.Equal(t, tt.want, draft)
		})
	}
}

func TestPage_DraftPlaceholderWhenNotInstalled(t *testing.T) {
	f := newFixture(t, "p")
	f.run(t, f.page.Init())

	draft, ok := f.page.Draft()
	require.True(t, ok)
	assert.Equal(t, objlit.EmptyPlaceholder, draft)
}

func TestPage_SubmitRelaxedSyntax(t *testing.T) {
	f := newFixture(t, "p", installed("p", `{}`))
	f.run(t, f.page.Init())

	f.page.EditDraft("{a: 1}")
	cmds := f.page.Submit()
	require.Len(t, cmds, 1)
	assert.True(t, f.page.View().Saving)
	f.run(t, cmds)

	require.Len(t, f.plugins.updates, 1)
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, f.plugins.updates[0])
	assert.NoError(t, f.page.ValidationError())

	// The record is queried again and the draft follows the saved value.
	assert.Equal(t, 2, f.plugins.gets)
	draft, _ := f.page.Draft()
	assert.Equal(t, "{\n  \"a\": 1\n}", draft)
	assert.False(t, f.page.View().Saving)
}

func TestPage_SubmitStoredOptionsUnchanged(t *testing.T) {
	f := newFixture(t, "p", installed("p", `{"title":"${siteTitle}","url":"http:\/\/x","raw":"$${a}"}`))
	f.run(t, f.page.Init())

	cmds := f.page.Submit()
	require.Len(t, cmds, 1)
	f.run(t, cmds)

	require.NoError(t, f.page.ValidationError())
	require.Len(t, f.plugins.updates, 1)
	assert.Equal(t, map[string]interface{}{
		"title": "${siteTitle}",
		"url":   "http://x",
		"raw":   "$${a}",
	}, f.plugins.updates[0])
}

func TestPage_SubmitRejectsInvalidDrafts(t *testing.T) {
	for _, text := range []string{"{", "function(){}", "{a: undefined}", "{a: function() { return 1 }}", "[1]", ""} {
		t.Run(text, func(t *testing.T) {
			f := newFixture(t, "p", installed("p", `{"keep":true}`))
			f.run(t, f.page.Init())

			f.page.EditDraft(text)
			assert.Nil(t, f.page.Submit())

			assert.Error(t, f.page.ValidationError())
			assert.NotEmpty(t, f.page.View().ValidationError)
			assert.Empty(t, f.plugins.updates)
			draft, _ := f.page.Draft()
			assert.Equal(t, text, draft)
		})
	}
}

func TestPage_SubmitClearsPreviousValidationError(t *testing.T) {
	f := newFixture(t, "p", installed("p", `{}`))
	f.run(t, f.page.Init())

	f.page.EditDraft("{")
	f.page.Submit()
	require.Error(t, f.page.ValidationError())

	f.page.EditDraft(`{"b": "x"}`)
	f.run(t, f.page.Submit())
	assert.NoError(t, f.page.ValidationError())
}

func TestPage_SubmitUpdateFailureKeepsDraft(t *testing.T) {
	f := newFixture(t, "p", installed("p", `{}`))
	f.run(t, f.page.Init())
	f.plugins.updateErr = &graphql.CombinedError{GraphQLErrors: []graphql.GraphQLError{{Message: "options rejected"}}}

	f.page.EditDraft("{a: 2}")
	f.run(t, f.page.Submit())

	assert.Equal(t, "options rejected", f.page.View().ValidationError)
	draft, _ := f.page.Draft()
	assert.Equal(t, "{a: 2}", draft)
	assert.Equal(t, 1, f.plugins.gets, "no re-fetch after a failed save")
}

func TestPage_SubmitNoopWhenNotInstalled(t *testing.T) {
	f := newFixture(t, "p")
	f.run(t, f.page.Init())

	f.page.EditDraft("{a: 1}")
	assert.Nil(t, f.page.Submit())
	assert.Empty(t, f.plugins.updates)
	assert.NoError(t, f.page.ValidationError())
}

func TestPage_SubmitNoopWhileSaving(t *testing.T) {
	f := newFixture(t, "p", installed("p", `{}`))
	f.run(t, f.page.Init())

	f.page.EditDraft("{a: 1}")
	require.Len(t, f.page.Submit(), 1)
	assert.Nil(t, f.page.Submit())
}

func TestPage_InstallRefetches(t *testing.T) {
	f := newFixture(t, "p")
	f.run(t, f.page.Init())

	cmds := f.page.Install()
	require.Len(t, cmds, 1)
	assert.True(t, f.page.View().Installing)
	assert.Nil(t, f.page.Install(), "no second install while pending")
	f.run(t, cmds)

	assert.Equal(t, []string{"p"}, f.plugins.creates)
	assert.True(t, f.page.IsInstalled())
	assert.Equal(t, ControlUninstall, f.page.View().Control)
	assert.Empty(t, f.rec.prompts, "install never asks for confirmation")
}

func TestPage_InstallFailureIsNotSurfaced(t *testing.T) {
	f := newFixture(t, "p")
	f.run(t, f.page.Init())
	f.plugins.createErr = errors.New("npm exploded")

	f.run(t, f.page.Install())

	v := f.page.View()
	assert.Empty(t, v.Error)
	assert.Empty(t, v.ValidationError)
	assert.Equal(t, ControlInstall, v.Control)
	assert.False(t, v.Installing)
}

func TestPage_UninstallDeclined(t *testing.T) {
	f := newFixture(t, "gatsby-plugin-sass", installed("gatsby-plugin-sass", `{}`))
	f.run(t, f.page.Init())
	f.rec.answer = false

	f.run(t, f.page.Uninstall())

	assert.Equal(t, []string{"Are you sure you want to uninstall gatsby-plugin-sass?"}, f.rec.prompts)
	assert.Empty(t, f.plugins.destroys)
	assert.Empty(t, f.rec.navigation)
	assert.True(t, f.page.IsInstalled())
}

func TestPage_UninstallConfirmed(t *testing.T) {
	f := newFixture(t, "gatsby-plugin-sass", installed("gatsby-plugin-sass", `{}`))
	f.run(t, f.page.Init())
	f.rec.answer = true

	f.run(t, f.page.Uninstall())

	assert.Equal(t, []string{"gatsby-plugin-sass"}, f.plugins.destroys)
	assert.Equal(t, []string{RootPath}, f.rec.navigation)
}

func TestPage_UninstallFailureStillNavigates(t *testing.T) {
	f := newFixture(t, "p", installed("p", `{}`))
	f.run(t, f.page.Init())
	f.rec.answer = true
	f.plugins.destroyErr = errors.New("boom")

	f.run(t, f.page.Uninstall())

	assert.Equal(t, []string{RootPath}, f.rec.navigation)
}

func TestPage_UninstallWithoutConfirmerDeclines(t *testing.T) {
	plugins := newFakePlugins(installed("p", `{}`))
	p := New("p", Deps{Plugins: plugins, Metadata: newFakeMetadata()})
	ctx := context.Background()
	require.NoError(t, Run(ctx, p, p.Init()...))

	require.NoError(t, Run(ctx, p, p.Uninstall()...))
	assert.Empty(t, plugins.destroys)
}

func TestPage_QueryErrorHidesEverything(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "network",
			err:  &graphql.CombinedError{NetworkError: errors.New("connection refused")},
			want: "connection refused",
		},
		{
			name: "server errors",
			err:  &graphql.CombinedError{GraphQLErrors: []graphql.GraphQLError{{Message: "a"}, {Message: "b"}}},
			want: "a | b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "p", installed("p", `{}`))
			f.plugins.getErr = tt.err
			f.metadata.items["p"] = &entity.PackageMetadata{Name: "p", Readme: "# p"}
			f.run(t, f.page.Init())

			assert.Equal(t, View{Name: "p", Error: tt.want}, f.page.View())
			assert.False(t, f.page.IsInstalled())
			assert.Nil(t, f.page.Install())
			assert.Nil(t, f.page.Uninstall())
			assert.Nil(t, f.page.Submit())
		})
	}
}

func TestPage_Metadata(t *testing.T) {
	f := newFixture(t, "p", installed("p", `{}`))
	f.metadata.items["p"] = &entity.PackageMetadata{Name: "p", RepositoryURL: "https://github.com/o/p", Readme: "# p"}
	f.run(t, f.page.Init())

	v := f.page.View()
	assert.Equal(t, "https://github.com/o/p", v.RepositoryURL)
	assert.True(t, v.HasReadme)
	assert.Equal(t, "# p", v.Readme)
}

func TestPage_MetadataFailureOnlyDegradesReadme(t *testing.T) {
	f := newFixture(t, "p", installed("p", `{}`))
	f.run(t, f.page.Init())

	v := f.page.View()
	assert.Empty(t, v.Error)
	assert.Equal(t, "https://ghub.io/p", v.RepositoryURL)
	assert.False(t, v.HasReadme)
	assert.Equal(t, NoReadme, v.Readme)
	assert.Equal(t, ControlUninstall, v.Control)
}

func TestPage_StaleCompletionsAreDropped(t *testing.T) {
	f := newFixture(t, "old", installed("old", `{"from":"old"}`), installed("new", `{"from":"new"}`))
	ctx := context.Background()

	oldCmds := f.page.Init()
	oldMsgs := make([]Msg, 0, len(oldCmds))
	for _, cmd := range oldCmds {
		oldMsgs = append(oldMsgs, cmd(ctx))
	}

	newCmds := f.page.SetName("new")
	f.run(t, newCmds)

	for _, msg := range oldMsgs {
		assert.Nil(t, f.page.Update(msg))
	}
	assert.Equal(t, "new", f.page.Name())
	draft, _ := f.page.Draft()
	assert.Equal(t, "{\n  \"from\": \"new\"\n}", draft)
}

func TestPage_OlderRefreshIsDropped(t *testing.T) {
	f := newFixture(t, "p", installed("p", `{"v":1}`))
	ctx := context.Background()
	f.run(t, f.page.Init())

	first := f.page.Refresh()[0](ctx)
	f.plugins.records["p"] = installed("p", `{"v":2}`)
	second := f.page.Refresh()[0](ctx)

	f.page.Update(second)
	f.page.Update(first)

	draft, _ := f.page.Draft()
	assert.Equal(t, "{\n  \"v\": 2\n}", draft)
}

func TestPage_SetNameSameNameIsNoop(t *testing.T) {
	f := newFixture(t, "p")
	assert.Nil(t, f.page.SetName("p"))
}

func TestPage_RefreshDoesNotClobberValidationError(t *testing.T) {
	f := newFixture(t, "p", installed("p", `{}`))
	f.run(t, f.page.Init())

	f.page.EditDraft("{")
	f.page.Submit()
	f.run(t, f.page.Refresh())

	assert.Error(t, f.page.ValidationError())
	draft, _ := f.page.Draft()
	assert.Equal(t, objlit.EmptyPlaceholder, draft, "a settled query resets the draft")
}

func TestRun_ContextCancelled(t *testing.T) {
	f := newFixture(t, "p")
	block := make(chan struct{})
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, f.page, func(context.Context) Msg {
		<-block
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
