package util

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/pluginadm/internal/pluginadm/pkg/errno"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
)

func TestPluginName(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{name: "plain", args: []string{"gatsby-plugin-sass"}, want: "gatsby-plugin-sass"},
		{name: "page path", args: []string{"/plugins/gatsby-plugin-sass"}, want: "gatsby-plugin-sass"},
		{name: "trailing slash", args: []string{"/plugins/gatsby-plugin-sass/"}, want: "gatsby-plugin-sass"},
		{name: "scoped", args: []string{"@acme/gatsby-plugin-x"}, want: "@acme/gatsby-plugin-x"},
		{name: "scoped page path", args: []string{"/plugins/@acme/gatsby-plugin-x"}, want: "@acme/gatsby-plugin-x"},
		{name: "spaces", args: []string{"  gatsby-plugin-sass "}, want: "gatsby-plugin-sass"},
		{name: "missing", args: nil, wantErr: errno.ErrEmptyName},
		{name: "blank", args: []string{"/plugins/"}, wantErr: errno.ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PluginName(tt.args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := PluginName([]string{"a", "b"})
	assert.Error(t, err)
}

type stubPlugins struct {
	getErr error
}

func (s stubPlugins) Get(context.Context, string) (*entity.Plugin, error) { return nil, s.getErr }
func (s stubPlugins) Create(context.Context, string) (*entity.Plugin, error) {
	return nil, errors.New("unexpected")
}
func (s stubPlugins) UpdateOptions(context.Context, string, map[string]interface{}) (*entity.Plugin, error) {
	return nil, errors.New("unexpected")
}
func (s stubPlugins) Destroy(context.Context, string) error { return errors.New("unexpected") }

type stubMetadata struct{}

func (stubMetadata) Lookup(context.Context, string) (*entity.PackageMetadata, error) {
	return nil, errno.ErrPackageNotFound
}

func TestLoadPage(t *testing.T) {
	f := &StaticFactory{Plugins: stubPlugins{}, Metadata: stubMetadata{}}

	p, err := LoadPage(context.Background(), f, "gatsby-plugin-foo", nil, nil)
	require.NoError(t, err)
	assert.False(t, p.IsInstalled())
	assert.Equal(t, "gatsby-plugin-foo", p.Name())
}

func TestLoadPage_QueryError(t *testing.T) {
	f := &StaticFactory{Plugins: stubPlugins{getErr: errors.New("connection refused")}, Metadata: stubMetadata{}}

	_, err := LoadPage(context.Background(), f, "gatsby-plugin-foo", nil, nil)
	assert.EqualError(t, err, "connection refused")
}

func TestCheckErr(t *testing.T) {
	var gotMsg string
	var gotCode int
	BehaviorOnFatal(func(msg string, code int) {
		gotMsg, gotCode = msg, code
	})
	defer DefaultBehaviorOnFatal()

	CheckErr(nil)
	assert.Empty(t, gotMsg)

	CheckErr(errors.New("boom"))
	assert.Equal(t, "error: boom", gotMsg)
	assert.Equal(t, 1, gotCode)

	CheckErr(errors.New("error: already prefixed"))
	assert.Equal(t, "error: already prefixed", gotMsg)
}

func TestUsageErrorf(t *testing.T) {
	err := UsageErrorf("pluginadm configure", "missing %s", "--data")
	assert.EqualError(t, err, "missing --data\nSee 'pluginadm configure -h' for help and examples")
}
