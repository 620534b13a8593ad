package options

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions_ValidDefaults(t *testing.T) {
	o := NewOptions()
	require.NoError(t, o.Complete())
	assert.Empty(t, o.Validate())
	assert.Equal(t, "http://localhost:50400/graphql", o.GraphQLOptions.Endpoint)
}

func TestOptions_ValidateCollectsAllErrors(t *testing.T) {
	o := NewOptions()
	o.GraphQLOptions.Endpoint = "not a url"
	o.ServerOptions.BindAddress = "nope"
	o.LogOptions.Format = "xml"

	errs := o.Validate()
	assert.Len(t, errs, 3)
}

func newBoundViper(t *testing.T, o *Options, args ...string) *viper.Viper {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fss := o.Flags()
	fss.AddTo(fs)
	require.NoError(t, fs.Parse(args))

	v := viper.New()
	require.NoError(t, v.BindPFlags(fs))
	return v
}

func TestLoadConfig_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "pluginadm.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
graphql:
  endpoint: http://example.test/graphql
  timeout: 5s
registry:
  cache:
    enabled: true
    ttl: 10m
log:
  level: debug
`), 0600))
	t.Setenv("PLUGINADM_SERVER_BIND_ADDRESS", "0.0.0.0:9000")

	o := NewOptions()
	v := newBoundViper(t, o, "--log.level=warn")
	require.NoError(t, LoadConfig(v, cfg, "pluginadm"))
	require.NoError(t, o.Load(v))

	assert.Equal(t, "http://example.test/graphql", o.GraphQLOptions.Endpoint)
	assert.Equal(t, 5*time.Second, o.GraphQLOptions.Timeout)
	assert.True(t, o.RegistryOptions.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, o.RegistryOptions.Cache.TTL)
	assert.Equal(t, "0.0.0.0:9000", o.ServerOptions.BindAddress)
	assert.Equal(t, "warn", o.LogOptions.Level, "changed flags win over the file")
	assert.Equal(t, "https://registry.npmjs.org", o.RegistryOptions.URL, "untouched defaults survive")
}

func TestLoadConfig_MissingFiles(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	assert.NoError(t, LoadConfig(viper.New(), "", "pluginadm-missing"))
	assert.Error(t, LoadConfig(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"), "pluginadm"))
}
