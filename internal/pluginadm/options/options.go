package options

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	genericoptions "github.com/kiosk404/pluginadm/internal/pkg/options"
	"github.com/kiosk404/pluginadm/pkg/utils/cliflag"
	"github.com/kiosk404/pluginadm/pkg/utils/json"
)

// Options is the complete configuration of pluginadm.
type Options struct {
	GraphQLOptions  *genericoptions.GraphQLOptions  `json:"graphql"  mapstructure:"graphql"`
	RegistryOptions *genericoptions.RegistryOptions `json:"registry" mapstructure:"registry"`
	ServerOptions   *genericoptions.ServerOptions   `json:"server"   mapstructure:"server"`
	LogOptions      *genericoptions.LogOptions      `json:"log"      mapstructure:"log"`
}

func NewOptions() *Options {
	return &Options{
		GraphQLOptions:  genericoptions.NewGraphQLOptions(),
		RegistryOptions: genericoptions.NewRegistryOptions(),
		ServerOptions:   genericoptions.NewServerOptions(),
		LogOptions:      genericoptions.NewLogOptions(),
	}
}

func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.GraphQLOptions.AddFlags(fss.FlagSet("graphql"))
	o.RegistryOptions.AddFlags(fss.FlagSet("registry"))
	o.ServerOptions.AddFlags(fss.FlagSet("server"))
	o.LogOptions.AddFlags(fss.FlagSet("log"))
	return fss
}

// Load overlays the values known to v (config file, environment, changed
// flags) onto o.
func (o *Options) Load(v *viper.Viper) error {
	if err := v.Unmarshal(o); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}

// Complete set default Options.
func (o *Options) Complete() error {
	o.GraphQLOptions.Endpoint = strings.TrimSpace(o.GraphQLOptions.Endpoint)
	o.RegistryOptions.URL = strings.TrimRight(strings.TrimSpace(o.RegistryOptions.URL), "/")
	o.RegistryOptions.RepositoryFallback = strings.TrimRight(o.RegistryOptions.RepositoryFallback, "/")
	o.LogOptions.Level = strings.ToLower(o.LogOptions.Level)
	o.LogOptions.Format = strings.ToLower(o.LogOptions.Format)
	return nil
}

// Validate checks every option group and returns all problems found.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.GraphQLOptions.Validate()...)
	errs = append(errs, o.RegistryOptions.Validate()...)
	errs = append(errs, o.ServerOptions.Validate()...)
	errs = append(errs, o.LogOptions.Validate()...)
	return errs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}
