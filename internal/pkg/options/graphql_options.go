package options

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

// GraphQLOptions configures the connection to the site's GraphQL API.
type GraphQLOptions struct {
	// Endpoint is the full URL of the GraphQL endpoint.
	Endpoint string        `json:"endpoint" mapstructure:"endpoint"`
	Timeout  time.Duration `json:"timeout"  mapstructure:"timeout"`
}

// NewGraphQLOptions returns the defaults of a locally running admin server.
func NewGraphQLOptions() *GraphQLOptions {
	return &GraphQLOptions{
		Endpoint: "http://localhost:50400/graphql",
		Timeout:  30 * time.Second,
	}
}

// Validate checks GraphQLOptions fields.
func (o *GraphQLOptions) Validate() []error {
	var errs []error
	if u, err := url.Parse(o.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("--graphql.endpoint %q is not an absolute URL", o.Endpoint))
	}
	if o.Timeout < 0 {
		errs = append(errs, fmt.Errorf("--graphql.timeout must not be negative"))
	}
	return errs
}

// AddFlags adds flags for the GraphQL options.
func (o *GraphQLOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Endpoint, "graphql.endpoint", o.Endpoint, "URL of the site's GraphQL API.")
	fs.DurationVar(&o.Timeout, "graphql.timeout", o.Timeout, "Timeout of a single GraphQL request.")
}
