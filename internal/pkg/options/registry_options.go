package options

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/kiosk404/pluginadm/pkg/utils/homedir"
)

// RegistryOptions configures package metadata lookups.
type RegistryOptions struct {
	URL     string        `json:"url"     mapstructure:"url"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
	// RepositoryFallback is the base of the link shown when a package reports
	// no repository. The package name is appended.
	RepositoryFallback string `json:"repository-fallback" mapstructure:"repository-fallback"`
	Cache              *CacheOptions `json:"cache" mapstructure:"cache"`
}

// CacheOptions configures the on-disk metadata cache.
type CacheOptions struct {
	Enabled bool          `json:"enabled" mapstructure:"enabled"`
	Path    string        `json:"path"    mapstructure:"path"`
	TTL     time.Duration `json:"ttl"     mapstructure:"ttl"`
}

// NewRegistryOptions returns defaults pointing at the public npm registry.
func NewRegistryOptions() *RegistryOptions {
	return &RegistryOptions{
		URL:                "https://registry.npmjs.org",
		Timeout:            15 * time.Second,
		RepositoryFallback: "https://ghub.io",
		Cache: &CacheOptions{
			Enabled: false,
			Path:    filepath.Join(homedir.HomeDir(), ".pluginadm", "cache.db"),
			TTL:     time.Hour,
		},
	}
}

// Validate checks RegistryOptions fields.
func (o *RegistryOptions) Validate() []error {
	var errs []error
	if u, err := url.Parse(o.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("--registry.url %q is not an absolute URL", o.URL))
	}
	if o.RepositoryFallback == "" {
		errs = append(errs, fmt.Errorf("--registry.repository-fallback is required"))
	}
	if o.Cache != nil && o.Cache.Enabled {
		if o.Cache.Path == "" {
			errs = append(errs, fmt.Errorf("--registry.cache.path is required when the cache is enabled"))
		}
		if o.Cache.TTL < 0 {
			errs = append(errs, fmt.Errorf("--registry.cache.ttl must not be negative"))
		}
	}
	return errs
}

// AddFlags adds flags for the registry options.
func (o *RegistryOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.URL, "registry.url", o.URL, "Base URL of the npm registry.")
	fs.DurationVar(&o.Timeout, "registry.timeout", o.Timeout, "Timeout of a registry request.")
	fs.StringVar(&o.RepositoryFallback, "registry.repository-fallback", o.RepositoryFallback,
		"Link base used when a package reports no repository.")
	fs.BoolVar(&o.Cache.Enabled, "registry.cache.enabled", o.Cache.Enabled, "Cache registry metadata on disk.")
	fs.StringVar(&o.Cache.Path, "registry.cache.path", o.Cache.Path, "Path of the metadata cache database.")
	fs.DurationVar(&o.Cache.TTL, "registry.cache.ttl", o.Cache.TTL, "How long cached metadata stays fresh. 0 keeps entries forever.")
}
