package util

import (
	"github.com/kiosk404/pluginadm/internal/pluginadm/options"
	"github.com/kiosk404/pluginadm/internal/pluginadm/page"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/repo"
)

// StaticFactory is a Factory over fixed repositories, for tests and embedding.
type StaticFactory struct {
	Opts     *options.Options
	Plugins  repo.PluginRepository
	Metadata repo.MetadataRepository
}

var _ Factory = (*StaticFactory)(nil)

func (f *StaticFactory) Options() *options.Options {
	if f.Opts == nil {
		f.Opts = options.NewOptions()
	}
	return f.Opts
}

func (f *StaticFactory) PluginRepository() (repo.PluginRepository, error) {
	return f.Plugins, nil
}

func (f *StaticFactory) MetadataRepository() (repo.MetadataRepository, error) {
	return f.Metadata, nil
}

func (f *StaticFactory) PageDeps(confirm page.Confirmer, navigate page.Navigator) (page.Deps, error) {
	return page.Deps{
		Plugins:            f.Plugins,
		Metadata:           f.Metadata,
		Confirm:            confirm,
		Navigate:           navigate,
		RepositoryFallback: f.Options().RegistryOptions.RepositoryFallback,
	}, nil
}

func (f *StaticFactory) Close() error {
	return nil
}
