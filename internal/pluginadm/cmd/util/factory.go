package util

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/kiosk404/pluginadm/internal/pluginadm/options"
	"github.com/kiosk404/pluginadm/internal/pluginadm/page"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/repo"
)

// Factory provides the collaborators subcommands need. Commands receive it at
// construction time but must only call it from Run, after the configuration
// has been loaded.
type Factory interface {
	// Options is the loaded configuration.
	Options() *options.Options
	// PluginRepository is the GraphQL-backed plugin store.
	PluginRepository() (repo.PluginRepository, error)
	// MetadataRepository is the (possibly cached) registry client.
	MetadataRepository() (repo.MetadataRepository, error)
	// PageDeps bundles the repositories with the given capabilities.
	PageDeps(confirm page.Confirmer, navigate page.Navigator) (page.Deps, error)
	// Close releases what the factory opened.
	Close() error
}

type defaultFactory struct {
	opts *options.Options

	once   sync.Once
	module *plugin.Module
	err    error
}

// NewFactory returns a factory reading its configuration from opts.
func NewFactory(opts *options.Options) Factory {
	return &defaultFactory{opts: opts}
}

func (f *defaultFactory) Options() *options.Options {
	return f.opts
}

func (f *defaultFactory) pluginModule() (*plugin.Module, error) {
	f.once.Do(func() {
		cfg := &plugin.Config{
			GraphQLOptions:  f.opts.GraphQLOptions,
			RegistryOptions: f.opts.RegistryOptions,
		}
		f.module, f.err = cfg.Complete().New(context.Background())
	})
	return f.module, f.err
}

func (f *defaultFactory) PluginRepository() (repo.PluginRepository, error) {
	m, err := f.pluginModule()
	if err != nil {
		return nil, err
	}
	return m.Plugins, nil
}

func (f *defaultFactory) MetadataRepository() (repo.MetadataRepository, error) {
	m, err := f.pluginModule()
	if err != nil {
		return nil, err
	}
	return m.Metadata, nil
}

func (f *defaultFactory) PageDeps(confirm page.Confirmer, navigate page.Navigator) (page.Deps, error) {
	m, err := f.pluginModule()
	if err != nil {
		return page.Deps{}, err
	}
	return page.Deps{
		Plugins:            m.Plugins,
		Metadata:           m.Metadata,
		Confirm:            confirm,
		Navigate:           navigate,
		RepositoryFallback: m.RepositoryFallback,
	}, nil
}

func (f *defaultFactory) Close() error {
	if f.module == nil {
		return nil
	}
	return f.module.Close()
}

// fatalErrHandler is replaced in tests.
var fatalErrHandler = fatal

// CheckErr prints a user friendly error to STDERR and exits with a non-zero
// exit code.
func CheckErr(err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "error: ") {
		msg = fmt.Sprintf("error: %s", msg)
	}
	fatalErrHandler(msg, 1)
}

func fatal(msg string, code int) {
	if len(msg) > 0 {
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		fmt.Fprint(os.Stderr, color.RedString(msg))
	}
	os.Exit(code)
}

// BehaviorOnFatal allows you to override the default behavior when a fatal
// error occurs, which is to call os.Exit(code).
func BehaviorOnFatal(f func(string, int)) {
	fatalErrHandler = f
}

// DefaultBehaviorOnFatal restores the os.Exit behavior.
func DefaultBehaviorOnFatal() {
	fatalErrHandler = fatal
}

// UsageErrorf returns an error pointing the user at the command's help.
func UsageErrorf(cmdPath string, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s\nSee '%s -h' for help and examples", msg, cmdPath)
}
