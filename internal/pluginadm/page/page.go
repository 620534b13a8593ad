// Package page is the state machine behind the plugin page. It is shared by
// the terminal and the web front ends.
//
// A Page is driven by three kinds of input: user actions (SetName, EditDraft,
// Submit, Install, Uninstall), and completions of the commands those actions
// return, which are fed back through Update. Commands do the I/O and run off
// the UI loop; Update and the action methods only touch state, so a Page needs
// no locking as long as one goroutine owns it. It is not safe for concurrent use.
package page

import (
	"context"
	"fmt"

	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/repo"
	"github.com/kiosk404/pluginadm/pkg/logger"
	"github.com/kiosk404/pluginadm/pkg/objlit"
)

// Msg is the completion of a Cmd.
type Msg interface{}

// Cmd is an asynchronous effect. Its result must be passed to Page.Update.
type Cmd func(ctx context.Context) Msg

// Confirmer asks the user a yes/no question and blocks until answered. It is
// always called from a Cmd, never from the UI loop.
type Confirmer func(ctx context.Context, prompt string) bool

// Navigator moves the user to another location. It is called from Update.
type Navigator func(path string)

// RootPath is where the user is sent after an uninstall.
const RootPath = "/"

// Deps are the collaborators of a Page.
type Deps struct {
	Plugins  repo.PluginRepository
	Metadata repo.MetadataRepository
	// Confirm defaults to declining everything.
	Confirm Confirmer
	// Navigate defaults to doing nothing.
	Navigate Navigator
	// RepositoryFallback is the link base used when the registry reports no
	// repository; empty means https://ghub.io.
	RepositoryFallback string
}

// Page is the state of the plugin page for one plugin name.
type Page struct {
	deps Deps

	name string
	// gen changes with the name; completions from an older generation are dropped.
	gen uint64

	pluginSeq     uint64
	pluginLoading bool
	pluginErr     error
	plugin        *entity.Plugin

	metaSeq     uint64
	metaLoading bool
	metaErr     error
	meta        *entity.PackageMetadata

	// draft is nil until the first plugin fetch settles.
	draft         *string
	validationErr error

	installing   bool
	updating     bool
	confirming   bool
	uninstalling bool
}

// New creates a page for name. Nothing is fetched until Init is called and its
// commands are run.
func New(name string, deps Deps) *Page {
	if deps.Confirm == nil {
		deps.Confirm = func(context.Context, string) bool { return false }
	}
	if deps.Navigate == nil {
		deps.Navigate = func(string) {}
	}
	return &Page{deps: deps, name: name}
}

// Name is the plugin the page currently shows.
func (p *Page) Name() string {
	return p.name
}

// Init starts the plugin query and the metadata lookup.
func (p *Page) Init() []Cmd {
	return []Cmd{p.fetchPlugin(), p.fetchMetadata()}
}

// SetName switches the page to another plugin. All state is reset and late
// completions for the previous name are ignored.
func (p *Page) SetName(name string) []Cmd {
	if name == p.name {
		return nil
	}
	logger.DebugX("page", "switching from %q to %q", p.name, name)

	deps, gen := p.deps, p.gen+1
	*p = Page{deps: deps, name: name, gen: gen, pluginSeq: p.pluginSeq, metaSeq: p.metaSeq}
	return p.Init()
}

// Refresh re-issues the plugin query.
func (p *Page) Refresh() []Cmd {
	return []Cmd{p.fetchPlugin()}
}

// EditDraft replaces the options draft.
func (p *Page) EditDraft(text string) {
	p.draft = &text
}

// Draft returns the options draft and whether it has been initialised.
func (p *Page) Draft() (string, bool) {
	if p.draft == nil {
		return "", false
	}
	return *p.draft, true
}

// ValidationError is the last parse or update failure of Submit, or nil.
func (p *Page) ValidationError() error {
	return p.validationErr
}

// IsInstalled reports whether the plugin query finished without error and
// returned a record with a name.
func (p *Page) IsInstalled() bool {
	return !p.pluginLoading && p.pluginErr == nil && p.plugin.Installed()
}

// Submit parses the draft and, if it is a plain object, saves it as the
// plugin's options. It does nothing unless the plugin is installed and no
// save is in flight.
func (p *Page) Submit() []Cmd {
	if !p.IsInstalled() || p.updating {
		return nil
	}
	p.validationErr = nil

	text, _ := p.Draft()
	options, err := objlit.Parse(text)
	if err != nil {
		p.validationErr = err
		return nil
	}

	p.updating = true
	name, gen, plugins := p.name, p.gen, p.deps.Plugins
	return []Cmd{func(ctx context.Context) Msg {
		_, err := plugins.UpdateOptions(ctx, name, options)
		return optionsUpdatedMsg{gen: gen, err: err}
	}}
}

// Install installs the plugin. It is offered only once the plugin query has
// settled and found no record.
func (p *Page) Install() []Cmd {
	if p.pluginLoading || p.pluginErr != nil || p.plugin.Installed() || p.installing {
		return nil
	}

	p.installing = true
	name, gen, plugins := p.name, p.gen, p.deps.Plugins
	return []Cmd{func(ctx context.Context) Msg {
		_, err := plugins.Create(ctx, name)
		return installedMsg{gen: gen, err: err}
	}}
}

// ConfirmPrompt is the question asked before uninstalling name.
func ConfirmPrompt(name string) string {
	return fmt.Sprintf("Are you sure you want to uninstall %s?", name)
}

// Uninstall asks for confirmation and, if given, removes the plugin and its
// dependency, then navigates to RootPath whatever the outcome.
func (p *Page) Uninstall() []Cmd {
	if !p.IsInstalled() || p.confirming || p.uninstalling {
		return nil
	}

	p.confirming = true
	gen, confirm, prompt := p.gen, p.deps.Confirm, ConfirmPrompt(p.name)
	return []Cmd{func(ctx context.Context) Msg {
		return uninstallConfirmedMsg{gen: gen, ok: confirm(ctx, prompt)}
	}}
}

func (p *Page) fetchPlugin() Cmd {
	p.pluginSeq++
	p.pluginLoading = true

	name, gen, seq, plugins := p.name, p.gen, p.pluginSeq, p.deps.Plugins
	return func(ctx context.Context) Msg {
		record, err := plugins.Get(ctx, name)
		return pluginFetchedMsg{gen: gen, seq: seq, plugin: record, err: err}
	}
}

func (p *Page) fetchMetadata() Cmd {
	p.metaSeq++
	p.metaLoading = true

	name, gen, seq, metadata := p.name, p.gen, p.metaSeq, p.deps.Metadata
	return func(ctx context.Context) Msg {
		meta, err := metadata.Lookup(ctx, name)
		return metadataFetchedMsg{gen: gen, seq: seq, meta: meta, err: err}
	}
}

func (p *Page) destroy() Cmd {
	name, gen, plugins := p.name, p.gen, p.deps.Plugins
	return func(ctx context.Context) Msg {
		return uninstalledMsg{gen: gen, err: plugins.Destroy(ctx, name)}
	}
}

// resetDraft sets the draft to the pretty print of the current options.
func (p *Page) resetDraft() {
	var raw []byte
	if p.plugin != nil {
		raw = p.plugin.Options
	}
	text, err := objlit.Format(raw)
	if err != nil {
		logger.WarnX("page", "options of %s are not valid JSON: %v", p.name, err)
		text = string(raw)
	}
	p.draft = &text
}
