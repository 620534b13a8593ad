package page

import (
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/store/npm"
	"github.com/kiosk404/pluginadm/pkg/graphql"
)

// Control is the action control shown next to the heading.
type Control int

const (
	// ControlSpinner is shown while the plugin query is loading.
	ControlSpinner Control = iota
	ControlInstall
	ControlUninstall
)

func (c Control) String() string {
	switch c {
	case ControlInstall:
		return "Install"
	case ControlUninstall:
		return "Uninstall"
	default:
		return "Loading"
	}
}

const (
	NoReadme = "No readme found."
	SaveHint = "Install this plugin in order to save"
	// OptionsHelp is shown above the draft editor.
	OptionsHelp = "After installing this plugin, you can configure it here. " +
		"Changes made here are applied to the gatsby-config.js file."
)

// View is a snapshot of everything a front end needs to draw the page.
type View struct {
	Name string
	// Error is the page level error. When it is set, nothing but the error is
	// rendered.
	Error string

	Description   string
	RepositoryURL string

	Control      Control
	Installing   bool
	Confirming   bool
	Uninstalling bool

	ReadmeLoading bool
	// Readme is markdown, or NoReadme when HasReadme is false.
	Readme    string
	HasReadme bool

	// DraftLoading is true until the draft has been initialised.
	DraftLoading bool
	Draft        string
	// ValidationError is the message of the last failed save, without prefix.
	ValidationError string

	SaveEnabled bool
	Saving      bool
	// SaveHint is set when saving is impossible.
	SaveHint string
}

// View renders the current state.
func (p *Page) View() View {
	v := View{Name: p.name}
	if p.pluginErr != nil {
		v.Error = graphql.Message(p.pluginErr)
		return v
	}

	v.Description = p.plugin.DescriptionText()
	v.RepositoryURL = npm.FallbackURL(p.deps.RepositoryFallback, p.name)
	if p.meta != nil && p.meta.RepositoryURL != "" {
		v.RepositoryURL = p.meta.RepositoryURL
	}

	installed := p.IsInstalled()
	switch {
	case p.pluginLoading:
		v.Control = ControlSpinner
	case installed:
		v.Control = ControlUninstall
	default:
		v.Control = ControlInstall
	}
	v.Installing = p.installing
	v.Confirming = p.confirming
	v.Uninstalling = p.uninstalling

	v.ReadmeLoading = p.metaLoading
	if !p.metaLoading {
		if p.metaErr == nil && p.meta.HasReadme() {
			v.Readme, v.HasReadme = p.meta.Readme, true
		} else {
			v.Readme = NoReadme
		}
	}

	draft, ok := p.Draft()
	v.Draft, v.DraftLoading = draft, !ok
	v.ValidationError = graphql.Message(p.validationErr)

	v.SaveEnabled = installed
	v.Saving = p.updating
	if !installed {
		v.SaveHint = SaveHint
	}
	return v
}
