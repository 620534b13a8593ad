package page

import (
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
	"github.com/kiosk404/pluginadm/pkg/logger"
)

type pluginFetchedMsg struct {
	gen, seq uint64
	plugin   *entity.Plugin
	err      error
}

type metadataFetchedMsg struct {
	gen, seq uint64
	meta     *entity.PackageMetadata
	err      error
}

type optionsUpdatedMsg struct {
	gen uint64
	err error
}

type installedMsg struct {
	gen uint64
	err error
}

type uninstallConfirmedMsg struct {
	gen uint64
	ok  bool
}

type uninstalledMsg struct {
	gen uint64
	err error
}

// Update applies the completion of a command and returns follow-up commands.
// Messages it does not know are ignored.
func (p *Page) Update(msg Msg) []Cmd {
	switch msg := msg.(type) {
	case pluginFetchedMsg:
		if msg.gen != p.gen || msg.seq != p.pluginSeq {
			logger.DebugX("page", "dropping stale plugin result")
			return nil
		}
		p.pluginLoading = false
		p.pluginErr = msg.err
		if msg.err != nil {
			p.plugin = nil
			logger.WarnX("page", "query for %s failed: %v", p.name, msg.err)
			if p.draft == nil {
				p.resetDraft()
			}
			return nil
		}
		p.plugin = msg.plugin
		p.resetDraft()

	case metadataFetchedMsg:
		if msg.gen != p.gen || msg.seq != p.metaSeq {
			return nil
		}
		p.metaLoading = false
		p.meta, p.metaErr = msg.meta, msg.err
		if msg.err != nil {
			logger.DebugX("page", "no registry metadata for %s: %v", p.name, msg.err)
		}

	case optionsUpdatedMsg:
		if msg.gen != p.gen {
			return nil
		}
		p.updating = false
		if msg.err != nil {
			p.validationErr = msg.err
			return nil
		}
		logger.InfoX("page", "saved options of %s", p.name)
		return []Cmd{p.fetchPlugin()}

	case installedMsg:
		if msg.gen != p.gen {
			return nil
		}
		p.installing = false
		if msg.err != nil {
			logger.ErrorX("page", "install %s failed: %v", p.name, msg.err)
			return nil
		}
		logger.InfoX("page", "installed %s", p.name)
		return []Cmd{p.fetchPlugin()}

	case uninstallConfirmedMsg:
		if msg.gen != p.gen {
			return nil
		}
		p.confirming = false
		if !msg.ok {
			logger.DebugX("page", "uninstall of %s declined", p.name)
			return nil
		}
		p.uninstalling = true
		return []Cmd{p.destroy()}

	case uninstalledMsg:
		if msg.gen != p.gen {
			return nil
		}
		p.uninstalling = false
		if msg.err != nil {
			logger.ErrorX("page", "uninstall %s failed: %v", p.name, msg.err)
		} else {
			logger.InfoX("page", "uninstalled %s", p.name)
		}
		p.deps.Navigate(RootPath)
	}
	return nil
}
