package entity

import (
	"github.com/bytedance/gg/gptr"
	"github.com/kiosk404/pluginadm/pkg/utils/json"
)

// Plugin is the server-side record of an installed plugin.
type Plugin struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	// Options is the configuration object exactly as the server encoded it,
	// so that formatting keeps the server's key order.
	Options json.RawMessage `json:"options,omitempty"`
	Readme  *string         `json:"readme,omitempty"`
}

// DescriptionText returns the description, or "" when the server sent none.
func (p *Plugin) DescriptionText() string {
	if p == nil {
		return ""
	}
	return gptr.Indirect(p.Description)
}

// Installed reports whether p describes an installed plugin.
func (p *Plugin) Installed() bool {
	return p != nil && p.Name != ""
}
