package repo

import (
	"context"

	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
)

// PluginRepository is the persistence interface for plugin records. The
// records live in the site's GraphQL backend.
type PluginRepository interface {
	// Get returns the record for name, or nil when the plugin is not installed.
	Get(ctx context.Context, name string) (*entity.Plugin, error)
	// Create installs the plugin and returns the new record.
	Create(ctx context.Context, name string) (*entity.Plugin, error)
	// UpdateOptions replaces the plugin's options.
	UpdateOptions(ctx context.Context, name string, options map[string]interface{}) (*entity.Plugin, error)
	// Destroy removes the production dependency and the plugin record in one request.
	Destroy(ctx context.Context, name string) error
}
