package graphql

import (
	"context"
	"fmt"

	"github.com/kiosk404/pluginadm/internal/pluginadm/pkg/errno"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/repo"
	"github.com/kiosk404/pluginadm/pkg/graphql"
	"github.com/kiosk404/pluginadm/pkg/logger"
)

var _ repo.PluginRepository = (*PluginStore)(nil)

// PluginStore implements the PluginRepository interface over the GraphQL API.
//
// Errors are returned unwrapped so callers can present *graphql.CombinedError
// messages as they are.
type PluginStore struct {
	client *graphql.Client
}

// NewPluginStore creates a new GraphQL-backed PluginStore.
func NewPluginStore(client *graphql.Client) *PluginStore {
	return &PluginStore{client: client}
}

// Get retrieves a plugin record by name. A null record means not installed.
func (s *PluginStore) Get(ctx context.Context, name string) (*entity.Plugin, error) {
	if name == "" {
		return nil, errno.ErrEmptyName
	}

	var out struct {
		GatsbyPlugin *entity.Plugin `json:"gatsbyPlugin"`
	}
	err := s.client.Do(ctx, graphql.Request{
		Query:         getPluginQuery,
		OperationName: "GetGatsbyPlugin",
		Variables:     map[string]interface{}{"id": name},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.GatsbyPlugin, nil
}

// Create installs a plugin.
func (s *PluginStore) Create(ctx context.Context, name string) (*entity.Plugin, error) {
	if name == "" {
		return nil, errno.ErrEmptyName
	}
	logger.Info("[PluginStore] installing plugin %s", name)

	var out struct {
		CreateGatsbyPlugin *entity.Plugin `json:"createGatsbyPlugin"`
	}
	err := s.client.Do(ctx, graphql.Request{
		Query:         createPluginMutation,
		OperationName: "createGatsbyPlugin",
		Variables:     map[string]interface{}{"name": name},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.CreateGatsbyPlugin == nil {
		return nil, fmt.Errorf("create plugin %q: empty response", name)
	}
	return out.CreateGatsbyPlugin, nil
}

// UpdateOptions replaces the options of an installed plugin.
func (s *PluginStore) UpdateOptions(ctx context.Context, name string, options map[string]interface{}) (*entity.Plugin, error) {
	if name == "" {
		return nil, errno.ErrEmptyName
	}
	logger.Info("[PluginStore] updating options of plugin %s", name)

	var out struct {
		UpdateGatsbyPlugin *entity.Plugin `json:"updateGatsbyPlugin"`
	}
	err := s.client.Do(ctx, graphql.Request{
		Query:         updatePluginMutation,
		OperationName: "updateGatsbyPlugin",
		Variables:     map[string]interface{}{"name": name, "options": options},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.UpdateGatsbyPlugin, nil
}

// Destroy removes the npm dependency and the plugin record.
func (s *PluginStore) Destroy(ctx context.Context, name string) error {
	if name == "" {
		return errno.ErrEmptyName
	}
	logger.Info("[PluginStore] uninstalling plugin %s", name)

	return s.client.Do(ctx, graphql.Request{
		Query:         destroyPluginMutation,
		OperationName: "destroyGatsbyPlugin",
		Variables:     map[string]interface{}{"name": name},
	}, nil)
}
