package plugin

import (
	"context"
	"fmt"
	"net/http"

	genericoptions "github.com/kiosk404/pluginadm/internal/pkg/options"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/repo"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/store/boltdb"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/store/graphql"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/store/npm"
	gql "github.com/kiosk404/pluginadm/pkg/graphql"
	"github.com/kiosk404/pluginadm/pkg/logger"
)

// Config holds the configuration for the plugin module.
type Config struct {
	GraphQLOptions  *genericoptions.GraphQLOptions
	RegistryOptions *genericoptions.RegistryOptions
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.GraphQLOptions == nil {
		c.GraphQLOptions = genericoptions.NewGraphQLOptions()
	}
	if c.RegistryOptions == nil {
		c.RegistryOptions = genericoptions.NewRegistryOptions()
	}
	return CompletedConfig{c}
}

// Module holds the repositories the plugin page works against.
type Module struct {
	Plugins  repo.PluginRepository
	Metadata repo.MetadataRepository
	// RepositoryFallback is the link base used when a package reports no repository.
	RepositoryFallback string

	db *boltdb.DB
}

// New creates the plugin module from a completed config.
// This follows the K8S-style: Config → Complete() → New() pattern.
func (c CompletedConfig) New(_ context.Context) (*Module, error) {
	logger.Info("[Plugin] creating plugin module (graphql=%s, registry=%s)",
		c.GraphQLOptions.Endpoint, c.RegistryOptions.URL)

	client := gql.NewClient(c.GraphQLOptions.Endpoint, &http.Client{Timeout: c.GraphQLOptions.Timeout})
	registry := npm.NewRegistry(c.RegistryOptions.URL, &http.Client{Timeout: c.RegistryOptions.Timeout})

	m := &Module{
		Plugins:            graphql.NewPluginStore(client),
		Metadata:           registry,
		RepositoryFallback: c.RegistryOptions.RepositoryFallback,
	}

	if cache := c.RegistryOptions.Cache; cache != nil && cache.Enabled {
		db, err := boltdb.Open(cache.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open metadata cache: %w", err)
		}
		m.db = db
		m.Metadata = boltdb.NewCachedRegistry(registry, boltdb.NewMetadataCache(db), cache.TTL)
		logger.Info("[Plugin] metadata cache enabled at %s (ttl=%s)", cache.Path, cache.TTL)
	}

	return m, nil
}

// Close releases the metadata cache, if any.
func (m *Module) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}
