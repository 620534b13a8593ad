// Package testing provides in-memory repositories for command tests.
package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/jinzhu/copier"

	"github.com/kiosk404/pluginadm/internal/pluginadm/cmd/util"
	"github.com/kiosk404/pluginadm/internal/pluginadm/options"
	"github.com/kiosk404/pluginadm/internal/pluginadm/pkg/errno"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/repo"
	"github.com/kiosk404/pluginadm/pkg/utils/json"
)

var (
	_ repo.PluginRepository   = (*Plugins)(nil)
	_ repo.MetadataRepository = (*Metadata)(nil)
)

// Plugins is an in-memory PluginRepository.
type Plugins struct {
	mu      sync.Mutex
	records map[string]*entity.Plugin

	GetErr     error
	CreateErr  error
	UpdateErr  error
	DestroyErr error

	Creates  []string
	Updates  []map[string]interface{}
	Destroys []string
}

// NewPlugins returns a store holding records.
func NewPlugins(records ...*entity.Plugin) *Plugins {
	p := &Plugins{records: map[string]*entity.Plugin{}}
	for _, r := range records {
		p.records[r.Name] = r
	}
	return p
}

// Installed returns a record for name with the given options.
func Installed(name, options string) *entity.Plugin {
	return &entity.Plugin{ID: name, Name: name, Options: json.RawMessage(options)}
}

func (p *Plugins) Get(_ context.Context, name string) (*entity.Plugin, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.GetErr != nil {
		return nil, p.GetErr
	}
	rec, ok := p.records[name]
	if !ok {
		return nil, nil
	}
	return clone(rec)
}

// clone deep copies rec so callers never share its options bytes.
func clone(rec *entity.Plugin) (*entity.Plugin, error) {
	out := &entity.Plugin{}
	if err := copier.CopyWithOption(out, rec, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Plugins) Create(_ context.Context, name string) (*entity.Plugin, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Creates = append(p.Creates, name)
	if p.CreateErr != nil {
		return nil, p.CreateErr
	}
	rec := Installed(name, `{}`)
	p.records[name] = rec
	return clone(rec)
}

func (p *Plugins) UpdateOptions(_ context.Context, name string, options map[string]interface{}) (*entity.Plugin, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Updates = append(p.Updates, options)
	if p.UpdateErr != nil {
		return nil, p.UpdateErr
	}
	rec, ok := p.records[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, errno.ErrNotInstalled)
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	rec.Options = raw
	return clone(rec)
}

func (p *Plugins) Destroy(_ context.Context, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Destroys = append(p.Destroys, name)
	if p.DestroyErr != nil {
		return p.DestroyErr
	}
	delete(p.records, name)
	return nil
}

// Has reports whether name is installed.
func (p *Plugins) Has(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.records[name]
	return ok
}

// Metadata is an in-memory MetadataRepository.
type Metadata struct {
	mu    sync.Mutex
	items map[string]*entity.PackageMetadata
}

// NewMetadata returns a registry knowing items.
func NewMetadata(items ...*entity.PackageMetadata) *Metadata {
	m := &Metadata{items: map[string]*entity.PackageMetadata{}}
	for _, it := range items {
		m.items[it.Name] = it
	}
	return m
}

func (m *Metadata) Lookup(_ context.Context, name string) (*entity.PackageMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if it, ok := m.items[name]; ok {
		return it, nil
	}
	return nil, fmt.Errorf("%s: %w", name, errno.ErrPackageNotFound)
}

// NewFactory returns a util.Factory over the given repositories.
func NewFactory(plugins *Plugins, metadata *Metadata) *util.StaticFactory {
	return &util.StaticFactory{Opts: options.NewOptions(), Plugins: plugins, Metadata: metadata}
}
