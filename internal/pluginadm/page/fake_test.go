package page

import (
	"context"
	"errors"
	"sync"

	"github.com/kiosk404/pluginadm/internal/pluginadm/pkg/errno"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
	"github.com/kiosk404/pluginadm/pkg/utils/json"
)

// fakePlugins is an in-memory PluginRepository.
type fakePlugins struct {
	mu      sync.Mutex
	records map[string]*entity.Plugin

	getErr     error
	createErr  error
	updateErr  error
	destroyErr error

	gets     int
	creates  []string
	updates  []map[string]interface{}
	destroys []string
}

func newFakePlugins(records ...*entity.Plugin) *fakePlugins {
	f := &fakePlugins{records: map[string]*entity.Plugin{}}
	for _, r := range records {
		f.records[r.Name] = r
	}
	return f
}

func (f *fakePlugins) Get(_ context.Context, name string) (*entity.Plugin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.records[name], nil
}

func (f *fakePlugins) Create(_ context.Context, name string) (*entity.Plugin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, name)
	if f.createErr != nil {
		return nil, f.createErr
	}
	rec := &entity.Plugin{ID: name, Name: name, Options: json.RawMessage(`{}`)}
	f.records[name] = rec
	return rec, nil
}

func (f *fakePlugins) UpdateOptions(_ context.Context, name string, options map[string]interface{}) (*entity.Plugin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, options)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	rec, ok := f.records[name]
	if !ok {
		return nil, errno.ErrNotInstalled
	}
	rec.Options = raw
	return rec, nil
}

func (f *fakePlugins) Destroy(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroys = append(f.destroys, name)
	if f.destroyErr != nil {
		return f.destroyErr
	}
	delete(f.records, name)
	return nil
}

// fakeMetadata is an in-memory MetadataRepository.
type fakeMetadata struct {
	mu    sync.Mutex
	items map[string]*entity.PackageMetadata
}

func newFakeMetadata(items ...*entity.PackageMetadata) *fakeMetadata {
	f := &fakeMetadata{items: map[string]*entity.PackageMetadata{}}
	for _, m := range items {
		f.items[m.Name] = m
	}
	return f
}

func (f *fakeMetadata) Lookup(_ context.Context, name string) (*entity.PackageMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.items[name]; ok {
		return m, nil
	}
	return nil, errors.New("package not found")
}

// recorder captures confirmation prompts and navigation.
type recorder struct {
	answer     bool
	prompts    []string
	navigation []string
}

func (r *recorder) confirm(_ context.Context, prompt string) bool {
	r.prompts = append(r.prompts, prompt)
	return r.answer
}

func (r *recorder) navigate(path string) {
	r.navigation = append(r.navigation, path)
}
