package boltdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/kiosk404/pluginadm/internal/pluginadm/pkg/errno"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/repo"
	"github.com/kiosk404/pluginadm/pkg/logger"
	"github.com/kiosk404/pluginadm/pkg/utils/json"
)

var _ repo.MetadataRepository = (*CachedRegistry)(nil)

type cacheEntry struct {
	Metadata  *entity.PackageMetadata `json:"metadata"`
	FetchedAt time.Time               `json:"fetchedAt"`
}

// MetadataCache stores package metadata keyed by package name.
type MetadataCache struct {
	db *bolt.DB
	// now is replaced in tests.
	now func() time.Time
}

// NewMetadataCache creates a new BoltDB-backed MetadataCache.
func NewMetadataCache(db *DB) *MetadataCache {
	return &MetadataCache{db: db.Bolt(), now: time.Now}
}

// Get returns the cached metadata for name if it is younger than ttl.
// A ttl <= 0 accepts entries of any age.
func (c *MetadataCache) Get(_ context.Context, name string, ttl time.Duration) (*entity.PackageMetadata, error) {
	var entry cacheEntry
	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketMetadataCache).Get([]byte(name))
		if data == nil {
			return errno.ErrCacheMiss
		}
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		if errors.Is(err, errno.ErrCacheMiss) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read cached metadata for %q: %w", name, err)
	}
	if entry.Metadata == nil || (ttl > 0 && c.now().Sub(entry.FetchedAt) > ttl) {
		return nil, errno.ErrCacheMiss
	}
	return entry.Metadata, nil
}

// Put stores meta under name, stamped with the current time.
func (c *MetadataCache) Put(_ context.Context, name string, meta *entity.PackageMetadata) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(cacheEntry{Metadata: meta, FetchedAt: c.now()})
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		return tx.Bucket(bucketMetadataCache).Put([]byte(name), data)
	})
}

// Delete drops the entry for name.
func (c *MetadataCache) Delete(_ context.Context, name string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMetadataCache).Delete([]byte(name))
	})
}

// CachedRegistry serves lookups from a MetadataCache and falls back to the
// wrapped repository on a miss. Cache failures never fail a lookup.
type CachedRegistry struct {
	next  repo.MetadataRepository
	cache *MetadataCache
	ttl   time.Duration
}

// NewCachedRegistry wraps next with cache.
func NewCachedRegistry(next repo.MetadataRepository, cache *MetadataCache, ttl time.Duration) *CachedRegistry {
	return &CachedRegistry{next: next, cache: cache, ttl: ttl}
}

// Lookup implements repo.MetadataRepository.
func (r *CachedRegistry) Lookup(ctx context.Context, name string) (*entity.PackageMetadata, error) {
	meta, err := r.cache.Get(ctx, name, r.ttl)
	if err == nil {
		logger.DebugX("metadata-cache", "hit for %s", name)
		return meta, nil
	}
	if !errors.Is(err, errno.ErrCacheMiss) {
		logger.WarnX("metadata-cache", "%v", err)
	}

	meta, err = r.next.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Put(ctx, name, meta); err != nil {
		logger.WarnX("metadata-cache", "failed to cache metadata for %s: %v", name, err)
	}
	return meta, nil
}
