package repo

import (
	"context"

	"github.com/kiosk404/pluginadm/internal/pluginadm/service/plugin/domain/entity"
)

// MetadataRepository looks up package metadata by package name.
type MetadataRepository interface {
	Lookup(ctx context.Context, name string) (*entity.PackageMetadata, error)
}
