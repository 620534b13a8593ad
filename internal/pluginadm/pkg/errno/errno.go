// Package errno holds the sentinel errors shared by pluginadm packages.
package errno

import "errors"

var (
	// ErrPackageNotFound is returned when the registry has no such package.
	ErrPackageNotFound = errors.New("package not found")
	// ErrCacheMiss is returned by the metadata cache for absent or expired entries.
	ErrCacheMiss = errors.New("cache miss")
	// ErrEmptyName is returned when an operation is given no plugin name.
	ErrEmptyName = errors.New("plugin name is required")
	// ErrNotInstalled is returned by operations that need an installed plugin.
	ErrNotInstalled = errors.New("plugin is not installed")
	// ErrDeclined is returned when the user declines a confirmation prompt.
	ErrDeclined = errors.New("declined by user")
)
