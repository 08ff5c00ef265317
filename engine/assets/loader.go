package assets

import "context"

// Loader turns an asset name into an Asset. Loaders run on job system
// workers, so Load must not touch engine state; the AssetManager brings the
// result back to the frame goroutine.
type Loader interface {
	// SupportedExtensions lists the lower-case extensions, without the dot,
	// this loader claims.
	SupportedExtensions() []string
	Load(ctx context.Context, name string) (*Asset, error)
}
