package systems

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spaghettifunk/lumen/engine/assets"
	"github.com/spaghettifunk/lumen/engine/assets/loaders"
	"github.com/spaghettifunk/lumen/engine/core"
)

/** @brief The configuration for the resource system */
type ResourceSystemConfig struct {
	/** @brief The base path for assets. Asset names are relative to it. */
	AssetBasePath string
	/** @brief Overrides AssetBasePath with an in-memory or embedded file system. */
	FS fs.FS
	/** @brief Flip images on the y-axis while decoding. */
	FlipY bool
	/** @brief Reload assets when their file changes on disk. */
	HotReload bool
}

// RegisterResourceLoaders registers the known loader types with am, all
// reading from the same asset root, and starts the file watcher when hot
// reload is on.
func RegisterResourceLoaders(config ResourceSystemConfig, am *assets.AssetManager) error {
	fsys := config.FS
	if fsys == nil {
		if config.AssetBasePath == "" {
			return fmt.Errorf("resource system needs an asset base path or a file system: %w", core.ErrInvalidConfig)
		}
		fsys = os.DirFS(config.AssetBasePath)
	}

	// NOTE: Auto-register known loader types here.
	am.RegisterLoader(loaders.NewImageLoader(fsys, config.FlipY))
	am.RegisterLoader(loaders.NewCompressedImageLoader(fsys, config.FlipY))

	core.LogInfo("Resource system initialized with base path '%s'.", config.AssetBasePath)

	if config.HotReload {
		if config.AssetBasePath == "" {
			return fmt.Errorf("hot reload needs an asset base path on disk: %w", core.ErrInvalidConfig)
		}
		if err := am.Watch(config.AssetBasePath); err != nil {
			return err
		}
	}
	return nil
}
