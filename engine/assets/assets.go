package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

const (
	ASSET_LOADED_MESSAGE_CODE      string = "ASSET_LOADED::"
	ASSET_LOAD_FAILED_MESSAGE_CODE string = "ASSET_LOAD_FAILED::"
)

// OnAssetLoadedMessageCode is the code published once name has been loaded.
// Consumers can subscribe to it before the asset exists.
func OnAssetLoadedMessageCode(name string) string {
	return ASSET_LOADED_MESSAGE_CODE + name
}

// OnAssetLoadFailedMessageCode is the code published when loading name failed.
func OnAssetLoadFailedMessageCode(name string) string {
	return ASSET_LOAD_FAILED_MESSAGE_CODE + name
}

// JobScheduler runs load jobs away from the frame goroutine.
type JobScheduler interface {
	Submit(jt metadata.JobTask) error
}

type loadResult struct {
	name  string
	asset *Asset
	err   error
}

// AssetManager is the single entry point for "give me asset X". It owns the
// loader registry and the cache of loaded assets.
//
// Every exported method except Shutdown must be called from the frame
// goroutine. Loaders and the file watcher run elsewhere and only post into
// the mailboxes drained by Update.
type AssetManager struct {
	bus     *core.MessageBus
	jobs    JobScheduler
	loaders []Loader

	loadedAssets map[string]*Asset
	// Names with a load in flight.
	pending map[string]struct{}
	// Names whose last load failed, kept so a file fix can trigger a retry.
	failed map[string]error

	mailbox sync.Mutex
	results []loadResult
	reloads []string

	assetsDir string
	done      chan struct{}
	fsnotify  *fsnotify.Watcher
	watcherWg sync.WaitGroup
	isClosed  bool
}

func NewAssetManager(bus *core.MessageBus, jobs JobScheduler) *AssetManager {
	return &AssetManager{
		bus:          bus,
		jobs:         jobs,
		loaders:      []Loader{},
		loadedAssets: make(map[string]*Asset),
		pending:      make(map[string]struct{}),
		failed:       make(map[string]error),
		done:         make(chan struct{}),
	}
}

// RegisterLoader appends loader to the registry. For an extension claimed by
// more than one loader the first registered wins.
func (am *AssetManager) RegisterLoader(loader Loader) {
	am.loaders = append(am.loaders, loader)
	core.LogDebug("loader registered for extensions %v", loader.SupportedExtensions())
}

// RequestAsset returns the asset when it is already loaded. Otherwise it
// starts an asynchronous load, unless one is already in flight, and returns a
// nil asset: the caller hears about completion through the message
// OnAssetLoadedMessageCode(name). ErrLoaderNotFound is returned when no loader
// claims the extension of name.
func (am *AssetManager) RequestAsset(name string) (*Asset, error) {
	if asset, ok := am.loadedAssets[name]; ok {
		return asset, nil
	}

	if _, ok := am.pending[name]; ok {
		core.LogDebug("asset '%s' is already loading", name)
		return nil, nil
	}

	loader := am.findLoader(name)
	if loader == nil {
		err := fmt.Errorf("unable to load asset '%s': %w", name, core.ErrLoaderNotFound)
		core.LogWarn(err.Error())
		return nil, err
	}

	err := am.jobs.Submit(metadata.JobTask{
		JobType: metadata.JOB_TYPE_RESOURCE_LOAD,
		Name:    name,
		OnStart: func(ctx context.Context) (interface{}, error) {
			return loader.Load(ctx, name)
		},
		OnComplete: func(result interface{}) {
			asset, _ := result.(*Asset)
			am.post(loadResult{name: name, asset: asset})
		},
		OnFailure: func(err error) {
			am.post(loadResult{name: name, err: err})
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to schedule load of asset '%s': %w", name, err)
	}
	am.pending[name] = struct{}{}
	delete(am.failed, name)

	return nil, nil
}

// OnAssetLoaded caches asset and publishes its loaded message with normal
// priority. Loaders do not choose the priority.
func (am *AssetManager) OnAssetLoaded(asset *Asset) {
	delete(am.pending, asset.Name)
	delete(am.failed, asset.Name)
	am.loadedAssets[asset.Name] = asset

	core.LogDebug("asset '%s' loaded", asset.Name)

	am.bus.Publish(core.NewMessage(OnAssetLoadedMessageCode(asset.Name), am, asset, core.MessagePriorityNormal))
}

func (am *AssetManager) onAssetLoadFailed(name string, err error) {
	delete(am.pending, name)
	am.failed[name] = err

	loadErr := &LoadError{Name: name, Err: fmt.Errorf("%w: %w", core.ErrDecodeFailure, err)}
	core.LogError(loadErr.Error())

	am.bus.Publish(core.NewMessage(OnAssetLoadFailedMessageCode(name), am, loadErr, core.MessagePriorityNormal))
}

// Update brings the loads completed since the last frame, and the files
// changed on disk, back into the frame goroutine. Should happen once an
// update cycle, before the message bus is drained.
func (am *AssetManager) Update() {
	am.mailbox.Lock()
	results := am.results
	reloads := am.reloads
	am.results = nil
	am.reloads = nil
	am.mailbox.Unlock()

	for _, r := range results {
		switch {
		case r.err != nil:
			am.onAssetLoadFailed(r.name, r.err)
		case r.asset == nil:
			am.onAssetLoadFailed(r.name, errors.New("loader returned no asset"))
		default:
			if r.asset.Name != r.name {
				core.LogWarn("loader returned asset '%s' for request '%s'", r.asset.Name, r.name)
				delete(am.pending, r.name)
			}
			am.OnAssetLoaded(r.asset)
		}
	}

	for _, name := range reloads {
		am.reload(name)
	}
}

func (am *AssetManager) reload(name string) {
	_, cached := am.loadedAssets[name]
	_, failed := am.failed[name]
	if !cached && !failed {
		// Nobody asked for this file yet.
		return
	}
	if _, ok := am.pending[name]; ok {
		return
	}

	core.LogInfo("asset '%s' changed on disk, reloading", name)
	delete(am.loadedAssets, name)
	if _, err := am.RequestAsset(name); err != nil {
		core.LogError(err.Error())
	}
}

func (am *AssetManager) post(r loadResult) {
	am.mailbox.Lock()
	defer am.mailbox.Unlock()
	am.results = append(am.results, r)
}

func (am *AssetManager) IsAssetLoaded(name string) bool {
	_, ok := am.loadedAssets[name]
	return ok
}

// IsLoading reports whether a load of name is in flight.
func (am *AssetManager) IsLoading(name string) bool {
	_, ok := am.pending[name]
	return ok
}

// GetAsset returns the cached asset, triggering a load when it is missing.
func (am *AssetManager) GetAsset(name string) *Asset {
	asset, err := am.RequestAsset(name)
	if err != nil {
		return nil
	}
	return asset
}

// UnloadAsset evicts name from the cache. The next request loads it again.
func (am *AssetManager) UnloadAsset(name string) {
	delete(am.loadedAssets, name)
}

func (am *AssetManager) findLoader(name string) Loader {
	ext := assetExtension(name)
	if ext == "" {
		return nil
	}
	for _, l := range am.loaders {
		for _, supported := range l.SupportedExtensions() {
			if strings.ToLower(supported) == ext {
				return l
			}
		}
	}
	return nil
}

// assetExtension is the lower-cased text after the last '.' of name.
func assetExtension(name string) string {
	i := strings.LastIndex(name, ".")
	if i == -1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// Watch starts watching assetsDir and all its sub-directories. A file written
// there reloads the cached asset named by its path relative to assetsDir.
func (am *AssetManager) Watch(assetsDir string) error {
	if am.isClosed {
		return errors.New("asset manager already shut down")
	}
	if am.fsnotify != nil {
		return errors.New("asset manager is already watching " + am.assetsDir)
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	am.fsnotify = fsWatch
	am.assetsDir = assetsDir

	if err := am.watchRecursive(assetsDir); err != nil {
		return err
	}

	am.watcherWg.Add(1)
	go am.start()

	core.LogInfo("watching '%s' for asset changes", assetsDir)
	return nil
}

func (am *AssetManager) start() {
	defer am.watcherWg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s.IsDir() {
				if e.Has(fsnotify.Create) {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogError(err.Error())
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Has(fsnotify.Create) || e.Has(fsnotify.Write) {
				am.handleFileEvent(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	rel, err := filepath.Rel(am.assetsDir, path)
	if err != nil {
		core.LogError(err.Error())
		return
	}

	am.mailbox.Lock()
	defer am.mailbox.Unlock()
	am.reloads = append(am.reloads, filepath.ToSlash(rel))
}

// Shutdown stops the file watcher. In-flight loads are owned by the job
// system and stopped by it.
func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)

	var err error
	if am.fsnotify != nil {
		err = am.fsnotify.Close()
		am.watcherWg.Wait()
	}

	clear(am.loadedAssets)
	clear(am.pending)
	return err
}
