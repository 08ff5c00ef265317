package systems

import (
	"github.com/spaghettifunk/lumen/engine/assets"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer"
)

type SystemManagerConfig struct {
	MessagesPerUpdate int
	JobWorkers        int
	JobQueueSize      int
	MaxTextureCount   uint32
}

// SystemManager owns the systems of one engine instance. Nothing here is
// global, so independent engines can live side by side.
type SystemManager struct {
	MessageBus    *core.MessageBus
	JobSystem     *JobSystem
	AssetManager  *assets.AssetManager
	TextureSystem *TextureSystem
}

func NewSystemManager(config *SystemManagerConfig, backend renderer.RendererBackend) (*SystemManager, error) {
	bus := core.NewMessageBus(config.MessagesPerUpdate)

	js, err := NewJobSystem(config.JobWorkers, config.JobQueueSize)
	if err != nil {
		return nil, err
	}

	am := assets.NewAssetManager(bus, js)

	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: config.MaxTextureCount,
	}, bus, am, backend)
	if err != nil {
		_ = js.Shutdown()
		return nil, err
	}

	return &SystemManager{
		MessageBus:    bus,
		JobSystem:     js,
		AssetManager:  am,
		TextureSystem: ts,
	}, nil
}

func (sm *SystemManager) Initialize() error {
	return sm.TextureSystem.Initialize()
}

// Update runs the per-frame work of the systems: completed loads are handed
// to the asset manager first so their messages can go out in the same drain.
func (sm *SystemManager) Update(deltaTime float64) {
	sm.AssetManager.Update()
	sm.MessageBus.Update()
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.TextureSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.AssetManager.Shutdown(); err != nil {
		return err
	}
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MessageBus.Shutdown(); err != nil {
		return err
	}
	return nil
}
