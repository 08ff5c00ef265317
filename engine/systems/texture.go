package systems

import (
	"fmt"

	"github.com/spaghettifunk/lumen/engine/assets"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

// textureReference is the cache entry of a texture. It exists while at least
// one holder references the texture and listens for the asset backing it.
type textureReference struct {
	system         *TextureSystem
	texture        *metadata.Texture
	referenceCount uint64
	messageCode    string
	released       bool
}

// OnMessage uploads the pixels of the asset announced by the loaded message.
func (ref *textureReference) OnMessage(message core.Message) {
	if message.Code() != ref.messageCode {
		return
	}
	// Queued before the release, delivered after it.
	if ref.released {
		core.LogDebug("ignoring asset message for released texture '%s'", ref.texture.Name)
		return
	}

	asset, ok := message.Context().(*assets.Asset)
	if !ok {
		core.LogError("message '%s' does not carry an asset", message.Code())
		return
	}
	if err := ref.system.loadFromAsset(ref.texture, asset); err != nil {
		core.LogError(err.Error())
	}
}

// TextureSystem shares textures by name and frees the GPU resource when the
// last holder releases it.
type TextureSystem struct {
	config         *TextureSystemConfig
	defaultTexture *metadata.Texture
	defaultPixels  []uint8
	// Hashtable for texture lookups.
	registeredTextures map[string]*textureReference
	nextID             uint32
	// sub systems
	bus          *core.MessageBus
	assetManager *assets.AssetManager
	backend      renderer.RendererBackend
}

func NewTextureSystem(config *TextureSystemConfig, bus *core.MessageBus, am *assets.AssetManager, backend renderer.RendererBackend) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0: %w", core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}

	defaultTexture, defaultPixels := metadata.NewDefaultTexture()

	return &TextureSystem{
		config:             config,
		defaultTexture:     defaultTexture,
		defaultPixels:      defaultPixels,
		registeredTextures: make(map[string]*textureReference),
		bus:                bus,
		assetManager:       am,
		backend:            backend,
	}, nil
}

func (ts *TextureSystem) Initialize() error {
	if err := ts.backend.TextureCreate(ts.defaultPixels, ts.defaultTexture); err != nil {
		return fmt.Errorf("failed to create the default texture: %w", err)
	}
	return nil
}

func (ts *TextureSystem) Shutdown() error {
	// Destroy all loaded textures.
	for name, ref := range ts.registeredTextures {
		if err := ts.destroyTexture(ref); err != nil {
			core.LogError(err.Error())
		}
		delete(ts.registeredTextures, name)
	}
	if ts.defaultTexture.InternalData != nil {
		if err := ts.backend.TextureDestroy(ts.defaultTexture); err != nil {
			return err
		}
	}
	return nil
}

// Acquire returns the texture called name and increments its reference
// count. The first acquisition creates a 1x1 placeholder and asks the asset
// manager for the image; the placeholder is swapped for the real pixels when
// the asset arrives, so callers must cope with an unloaded texture.
func (ts *TextureSystem) Acquire(name string) (*metadata.Texture, error) {
	// Return default texture, but warn about it since this should be returned via GetDefaultTexture();
	if name == metadata.DEFAULT_TEXTURE_NAME {
		core.LogWarn("func texture system Acquire called for default texture. Use GetDefaultTexture for texture 'default'")
		return ts.defaultTexture, nil
	}

	if ref, ok := ts.registeredTextures[name]; ok {
		ref.referenceCount++
		core.LogDebug("texture '%s' already exists, ref_count increased to %d", name, ref.referenceCount)
		return ref.texture, nil
	}

	if uint32(len(ts.registeredTextures)) >= ts.config.MaxTextureCount {
		err := fmt.Errorf("unable to acquire texture '%s': %w", name, core.ErrTextureCapacity)
		core.LogError(err.Error())
		return nil, err
	}

	texture := metadata.NewPlaceholderTexture(ts.nextID, name)
	if err := ts.backend.TextureCreate(metadata.PLACEHOLDER_PIXELS, texture); err != nil {
		return nil, fmt.Errorf("failed to create placeholder for texture '%s': %w", name, err)
	}
	ts.nextID++

	ref := &textureReference{
		system:         ts,
		texture:        texture,
		referenceCount: 1,
		messageCode:    assets.OnAssetLoadedMessageCode(name),
	}
	ts.registeredTextures[name] = ref
	ts.bus.Subscribe(ref.messageCode, ref)

	asset, err := ts.assetManager.RequestAsset(name)
	if err != nil {
		// Degraded mode: the placeholder is drawn until a loader shows up.
		core.LogWarn("texture '%s' stays a placeholder: %s", name, err)
		return texture, nil
	}
	if asset != nil {
		if err := ts.loadFromAsset(texture, asset); err != nil {
			core.LogError(err.Error())
		}
	}

	core.LogDebug("texture '%s' does not yet exist. Created, and ref_count is now 1", name)
	return texture, nil
}

// Release decrements the reference count of name and destroys the texture
// when it reaches zero.
func (ts *TextureSystem) Release(name string) {
	// Ignore release requests for the default texture.
	if name == metadata.DEFAULT_TEXTURE_NAME {
		return
	}

	ref, ok := ts.registeredTextures[name]
	if !ok {
		core.LogWarn("a texture named '%s' does not exist and therefore cannot be released", name)
		return
	}

	ref.referenceCount--
	if ref.referenceCount > 0 {
		core.LogDebug("released texture '%s', now has a reference count of %d", name, ref.referenceCount)
		return
	}

	if err := ts.destroyTexture(ref); err != nil {
		core.LogError(err.Error())
	}
	delete(ts.registeredTextures, name)
	core.LogDebug("released texture '%s', texture unloaded because reference count=0", name)
}

// ReferenceCount returns the live reference count of name, false when the
// texture is not registered.
func (ts *TextureSystem) ReferenceCount(name string) (uint64, bool) {
	ref, ok := ts.registeredTextures[name]
	if !ok {
		return 0, false
	}
	return ref.referenceCount, true
}

// Get returns the registered texture without taking a reference.
func (ts *TextureSystem) Get(name string) (*metadata.Texture, error) {
	ref, ok := ts.registeredTextures[name]
	if !ok {
		return nil, fmt.Errorf("texture '%s': %w", name, core.ErrUnknownTexture)
	}
	return ref.texture, nil
}

func (ts *TextureSystem) GetDefaultTexture() *metadata.Texture {
	return ts.defaultTexture
}

func (ts *TextureSystem) destroyTexture(ref *textureReference) error {
	ref.released = true
	ts.bus.Unsubscribe(ref.messageCode, ref)

	// Clean up backend resources.
	if err := ts.backend.TextureDestroy(ref.texture); err != nil {
		return fmt.Errorf("failed to destroy texture '%s': %w", ref.texture.Name, err)
	}
	ref.texture.ID = metadata.InvalidID
	ref.texture.Generation = metadata.InvalidID
	ref.texture.IsLoaded = false
	return nil
}

// loadFromAsset takes width and height from the asset and uploads its pixels
// to the existing backend handle of texture.
func (ts *TextureSystem) loadFromAsset(texture *metadata.Texture, asset *assets.Asset) error {
	data, ok := asset.Data.(*metadata.ImageResourceData)
	if !ok {
		return fmt.Errorf("asset '%s' is not an image, texture '%s' stays unchanged", asset.Name, texture.Name)
	}

	previous := *texture
	texture.Width = data.Width
	texture.Height = data.Height
	texture.ChannelCount = data.ChannelCount

	if err := ts.backend.TextureUpload(data.Pixels, texture); err != nil {
		texture.Width = previous.Width
		texture.Height = previous.Height
		texture.ChannelCount = previous.ChannelCount
		return fmt.Errorf("failed to upload texture '%s': %w", texture.Name, err)
	}

	texture.Flags = 0
	if data.HasTransparency() {
		texture.Flags |= metadata.TextureFlagBits(metadata.TextureFlagHasTransparency)
	}
	if texture.Generation == metadata.InvalidID {
		texture.Generation = 0
	} else {
		texture.Generation++
	}
	texture.IsLoaded = true

	core.LogDebug("successfully loaded texture '%s' (%dx%d)", texture.Name, texture.Width, texture.Height)
	return nil
}
