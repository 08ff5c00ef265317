// Package headless implements a renderer backend that keeps texture pixels in
// memory and records draw calls instead of talking to a GPU. It backs the
// engine when no window is available and is what the tests render with.
package headless

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

// TextureHandle is stored in Texture.InternalData.
type TextureHandle uint32

type textureMemory struct {
	width  uint32
	height uint32
	pixels []uint8
}

// Stats counts the work done by the backend.
type Stats struct {
	TexturesCreated   int
	TexturesUploaded  int
	TexturesDestroyed int
	Frames            int
	DrawCalls         int
	// Draw calls of the last completed frame.
	LastFrameDrawCalls int
}

type Backend struct {
	width      uint32
	height     uint32
	nextHandle TextureHandle
	textures   map[TextureHandle]*textureMemory
	inFrame    bool
	frameDraws int
	stats      Stats
}

func New() *Backend {
	return &Backend{
		textures:   make(map[TextureHandle]*textureMemory),
		nextHandle: 1,
	}
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	b.width = appWidth
	b.height = appHeight
	core.LogInfo("headless renderer initialized for '%s' (%dx%d)", appName, appWidth, appHeight)
	return nil
}

func (b *Backend) Shutdown() error {
	if len(b.textures) > 0 {
		core.LogWarn("headless renderer shutting down with %d live texture(s)", len(b.textures))
	}
	clear(b.textures)
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	b.width = width
	b.height = height
	return nil
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	if b.inFrame {
		return fmt.Errorf("BeginFrame called twice without EndFrame")
	}
	b.inFrame = true
	b.frameDraws = 0
	return nil
}

func (b *Backend) EndFrame(deltaTime float64) error {
	if !b.inFrame {
		return fmt.Errorf("EndFrame called without BeginFrame")
	}
	b.inFrame = false
	b.stats.Frames++
	b.stats.LastFrameDrawCalls = b.frameDraws
	return nil
}

func (b *Backend) TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	mem, err := newTextureMemory(pixels, texture)
	if err != nil {
		return err
	}
	handle := b.nextHandle
	b.nextHandle++
	b.textures[handle] = mem
	texture.InternalData = handle
	b.stats.TexturesCreated++
	return nil
}

func (b *Backend) TextureUpload(pixels []uint8, texture *metadata.Texture) error {
	handle, err := b.handle(texture)
	if err != nil {
		return err
	}
	mem, err := newTextureMemory(pixels, texture)
	if err != nil {
		return err
	}
	b.textures[handle] = mem
	b.stats.TexturesUploaded++
	return nil
}

func (b *Backend) TextureDestroy(texture *metadata.Texture) error {
	handle, err := b.handle(texture)
	if err != nil {
		return err
	}
	delete(b.textures, handle)
	texture.InternalData = nil
	b.stats.TexturesDestroyed++
	return nil
}

func (b *Backend) DrawSprite(data *metadata.SpriteRenderData, projection mgl32.Mat4) error {
	if !b.inFrame {
		return fmt.Errorf("DrawSprite called outside of a frame")
	}
	if _, err := b.handle(data.Texture); err != nil {
		return err
	}
	b.frameDraws++
	b.stats.DrawCalls++
	return nil
}

// Pixels returns a copy of the memory behind texture.
func (b *Backend) Pixels(texture *metadata.Texture) ([]uint8, error) {
	handle, err := b.handle(texture)
	if err != nil {
		return nil, err
	}
	return append([]uint8(nil), b.textures[handle].pixels...), nil
}

// LiveTextures is the number of textures created and not destroyed yet.
func (b *Backend) LiveTextures() int {
	return len(b.textures)
}

func (b *Backend) Stats() Stats {
	return b.stats
}

func (b *Backend) handle(texture *metadata.Texture) (TextureHandle, error) {
	if texture == nil {
		return 0, fmt.Errorf("nil texture")
	}
	handle, ok := texture.InternalData.(TextureHandle)
	if !ok {
		return 0, fmt.Errorf("texture '%s' has no headless handle", texture.Name)
	}
	if _, ok := b.textures[handle]; !ok {
		return 0, fmt.Errorf("texture '%s' handle %d is not live", texture.Name, handle)
	}
	return handle, nil
}

func newTextureMemory(pixels []uint8, texture *metadata.Texture) (*textureMemory, error) {
	expected := int(texture.Width) * int(texture.Height) * int(texture.ChannelCount)
	if len(pixels) != expected {
		return nil, fmt.Errorf("texture '%s' expects %d bytes, got %d", texture.Name, expected, len(pixels))
	}
	return &textureMemory{
		width:  texture.Width,
		height: texture.Height,
		pixels: append([]uint8(nil), pixels...),
	}, nil
}
