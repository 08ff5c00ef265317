package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

// RendererBackend is implemented by each graphics API. Texture handles are
// stored by the backend in Texture.InternalData.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	// TextureCreate acquires the GPU resource of texture and fills it with pixels.
	TextureCreate(pixels []uint8, texture *metadata.Texture) error
	// TextureUpload replaces the contents of an existing texture. The texture
	// dimensions must already describe pixels.
	TextureUpload(pixels []uint8, texture *metadata.Texture) error
	TextureDestroy(texture *metadata.Texture) error
	DrawSprite(data *metadata.SpriteRenderData, projection mgl32.Mat4) error
}
