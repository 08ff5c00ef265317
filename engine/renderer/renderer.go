package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

const (
	NEAR_CLIP float32 = -100.0
	FAR_CLIP  float32 = 100.0
)

// Renderer is the frontend of a RendererBackend: it owns the projection and
// turns render packets into draw calls.
type Renderer struct {
	backend    RendererBackend
	projection mgl32.Mat4
	width      uint32
	height     uint32
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{
		backend:    backend,
		projection: mgl32.Ident4(),
	}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := r.backend.Initialize(appName, appWidth, appHeight); err != nil {
		return err
	}
	r.updateProjection(appWidth, appHeight)
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

// Backend exposes the backend to the systems creating GPU resources.
func (r *Renderer) Backend() RendererBackend {
	return r.backend
}

// Projection is the orthographic projection of the current framebuffer, origin
// at the bottom left corner.
func (r *Renderer) Projection() mgl32.Mat4 {
	return r.projection
}

func (r *Renderer) OnResize(width, height uint32) error {
	r.updateProjection(width, height)
	return r.backend.Resized(width, height)
}

func (r *Renderer) updateProjection(width, height uint32) {
	r.width = width
	r.height = height
	r.projection = mgl32.Ortho(0, float32(width), 0, float32(height), NEAR_CLIP, FAR_CLIP)
}

func (r *Renderer) DrawFrame(renderPacket *metadata.RenderPacket) error {
	if err := r.backend.BeginFrame(renderPacket.DeltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}

	for _, s := range renderPacket.Sprites {
		if s.Texture == nil {
			continue
		}
		if err := r.backend.DrawSprite(s, renderPacket.Projection); err != nil {
			// One bad draw must not cost the whole frame.
			core.LogError("failed to draw sprite with texture '%s': %s", s.Texture.Name, err)
		}
	}

	if err := r.backend.EndFrame(renderPacket.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	return nil
}
