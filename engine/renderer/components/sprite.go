package components

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

// TextureProvider hands out shared textures by name.
type TextureProvider interface {
	Acquire(name string) (*metadata.Texture, error)
	Release(name string)
}

/**
 * @brief A textured quad. The sprite holds one reference on its texture
 * between Load and Unload.
 */
type Sprite struct {
	Name        string
	TextureName string
	Width       float32
	Height      float32
	Position    mgl32.Vec3

	texture  *metadata.Texture
	provider TextureProvider
}

func NewSprite(name, textureName string, width, height float32) *Sprite {
	return &Sprite{
		Name:        name,
		TextureName: textureName,
		Width:       width,
		Height:      height,
	}
}

// Load acquires the sprite texture. The texture may still be the placeholder.
func (s *Sprite) Load(provider TextureProvider) error {
	if s.texture != nil {
		return fmt.Errorf("sprite '%s' is already loaded", s.Name)
	}
	t, err := provider.Acquire(s.TextureName)
	if err != nil {
		return err
	}
	s.texture = t
	s.provider = provider
	return nil
}

// Unload releases the texture reference taken by Load.
func (s *Sprite) Unload() {
	if s.texture == nil {
		return
	}
	s.provider.Release(s.TextureName)
	s.texture = nil
	s.provider = nil
}

func (s *Sprite) Texture() *metadata.Texture {
	return s.texture
}

func (s *Sprite) IsLoaded() bool {
	return s.texture != nil
}

// Model translates a unit quad to Position and scales it to the sprite size.
func (s *Sprite) Model() mgl32.Mat4 {
	return mgl32.Translate3D(s.Position.X(), s.Position.Y(), s.Position.Z()).
		Mul4(mgl32.Scale3D(s.Width, s.Height, 1))
}

// RenderData returns nil while the sprite is not loaded.
func (s *Sprite) RenderData() *metadata.SpriteRenderData {
	if s.texture == nil {
		return nil
	}
	return &metadata.SpriteRenderData{
		Texture: s.texture,
		Model:   s.Model(),
	}
}
