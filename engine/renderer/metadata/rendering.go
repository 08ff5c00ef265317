package metadata

import "github.com/go-gl/mathgl/mgl32"

// SpriteRenderData is everything the backend needs to draw one sprite.
type SpriteRenderData struct {
	Texture *Texture
	Model   mgl32.Mat4
}

// RenderPacket collects the draws of one frame.
type RenderPacket struct {
	DeltaTime  float64
	Projection mgl32.Mat4
	Sprites    []*SpriteRenderData
}
