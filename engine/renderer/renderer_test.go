package renderer_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/engine/renderer/headless"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

func TestProjectionMapsFramebufferCorners(t *testing.T) {
	r := renderer.New(headless.New())
	if err := r.Initialize("test", 200, 100); err != nil {
		t.Fatal(err)
	}

	topRight := r.Projection().Mul4x1(mgl32.Vec4{200, 100, 0, 1})
	if !topRight.ApproxEqual(mgl32.Vec4{1, 1, 0, 1}) {
		t.Errorf("expected the top right corner in clip space, got %v", topRight)
	}

	if err := r.OnResize(400, 100); err != nil {
		t.Fatal(err)
	}
	mid := r.Projection().Mul4x1(mgl32.Vec4{200, 50, 0, 1})
	if !mid.ApproxEqual(mgl32.Vec4{0, 0, 0, 1}) {
		t.Errorf("expected the centre after the resize, got %v", mid)
	}
}

func TestDrawFrameSkipsMissingTextures(t *testing.T) {
	backend := headless.New()
	r := renderer.New(backend)
	if err := r.Initialize("test", 200, 100); err != nil {
		t.Fatal(err)
	}

	tex := metadata.NewPlaceholderTexture(0, "a.png")
	if err := backend.TextureCreate(metadata.PLACEHOLDER_PIXELS, tex); err != nil {
		t.Fatal(err)
	}
	destroyed := metadata.NewPlaceholderTexture(1, "gone.png")

	packet := &metadata.RenderPacket{
		Projection: r.Projection(),
		Sprites: []*metadata.SpriteRenderData{
			{Texture: tex, Model: mgl32.Ident4()},
			{Texture: nil, Model: mgl32.Ident4()},
			// a failing draw is logged, the frame goes on
			{Texture: destroyed, Model: mgl32.Ident4()},
			{Texture: tex, Model: mgl32.Ident4()},
		},
	}
	if err := r.DrawFrame(packet); err != nil {
		t.Fatal(err)
	}
	if got := backend.Stats().LastFrameDrawCalls; got != 2 {
		t.Errorf("expected 2 draws, got %d", got)
	}
}
