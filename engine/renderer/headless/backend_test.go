package headless

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

func TestTextureLifecycle(t *testing.T) {
	b := New()
	tex := metadata.NewPlaceholderTexture(0, "a.png")

	if err := b.TextureCreate(metadata.PLACEHOLDER_PIXELS, tex); err != nil {
		t.Fatalf("TextureCreate failed: %v", err)
	}
	if b.LiveTextures() != 1 {
		t.Fatalf("expected 1 live texture, got %d", b.LiveTextures())
	}
	handle := tex.InternalData

	tex.Width, tex.Height = 2, 1
	pixels := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
	if err := b.TextureUpload(pixels, tex); err != nil {
		t.Fatalf("TextureUpload failed: %v", err)
	}
	if tex.InternalData != handle {
		t.Error("upload must keep the existing handle")
	}
	got, err := b.Pixels(tex)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 8 || got[7] != 8 {
		t.Errorf("unexpected pixels %v", got)
	}

	if err := b.TextureDestroy(tex); err != nil {
		t.Fatalf("TextureDestroy failed: %v", err)
	}
	if err := b.TextureDestroy(tex); err == nil {
		t.Error("destroying twice should fail")
	}

	stats := b.Stats()
	if stats.TexturesCreated != 1 || stats.TexturesUploaded != 1 || stats.TexturesDestroyed != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if b.LiveTextures() != 0 {
		t.Errorf("expected no live texture, got %d", b.LiveTextures())
	}
}

func TestUploadSizeMismatch(t *testing.T) {
	b := New()
	tex := metadata.NewPlaceholderTexture(0, "a.png")
	if err := b.TextureCreate(metadata.PLACEHOLDER_PIXELS, tex); err != nil {
		t.Fatal(err)
	}
	tex.Width, tex.Height = 64, 64
	if err := b.TextureUpload(metadata.PLACEHOLDER_PIXELS, tex); err == nil {
		t.Error("expected an error when the pixels do not match the texture size")
	}
}

func TestFrameBookkeeping(t *testing.T) {
	b := New()
	tex := metadata.NewPlaceholderTexture(0, "a.png")
	if err := b.TextureCreate(metadata.PLACEHOLDER_PIXELS, tex); err != nil {
		t.Fatal(err)
	}
	sprite := &metadata.SpriteRenderData{Texture: tex, Model: mgl32.Ident4()}

	if err := b.DrawSprite(sprite, mgl32.Ident4()); err == nil {
		t.Error("drawing outside a frame should fail")
	}
	if err := b.EndFrame(0); err == nil {
		t.Error("EndFrame without BeginFrame should fail")
	}

	if err := b.BeginFrame(0.016); err != nil {
		t.Fatal(err)
	}
	if err := b.BeginFrame(0.016); err == nil {
		t.Error("nested BeginFrame should fail")
	}
	for i := 0; i < 3; i++ {
		if err := b.DrawSprite(sprite, mgl32.Ident4()); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.EndFrame(0.016); err != nil {
		t.Fatal(err)
	}

	stats := b.Stats()
	if stats.Frames != 1 || stats.LastFrameDrawCalls != 3 || stats.DrawCalls != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}
}
