package loaders

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/pierrec/lz4"
	"golang.org/x/image/bmp"

	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

// testImage is 2x3: a red top row, a blue bottom row and a half transparent
// pixel in the middle.
func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	for x := 0; x < 2; x++ {
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
		img.Set(x, 1, color.NRGBA{G: 255, A: 255})
		img.Set(x, 2, color.NRGBA{B: 255, A: 255})
	}
	img.Set(1, 1, color.NRGBA{G: 255, A: 0})
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func imageData(t *testing.T, data interface{}) *metadata.ImageResourceData {
	t.Helper()
	d, ok := data.(*metadata.ImageResourceData)
	if !ok {
		t.Fatalf("expected image data, got %T", data)
	}
	return d
}

func TestImageLoaderPNG(t *testing.T) {
	fsys := fstest.MapFS{
		"textures/test.png": {Data: encodePNG(t, testImage())},
	}
	loader := NewImageLoader(fsys, false)

	asset, err := loader.Load(context.Background(), "textures/test.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if asset.Name != "textures/test.png" {
		t.Errorf("unexpected asset name %s", asset.Name)
	}

	d := imageData(t, asset.Data)
	if d.Width != 2 || d.Height != 3 || d.ChannelCount != 4 {
		t.Fatalf("unexpected dimensions %dx%dx%d", d.Width, d.Height, d.ChannelCount)
	}
	if len(d.Pixels) != 2*3*4 || asset.DataSize != uint64(len(d.Pixels)) {
		t.Fatalf("unexpected pixel size %d (DataSize %d)", len(d.Pixels), asset.DataSize)
	}
	if d.Pixels[0] != 255 || d.Pixels[2] != 0 {
		t.Errorf("first pixel should be red, got %v", d.Pixels[:4])
	}
	if !d.HasTransparency() {
		t.Error("the image has a transparent pixel")
	}
}

func TestImageLoaderFlipY(t *testing.T) {
	fsys := fstest.MapFS{
		"test.png": {Data: encodePNG(t, testImage())},
	}
	loader := NewImageLoader(fsys, true)

	asset, err := loader.Load(context.Background(), "test.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	d := imageData(t, asset.Data)
	// blue row first once flipped
	if d.Pixels[0] != 0 || d.Pixels[2] != 255 {
		t.Errorf("first pixel should be blue after flipping, got %v", d.Pixels[:4])
	}
	last := d.Pixels[len(d.Pixels)-4:]
	if last[0] != 255 || last[2] != 0 {
		t.Errorf("last pixel should be red after flipping, got %v", last)
	}
}

func TestImageLoaderBMP(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	loader := NewImageLoader(fstest.MapFS{"white.bmp": {Data: buf.Bytes()}}, false)

	asset, err := loader.Load(context.Background(), "white.bmp")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	d := imageData(t, asset.Data)
	if d.Width != 4 || d.Height != 4 || d.HasTransparency() {
		t.Errorf("unexpected bmp decode %dx%d transparent=%t", d.Width, d.Height, d.HasTransparency())
	}
}

func TestImageLoaderErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.png": {Data: []byte("definitely not a png")},
	}
	loader := NewImageLoader(fsys, false)

	if _, err := loader.Load(context.Background(), "missing.png"); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := loader.Load(context.Background(), "broken.png"); err == nil {
		t.Error("expected a decode error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := loader.Load(ctx, "broken.png"); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCompressedImageLoader(t *testing.T) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(encodePNG(t, testImage())); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	loader := NewCompressedImageLoader(fstest.MapFS{"test.png.lz4": {Data: buf.Bytes()}}, false)
	if got := loader.SupportedExtensions(); len(got) != 1 || got[0] != "lz4" {
		t.Fatalf("unexpected extensions %v", got)
	}

	asset, err := loader.Load(context.Background(), "test.png.lz4")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	d := imageData(t, asset.Data)
	if d.Width != 2 || d.Height != 3 {
		t.Errorf("unexpected dimensions %dx%d", d.Width, d.Height)
	}
}
