package loaders

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/lumen/engine/assets"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

// ImageLoader decodes images from FS into RGBA pixel data.
type ImageLoader struct {
	FS fs.FS
	// Indicates if the image should be flipped on the y-axis when loaded.
	FlipY bool
}

func NewImageLoader(fsys fs.FS, flipY bool) *ImageLoader {
	return &ImageLoader{
		FS:    fsys,
		FlipY: flipY,
	}
}

func (il *ImageLoader) SupportedExtensions() []string {
	return []string{"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp"}
}

func (il *ImageLoader) Load(ctx context.Context, name string) (*assets.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := il.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := decodeImage(f, il.FlipY)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image '%s': %w", name, err)
	}

	return &assets.Asset{
		Name:     name,
		FullPath: name,
		DataSize: uint64(len(data.Pixels)),
		Data:     data,
	}, nil
}

// decodeImage reads any registered image format and converts it to tightly
// packed RGBA8.
func decodeImage(r io.Reader, flipY bool) (*metadata.ImageResourceData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	if flipY {
		flipRows(rgba)
	}

	return &metadata.ImageResourceData{
		ChannelCount: 4,
		Width:        uint32(bounds.Dx()),
		Height:       uint32(bounds.Dy()),
		Pixels:       rgba.Pix,
	}, nil
}

func flipRows(img *image.RGBA) {
	height := img.Bounds().Dy()
	row := make([]uint8, img.Stride)
	for y := 0; y < height/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(height-1-y)*img.Stride : (height-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
