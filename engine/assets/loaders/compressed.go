package loaders

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/pierrec/lz4"

	"github.com/spaghettifunk/lumen/engine/assets"
)

// CompressedImageLoader loads images stored as lz4 frames, such as
// "hero.png.lz4". The inner format is sniffed by the image decoder.
type CompressedImageLoader struct {
	FS    fs.FS
	FlipY bool
}

func NewCompressedImageLoader(fsys fs.FS, flipY bool) *CompressedImageLoader {
	return &CompressedImageLoader{
		FS:    fsys,
		FlipY: flipY,
	}
}

func (cl *CompressedImageLoader) SupportedExtensions() []string {
	return []string{"lz4"}
}

func (cl *CompressedImageLoader) Load(ctx context.Context, name string) (*assets.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := cl.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := decodeImage(lz4.NewReader(f), cl.FlipY)
	if err != nil {
		return nil, fmt.Errorf("failed to decode compressed image '%s': %w", name, err)
	}

	return &assets.Asset{
		Name:     name,
		FullPath: name,
		DataSize: uint64(len(data.Pixels)),
		Data:     data,
	}, nil
}
