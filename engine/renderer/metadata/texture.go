package metadata

const (
	InvalidID uint32 = 4294967295

	/** @brief The default texture name. */
	DEFAULT_TEXTURE_NAME string = "default"
)

// One opaque white pixel in RGBA, uploaded while the real image is loading.
var PLACEHOLDER_PIXELS = []uint8{255, 255, 255, 255}

const (
	PLACEHOLDER_WIDTH         uint32 = 1
	PLACEHOLDER_HEIGHT        uint32 = 1
	PLACEHOLDER_CHANNEL_COUNT uint8  = 4
)

type TextureFlag int

const (
	/** @brief Indicates if the texture has transparency. */
	TextureFlagHasTransparency TextureFlag = 0x1
)

/** @brief Holds bit flags for textures.. */
type TextureFlagBits uint8

/**
 * @brief Represents a texture.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uint32
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8
	/** @brief Holds various Flags for this texture. */
	Flags TextureFlagBits
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The texture Name. */
	Name string
	/** @brief True once the pixels of the backing asset have been uploaded. */
	IsLoaded bool
	/** @brief The renderer backend handle. */
	InternalData interface{}
}

// HasTransparency reports whether any uploaded pixel is not fully opaque.
func (t *Texture) HasTransparency() bool {
	return t.Flags&TextureFlagBits(TextureFlagHasTransparency) != 0
}

// NewPlaceholderTexture returns an unloaded 1x1 texture shell for name. The
// renderer still has to create its backend resource.
func NewPlaceholderTexture(id uint32, name string) *Texture {
	return &Texture{
		ID:           id,
		Name:         name,
		Width:        PLACEHOLDER_WIDTH,
		Height:       PLACEHOLDER_HEIGHT,
		ChannelCount: PLACEHOLDER_CHANNEL_COUNT,
		Generation:   InvalidID,
	}
}

// NewDefaultTexture creates the shell and pixels of the default texture, a
// 256x256 blue/white checkerboard. This is done in code to eliminate asset
// dependencies.
func NewDefaultTexture() (*Texture, []uint8) {
	texDimension := uint32(256)
	channels := uint32(4)

	pixels := make([]uint8, texDimension*texDimension*channels)
	for i := range pixels {
		pixels[i] = 255
	}

	// Each pixel.
	for row := uint32(0); row < texDimension; row++ {
		for col := uint32(0); col < texDimension; col++ {
			indexBpp := ((row * texDimension) + col) * channels
			if row%2 == col%2 {
				pixels[indexBpp+0] = 0
				pixels[indexBpp+1] = 0
			}
		}
	}

	return &Texture{
		ID:           InvalidID,
		Name:         DEFAULT_TEXTURE_NAME,
		Width:        texDimension,
		Height:       texDimension,
		ChannelCount: 4,
		// Default textures never reload.
		Generation: InvalidID,
		IsLoaded:   true,
	}, pixels
}
