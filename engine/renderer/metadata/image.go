package metadata

/**
 * @brief A structure to hold image resource data.
 */
type ImageResourceData struct {
	/** @brief The number of channels. */
	ChannelCount uint8
	/** @brief The width of the image. */
	Width uint32
	/** @brief The height of the image. */
	Height uint32
	/** @brief The pixel data of the image, row major. */
	Pixels []uint8
}

// HasTransparency reports whether any pixel has an alpha below 255. Only
// four channel images can be transparent.
func (d *ImageResourceData) HasTransparency() bool {
	if d.ChannelCount != 4 {
		return false
	}
	for i := 3; i < len(d.Pixels); i += 4 {
		if d.Pixels[i] < 255 {
			return true
		}
	}
	return false
}
