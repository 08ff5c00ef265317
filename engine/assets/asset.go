package assets

import "fmt"

// Asset is a decoded resource identified by its name.
type Asset struct {
	/** @brief The unique name of the asset, also the path it was loaded from. */
	Name string
	/** @brief The full file path of the asset. */
	FullPath string
	/** @brief The size of the asset data in bytes. */
	DataSize uint64
	/** @brief The asset data, *metadata.ImageResourceData for images. */
	Data interface{}
}

// LoadError is the context of the load failed message.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load asset '%s': %s", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
