package core

import (
	"errors"
)

var (
	ErrLoaderNotFound  = errors.New("no loader registered for extension")
	ErrDecodeFailure   = errors.New("asset decode failed")
	ErrTextureCapacity = errors.New("texture system cannot hold any more textures")
	ErrUnknownTexture  = errors.New("texture is not registered")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
