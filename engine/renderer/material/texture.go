package material

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// texture is the implementation of the Texture interface.
type texture struct {
	backend backend.Backend
	handle  uint32
	width   int32
	height  int32
}

// Texture owns one GPU 2D texture.
type Texture interface {
	// Handle returns the backend texture handle, 0 after Release.
	Handle() uint32

	// Size returns the texture dimensions in pixels.
	Size() (width, height int32)

	// Release deletes the GPU texture. Calling Release more than once is a no-op.
	Release()
}

var _ Texture = &texture{}

// NewTexture uploads RGBA staging data as a sampled color texture.
//
// Parameters:
//   - b: the backend that owns the texture
//   - data: decoded RGBA pixels with filter and wrap settings
//
// Returns:
//   - Texture: the uploaded texture
func NewTexture(b backend.Backend, data common.TextureStagingData) Texture {
	return &texture{
		backend: b,
		handle:  b.CreateTexture2D(data),
		width:   int32(data.Width),
		height:  int32(data.Height),
	}
}

// NewDepthTexture allocates a square depth texture for use as a shadow map attachment.
//
// Parameters:
//   - b: the backend that owns the texture
//   - resolution: width and height in texels
//
// Returns:
//   - Texture: the depth texture
func NewDepthTexture(b backend.Backend, resolution int32) Texture {
	return &texture{
		backend: b,
		handle:  b.CreateDepthTexture(resolution),
		width:   resolution,
		height:  resolution,
	}
}

func (t *texture) Handle() uint32 {
	return t.handle
}

func (t *texture) Size() (int32, int32) {
	return t.width, t.height
}

func (t *texture) Release() {
	if t.handle == 0 {
		return
	}
	t.backend.DeleteTexture(t.handle)
	t.handle = 0
}
