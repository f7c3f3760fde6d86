package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// TextureCache shares uploaded textures between materials that reference the same image.
// The cache owns every texture it hands out.
type TextureCache struct {
	backend  backend.Backend
	mu       sync.Mutex
	textures map[string]Texture
}

// NewTextureCache creates an empty cache uploading through b.
func NewTextureCache(b backend.Backend) *TextureCache {
	return &TextureCache{
		backend:  b,
		textures: make(map[string]Texture),
	}
}

// GetOrUpload returns the texture cached under key, uploading data on first use.
//
// Parameters:
//   - key: the texture identity, usually common.ImportedTexture.Key
//   - data: the decoded pixels, only read on a miss
//
// Returns:
//   - Texture: the shared texture
func (c *TextureCache) GetOrUpload(key string, data common.TextureStagingData) Texture {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.textures[key]; ok {
		return t
	}
	t := NewTexture(c.backend, data)
	c.textures[key] = t
	return t
}

// Get returns the texture cached under key.
func (c *TextureCache) Get(key string) (Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.textures[key]
	return t, ok
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.textures)
}

// Release deletes every cached texture and empties the cache.
func (c *TextureCache) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.textures {
		t.Release()
	}
	clear(c.textures)
}
