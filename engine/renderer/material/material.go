package material

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
)

// fallbackDiffuseKey caches the 1x1 white texture bound when a material has no diffuse map.
const fallbackDiffuseKey = "fallback:white"

// material is the implementation of the Material interface.
type material struct {
	name           string
	diffuseTexture Texture
	normalTexture  Texture
}

// Material defines the interface for a surface material: the named textures a mesh samples
// when it is drawn by the forward pass.
//
// Textures are shared through a TextureCache and are never released by the material.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// DiffuseTexture retrieves the diffuse/albedo texture, or nil if none is set.
	//
	// Returns:
	//   - Texture: the diffuse texture, or nil
	DiffuseTexture() Texture

	// NormalTexture retrieves the normal map texture, or nil if none is set.
	//
	// Returns:
	//   - Texture: the normal texture, or nil
	NormalTexture() Texture

	// Descriptors returns the material's textures paired with their sampler names, diffuse
	// first, then normal when present.
	//
	// Returns:
	//   - []Descriptor: a fresh slice the caller may append to
	Descriptors() []Descriptor
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// FromImported resolves an imported material against decoded texture data, uploading each
// image once through cache. A missing or undecoded diffuse map falls back to a shared 1x1
// white texture. A missing normal map stays missing.
//
// Parameters:
//   - imported: the material read from the model file
//   - decoded: decoded pixels keyed by common.ImportedTexture.Key
//   - cache: the texture cache owning the uploads
//
// Returns:
//   - Material: the resolved material
func FromImported(imported common.ImportedMaterial, decoded map[string]common.TextureStagingData, cache *TextureCache) Material {
	opts := []MaterialBuilderOption{WithName(imported.Name)}

	diffuse := upload(imported.DiffuseTexture, decoded, cache)
	if diffuse == nil {
		diffuse = Fallback(cache)
	}
	opts = append(opts, WithDiffuseTexture(diffuse))

	if normal := upload(imported.NormalTexture, decoded, cache); normal != nil {
		opts = append(opts, WithNormalTexture(normal))
	}
	return NewMaterial(opts...)
}

// Fallback returns the shared 1x1 white diffuse texture.
func Fallback(cache *TextureCache) Texture {
	return cache.GetOrUpload(fallbackDiffuseKey, common.SolidTexture([4]byte{255, 255, 255, 255}))
}

func upload(tex *common.ImportedTexture, decoded map[string]common.TextureStagingData, cache *TextureCache) Texture {
	if tex == nil {
		return nil
	}
	data, ok := decoded[tex.Key()]
	if !ok {
		return nil
	}
	return cache.GetOrUpload(tex.Key(), data)
}

func (m *material) Name() string {
	return m.name
}

func (m *material) DiffuseTexture() Texture {
	return m.diffuseTexture
}

func (m *material) NormalTexture() Texture {
	return m.normalTexture
}

func (m *material) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, 2)
	if m.diffuseTexture != nil {
		out = append(out, Descriptor{Texture: m.diffuseTexture, Name: SamplerDiffuse})
	}
	if m.normalTexture != nil {
		out = append(out, Descriptor{Texture: m.normalTexture, Name: SamplerNormal})
	}
	return out
}
