// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Vertex is the tightly packed vertex layout consumed by every mesh in the engine.
// Attribute locations: 0 = Position, 1 = Normal, 2 = TexCoord.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// VertexStride is the size of a Vertex in bytes.
const VertexStride = 8 * 4

// Vertex attribute byte offsets within a Vertex.
const (
	VertexPositionOffset = 0
	VertexNormalOffset   = 3 * 4
	VertexTexCoordOffset = 6 * 4
)

// TextureFilter selects the sampling filter of a texture.
type TextureFilter int

const (
	// FilterLinear samples with bilinear filtering, trilinear when mipmaps exist.
	FilterLinear TextureFilter = iota

	// FilterNearest samples the closest texel.
	FilterNearest
)

// TextureWrap selects the addressing mode for coordinates outside [0, 1].
type TextureWrap int

const (
	// WrapRepeat tiles the texture.
	WrapRepeat TextureWrap = iota

	// WrapClampToEdge clamps coordinates to the edge texels.
	WrapClampToEdge
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, rows from the first row of the source image.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Filter is the sampling filter. Linear textures get a mipmap chain.
	Filter TextureFilter
	// Wrap is the addressing mode applied to both axes.
	Wrap TextureWrap
}

// ImportedMaterial represents the texture references of a material read from a model file.
type ImportedMaterial struct {
	// Name is the material identifier.
	Name string

	// DiffuseTexture holds the diffuse/albedo map, nil when the material has none.
	DiffuseTexture *ImportedTexture

	// NormalTexture holds the normal map, nil when the material has none.
	NormalTexture *ImportedTexture
}

// ImportedMesh is a single drawable unit read from a model file.
type ImportedMesh struct {
	// Name is the mesh or group name from the source file.
	Name string

	// Vertices is the deduplicated vertex list.
	Vertices []Vertex

	// Indices is the triangle list into Vertices.
	Indices []uint32

	// MaterialIndex indexes ImportedModel.Materials, or -1 when the mesh has no material.
	MaterialIndex int
}

// ImportedModel is the result of parsing one asset file.
type ImportedModel struct {
	// Name is derived from the file name.
	Name string

	// Meshes are returned in file order.
	Meshes []ImportedMesh

	// Materials are referenced by ImportedMesh.MaterialIndex.
	Materials []ImportedMaterial
}

// ImportedTexture represents texture data extracted from a model file.
// For embedded textures (GLB), the Data field contains raw image bytes.
// For external textures, the Path field contains the file path.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g., "diffuse", "normal").
	Name string

	// Path is the file path for external textures (empty for embedded).
	Path string

	// Data contains raw image bytes for embedded textures.
	Data []byte

	// MimeType indicates the image format (e.g., "image/png", "image/jpeg").
	MimeType string

	// FlipV flips rows on decode so that row 0 is the bottom of the image (OBJ texture convention).
	FlipV bool

	// Filter is the sampling filter requested by the source file.
	Filter TextureFilter

	// Wrap is the addressing mode requested by the source file.
	Wrap TextureWrap

	// Width is the texture width in pixels (populated after Decode).
	Width int

	// Height is the texture height in pixels (populated after Decode).
	Height int
}

// Key returns the identity used to share decoded textures between materials.
//
// Returns:
//   - string: the file path for external textures, or the name for embedded ones
func (t *ImportedTexture) Key() string {
	if t.Path != "" {
		return t.Path
	}
	return "embedded:" + t.Name
}

// Decode decodes the texture to raw RGBA pixel data.
// Uses either embedded Data bytes or loads from Path on disk.
// Supports PNG, JPEG, BMP, TIFF and WebP.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - TextureStagingData: RGBA pixels ready for upload with the texture's filter and wrap
//   - error: error if decoding fails
func (t *ImportedTexture) Decode() (TextureStagingData, error) {
	if t == nil {
		return TextureStagingData{}, fmt.Errorf("texture is nil")
	}

	var img image.Image
	var err error

	if len(t.Data) > 0 {
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode embedded image: %w", err)
		}
	} else if t.Path != "" {
		file, fileErr := os.Open(t.Path)
		if fileErr != nil {
			return TextureStagingData{}, fmt.Errorf("failed to open texture file %s: %w", t.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
	} else {
		return TextureStagingData{}, fmt.Errorf("texture has neither data nor path")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	if t.FlipV {
		flipRows(rgba)
	}

	t.Width = width
	t.Height = height

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(width),
		Height: uint32(height),
		Filter: t.Filter,
		Wrap:   t.Wrap,
	}, nil
}

// SolidTexture builds a 1x1 staging texture of a single RGBA color.
//
// Parameters:
//   - rgba: the texel value
//
// Returns:
//   - TextureStagingData: the 1x1 texture
func SolidTexture(rgba [4]byte) TextureStagingData {
	return TextureStagingData{
		Pixels: []byte{rgba[0], rgba[1], rgba[2], rgba[3]},
		Width:  1,
		Height: 1,
		Filter: FilterNearest,
		Wrap:   WrapRepeat,
	}
}

func flipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	stride := img.Stride
	tmp := make([]byte, stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*stride : (y+1)*stride]
		bottom := img.Pix[(h-1-y)*stride : (h-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
