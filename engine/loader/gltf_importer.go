package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// gltfLoaderBackend is the loaderBackend for .gltf and .glb files. Each triangle primitive
// becomes one ImportedMesh; node transforms are not applied.
type gltfLoaderBackend struct{}

var _ loaderBackend = &gltfLoaderBackend{}

func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackend{}
}

func (b *gltfLoaderBackend) Load(path string) (*common.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return importGLTF(parser, path)
}

// importGLTF extracts meshes and materials from a parser that has already loaded a document.
func importGLTF(parser gltfParser, fallbackPath string) (*common.ImportedModel, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	var meshes []common.ImportedMesh
	for mi := range doc.Meshes {
		mesh := &doc.Meshes[mi]
		for pi := range mesh.Primitives {
			imported, err := gltfExtractPrimitive(parser, &mesh.Primitives[pi], mesh.Name, pi)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			meshes = append(meshes, *imported)
		}
	}

	materials := make([]common.ImportedMaterial, len(doc.Materials))
	for i := range doc.Materials {
		mat, err := gltfExtractMaterial(parser, i)
		if err != nil {
			return nil, fmt.Errorf("material %d: %w", i, err)
		}
		materials[i] = mat
	}

	return &common.ImportedModel{
		Name:      gltfModelName(doc, fallbackPath),
		Meshes:    meshes,
		Materials: materials,
	}, nil
}

func gltfExtractPrimitive(parser gltfParser, prim *gltfPrimitive, meshName string, primIndex int) (*common.ImportedMesh, error) {
	if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
		return nil, fmt.Errorf("unsupported primitive mode: %d (only triangles supported)", *prim.Mode)
	}

	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := parser.ReadVec3Accessor(posAccessor)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	vertices := make([]common.Vertex, len(positions))
	for i, pos := range positions {
		vertices[i].Position = mgl32.Vec3(pos)
	}

	hasNormals := false
	if acc, ok := prim.Attributes["NORMAL"]; ok {
		normals, err := parser.ReadVec3Accessor(acc)
		if err != nil {
			return nil, fmt.Errorf("failed to read normals: %w", err)
		}
		for i := 0; i < len(normals) && i < len(vertices); i++ {
			vertices[i].Normal = mgl32.Vec3(normals[i])
		}
		hasNormals = true
	}

	if acc, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, err := parser.ReadVec2Accessor(acc)
		if err != nil {
			return nil, fmt.Errorf("failed to read texcoords: %w", err)
		}
		for i := 0; i < len(uvs) && i < len(vertices); i++ {
			vertices[i].TexCoord = mgl32.Vec2(uvs[i])
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = parser.ReadIndicesAccessor(*prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if err := validateIndices(indices, len(vertices)); err != nil {
		return nil, err
	}

	if !hasNormals {
		generateNormals(vertices, indices, nil)
	}

	materialIndex := -1
	if prim.Material != nil {
		materialIndex = *prim.Material
	}

	name := meshName
	if name == "" {
		name = fmt.Sprintf("mesh_%d", primIndex)
	}
	if primIndex > 0 {
		name = fmt.Sprintf("%s_prim%d", name, primIndex)
	}

	return &common.ImportedMesh{
		Name:          name,
		Vertices:      vertices,
		Indices:       indices,
		MaterialIndex: materialIndex,
	}, nil
}

func gltfExtractMaterial(parser gltfParser, index int) (common.ImportedMaterial, error) {
	mat := &parser.Document().Materials[index]
	result := common.ImportedMaterial{Name: mat.Name}

	if pbr := mat.PbrMetallicRoughness; pbr != nil && pbr.BaseColorTexture != nil {
		tex, err := gltfLoadTexture(parser, pbr.BaseColorTexture.Index, "diffuse")
		if err != nil {
			return result, fmt.Errorf("material %q: base color texture: %w", mat.Name, err)
		}
		result.DiffuseTexture = tex
	}
	if mat.NormalTexture != nil {
		tex, err := gltfLoadTexture(parser, mat.NormalTexture.Index, "normal")
		if err != nil {
			return result, fmt.Errorf("material %q: normal texture: %w", mat.Name, err)
		}
		result.NormalTexture = tex
	}
	return result, nil
}

// gltfLoadTexture resolves a texture index into an ImportedTexture. Embedded images (buffer
// view or data URI) carry their bytes; external images carry their path and are read at decode.
func gltfLoadTexture(parser gltfParser, textureIndex int, role string) (*common.ImportedTexture, error) {
	doc := parser.Document()
	if textureIndex < 0 || textureIndex >= len(doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", textureIndex)
	}
	tex := &doc.Textures[textureIndex]
	if tex.Source == nil {
		return nil, nil
	}
	if *tex.Source < 0 || *tex.Source >= len(doc.Images) {
		return nil, fmt.Errorf("image index %d out of range", *tex.Source)
	}
	img := &doc.Images[*tex.Source]

	result := &common.ImportedTexture{
		Name:     fmt.Sprintf("%s_%d_%s", role, *tex.Source, img.Name),
		MimeType: img.MimeType,
	}
	if tex.Sampler != nil && *tex.Sampler >= 0 && *tex.Sampler < len(doc.Samplers) {
		s := &doc.Samplers[*tex.Sampler]
		if s.MagFilter != nil && *s.MagFilter == gltfFilterNearest {
			result.Filter = common.FilterNearest
		}
		if s.WrapS != nil && *s.WrapS == gltfWrapClampToEdge {
			result.Wrap = common.WrapClampToEdge
		}
	}

	switch {
	case img.BufferView != nil:
		data, err := parser.BufferViewBytes(*img.BufferView)
		if err != nil {
			return nil, fmt.Errorf("failed to read image buffer view: %w", err)
		}
		result.Data = data
	case strings.HasPrefix(img.URI, "data:"):
		data, mime, err := decodeDataURI(img.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image data URI: %w", err)
		}
		result.Data = data
		if result.MimeType == "" {
			result.MimeType = mime
		}
	case img.URI != "":
		result.Path = filepath.Join(parser.BaseDir(), img.URI)
	default:
		return nil, nil
	}
	return result, nil
}

// gltfModelName prefers the default scene's name, then the file name.
func gltfModelName(doc *gltfDocument, fallbackPath string) string {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}
	if fallbackPath != "" {
		return strings.TrimSuffix(filepath.Base(fallbackPath), filepath.Ext(fallbackPath))
	}
	return "unnamed_model"
}
