package shader

import (
	"embed"
	"fmt"
	"io/fs"
)

// File names of the built-in shader stages, relative to a shader directory.
const (
	MainVertexFile     = "main.vert"
	MainFragmentFile   = "main.frag"
	ShadowVertexFile   = "shadow.vert"
	ShadowFragmentFile = "shadow.frag"
)

// DefineLightCount is the define annotation that sizes the light uniform arrays.
const DefineLightCount = "LIGHT_COUNT"

//go:embed glsl
var embedded embed.FS

// Snippets returns the built-in shader directory. Stage files and include snippets share it.
func Snippets() fs.FS {
	sub, err := fs.Sub(embedded, "glsl")
	if err != nil {
		panic(err)
	}
	return sub
}

// StageSources holds the raw sources of one vertex + fragment pair.
type StageSources struct {
	Vertex   string
	Fragment string
}

// LoadStageSources reads a vertex and fragment file pair from fsys.
//
// Parameters:
//   - fsys: the shader directory, Snippets() or an os.DirFS for hot reload
//   - vertexFile: the vertex stage file name
//   - fragmentFile: the fragment stage file name
//
// Returns:
//   - StageSources: the raw sources
//   - error: an error if either file cannot be read
func LoadStageSources(fsys fs.FS, vertexFile, fragmentFile string) (StageSources, error) {
	vs, err := fs.ReadFile(fsys, vertexFile)
	if err != nil {
		return StageSources{}, fmt.Errorf("read vertex shader: %w", err)
	}
	frag, err := fs.ReadFile(fsys, fragmentFile)
	if err != nil {
		return StageSources{}, fmt.Errorf("read fragment shader: %w", err)
	}
	return StageSources{Vertex: string(vs), Fragment: string(frag)}, nil
}
