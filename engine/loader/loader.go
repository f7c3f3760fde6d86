package loader

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
)

// loader is the implementation of the Loader interface.
type loader struct {
	gpu           backend.Backend
	decodeWorkers int
	pool          worker.DynamicWorkerPool
	ownsPool      bool
	backends      map[string]loaderBackend
}

// Loader defines the public-facing interface for loading 3D models. It abstracts the file
// format (OBJ, glTF, GLB) behind a backend chosen by extension, decodes textures in parallel
// and uploads meshes and textures through the render backend.
type Loader interface {
	// Load imports a model file and uploads it.
	//
	// Parameters:
	//   - dir: the directory containing the model and its textures
	//   - file: the model file name, relative to dir
	//
	// Returns:
	//   - model.Model: the GPU-ready model, parts in file order
	//   - error: a *common.AssetLoadError if the file cannot be read or parsed
	Load(dir, file string) (model.Model, error)

	// Import parses a model file into CPU-side data without touching the GPU.
	//
	// Parameters:
	//   - path: the model file path
	//
	// Returns:
	//   - *common.ImportedModel: the parsed model
	//   - error: a *common.AssetLoadError if the file cannot be read or parsed
	Import(path string) (*common.ImportedModel, error)

	// Release stops the decode pool if the Loader created it. A pool passed in with
	// WithWorkerPool stays running.
	Release()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader uploading through b, with OBJ and glTF backends registered.
// Without WithWorkerPool the Loader starts its own decode pool, sized by WithDecodeWorkers.
//
// Parameters:
//   - b: the render backend meshes and textures are uploaded through
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(b backend.Backend, options ...LoaderBuilderOption) Loader {
	gltf := newGLTFLoaderBackend()
	l := &loader{
		gpu:           b,
		decodeWorkers: runtime.NumCPU(),
		backends: map[string]loaderBackend{
			".obj":  newOBJLoaderBackend(),
			".gltf": gltf,
			".glb":  gltf,
		},
	}
	for _, option := range options {
		option(l)
	}
	if l.pool == nil {
		l.pool = NewDecodePool(l.decodeWorkers)
		l.ownsPool = true
	}
	return l
}

func (l *loader) Release() {
	if l.ownsPool && l.pool != nil {
		l.pool.Stop()
		l.pool = nil
	}
}

// resolveBackend selects a loader backend by file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if b, ok := l.backends[ext]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("unsupported model format: %q", ext)
}

func (l *loader) Import(path string) (*common.ImportedModel, error) {
	b, err := l.resolveBackend(path)
	if err != nil {
		return nil, &common.AssetLoadError{Path: path, Err: err}
	}
	imported, err := b.Load(path)
	if err != nil {
		return nil, &common.AssetLoadError{Path: path, Err: err}
	}
	for i, m := range imported.Meshes {
		if err := validateIndices(m.Indices, len(m.Vertices)); err != nil {
			return nil, &common.AssetLoadError{Path: path, Err: fmt.Errorf("mesh %d %q: %w", i, m.Name, err)}
		}
	}
	return imported, nil
}

func (l *loader) Load(dir, file string) (model.Model, error) {
	path := filepath.Join(dir, file)
	imported, err := l.Import(path)
	if err != nil {
		return nil, err
	}
	return l.importedToModel(imported), nil
}

// importedToModel converts an ImportedModel (CPU data) into a Model (GPU-ready). Textures are
// decoded on the shared worker pool, then every upload happens on the calling thread.
func (l *loader) importedToModel(imported *common.ImportedModel) model.Model {
	log := common.Logger().With("model", imported.Name)

	decoded, failed := decodeTextures(l.pool, uniqueTextures(imported))
	for key, err := range failed {
		log.Warn("texture decode failed, using fallback", "texture", key, "err", err)
	}

	cache := material.NewTextureCache(l.gpu)
	materials := make([]material.Material, len(imported.Materials))
	for i, m := range imported.Materials {
		materials[i] = material.FromImported(m, decoded, cache)
	}

	opts := []model.ModelBuilderOption{
		model.WithName(imported.Name),
		model.WithTextureCache(cache),
	}
	for _, m := range imported.Meshes {
		var mat material.Material
		if m.MaterialIndex >= 0 && m.MaterialIndex < len(materials) {
			mat = materials[m.MaterialIndex]
		} else {
			mat = material.NewMaterial(material.WithDiffuseTexture(material.Fallback(cache)))
		}
		mesh := model.NewMesh(l.gpu, m.Name, m.Vertices, m.Indices)
		opts = append(opts, model.WithPart(mesh, mat))
	}

	log.Info("model loaded", "meshes", len(imported.Meshes), "materials", len(materials), "textures", cache.Len())
	return model.NewModel(opts...)
}
