package loader

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
)

// loaderBackend defines the generic interface for parsing one model file format into CPU-side
// data. Concrete implementations (gltfLoaderBackend, objLoaderBackend) handle format details;
// decoding images and uploading to the GPU happen in the Loader.
type loaderBackend interface {
	// Load imports meshes and materials from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *common.ImportedModel: the imported model data, meshes in file order
	//   - error: error if reading or parsing fails
	Load(path string) (*common.ImportedModel, error)
}
