package loader

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/common"
)

// decodeQueueSize is the task queue length of a decode pool. Submissions past it block until a
// worker frees a slot.
const decodeQueueSize = 64

// NewDecodePool creates a worker pool for texture decoding. One pool is meant to live as long as
// the Loaders sharing it; the owner calls Stop when done.
//
// Parameters:
//   - workers: the maximum number of concurrent decodes, values below 1 mean 1
//
// Returns:
//   - worker.DynamicWorkerPool: the started pool
func NewDecodePool(workers int) worker.DynamicWorkerPool {
	return worker.NewDynamicWorkerPool(workers, decodeQueueSize, time.Second)
}

// decodeResult is the outcome of decoding one texture on a worker.
type decodeResult struct {
	key  string
	data common.TextureStagingData
	err  error
}

// uniqueTextures collects every texture referenced by the model's materials, once per key.
func uniqueTextures(imported *common.ImportedModel) []*common.ImportedTexture {
	seen := make(map[string]bool)
	var out []*common.ImportedTexture
	for _, m := range imported.Materials {
		for _, t := range []*common.ImportedTexture{m.DiffuseTexture, m.NormalTexture} {
			if t == nil || seen[t.Key()] {
				continue
			}
			seen[t.Key()] = true
			out = append(out, t)
		}
	}
	return out
}

// decodeTextures decodes images to RGBA on pool. GPU upload stays on the caller's thread.
// Textures that fail to decode are reported in failed and left out of the result.
//
// Parameters:
//   - pool: the long-lived pool the decodes run on
//   - textures: the textures to decode, unique by Key
//
// Returns:
//   - map[string]common.TextureStagingData: decoded pixels keyed by common.ImportedTexture.Key
//   - map[string]error: decode errors keyed the same way
func decodeTextures(pool worker.DynamicWorkerPool, textures []*common.ImportedTexture) (map[string]common.TextureStagingData, map[string]error) {
	decoded := make(map[string]common.TextureStagingData, len(textures))
	failed := make(map[string]error)
	if len(textures) == 0 {
		return decoded, failed
	}

	results := make([]decodeResult, len(textures))
	var wg sync.WaitGroup
	for i, tex := range textures {
		wg.Add(1)
		idx, t := i, tex
		pool.SubmitTask(worker.Task{
			ID:      idx,
			Payload: t.Key(),
			Do: func() (any, error) {
				defer wg.Done()
				data, err := t.Decode()
				results[idx] = decodeResult{key: t.Key(), data: data, err: err}
				return nil, err
			},
		})
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			failed[r.key] = r.err
			continue
		}
		decoded[r.key] = r.data
	}
	return decoded, failed
}
