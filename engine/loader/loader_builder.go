package loader

import "github.com/Carmen-Shannon/automation/tools/worker"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithDecodeWorkers sets how many textures the Loader's own pool decodes concurrently. It has no
// effect when WithWorkerPool is given.
//
// Parameters:
//   - n: the worker count, values below 1 mean 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithDecodeWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n < 1 {
			n = 1
		}
		l.decodeWorkers = n
	}
}

// WithWorkerPool makes the Loader decode textures on pool instead of starting its own. The caller
// keeps ownership and stops the pool after the Loader is done.
//
// Parameters:
//   - pool: a running pool, typically from NewDecodePool
//
// Returns:
//   - LoaderBuilderOption: a function that applies the pool to a loader
func WithWorkerPool(pool worker.DynamicWorkerPool) LoaderBuilderOption {
	return func(l *loader) {
		l.pool = pool
	}
}
