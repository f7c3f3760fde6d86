package engine

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-gl/engine/loader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output, overriding the configuration.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow uses an existing window instead of creating one from the configuration.
// Its GL context must already be current.
//
// Parameters:
//   - w: the window to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithBackend uses an existing backend instead of loading the GL functions.
//
// Parameters:
//   - b: the backend to draw with
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithBackend(b backend.Backend) EngineBuilderOption {
	return func(e *engine) {
		e.backend = b
	}
}

// WithLoader replaces the default asset loader.
func WithLoader(l loader.Loader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = l
	}
}

// WithShaderFS reads shaders from fsys instead of shaders.dir or the embedded copies.
func WithShaderFS(fsys fs.FS) EngineBuilderOption {
	return func(e *engine) {
		e.shaderFS = fsys
	}
}
