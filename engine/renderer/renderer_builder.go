package renderer

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithLightCount sets the size of the light uniform arrays compiled into the main program.
//
// Parameters:
//   - n: the number of lights, at least 1
//
// Returns:
//   - RendererBuilderOption: a function that applies the light count option to a renderer
func WithLightCount(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.lightCount = n
	}
}

// WithShadowSettings sets the shadow map resolution and the shadow test bias.
//
// Parameters:
//   - s: the shadow settings
//
// Returns:
//   - RendererBuilderOption: a function that applies the shadow option to a renderer
func WithShadowSettings(s light.ShadowSettings) RendererBuilderOption {
	return func(r *renderer) {
		r.shadowCfg = s
	}
}

// WithClearColor sets the color the window is cleared to each frame.
//
// Parameters:
//   - c: the RGBA clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c mgl32.Vec4) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithShaderFS builds the pipelines from fsys instead of the embedded shaders.
//
// Parameters:
//   - fsys: a directory holding the stage files and include snippets
//
// Returns:
//   - RendererBuilderOption: a function that applies the shader source option to a renderer
func WithShaderFS(fsys fs.FS) RendererBuilderOption {
	return func(r *renderer) {
		r.shaderFS = fsys
	}
}
