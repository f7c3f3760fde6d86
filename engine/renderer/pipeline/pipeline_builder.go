package pipeline

import "github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"

// PipelineBuilderOption is a function that configures a Pipeline instance during construction.
type PipelineBuilderOption func(*pipeline)

// WithDepthFunc sets the depth comparison enabled when the pipeline is bound.
// The default is backend.DepthLessEqual.
//
// Parameters:
//   - fn: the depth comparison
//
// Returns:
//   - PipelineBuilderOption: a function that applies the depth option to a pipeline
func WithDepthFunc(fn backend.DepthFunc) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthFunc = fn
	}
}

// WithCullFace sets the faces culled when the pipeline is bound. The default is backend.CullBack.
//
// Parameters:
//   - face: the face to cull
//
// Returns:
//   - PipelineBuilderOption: a function that applies the cull option to a pipeline
func WithCullFace(face backend.CullFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullFace = face
	}
}

// WithDefine binds a value to a define annotation in the pipeline's shader sources.
//
// Parameters:
//   - name: the define name, e.g. shader.DefineLightCount
//   - value: the substituted value
//
// Returns:
//   - PipelineBuilderOption: a function that applies the define to a pipeline
func WithDefine(name, value string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.defines[name] = value
	}
}
