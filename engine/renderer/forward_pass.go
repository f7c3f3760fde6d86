package renderer

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/pipeline"
	"github.com/go-gl/mathgl/mgl32"
)

type forwardPass struct {
	backend    backend.Backend
	pipeline   pipeline.Pipeline
	clearColor mgl32.Vec4
	shadowBias float32
}

// ForwardPass shades every batch with all lights in a single pass, shadow-testing the sun.
type ForwardPass interface {
	// Render clears the window framebuffer and draws every batch.
	//
	// Parameters:
	//   - frame: camera matrices, lights and batches
	//   - transform: the light-space transform the shadow map was rendered with
	Render(frame Frame, transform mgl32.Mat4)
}

var _ ForwardPass = &forwardPass{}

// NewForwardPass creates the forward pass.
//
// Parameters:
//   - b: the backend the pass renders through
//   - p: the lit pipeline
//   - clearColor: the window clear color
//   - shadowBias: the depth bias of the sun's shadow test
//
// Returns:
//   - ForwardPass: the pass
func NewForwardPass(b backend.Backend, p pipeline.Pipeline, clearColor mgl32.Vec4, shadowBias float32) ForwardPass {
	return &forwardPass{
		backend:    b,
		pipeline:   p,
		clearColor: clearColor,
		shadowBias: shadowBias,
	}
}

func (f *forwardPass) Render(frame Frame, transform mgl32.Mat4) {
	f.backend.ClearColor(f.clearColor)
	f.backend.Clear(true, true)

	f.pipeline.Bind()
	prog := f.pipeline.Program()
	prog.SetMat4(UniformProjection, frame.Projection)
	prog.SetMat4(UniformView, frame.View)
	prog.SetMat4(UniformTransform, transform)
	prog.SetFloat(UniformShadowBias, f.shadowBias)
	if frame.Lights != nil {
		frame.Lights.Upload(prog)
	}

	for _, batch := range frame.Batches {
		for _, obj := range batch.Objects {
			if !obj.Enabled() {
				continue
			}
			prog.SetMat4(UniformModel, batch.Model)
			prog.SetBool(UniformHasNorm, obj.HasNormalMap())
			prog.SetBool(UniformHasShadow, obj.HasShadowMap())
			obj.Draw(prog)
		}
	}
}
