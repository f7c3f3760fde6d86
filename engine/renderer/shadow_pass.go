package renderer

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/pipeline"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names shared by the shadow and forward programs.
const (
	UniformModel      = "model"
	UniformTransform  = "transform"
	UniformView       = "view"
	UniformProjection = "projection"
	UniformShadowBias = "shadow_bias"
	UniformHasNorm    = "has_norm"
	UniformHasShadow  = "has_shadow"
)

type shadowPass struct {
	backend    backend.Backend
	pipeline   pipeline.Pipeline
	depth      material.Texture
	fbo        uint32
	resolution int32
}

// ShadowPass renders scene depth from the sun into a depth texture that the forward pass samples.
type ShadowPass interface {
	// ShadowMap returns the depth texture written by Render.
	//
	// Returns:
	//   - material.Texture: the shadow map, shared with every shadow-receiving object
	ShadowMap() material.Texture

	// Resolution returns the width and height of the shadow map.
	//
	// Returns:
	//   - int32: the resolution in texels
	Resolution() int32

	// Render draws every shadow-casting batch into the shadow map and restores the window
	// framebuffer and viewport afterwards.
	//
	// Parameters:
	//   - transform: the light-space transform
	//   - batches: the batches to consider, only those with CastsShadows are drawn
	//   - width, height: the window viewport to restore
	Render(transform mgl32.Mat4, batches []Batch, width, height int32)

	// Release deletes the framebuffer and the depth texture.
	Release()
}

var _ ShadowPass = &shadowPass{}

// NewShadowPass allocates the depth texture and its framebuffer.
//
// Parameters:
//   - b: the backend the pass renders through
//   - p: the depth-only pipeline
//   - resolution: shadow map width and height in texels
//
// Returns:
//   - ShadowPass: the pass
//   - error: a *common.FramebufferIncompleteError if the framebuffer cannot be rendered to
func NewShadowPass(b backend.Backend, p pipeline.Pipeline, resolution int32) (ShadowPass, error) {
	depth := material.NewDepthTexture(b, resolution)
	fbo, status := b.CreateDepthFramebuffer(depth.Handle())
	if status != backend.FramebufferComplete {
		b.DeleteFramebuffer(fbo)
		depth.Release()
		return nil, &common.FramebufferIncompleteError{Status: uint32(status)}
	}
	common.Logger().Info("shadow framebuffer ready", "resolution", resolution, "fbo", fbo)
	return &shadowPass{
		backend:    b,
		pipeline:   p,
		depth:      depth,
		fbo:        fbo,
		resolution: resolution,
	}, nil
}

func (s *shadowPass) ShadowMap() material.Texture {
	return s.depth
}

func (s *shadowPass) Resolution() int32 {
	return s.resolution
}

func (s *shadowPass) Render(transform mgl32.Mat4, batches []Batch, width, height int32) {
	b := s.backend
	b.BindFramebuffer(s.fbo)
	b.Clear(false, true)
	b.Viewport(0, 0, s.resolution, s.resolution)

	s.pipeline.Bind()
	prog := s.pipeline.Program()
	prog.SetMat4(UniformTransform, transform)

	for _, batch := range batches {
		if !batch.CastsShadows {
			continue
		}
		prog.SetMat4(UniformModel, batch.Model)
		for _, obj := range batch.Objects {
			if !obj.Enabled() {
				continue
			}
			obj.Mesh().Draw()
		}
	}

	b.GenerateMipmap(s.depth.Handle())
	b.BindFramebuffer(0)
	b.Viewport(0, 0, width, height)
}

func (s *shadowPass) Release() {
	if s.fbo != 0 {
		s.backend.DeleteFramebuffer(s.fbo)
		s.fbo = 0
	}
	s.depth.Release()
}
