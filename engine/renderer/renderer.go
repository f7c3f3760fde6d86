package renderer

import (
	"fmt"
	"io/fs"
	"maps"
	"sort"
	"strconv"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Keys of the built-in pipelines.
const (
	PipelineKeyShadow = "shadow"
	PipelineKeyMain   = "main"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backend backend.Backend
	shadow  ShadowPass
	forward ForwardPass

	width, height int32

	// Pre-creation config collected from builder options
	shaderFS   fs.FS
	lightCount int
	shadowCfg  light.ShadowSettings
	clearColor mgl32.Vec4
}

// Renderer defines the interface for the rendering system.
//
// Each frame is drawn in two passes: a depth-only pass from the sun into the shadow map,
// then a forward pass that lights every object with all lights and samples the shadow map
// for the sun. The Renderer owns the pipelines and the shadow map.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves a snapshot of the Pipeline cache. Changing the returned map does not
	// affect the renderer.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a copy of the map of pipeline keys to their Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// ShadowMap returns the depth texture written by the shadow pass. Scenes that receive
	// shadows attach it to their objects as the shadow_map sampler.
	//
	// Returns:
	//   - material.Texture: the shadow map
	ShadowMap() material.Texture

	// Resize updates the window viewport restored after the shadow pass.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	Resize(width, height int)

	// Size returns the current window viewport size.
	//
	// Returns:
	//   - int32: width in pixels
	//   - int32: height in pixels
	Size() (int32, int32)

	// Render draws one frame. The shadow map is always written before the forward pass reads it.
	//
	// Parameters:
	//   - frame: camera matrices, lights and batches for this frame
	Render(frame Frame)

	// ReloadShaders rebuilds every pipeline whose sources are named in changed. A pipeline that
	// fails to rebuild logs the error and keeps its previous program.
	//
	// Parameters:
	//   - fsys: the shader directory to rebuild from
	//   - changed: base names of the changed shader files
	//
	// Returns:
	//   - int: the number of pipelines rebuilt
	ReloadShaders(fsys fs.FS, changed []string) int

	// Release deletes the pipelines, the shadow framebuffer and the shadow map.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer builds the shadow and main pipelines and allocates the shadow framebuffer.
//
// Parameters:
//   - b: the backend every GPU call goes through
//   - width: the initial framebuffer width in pixels
//   - height: the initial framebuffer height in pixels
//   - options: a variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: a shader, link or framebuffer error
func NewRenderer(b backend.Backend, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backend:       b,
		width:         int32(width),
		height:        int32(height),
		shaderFS:      shader.Snippets(),
		lightCount:    3,
		shadowCfg:     light.DefaultShadowSettings(),
		clearColor:    mgl32.Vec4{0.8, 0.8, 0.9, 0},
	}
	for _, option := range options {
		option(r)
	}
	if r.lightCount < 1 {
		return nil, fmt.Errorf("light count must be at least 1, got %d", r.lightCount)
	}

	shadowPipeline := pipeline.NewPipeline(b, PipelineKeyShadow, shader.ShadowVertexFile, shader.ShadowFragmentFile)
	mainPipeline := pipeline.NewPipeline(b, PipelineKeyMain, shader.MainVertexFile, shader.MainFragmentFile,
		pipeline.WithDefine(shader.DefineLightCount, strconv.Itoa(r.lightCount)))
	for _, p := range []pipeline.Pipeline{shadowPipeline, mainPipeline} {
		if err := p.Build(r.shaderFS); err != nil {
			r.Release()
			return nil, fmt.Errorf("build %s pipeline: %w", p.PipelineKey(), err)
		}
		r.pipelineCache[p.PipelineKey()] = p
	}

	shadow, err := NewShadowPass(b, shadowPipeline, r.shadowCfg.Resolution)
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("create shadow pass: %w", err)
	}
	r.shadow = shadow
	r.forward = NewForwardPass(b, mainPipeline, r.clearColor, r.shadowCfg.Bias)

	common.Logger().Info("renderer ready", "gl", b.Version(), "lights", r.lightCount, "width", width, "height", height)
	return r, nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.pipelineCache)
}

func (r *renderer) ShadowMap() material.Texture {
	return r.shadow.ShadowMap()
}

func (r *renderer) Resize(width, height int) {
	r.width, r.height = int32(width), int32(height)
	r.backend.Viewport(0, 0, r.width, r.height)
}

func (r *renderer) Size() (int32, int32) {
	return r.width, r.height
}

func (r *renderer) Render(frame Frame) {
	transform := mgl32.Ident4()
	if frame.Lights != nil {
		transform = frame.Lights.ShadowTransform()
	}
	r.shadow.Render(transform, frame.Batches, r.width, r.height)
	r.forward.Render(frame, transform)
}

func (r *renderer) ReloadShaders(fsys fs.FS, changed []string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.pipelineCache))
	for k := range r.pipelineCache {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	log := common.Logger()
	rebuilt := 0
	for _, k := range keys {
		p := r.pipelineCache[k]
		if !shader.Affects(changed, p.Sources()...) {
			continue
		}
		if err := p.Build(fsys); err != nil {
			log.Error("shader reload failed, keeping previous program", "pipeline", k, "err", err)
			continue
		}
		log.Info("shader reloaded", "pipeline", k)
		rebuilt++
	}
	return rebuilt
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pipelineCache {
		p.Release()
	}
	if r.shadow != nil {
		r.shadow.Release()
		r.shadow = nil
	}
}
