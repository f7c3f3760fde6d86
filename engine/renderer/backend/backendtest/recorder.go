// Package backendtest provides a recording backend.Backend for tests that exercise rendering
// code without a GPU.
package backendtest

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded backend invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Recorder records every call made through the backend.Backend interface and simulates
// enough state (current program, active unit, bound textures, uniform values) for tests
// to assert on the results.
type Recorder struct {
	// CompileFailures maps a stage to the compiler log it should fail with.
	CompileFailures map[backend.ShaderStage]string

	// LinkFailure, when non-empty, makes every link fail with this log.
	LinkFailure string

	// MissingUniforms lists names that resolve to backend.InvalidLocation.
	MissingUniforms map[string]bool

	// FramebufferStatus is returned by CreateDepthFramebuffer. Zero means complete.
	FramebufferStatus backend.FramebufferStatus

	calls      []Call
	nextHandle uint32
	locations  map[uint32]map[string]int32

	// CurrentProgram is the program selected by the last UseProgram.
	CurrentProgram uint32
	// ActiveUnit is the unit selected by the last ActiveTexture.
	ActiveUnit uint32
	// BoundTextures maps a texture unit to its bound texture.
	BoundTextures map[uint32]uint32
	// BoundVAO is the currently bound vertex array.
	BoundVAO uint32
	// BoundFramebuffer is the currently bound draw framebuffer.
	BoundFramebuffer uint32
	// Uniforms holds the last value uploaded per program and uniform name.
	Uniforms map[uint32]map[string]any
	// Deleted counts released handles by kind ("shader", "program", "texture", "mesh", "framebuffer").
	Deleted map[string]int
	// Sources holds the last source compiled per stage.
	Sources map[backend.ShaderStage]string
}

var _ backend.Backend = &Recorder{}

// NewRecorder creates an empty Recorder where every operation succeeds.
func NewRecorder() *Recorder {
	return &Recorder{
		CompileFailures: map[backend.ShaderStage]string{},
		MissingUniforms: map[string]bool{},
		locations:       map[uint32]map[string]int32{},
		BoundTextures:   map[uint32]uint32{},
		Uniforms:        map[uint32]map[string]any{},
		Deleted:         map[string]int{},
		Sources:         map[backend.ShaderStage]string{},
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) handle() uint32 {
	r.nextHandle++
	return r.nextHandle
}

// Calls returns every recorded call, optionally filtered to the given names.
func (r *Recorder) Calls(names ...string) []Call {
	if len(names) == 0 {
		return append([]Call(nil), r.calls...)
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []Call
	for _, c := range r.calls {
		if want[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times the named call was made.
func (r *Recorder) Count(name string) int {
	return len(r.Calls(name))
}

// Reset forgets recorded calls but keeps simulated state.
func (r *Recorder) Reset() {
	r.calls = nil
}

// Uniform returns the last value uploaded to name on program, and whether any upload happened.
func (r *Recorder) Uniform(program uint32, name string) (any, bool) {
	v, ok := r.Uniforms[program][name]
	return v, ok
}

func (r *Recorder) nameAt(location int32) (string, bool) {
	for name, loc := range r.locations[r.CurrentProgram] {
		if loc == location {
			return name, true
		}
	}
	return "", false
}

func (r *Recorder) store(location int32, v any) {
	if location == backend.InvalidLocation {
		return
	}
	name, ok := r.nameAt(location)
	if !ok {
		return
	}
	if r.Uniforms[r.CurrentProgram] == nil {
		r.Uniforms[r.CurrentProgram] = map[string]any{}
	}
	r.Uniforms[r.CurrentProgram][name] = v
}

func (r *Recorder) Version() string {
	return "recorder"
}

func (r *Recorder) CompileShader(stage backend.ShaderStage, source string) (uint32, string, bool) {
	r.record("CompileShader", stage)
	r.Sources[stage] = source
	if log, fail := r.CompileFailures[stage]; fail {
		return 0, log, false
	}
	return r.handle(), "", true
}

func (r *Recorder) DeleteShader(handle uint32) {
	r.record("DeleteShader", handle)
	r.Deleted["shader"]++
}

func (r *Recorder) LinkProgram(vertex, fragment uint32) (uint32, string, bool) {
	r.record("LinkProgram", vertex, fragment)
	if r.LinkFailure != "" {
		return 0, r.LinkFailure, false
	}
	h := r.handle()
	r.locations[h] = map[string]int32{}
	return h, "", true
}

func (r *Recorder) DeleteProgram(handle uint32) {
	r.record("DeleteProgram", handle)
	r.Deleted["program"]++
}

func (r *Recorder) UseProgram(handle uint32) {
	r.record("UseProgram", handle)
	r.CurrentProgram = handle
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	r.record("UniformLocation", program, name)
	if r.MissingUniforms[name] {
		return backend.InvalidLocation
	}
	locs := r.locations[program]
	if locs == nil {
		locs = map[string]int32{}
		r.locations[program] = locs
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := int32(len(locs))
	locs[name] = loc
	return loc
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.record("Uniform1i", location, v)
	r.store(location, v)
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.record("Uniform1f", location, v)
	r.store(location, v)
}

func (r *Recorder) Uniform3f(location int32, v mgl32.Vec3) {
	r.record("Uniform3f", location, v)
	r.store(location, v)
}

func (r *Recorder) UniformMatrix4(location int32, m mgl32.Mat4) {
	r.record("UniformMatrix4", location, m)
	r.store(location, m)
}

func (r *Recorder) CreateMeshBuffers(vertices []common.Vertex, indices []uint32) backend.MeshBuffers {
	r.record("CreateMeshBuffers", len(vertices), len(indices))
	return backend.MeshBuffers{
		VAO:        r.handle(),
		VBO:        r.handle(),
		EBO:        r.handle(),
		IndexCount: int32(len(indices)),
	}
}

func (r *Recorder) DeleteMeshBuffers(buffers backend.MeshBuffers) {
	r.record("DeleteMeshBuffers", buffers.VAO)
	r.Deleted["mesh"]++
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.record("BindVertexArray", vao)
	r.BoundVAO = vao
}

func (r *Recorder) DrawTriangles(indexCount int32) {
	r.record("DrawTriangles", r.BoundVAO, indexCount)
}

func (r *Recorder) CreateTexture2D(data common.TextureStagingData) uint32 {
	h := r.handle()
	r.record("CreateTexture2D", h, data.Width, data.Height)
	return h
}

func (r *Recorder) CreateDepthTexture(resolution int32) uint32 {
	h := r.handle()
	r.record("CreateDepthTexture", h, resolution)
	return h
}

func (r *Recorder) DeleteTexture(handle uint32) {
	r.record("DeleteTexture", handle)
	r.Deleted["texture"]++
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.record("ActiveTexture", unit)
	r.ActiveUnit = unit
}

func (r *Recorder) BindTexture2D(handle uint32) {
	r.record("BindTexture2D", r.ActiveUnit, handle)
	r.BoundTextures[r.ActiveUnit] = handle
}

func (r *Recorder) GenerateMipmap(handle uint32) {
	r.record("GenerateMipmap", handle)
}

func (r *Recorder) CreateDepthFramebuffer(depthTexture uint32) (uint32, backend.FramebufferStatus) {
	h := r.handle()
	r.record("CreateDepthFramebuffer", h, depthTexture)
	status := r.FramebufferStatus
	if status == 0 {
		status = backend.FramebufferComplete
	}
	return h, status
}

func (r *Recorder) DeleteFramebuffer(handle uint32) {
	r.record("DeleteFramebuffer", handle)
	r.Deleted["framebuffer"]++
}

func (r *Recorder) BindFramebuffer(handle uint32) {
	r.record("BindFramebuffer", handle)
	r.BoundFramebuffer = handle
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) ClearColor(c mgl32.Vec4) {
	r.record("ClearColor", c)
}

func (r *Recorder) Clear(color, depth bool) {
	r.record("Clear", color, depth)
}

func (r *Recorder) EnableDepthTest(fn backend.DepthFunc) {
	r.record("EnableDepthTest", fn)
}

func (r *Recorder) EnableCulling(face backend.CullFace) {
	r.record("EnableCulling", face)
}
