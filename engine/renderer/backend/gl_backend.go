package backend

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// glBackend is the OpenGL 3.3 core implementation of the Backend interface.
type glBackend struct {
	version string
}

var _ Backend = &glBackend{}

// NewBackend loads the GPU function pointers for the selected backend type.
// The window's GL context must be current on the calling thread.
//
// Parameters:
//   - backendType: the backend implementation to use
//
// Returns:
//   - Backend: the ready backend
//   - error: a *common.StartupError if the function pointers cannot be loaded
func NewBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendTypeGL:
		fallthrough
	default:
		return newGLBackend()
	}
}

func newGLBackend() (*glBackend, error) {
	// Reference: https://pkg.go.dev/github.com/go-gl/gl/v3.3-core/gl#Init
	if err := gl.Init(); err != nil {
		return nil, &common.StartupError{Stage: "load gl", Err: err}
	}
	b := &glBackend{
		version: gl.GoStr(gl.GetString(gl.VERSION)),
	}
	gl.Enable(gl.MULTISAMPLE)
	common.Logger().Info("gl backend ready",
		"version", b.version,
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return b, nil
}

func (b *glBackend) Version() string {
	return b.version
}

func (b *glBackend) CompileShader(stage ShaderStage, source string) (uint32, string, bool) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == StageFragment {
		kind = gl.FRAGMENT_SHADER
	}

	handle := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return handle, "", true
	}

	var logLength int32
	gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
	info := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(info))
	gl.DeleteShader(handle)
	return 0, strings.TrimRight(info, "\x00"), false
}

func (b *glBackend) DeleteShader(handle uint32) {
	gl.DeleteShader(handle)
}

func (b *glBackend) LinkProgram(vertex, fragment uint32) (uint32, string, bool) {
	handle := gl.CreateProgram()
	gl.AttachShader(handle, vertex)
	gl.AttachShader(handle, fragment)
	gl.LinkProgram(handle)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		gl.DetachShader(handle, vertex)
		gl.DetachShader(handle, fragment)
		return handle, "", true
	}

	var logLength int32
	gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)
	info := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(handle, logLength, nil, gl.Str(info))
	gl.DeleteProgram(handle)
	return 0, strings.TrimRight(info, "\x00"), false
}

func (b *glBackend) DeleteProgram(handle uint32) {
	gl.DeleteProgram(handle)
}

func (b *glBackend) UseProgram(handle uint32) {
	gl.UseProgram(handle)
}

func (b *glBackend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (b *glBackend) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (b *glBackend) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (b *glBackend) Uniform3f(location int32, v mgl32.Vec3) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (b *glBackend) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (b *glBackend) CreateMeshBuffers(vertices []common.Vertex, indices []uint32) MeshBuffers {
	var mb MeshBuffers
	gl.GenVertexArrays(1, &mb.VAO)
	gl.GenBuffers(1, &mb.VBO)
	gl.GenBuffers(1, &mb.EBO)

	gl.BindVertexArray(mb.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, mb.VBO)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*common.VertexStride, gl.Ptr(vertices), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mb.EBO)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, common.VertexStride, common.VertexPositionOffset)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, common.VertexStride, common.VertexNormalOffset)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, common.VertexStride, common.VertexTexCoordOffset)

	gl.BindVertexArray(0)
	mb.IndexCount = int32(len(indices))
	return mb
}

func (b *glBackend) DeleteMeshBuffers(buffers MeshBuffers) {
	gl.DeleteBuffers(1, &buffers.EBO)
	gl.DeleteBuffers(1, &buffers.VBO)
	gl.DeleteVertexArrays(1, &buffers.VAO)
}

func (b *glBackend) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (b *glBackend) DrawTriangles(indexCount int32) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, 0)
}

func (b *glBackend) CreateTexture2D(data common.TextureStagingData) uint32 {
	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_2D, handle)

	wrap := int32(gl.REPEAT)
	if data.Wrap == common.WrapClampToEdge {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	switch data.Filter {
	case common.FilterNearest:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	default:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	}

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(data.Width), int32(data.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(data.Pixels))

	if data.Filter == common.FilterLinear {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return handle
}

func (b *glBackend) CreateDepthTexture(resolution int32) uint32 {
	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_2D, handle)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, resolution, resolution, 0,
		gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return handle
}

func (b *glBackend) DeleteTexture(handle uint32) {
	gl.DeleteTextures(1, &handle)
}

func (b *glBackend) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (b *glBackend) BindTexture2D(handle uint32) {
	gl.BindTexture(gl.TEXTURE_2D, handle)
}

func (b *glBackend) GenerateMipmap(handle uint32) {
	gl.BindTexture(gl.TEXTURE_2D, handle)
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (b *glBackend) CreateDepthFramebuffer(depthTexture uint32) (uint32, FramebufferStatus) {
	var handle uint32
	gl.GenFramebuffers(1, &handle)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, handle)
	gl.FramebufferTexture(gl.DRAW_FRAMEBUFFER, gl.DEPTH_ATTACHMENT, depthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	status := FramebufferStatus(gl.CheckFramebufferStatus(gl.DRAW_FRAMEBUFFER))
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	return handle, status
}

func (b *glBackend) DeleteFramebuffer(handle uint32) {
	gl.DeleteFramebuffers(1, &handle)
}

func (b *glBackend) BindFramebuffer(handle uint32) {
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, handle)
}

func (b *glBackend) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (b *glBackend) ClearColor(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
}

func (b *glBackend) Clear(color, depth bool) {
	var mask uint32
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

func (b *glBackend) EnableDepthTest(fn DepthFunc) {
	gl.Enable(gl.DEPTH_TEST)
	switch fn {
	case DepthLess:
		gl.DepthFunc(gl.LESS)
	default:
		gl.DepthFunc(gl.LEQUAL)
	}
}

func (b *glBackend) EnableCulling(face CullFace) {
	gl.Enable(gl.CULL_FACE)
	switch face {
	case CullFront:
		gl.CullFace(gl.FRONT)
	default:
		gl.CullFace(gl.BACK)
	}
}

// String implements fmt.Stringer for log output.
func (b *glBackend) String() string {
	return fmt.Sprintf("gl(%s)", b.version)
}
