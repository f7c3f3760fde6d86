// Package backend defines the GPU capability surface the renderer is written against and its
// OpenGL implementation. Every method must be called from the thread that owns the GL context.
package backend

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// BackendType identifies the GPU backend implementation.
type BackendType int

const (
	// BackendTypeGL selects the OpenGL 3.3 core backend.
	BackendTypeGL BackendType = iota
)

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	// StageVertex is the vertex shader stage.
	StageVertex ShaderStage = iota

	// StageFragment is the fragment shader stage.
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// DepthFunc is the comparison used by the depth test.
type DepthFunc int

const (
	// DepthLess passes fragments strictly closer than the stored depth.
	DepthLess DepthFunc = iota

	// DepthLessEqual passes fragments closer than or equal to the stored depth.
	DepthLessEqual
)

// CullFace selects which polygon faces are discarded.
type CullFace int

const (
	// CullBack discards back faces.
	CullBack CullFace = iota

	// CullFront discards front faces.
	CullFront
)

// FramebufferStatus is the raw result of a framebuffer completeness check.
type FramebufferStatus uint32

// FramebufferComplete is the status of a framebuffer that can be rendered to (GL_FRAMEBUFFER_COMPLETE).
const FramebufferComplete FramebufferStatus = 0x8CD5

// InvalidLocation is the uniform location of a name the program does not declare.
// Uploads to it are ignored.
const InvalidLocation int32 = -1

// MeshBuffers holds the GPU objects backing one indexed mesh.
type MeshBuffers struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Backend is the set of GPU operations the renderer needs.
// Handles are plain GPU object names; ownership lives in the wrapper types of the
// shader, material, model and renderer packages.
type Backend interface {
	// Version returns a human readable description of the GPU context.
	Version() string

	// CompileShader compiles a single stage.
	//
	// Parameters:
	//   - stage: the pipeline stage
	//   - source: GLSL source
	//
	// Returns:
	//   - uint32: the shader handle, deleted by the backend on failure
	//   - string: the compiler log
	//   - bool: true if compilation succeeded
	CompileShader(stage ShaderStage, source string) (uint32, string, bool)

	// DeleteShader releases a shader stage object.
	DeleteShader(handle uint32)

	// LinkProgram links a vertex and a fragment stage into a program.
	//
	// Parameters:
	//   - vertex: compiled vertex stage
	//   - fragment: compiled fragment stage
	//
	// Returns:
	//   - uint32: the program handle, deleted by the backend on failure
	//   - string: the linker log
	//   - bool: true if linking succeeded
	LinkProgram(vertex, fragment uint32) (uint32, string, bool)

	// DeleteProgram releases a program object.
	DeleteProgram(handle uint32)

	// UseProgram makes a program current for subsequent draws.
	UseProgram(handle uint32)

	// UniformLocation queries the program's reflection data for a uniform.
	//
	// Returns:
	//   - int32: the location, or InvalidLocation when the program has no such uniform
	UniformLocation(program uint32, name string) int32

	// Uniform1i uploads an int (or sampler unit) to the current program.
	Uniform1i(location int32, v int32)

	// Uniform1f uploads a float to the current program.
	Uniform1f(location int32, v float32)

	// Uniform3f uploads a vec3 to the current program.
	Uniform3f(location int32, v mgl32.Vec3)

	// UniformMatrix4 uploads a column-major mat4 to the current program.
	UniformMatrix4(location int32, m mgl32.Mat4)

	// CreateMeshBuffers uploads vertices and indices and records the Vertex attribute layout in a new VAO.
	CreateMeshBuffers(vertices []common.Vertex, indices []uint32) MeshBuffers

	// DeleteMeshBuffers releases the VAO, VBO and EBO of a mesh.
	DeleteMeshBuffers(buffers MeshBuffers)

	// BindVertexArray binds a VAO, 0 unbinds.
	BindVertexArray(vao uint32)

	// DrawTriangles issues an indexed triangle-list draw with uint32 indices from the bound VAO.
	DrawTriangles(indexCount int32)

	// CreateTexture2D uploads an RGBA8 texture. Linear textures get a mipmap chain.
	CreateTexture2D(data common.TextureStagingData) uint32

	// CreateDepthTexture allocates a square 24-bit depth texture with nearest filtering and edge clamping.
	CreateDepthTexture(resolution int32) uint32

	// DeleteTexture releases a texture.
	DeleteTexture(handle uint32)

	// ActiveTexture selects the texture unit that BindTexture2D affects.
	ActiveTexture(unit uint32)

	// BindTexture2D binds a texture to the active unit, 0 unbinds.
	BindTexture2D(handle uint32)

	// GenerateMipmap rebuilds the mipmap chain of a texture.
	GenerateMipmap(handle uint32)

	// CreateDepthFramebuffer creates a framebuffer with depthTexture as its only (depth) attachment
	// and checks it for completeness.
	//
	// Returns:
	//   - uint32: the framebuffer handle
	//   - FramebufferStatus: FramebufferComplete or the failing status
	CreateDepthFramebuffer(depthTexture uint32) (uint32, FramebufferStatus)

	// DeleteFramebuffer releases a framebuffer.
	DeleteFramebuffer(handle uint32)

	// BindFramebuffer binds a draw framebuffer, 0 selects the window.
	BindFramebuffer(handle uint32)

	// Viewport sets the viewport rectangle.
	Viewport(x, y, width, height int32)

	// ClearColor sets the color used by Clear.
	ClearColor(c mgl32.Vec4)

	// Clear clears the selected buffers of the bound framebuffer.
	Clear(color, depth bool)

	// EnableDepthTest enables depth testing with the given comparison.
	EnableDepthTest(fn DepthFunc)

	// EnableCulling enables face culling of the given faces.
	EnableCulling(face CullFace)
}
