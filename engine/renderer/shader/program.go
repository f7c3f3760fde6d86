package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/go-gl/mathgl/mgl32"
)

// program is the implementation of the Program interface.
type program struct {
	backend      backend.Backend
	name         string
	handle       uint32
	preProcessor PreProcessor
	defines      map[string]string

	// locations caches every resolved uniform location, including backend.InvalidLocation.
	locations map[string]int32
}

// Program is a linked vertex + fragment shader pair with a lazily filled uniform location cache.
// A uniform name absent from the linked program resolves to backend.InvalidLocation and every
// upload to it is silently dropped by the driver.
type Program interface {
	// Name returns the debug name of the program.
	Name() string

	// Handle returns the backend program handle.
	Handle() uint32

	// Use makes the program current for subsequent uniform uploads and draws.
	Use()

	// Location resolves a uniform name to its location, querying the backend at most once per name.
	//
	// Parameters:
	//   - name: the uniform name, including any array index (e.g. "light_position[2]")
	//
	// Returns:
	//   - int32: the uniform location, or backend.InvalidLocation when the program has no such uniform
	Location(name string) int32

	// SetInt uploads an int uniform. The program must be current.
	SetInt(name string, v int32)

	// SetBool uploads a bool as an int uniform (1 or 0). The program must be current.
	SetBool(name string, v bool)

	// SetFloat uploads a float uniform. The program must be current.
	SetFloat(name string, v float32)

	// SetVec3 uploads a vec3 uniform. The program must be current.
	SetVec3(name string, v mgl32.Vec3)

	// SetMat4 uploads a mat4 uniform. The program must be current.
	SetMat4(name string, m mgl32.Mat4)

	// Release deletes the backend program. Calling Release more than once is a no-op.
	Release()
}

var _ Program = &program{}

// NewProgram pre-processes both sources, compiles each stage and links them into a program.
// Intermediate shader objects are deleted whether or not linking succeeds.
//
// Parameters:
//   - b: the backend that owns the program
//   - vertexSource: raw vertex shader GLSL, may contain @oxy: annotations
//   - fragmentSource: raw fragment shader GLSL, may contain @oxy: annotations
//   - options: builder options applied before compilation
//
// Returns:
//   - Program: the linked program
//   - error: a *common.ShaderCompilationError or *common.ProgramLinkError on failure, or a
//     pre-processing error
func NewProgram(b backend.Backend, vertexSource, fragmentSource string, options ...ProgramBuilderOption) (Program, error) {
	p := &program{
		backend:   b,
		name:      "program",
		defines:   map[string]string{},
		locations: make(map[string]int32),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.preProcessor == nil {
		p.preProcessor = NewPreProcessor(Snippets(), nil)
	}
	for k, v := range p.defines {
		p.preProcessor.SetDefine(k, v)
	}

	vs, err := p.preProcessor.Process(vertexSource)
	if err != nil {
		return nil, fmt.Errorf("pre-process %s vertex shader: %w", p.name, err)
	}
	fs, err := p.preProcessor.Process(fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("pre-process %s fragment shader: %w", p.name, err)
	}

	vertex, err := compile(b, backend.StageVertex, vs)
	if err != nil {
		return nil, err
	}
	fragment, err := compile(b, backend.StageFragment, fs)
	if err != nil {
		b.DeleteShader(vertex)
		return nil, err
	}

	handle, log, ok := b.LinkProgram(vertex, fragment)
	b.DeleteShader(vertex)
	b.DeleteShader(fragment)
	if !ok {
		return nil, &common.ProgramLinkError{Log: log}
	}
	p.handle = handle

	common.Logger().Debug("shader program linked", "name", p.name, "handle", handle)
	return p, nil
}

func compile(b backend.Backend, stage backend.ShaderStage, source string) (uint32, error) {
	handle, log, ok := b.CompileShader(stage, source)
	if !ok {
		return 0, &common.ShaderCompilationError{Stage: stage.String(), Log: log}
	}
	return handle, nil
}

func (p *program) Name() string {
	return p.name
}

func (p *program) Handle() uint32 {
	return p.handle
}

func (p *program) Use() {
	p.backend.UseProgram(p.handle)
}

func (p *program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.backend.UniformLocation(p.handle, name)
	p.locations[name] = loc
	return loc
}

func (p *program) SetInt(name string, v int32) {
	p.backend.Uniform1i(p.Location(name), v)
}

func (p *program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

func (p *program) SetFloat(name string, v float32) {
	p.backend.Uniform1f(p.Location(name), v)
}

func (p *program) SetVec3(name string, v mgl32.Vec3) {
	p.backend.Uniform3f(p.Location(name), v)
}

func (p *program) SetMat4(name string, m mgl32.Mat4) {
	p.backend.UniformMatrix4(p.Location(name), m)
}

func (p *program) Release() {
	if p.handle == 0 {
		return
	}
	p.backend.DeleteProgram(p.handle)
	p.handle = 0
	clear(p.locations)
}
