package pipeline

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
)

// pipeline is the implementation of the Pipeline interface.
// It pairs the recipe for a shader program with the fixed-function state a pass draws with.
type pipeline struct {
	backend backend.Backend
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	vertexFile, fragmentFile string
	defines                  map[string]string

	depthFunc backend.DepthFunc
	cullFace  backend.CullFace

	program shader.Program
	// includes are the snippet files pulled in by the current program.
	includes []string
}

// Pipeline defines the interface for a render pipeline: a linked shader program built from a
// named vertex + fragment file pair, plus the depth and cull state applied when it is bound.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Program returns the currently linked program.
	//
	// Returns:
	//   - shader.Program: the program, or nil before the first successful Build
	Program() shader.Program

	// Sources returns the file names the program is built from.
	//
	// Returns:
	//   - []string: vertex file, fragment file, then the snippets the last successful build included
	Sources() []string

	// Build reads the stage files from fsys, resolves includes against fsys and links a new
	// program. On success the previous program is released and replaced. On failure the
	// previous program stays in place.
	//
	// Parameters:
	//   - fsys: the shader directory
	//
	// Returns:
	//   - error: a read, pre-processing, compile or link error
	Build(fsys fs.FS) error

	// Bind enables the pipeline's depth test and culling and makes its program current.
	Bind()

	// Release deletes the program.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline. The program is not built until Build is called.
//
// Parameters:
//   - b: the backend programs are compiled with and state is set on
//   - pipelineKey: the unique key for this pipeline
//   - vertexFile: the vertex stage file name
//   - fragmentFile: the fragment stage file name
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(b backend.Backend, pipelineKey, vertexFile, fragmentFile string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		backend:      b,
		pipelineKey:  pipelineKey,
		vertexFile:   vertexFile,
		fragmentFile: fragmentFile,
		defines:      map[string]string{},
		depthFunc:    backend.DepthLessEqual,
		cullFace:     backend.CullBack,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Program() shader.Program {
	return p.program
}

func (p *pipeline) Sources() []string {
	return append([]string{p.vertexFile, p.fragmentFile}, p.includes...)
}

func (p *pipeline) Build(fsys fs.FS) error {
	src, err := shader.LoadStageSources(fsys, p.vertexFile, p.fragmentFile)
	if err != nil {
		return err
	}
	pp := shader.NewPreProcessor(fsys, p.defines)
	prog, err := shader.NewProgram(p.backend, src.Vertex, src.Fragment,
		shader.WithName(p.pipelineKey),
		shader.WithPreProcessor(pp),
	)
	if err != nil {
		return err
	}
	if p.program != nil {
		p.program.Release()
	}
	p.program = prog
	p.includes = includedFiles(pp.Declarations())
	common.Logger().Debug("pipeline built", "pipeline", p.pipelineKey, "program", prog.Handle())
	return nil
}

func (p *pipeline) Bind() {
	p.backend.EnableDepthTest(p.depthFunc)
	p.backend.EnableCulling(p.cullFace)
	p.program.Use()
}

func (p *pipeline) Release() {
	if p.program != nil {
		p.program.Release()
		p.program = nil
	}
}

// includedFiles lists each snippet file named by an include annotation once, in first-seen order.
func includedFiles(decls []shader.Annotation) []string {
	var out []string
	seen := map[string]bool{}
	for _, a := range decls {
		if a.Type != shader.AnnotationTypeInclude {
			continue
		}
		name := a.Arg + ".glsl"
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
