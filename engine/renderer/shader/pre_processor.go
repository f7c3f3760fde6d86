// pre_processor.go implements the Oxy GLSL shader pre-processor. It scans shader source
// for @oxy: annotations and replaces them with registered snippet sources or #define
// lines, so that one set of shader files serves every light count and shadow setup.
package shader

import (
	"fmt"
	"io/fs"
	"strings"
)

// maxIncludeDepth bounds nested includes.
const maxIncludeDepth = 8

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// snippets is the file system include annotations resolve against, as "<name>.glsl".
	snippets fs.FS

	// defines maps macro names to the values emitted by define annotations.
	defines map[string]string

	// declarations accumulates the annotations seen during the last Process call.
	declarations []Annotation
}

// PreProcessor processes raw GLSL source containing @oxy: annotations.
type PreProcessor interface {
	// Process replaces include annotations with snippet sources and define annotations
	// with #define lines.
	//
	// Parameters:
	//   - source: the raw GLSL source
	//
	// Returns:
	//   - string: the processed GLSL source
	//   - error: an error if an annotation is malformed, a snippet is missing, includes
	//     nest too deeply, or a define has no value
	Process(source string) (string, error)

	// SetDefine sets the value emitted for a define annotation.
	//
	// Parameters:
	//   - name: the macro name
	//   - value: the macro value
	SetDefine(name, value string)

	// Declarations returns the annotations collected by every call to Process, in source order,
	// including those found in included snippets.
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor that resolves includes against snippets.
//
// Parameters:
//   - snippets: file system holding "<name>.glsl" snippet files
//   - defines: initial define values, may be nil
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(snippets fs.FS, defines map[string]string) PreProcessor {
	p := &preProcessor{
		snippets: snippets,
		defines:  make(map[string]string, len(defines)),
	}
	for k, v := range defines {
		p.defines[k] = v
	}
	return p
}

func (p *preProcessor) Process(source string) (string, error) {
	return p.process(source, 0)
}

func (p *preProcessor) process(source string, depth int) (string, error) {
	if depth > maxIncludeDepth {
		return "", fmt.Errorf("include depth exceeds %d", maxIncludeDepth)
	}

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}
		p.declarations = append(p.declarations, *a)

		switch a.Type {
		case AnnotationTypeInclude:
			if p.snippets == nil {
				return "", fmt.Errorf("line %d: no snippet source for include %q", a.Line, a.Arg)
			}
			raw, err := fs.ReadFile(p.snippets, a.Arg+".glsl")
			if err != nil {
				return "", fmt.Errorf("line %d: include %q: %w", a.Line, a.Arg, err)
			}
			expanded, err := p.process(string(raw), depth+1)
			if err != nil {
				return "", fmt.Errorf("include %q: %w", a.Arg, err)
			}
			out = append(out, expanded)
		case AnnotationTypeDefine:
			value, ok := p.defines[a.Arg]
			if !ok {
				return "", fmt.Errorf("line %d: no value for define %q", a.Line, a.Arg)
			}
			out = append(out, fmt.Sprintf("#define %s %s", a.Arg, value))
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) SetDefine(name, value string) {
	p.defines[name] = value
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
