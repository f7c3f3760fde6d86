// annotations.go defines the annotation syntax understood by the GLSL pre-processor.
// Annotations are single-line GLSL comments prefixed with @oxy: so that an unprocessed
// shader is still valid GLSL. They pull shared snippets into a shader and bind
// compile-time constants (such as the light count) from engine configuration.
package shader

import (
	"fmt"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a GLSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a GLSL comment line.
type AnnotationType string

const (
	// AnnotationTypeInclude injects a registered GLSL snippet at the annotation site.
	//
	// Syntax: //@oxy:include <snippet>
	//
	// Example: //@oxy:include lighting
	AnnotationTypeInclude AnnotationType = "include"

	// AnnotationTypeDefine emits "#define <NAME> <value>" with the value taken from the
	// pre-processor's define table. Processing fails if the name has no value.
	//
	// Syntax: //@oxy:define <NAME>
	//
	// Example: //@oxy:define LIGHT_COUNT
	AnnotationTypeDefine AnnotationType = "define"
)

// Annotation represents a single parsed @oxy: annotation from a GLSL source line.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Arg is the snippet name for include, or the macro name for define.
	Arg string

	// Line is the 1-based source line the annotation was found on.
	Line int
}

// parseAnnotation attempts to parse a single GLSL source line as an @oxy: annotation.
// Lines that are not annotation comments return nil with no error.
//
// Parameters:
//   - line: the raw source line
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeInclude, AnnotationTypeDefine:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy %s annotation requires exactly one argument", lineNum, args[0])
		}
		return &Annotation{
			Type: AnnotationType(args[0]),
			Arg:  args[1],
			Line: lineNum,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}
