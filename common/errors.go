package common

import "fmt"

// StartupError reports a failure to bring up the window, the GL context or the GL function pointers.
type StartupError struct {
	// Stage names the setup step that failed (e.g. "glfw init", "create window", "load gl").
	Stage string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup failed at %s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// ShaderCompilationError carries the compiler log of a shader stage that failed to compile.
type ShaderCompilationError struct {
	// Stage is the pipeline stage that failed ("vertex" or "fragment").
	Stage string
	Log   string
}

func (e *ShaderCompilationError) Error() string {
	return fmt.Sprintf("Shader compilation failed (%s): %s", e.Stage, e.Log)
}

// ProgramLinkError carries the linker log of a program that failed to link.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return "Program linkage failed: " + e.Log
}

// AssetLoadError reports an asset file that could not be read or parsed.
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("failed to load asset %s: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// FramebufferIncompleteError reports a framebuffer whose completeness check failed at setup.
type FramebufferIncompleteError struct {
	// Status is the raw status code returned by the completeness check.
	Status uint32
}

func (e *FramebufferIncompleteError) Error() string {
	return fmt.Sprintf("Incomplete framebuffer! (status 0x%04X)", e.Status)
}
