package shader

// ProgramBuilderOption is a functional option for configuring a Program at creation time.
type ProgramBuilderOption func(*program)

// WithName sets the debug name used in logs and errors.
func WithName(name string) ProgramBuilderOption {
	return func(p *program) {
		p.name = name
	}
}

// WithPreProcessor replaces the default pre-processor, which resolves includes against the
// embedded snippets.
func WithPreProcessor(pp PreProcessor) ProgramBuilderOption {
	return func(p *program) {
		p.preProcessor = pp
	}
}

// WithDefine binds a value to a define annotation.
func WithDefine(name, value string) ProgramBuilderOption {
	return func(p *program) {
		p.defines[name] = value
	}
}
