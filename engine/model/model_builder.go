package model

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
)

// ModelBuilderOption is a function that configures a model instance during construction.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the model.
//
// Parameters:
//   - name: the identifier for the model
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithPart is an option builder that appends a mesh/material pair to the model.
//
// Parameters:
//   - mesh: the uploaded mesh, owned by the model
//   - mat: the material the mesh is shaded with
//
// Returns:
//   - ModelBuilderOption: a function that applies the part option to a model
func WithPart(mesh Mesh, mat material.Material) ModelBuilderOption {
	return func(m *model) {
		m.parts = append(m.parts, Part{Mesh: mesh, Material: mat})
	}
}

// WithTextureCache is an option builder that hands the model ownership of its texture cache.
//
// Parameters:
//   - cache: the cache holding every texture referenced by the model's materials
//
// Returns:
//   - ModelBuilderOption: a function that applies the texture cache option to a model
func WithTextureCache(cache *material.TextureCache) ModelBuilderOption {
	return func(m *model) {
		m.cache = cache
	}
}
