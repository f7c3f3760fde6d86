package model

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
)

// Part is one drawable piece of a model: a mesh and the material it is shaded with.
type Part struct {
	Mesh     Mesh
	Material material.Material
}

// model is the implementation of the Model interface.
type model struct {
	name  string
	parts []Part
	cache *material.TextureCache
}

// Model defines the interface for a loaded 3D model.
// A Model is a GPU-ready container of meshes paired with their materials, in file order.
// It is produced by the Loader after importing and processing a model file.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Parts retrieves the mesh/material pairs in file order.
	//
	// Returns:
	//   - []Part: the model parts
	Parts() []Part

	// Textures retrieves the cache that owns this model's textures.
	//
	// Returns:
	//   - *material.TextureCache: the texture cache, or nil if the model has no textures
	Textures() *material.TextureCache

	// DetachParts hands ownership of every mesh to the caller. The model keeps only its
	// textures afterwards, so Release no longer deletes the meshes.
	//
	// Returns:
	//   - []Part: the detached parts
	DetachParts() []Part

	// Release deletes every mesh still owned by the model and its textures.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the model
//
// Returns:
//   - Model: a new Model instance
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Parts() []Part {
	return m.parts
}

func (m *model) Textures() *material.TextureCache {
	return m.cache
}

func (m *model) DetachParts() []Part {
	parts := m.parts
	m.parts = nil
	return parts
}

func (m *model) Release() {
	for _, p := range m.parts {
		p.Mesh.Release()
	}
	m.parts = nil
	if m.cache != nil {
		m.cache.Release()
	}
}
