package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/google/uuid"
)

type gameObject struct {
	id      uuid.UUID
	name    string
	enabled atomic.Bool
	backend backend.Backend
	mesh    model.Mesh

	// textures is non-owning: the scene's texture cache and the shadow pass own the handles.
	textures []material.Descriptor
}

// GameObject defines the interface for one drawable scene entry: an exclusively owned mesh
// plus the named textures bound to texture units when it is drawn.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uuid.UUID: the object ID
	ID() uuid.UUID

	// Name returns the name of the mesh the object was built from.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether this object is drawn.
	//
	// Parameters:
	//   - enabled: true to draw the object, false to skip it
	SetEnabled(enabled bool)

	// Mesh returns the mesh owned by this object.
	//
	// Returns:
	//   - model.Mesh: the mesh, or nil after Release
	Mesh() model.Mesh

	// Textures returns the texture descriptors in texture-unit order.
	//
	// Returns:
	//   - []material.Descriptor: the descriptors; callers must not modify the slice
	Textures() []material.Descriptor

	// AddTexture appends a descriptor bound to the next free texture unit. The object does not
	// take ownership of the texture.
	//
	// Parameters:
	//   - tex: the texture to bind
	//   - name: the sampler uniform name the texture binds to
	AddTexture(tex material.Texture, name string)

	// HasNormalMap reports whether any descriptor binds to the normal map sampler.
	//
	// Returns:
	//   - bool: true if a texture_normal descriptor is present
	HasNormalMap() bool

	// HasShadowMap reports whether any descriptor binds to the shadow map sampler.
	//
	// Returns:
	//   - bool: true if a shadow_map descriptor is present
	HasShadowMap() bool

	// Draw binds each texture to its unit, points its sampler uniform at that unit, draws the
	// mesh and restores texture unit 0. The program must be current.
	//
	// Parameters:
	//   - program: the current program receiving the sampler uniforms
	Draw(program shader.Program)

	// Release deletes the owned mesh. Textures are left to their owners.
	Release()
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the provided options.
// A fresh random ID is assigned unless WithID is given.
//
// Parameters:
//   - b: the backend the object draws through
//   - mesh: the mesh, owned by the object from now on
//   - options: variadic list of GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: the new object, enabled by default
func NewGameObject(b backend.Backend, mesh model.Mesh, options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		id:      uuid.New(),
		backend: b,
		mesh:    mesh,
	}
	if mesh != nil {
		obj.name = mesh.Name()
	}
	obj.enabled.Store(true)
	for _, opt := range options {
		opt(obj)
	}
	return obj
}

func (o *gameObject) ID() uuid.UUID {
	return o.id
}

func (o *gameObject) Name() string {
	return o.name
}

func (o *gameObject) Enabled() bool {
	return o.enabled.Load()
}

func (o *gameObject) SetEnabled(enabled bool) {
	o.enabled.Store(enabled)
}

func (o *gameObject) Mesh() model.Mesh {
	return o.mesh
}

func (o *gameObject) Textures() []material.Descriptor {
	return o.textures
}

func (o *gameObject) AddTexture(tex material.Texture, name string) {
	o.textures = append(o.textures, material.Descriptor{Texture: tex, Name: name})
}

func (o *gameObject) HasNormalMap() bool {
	return material.HasSampler(o.textures, material.SamplerNormal)
}

func (o *gameObject) HasShadowMap() bool {
	return material.HasSampler(o.textures, material.SamplerShadowMap)
}

func (o *gameObject) Draw(program shader.Program) {
	if o.mesh == nil {
		return
	}
	for i, d := range o.textures {
		unit := uint32(i)
		o.backend.ActiveTexture(unit)
		program.SetInt(d.Name, int32(unit))
		o.backend.BindTexture2D(d.Texture.Handle())
	}
	o.mesh.Draw()
	o.backend.ActiveTexture(0)
}

func (o *gameObject) Release() {
	if o.mesh == nil {
		return
	}
	o.mesh.Release()
	o.mesh = nil
}
