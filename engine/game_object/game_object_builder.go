package game_object

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/google/uuid"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uuid.UUID) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName overrides the name taken from the mesh.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithTextures appends descriptors in order, as AddTexture would.
//
// Parameters:
//   - descriptors: the textures and sampler names to bind
//
// Returns:
//   - GameObjectBuilderOption: functional option to append the textures
func WithTextures(descriptors ...material.Descriptor) GameObjectBuilderOption {
	return func(obj *gameObject) {
		for _, d := range descriptors {
			obj.AddTexture(d.Texture, d.Name)
		}
	}
}
