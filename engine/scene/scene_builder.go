package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/game_object"
)

// SceneBuilderOption is a function that configures a Scene instance during construction.
type SceneBuilderOption func(*scene)

// WithActive is an option builder that sets whether the scene is drawn.
//
// Parameters:
//   - active: true to draw the scene
//
// Returns:
//   - SceneBuilderOption: a function that applies the active option to a scene
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active.Store(active)
	}
}

// WithObjects is an option builder that adds pre-built objects to the scene. The scene takes
// ownership of them.
//
// Parameters:
//   - objects: the objects to add, in draw order
//
// Returns:
//   - SceneBuilderOption: a function that applies the objects option to a scene
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.byID[obj.ID()] = len(s.objects)
			s.objects = append(s.objects, obj)
		}
	}
}

// WithTransform is an option builder that sets how the scene is placed in the world.
//
// Parameters:
//   - t: the scene transform
//
// Returns:
//   - SceneBuilderOption: a function that applies the transform option to a scene
func WithTransform(t Transform) SceneBuilderOption {
	return func(s *scene) {
		s.transform = t
	}
}

// WithCastsShadows is an option builder that sets whether the scene is drawn into the shadow map.
//
// Parameters:
//   - casts: true to draw the scene in the shadow pass
//
// Returns:
//   - SceneBuilderOption: a function that applies the option to a scene
func WithCastsShadows(casts bool) SceneBuilderOption {
	return func(s *scene) {
		s.castsShadows = casts
	}
}

// WithReceivesShadows is an option builder that sets whether the scene's objects sample the
// shadow map. The caller attaches the shadow map with AddTexture.
//
// Parameters:
//   - receives: true to shadow the scene
//
// Returns:
//   - SceneBuilderOption: a function that applies the option to a scene
func WithReceivesShadows(receives bool) SceneBuilderOption {
	return func(s *scene) {
		s.receivesShadows = receives
	}
}
