package light

import "github.com/go-gl/mathgl/mgl32"

// RigBuilderOption is a function that configures a Rig during construction.
type RigBuilderOption func(*rig)

// WithAmbient sets the ambient color added to every fragment.
func WithAmbient(c mgl32.Vec3) RigBuilderOption {
	return func(r *rig) {
		r.ambient = c
	}
}

// WithSunOrbit makes the sun orbit the world Y axis at degPerSecond.
func WithSunOrbit(degPerSecond float32) RigBuilderOption {
	return func(r *rig) {
		r.orbitSpeed = degPerSecond
	}
}

// WithShadowSettings replaces the default shadow configuration.
func WithShadowSettings(s ShadowSettings) RigBuilderOption {
	return func(r *rig) {
		r.shadow = s
	}
}
