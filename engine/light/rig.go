package light

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names of the light arrays in the main fragment stage.
const (
	UniformPosition    = "light_position"
	UniformColor       = "light_color"
	UniformAttenuation = "light_attenuation"
	UniformAmbient     = "ambient"
)

// UniformSetter is the subset of a shader program the rig uploads through.
type UniformSetter interface {
	SetVec3(name string, v mgl32.Vec3)
}

// rig is the implementation of the Rig interface.
type rig struct {
	lights     []Light
	ambient    mgl32.Vec3
	orbitSpeed float32
	shadow     ShadowSettings
}

// Rig defines the fixed set of lights for a frame. Index 0 is the sun: it is the only
// light whose contribution is shadow-tested, and the only one that may move on its own.
type Rig interface {
	// Lights returns the lights in uniform-array order.
	//
	// Returns:
	//   - []Light: the lights, sun first
	Lights() []Light

	// Sun returns the shadow-casting light at index 0.
	//
	// Returns:
	//   - Light: the sun
	Sun() Light

	// Ambient returns the ambient color added to every fragment.
	//
	// Returns:
	//   - mgl32.Vec3: the ambient color
	Ambient() mgl32.Vec3

	// Shadow returns the shadow map configuration of the sun.
	//
	// Returns:
	//   - ShadowSettings: resolution, scale, bias and up axis
	Shadow() ShadowSettings

	// SunDirection returns the normalized vector from the origin toward the sun. A sun at the
	// origin has no direction and reports straight up.
	//
	// Returns:
	//   - mgl32.Vec3: the light direction used for the shadow basis
	SunDirection() mgl32.Vec3

	// ShadowTransform returns the light-space transform for the current sun position.
	//
	// Returns:
	//   - mgl32.Mat4: the transform shared by the shadow and forward passes
	ShadowTransform() mgl32.Mat4

	// Update advances the sun orbit by dt seconds. A rig with zero orbit speed is static.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// Upload sets ambient and every light_position[i], light_color[i] and
	// light_attenuation[i] uniform on the current program.
	//
	// Parameters:
	//   - u: the program to upload to
	Upload(u UniformSetter)
}

var _ Rig = &rig{}

// NewRig creates a Rig from the given lights. The first light becomes the sun.
//
// Parameters:
//   - lights: at least one light, sun first
//   - opts: variadic list of RigBuilderOption functions to configure the rig
//
// Returns:
//   - Rig: the new rig
//   - error: error if no lights are given
func NewRig(lights []Light, opts ...RigBuilderOption) (Rig, error) {
	if len(lights) == 0 {
		return nil, fmt.Errorf("light rig needs at least one light")
	}
	r := &rig{
		lights:  lights,
		ambient: mgl32.Vec3{0.1, 0.1, 0.1},
		shadow:  DefaultShadowSettings(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *rig) Lights() []Light {
	return r.lights
}

func (r *rig) Sun() Light {
	return r.lights[0]
}

func (r *rig) Ambient() mgl32.Vec3 {
	return r.ambient
}

func (r *rig) Shadow() ShadowSettings {
	return r.shadow
}

func (r *rig) SunDirection() mgl32.Vec3 {
	return common.SafeNormalize(r.Sun().Position(), common.WorldUp)
}

func (r *rig) ShadowTransform() mgl32.Mat4 {
	return r.shadow.Transform(r.SunDirection())
}

func (r *rig) Update(dt float32) {
	if r.orbitSpeed == 0 {
		return
	}
	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(r.orbitSpeed * dt))
	sun := r.Sun()
	sun.SetPosition(rot.Mul4x1(sun.Position().Vec4(1)).Vec3())
}

func (r *rig) Upload(u UniformSetter) {
	u.SetVec3(UniformAmbient, r.ambient)
	for i, l := range r.lights {
		u.SetVec3(IndexedName(UniformPosition, i), l.Position())
		u.SetVec3(IndexedName(UniformColor, i), l.Color())
		u.SetVec3(IndexedName(UniformAttenuation, i), l.Attenuation())
	}
}

// IndexedName builds the uniform name of one element of a uniform array, e.g. "light_color[2]".
func IndexedName(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}
