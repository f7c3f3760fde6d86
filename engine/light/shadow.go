package light

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultShadowResolution is the default width and height in texels of the shadow
// depth texture.
const DefaultShadowResolution int32 = 4500

// DefaultShadowScale is the default scale applied to each light-space basis row.
// Geometry within roughly 1/scale world units of the origin lands in the shadow map.
const DefaultShadowScale float32 = 0.03

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001

// ShadowSettings configures the shadow map of the sun light.
type ShadowSettings struct {
	// Resolution is the width and height of the depth texture.
	Resolution int32
	// Scale multiplies the light-space basis rows.
	Scale float32
	// Bias is subtracted from the fragment depth before comparing with the stored depth.
	Bias float32
	// Up is the reference axis for the light basis.
	Up mgl32.Vec3
}

// DefaultShadowSettings returns the shadow configuration used when none is given.
func DefaultShadowSettings() ShadowSettings {
	return ShadowSettings{
		Resolution: DefaultShadowResolution,
		Scale:      DefaultShadowScale,
		Bias:       DefaultShadowBias,
		Up:         common.WorldUp,
	}
}

// Transform builds the world-to-shadow-clip transform for a light shining along lightDirection.
//
// Parameters:
//   - lightDirection: the vector pointing from the scene toward the light
//
// Returns:
//   - mgl32.Mat4: the affine light-space transform
func (s ShadowSettings) Transform(lightDirection mgl32.Vec3) mgl32.Mat4 {
	up := s.Up
	if up.Len() == 0 {
		up = common.WorldUp
	}
	return common.ShadowTransform(lightDirection, up, s.Scale)
}
