package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the up axis shared by the camera and the light-space basis.
var WorldUp = mgl32.Vec3{0, 1, 0}

// FallbackUp replaces the up axis when a light direction is parallel to it.
var FallbackUp = mgl32.Vec3{1, 0, 0}

// degenerateCrossLength is the cross-product length below which a light direction counts as parallel to up.
const degenerateCrossLength = 1e-4

// degenerateDirectionLength is the length below which a light direction has no usable heading.
const degenerateDirectionLength = 1e-6

// SafeNormalize returns v scaled to unit length, or fallback when v is too short to normalize.
//
// Parameters:
//   - v: the vector to normalize
//   - fallback: a unit vector returned in place of a zero-length v
//
// Returns:
//   - mgl32.Vec3: a unit vector, never NaN
func SafeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if l := v.Len(); l >= degenerateDirectionLength {
		return v.Mul(1 / l)
	}
	return fallback
}

// LightBasis builds the orthonormal light-space basis for a directional shadow caster.
// lightZ points against the light direction, lightX is perpendicular to lightZ and up,
// lightY completes the right-handed frame. When lightDirection is parallel to up,
// FallbackUp is used in its place so the basis stays orthonormal. A zero-length
// lightDirection is treated as a light straight overhead.
//
// Parameters:
//   - lightDirection: direction of the light, need not be normalized
//   - up: the reference up axis
//
// Returns:
//   - x, y, z: the basis vectors
func LightBasis(lightDirection, up mgl32.Vec3) (x, y, z mgl32.Vec3) {
	z = SafeNormalize(lightDirection, WorldUp).Mul(-1)
	c := z.Cross(up)
	if c.Len() < degenerateCrossLength {
		c = z.Cross(FallbackUp)
		if c.Len() < degenerateCrossLength {
			c = z.Cross(mgl32.Vec3{0, 0, 1})
		}
	}
	x = c.Normalize()
	y = x.Cross(z)
	return x, y, z
}

// ShadowTransform builds the affine world-to-shadow-clip transform for a directional light.
// Its rows are the light basis scaled by scale, with (0, 0, 0, 1) as the last row. This is
// not a fitted projection: geometry outside roughly 1/scale units of the origin falls outside
// the shadow map.
//
// Parameters:
//   - lightDirection: direction of the light
//   - up: the reference up axis
//   - scale: uniform scale applied to each basis row
//
// Returns:
//   - mgl32.Mat4: the light-space transform
func ShadowTransform(lightDirection, up mgl32.Vec3, scale float32) mgl32.Mat4 {
	x, y, z := LightBasis(lightDirection, up)
	return mgl32.Mat4FromRows(
		x.Mul(scale).Vec4(0),
		y.Mul(scale).Vec4(0),
		z.Mul(scale).Vec4(0),
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// ShadowSpace maps a world-space position into normalized shadow-map space.
//
// Parameters:
//   - transform: the light-space transform from ShadowTransform
//   - world: the world-space position
//
// Returns:
//   - mgl32.Vec3: texture coordinates in xy and depth in z, all in [0, 1] for captured points
func ShadowSpace(transform mgl32.Mat4, world mgl32.Vec3) mgl32.Vec3 {
	p := transform.Mul4x1(world.Vec4(1))
	p = p.Mul(1 / p.W())
	return mgl32.Vec3{p.X()*0.5 + 0.5, p.Y()*0.5 + 0.5, p.Z()*0.5 + 0.5}
}

// InShadowBounds reports whether a shadow-space position lies strictly inside the unit cube.
func InShadowBounds(p mgl32.Vec3) bool {
	return p.X() > 0 && p.X() < 1 &&
		p.Y() > 0 && p.Y() < 1 &&
		p.Z() > 0 && p.Z() < 1
}

// IsShadowed applies the shadow-map depth test for a shadow-space position.
// Positions outside the shadow map are never shadowed.
//
// Parameters:
//   - storedDepth: the depth sampled from the shadow map at p.xy
//   - p: the fragment position in shadow space
//   - bias: depth bias subtracted from the fragment depth
//
// Returns:
//   - bool: true if an occluder is closer to the light than the fragment
func IsShadowed(storedDepth float32, p mgl32.Vec3, bias float32) bool {
	return InShadowBounds(p) && storedDepth < p.Z()-bias
}

// Attenuation returns 1 / (c + l*d + q*d²) for coefficients att = (c, l, q).
func Attenuation(att mgl32.Vec3, distance float32) float32 {
	return 1 / att.Dot(mgl32.Vec3{1, distance, distance * distance})
}

// LightContribution computes the diffuse contribution of a single point light at a fragment.
//
// Parameters:
//   - normal: the unit surface normal
//   - position: the fragment world-space position
//   - lightPosition: the light world-space position
//   - color: the light color, unbounded
//   - att: the (constant, linear, quadratic) attenuation coefficients
//
// Returns:
//   - mgl32.Vec3: max(0, n·L) * attenuation * color
func LightContribution(normal, position, lightPosition, color, att mgl32.Vec3) mgl32.Vec3 {
	v := lightPosition.Sub(position)
	d := v.Len()
	var cosine float32
	if d > 0 {
		cosine = normal.Dot(v.Mul(1 / d))
	}
	factor := float32(math.Max(0, float64(cosine)))
	return color.Mul(factor * Attenuation(att, d))
}

// DirectionFromAngles returns the unit view direction for pitch and yaw given in degrees.
// Yaw 0 looks down +X, yaw -90 looks down -Z.
func DirectionFromAngles(pitchDeg, yawDeg float32) mgl32.Vec3 {
	pitch := float64(mgl32.DegToRad(pitchDeg))
	yaw := float64(mgl32.DegToRad(yawDeg))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// Homogeneous returns a matrix whose diagonal is s in every entry, including w.
// Positions transformed by it are unchanged after the perspective divide.
func Homogeneous(s float32) mgl32.Mat4 {
	return mgl32.Diag4(mgl32.Vec4{s, s, s, s})
}
