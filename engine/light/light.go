package light

import "github.com/go-gl/mathgl/mgl32"

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	position    mgl32.Vec3
	color       mgl32.Vec3
	attenuation mgl32.Vec3
}

// Light defines the interface for a point light source in the scene.
//
// A light contributes max(0, n·L) / dot(attenuation, (1, d, d²)) * color to every
// fragment it reaches. Color is unbounded: values above 1 brighten the scene.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b), not clamped to [0, 1]
	Color() mgl32.Vec3

	// Attenuation returns the distance falloff coefficients of the light.
	//
	// Returns:
	//   - mgl32.Vec3: (constant, linear, quadratic)
	Attenuation() mgl32.Vec3

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p mgl32.Vec3)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - c: the new color
	SetColor(c mgl32.Vec3)

	// SetAttenuation sets the distance falloff coefficients.
	//
	// Parameters:
	//   - att: (constant, linear, quadratic)
	SetAttenuation(att mgl32.Vec3)
}

var _ Light = &lightImpl{}

// NewLight creates a new white Light at the origin with no distance falloff,
// then applies any provided options.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		color:       mgl32.Vec3{1, 1, 1},
		attenuation: mgl32.Vec3{1, 0, 0},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Attenuation() mgl32.Vec3 {
	return l.attenuation
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.position = p
}

func (l *lightImpl) SetColor(c mgl32.Vec3) {
	l.color = c
}

func (l *lightImpl) SetAttenuation(att mgl32.Vec3) {
	l.attenuation = att
}
