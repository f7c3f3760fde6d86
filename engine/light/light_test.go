package light

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uniformRecorder map[string]mgl32.Vec3

func (u uniformRecorder) SetVec3(name string, v mgl32.Vec3) {
	u[name] = v
}

func practiceRig(t *testing.T, opts ...RigBuilderOption) Rig {
	t.Helper()
	r, err := NewRig([]Light{
		NewLight(WithPosition(-15, 40, 5), WithColor(8, 8, 4), WithAttenuation(1, 0.00001, 0.01)),
		NewLight(WithPosition(10, 3.5, -4), WithColor(2.5, 9, 3), WithAttenuation(1, 0, 0.1)),
		NewLight(WithPosition(-12, 5, 5.69), WithColor(10, 0, 0), WithAttenuation(1, 0, 0.1)),
	}, opts...)
	require.NoError(t, err)
	return r
}

func TestNewLightDefaults(t *testing.T) {
	l := NewLight()
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, l.Color())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, l.Attenuation())

	l.SetColor(mgl32.Vec3{8, 8, 4})
	assert.Equal(t, mgl32.Vec3{8, 8, 4}, l.Color())
}

func TestRigRequiresLight(t *testing.T) {
	_, err := NewRig(nil)
	assert.Error(t, err)
}

func TestRigUpload(t *testing.T) {
	r := practiceRig(t, WithAmbient(mgl32.Vec3{0.2, 0.2, 0.2}))
	u := uniformRecorder{}
	r.Upload(u)

	assert.Len(t, u, 1+3*3)
	assert.Equal(t, mgl32.Vec3{0.2, 0.2, 0.2}, u["ambient"])
	assert.Equal(t, mgl32.Vec3{-15, 40, 5}, u["light_position[0]"])
	assert.Equal(t, mgl32.Vec3{2.5, 9, 3}, u["light_color[1]"])
	assert.Equal(t, mgl32.Vec3{1, 0, 0.1}, u["light_attenuation[2]"])
}

func TestRigStaticByDefault(t *testing.T) {
	r := practiceRig(t)
	r.Update(10)
	assert.Equal(t, mgl32.Vec3{-15, 40, 5}, r.Sun().Position())
}

func TestRigSunOrbit(t *testing.T) {
	r := practiceRig(t, WithSunOrbit(90))
	before := r.Sun().Position()
	r.Update(1)
	after := r.Sun().Position()

	assert.InDelta(t, before.Y(), after.Y(), 1e-5)
	assert.InDelta(t, before.Len(), after.Len(), 1e-4)
	// A quarter turn about +Y maps (x, z) to (z, -x).
	assert.InDelta(t, 5, after.X(), 1e-4)
	assert.InDelta(t, 15, after.Z(), 1e-4)

	// Only the sun moves.
	assert.Equal(t, mgl32.Vec3{10, 3.5, -4}, r.Lights()[1].Position())
}

func TestShadowTransformRows(t *testing.T) {
	r := practiceRig(t)
	m := r.ShadowTransform()
	scale := r.Shadow().Scale

	z := r.SunDirection().Mul(-1)
	assert.InDelta(t, z.X()*scale, m.At(2, 0), 1e-6)
	assert.InDelta(t, z.Y()*scale, m.At(2, 1), 1e-6)
	assert.InDelta(t, z.Z()*scale, m.At(2, 2), 1e-6)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, m.Row(3))

	// Rows are orthogonal and share the same length.
	x, y := m.Row(0).Vec3(), m.Row(1).Vec3()
	assert.InDelta(t, 0, x.Dot(y), 1e-6)
	assert.InDelta(t, 0, x.Dot(z), 1e-6)
	assert.InDelta(t, scale, x.Len(), 1e-6)
	assert.InDelta(t, scale, y.Len(), 1e-6)
}

func TestShadowSettingsZeroUpFallsBack(t *testing.T) {
	s := DefaultShadowSettings()
	s.Up = mgl32.Vec3{}
	m := s.Transform(mgl32.Vec3{1, 1, 0})
	assert.False(t, m.Row(0).Vec3().Len() == 0)
}

func TestSunAtOriginKeepsTransformFinite(t *testing.T) {
	r, err := NewRig([]Light{NewLight(WithPosition(0, 0, 0))})
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, r.SunDirection())

	m := r.ShadowTransform()
	for i := 0; i < 16; i++ {
		assert.False(t, math.IsNaN(float64(m[i])), "element %d", i)
	}
	assert.InDelta(t, r.Shadow().Scale, m.Row(0).Vec3().Len(), 1e-6)
	assert.InDelta(t, r.Shadow().Scale, m.Row(2).Vec3().Len(), 1e-6)
}
