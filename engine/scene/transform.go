package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a scene in the world. The model matrix is scale * translate, so the
// translation is expressed in the scene's own units.
type Transform struct {
	// Scale is the uniform scale. Zero is treated as 1.
	Scale float32
	// Homogeneous scales w along with xyz. Positions are unchanged after the perspective
	// divide but world-space lighting sees the scaled coordinates.
	Homogeneous bool
	// Translation is the offset at elapsed time 0.
	Translation mgl32.Vec3
	// Velocity is added to Translation per second of elapsed time.
	Velocity mgl32.Vec3
}

// Identity is the transform of a scene placed at the origin unscaled.
var Identity = Transform{Scale: 1}

// Matrix returns the model matrix at the given elapsed time.
//
// Parameters:
//   - elapsed: seconds since the engine started
//
// Returns:
//   - mgl32.Mat4: the model matrix
func (t Transform) Matrix(elapsed float32) mgl32.Mat4 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	base := mgl32.Scale3D(s, s, s)
	if t.Homogeneous {
		base = common.Homogeneous(s)
	}
	offset := t.Translation.Add(t.Velocity.Mul(elapsed))
	return base.Mul4(mgl32.Translate3D(offset.X(), offset.Y(), offset.Z()))
}
