package renderer

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// Batch is a group of objects drawn with one model matrix, usually one loaded scene.
type Batch struct {
	// Model is the world transform shared by every object in the batch.
	Model mgl32.Mat4
	// Objects are drawn in order. Disabled objects are skipped.
	Objects []game_object.GameObject
	// CastsShadows selects the batch for the shadow pass.
	CastsShadows bool
}

// Frame is everything the renderer needs to draw one frame.
type Frame struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Lights     light.Rig
	Batches    []Batch
}
