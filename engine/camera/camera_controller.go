package camera

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraController defines the interface for objects that own the camera's position and
// viewing direction and update them from input each frame.
type CameraController interface {
	// Position returns the world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// SetPosition moves the eye.
	//
	// Parameters:
	//   - p: the new eye position
	SetPosition(p mgl32.Vec3)

	// Direction returns the unit viewing direction.
	//
	// Returns:
	//   - mgl32.Vec3: the direction the camera looks along
	Direction() mgl32.Vec3

	// Yaw returns the heading in degrees. Yaw 0 looks down +X.
	Yaw() float32

	// Pitch returns the elevation in degrees, positive looking up.
	Pitch() float32

	// SetAngles sets yaw and pitch in degrees. Pitch is clamped to the controller's limit.
	//
	// Parameters:
	//   - yaw: heading in degrees
	//   - pitch: elevation in degrees
	SetAngles(yaw, pitch float32)

	// Update applies the held keys for one frame.
	//
	// Parameters:
	//   - input: the current key state
	//   - dt: the frame time in seconds
	Update(input *common.InputState, dt float32)
}
