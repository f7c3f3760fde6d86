package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a function that configures a CameraController during construction.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial eye position.
//
// Parameters:
//   - p: the eye position
//
// Returns:
//   - CameraControllerOption: a function that applies the position option
func WithPosition(p mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = p
	}
}

// WithAngles sets the initial yaw and pitch in degrees.
//
// Parameters:
//   - yaw: heading in degrees, 0 looks down +X
//   - pitch: elevation in degrees
//
// Returns:
//   - CameraControllerOption: a function that applies the angle option
func WithAngles(yaw, pitch float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.yaw = yaw
		cc.pitch = pitch
	}
}

// WithTurnSpeed sets how fast the arrow keys turn the camera.
//
// Parameters:
//   - degPerSecond: turn rate in degrees per second
//
// Returns:
//   - CameraControllerOption: a function that applies the turn speed option
func WithTurnSpeed(degPerSecond float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.turnSpeed = degPerSecond
	}
}

// WithMoveSpeed sets how far W/A/S/D move the camera each frame.
//
// Parameters:
//   - unitsPerFrame: distance in world units per frame
//
// Returns:
//   - CameraControllerOption: a function that applies the move speed option
func WithMoveSpeed(unitsPerFrame float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.moveSpeed = unitsPerFrame
	}
}

// WithPitchLimit sets the maximum absolute pitch in degrees. Values at or above 90 let the
// view direction become parallel to up.
//
// Parameters:
//   - deg: the pitch limit in degrees
//
// Returns:
//   - CameraControllerOption: a function that applies the pitch limit option
func WithPitchLimit(deg float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.pitchLimit = deg
	}
}
