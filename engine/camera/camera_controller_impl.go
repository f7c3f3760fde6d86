package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is a free-fly controller: arrow keys turn, W/S move along the view
// direction and A/D strafe.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	up       mgl32.Vec3

	yaw, pitch float32
	pitchLimit float32

	// turnSpeed is in degrees per second.
	turnSpeed float32
	// moveSpeed is in world units per frame.
	moveSpeed float32
}

var _ CameraController = &cameraControllerImpl{}

// NewFlyController creates a free-fly CameraController at (0, 1, 0) looking down +X, turning
// at 100°/s and moving 0.1 units per frame, then applies the provided options.
//
// Parameters:
//   - options: variadic list of CameraControllerOption functions
//
// Returns:
//   - CameraController: the controller
func NewFlyController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:         &sync.Mutex{},
		position:   mgl32.Vec3{0, 1, 0},
		up:         common.WorldUp,
		pitchLimit: 89,
		turnSpeed:  100,
		moveSpeed:  0.1,
	}
	for _, opt := range options {
		opt(cc)
	}
	cc.pitch = common.Clamp(cc.pitch, -cc.pitchLimit, cc.pitchLimit)
	return cc
}

func (cc *cameraControllerImpl) direction() mgl32.Vec3 {
	return common.DirectionFromAngles(cc.pitch, cc.yaw)
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(p mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = p
}

func (cc *cameraControllerImpl) Direction() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.direction()
}

func (cc *cameraControllerImpl) Yaw() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.yaw
}

func (cc *cameraControllerImpl) Pitch() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pitch
}

func (cc *cameraControllerImpl) SetAngles(yaw, pitch float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.yaw = yaw
	cc.pitch = common.Clamp(pitch, -cc.pitchLimit, cc.pitchLimit)
}

func (cc *cameraControllerImpl) Update(input *common.InputState, dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	turn := cc.turnSpeed * dt
	if input.Down(common.KeyUp) {
		cc.pitch += turn
	}
	if input.Down(common.KeyDown) {
		cc.pitch -= turn
	}
	if input.Down(common.KeyLeft) {
		cc.yaw -= turn
	}
	if input.Down(common.KeyRight) {
		cc.yaw += turn
	}
	cc.pitch = common.Clamp(cc.pitch, -cc.pitchLimit, cc.pitchLimit)

	dir := cc.direction()
	if input.Down(common.KeyW) {
		cc.position = cc.position.Add(dir.Mul(cc.moveSpeed))
	}
	if input.Down(common.KeyS) {
		cc.position = cc.position.Sub(dir.Mul(cc.moveSpeed))
	}

	right := dir.Cross(cc.up)
	if right.Len() == 0 {
		return
	}
	right = right.Normalize()
	if input.Down(common.KeyD) {
		cc.position = cc.position.Add(right.Mul(cc.moveSpeed))
	}
	if input.Down(common.KeyA) {
		cc.position = cc.position.Sub(right.Mul(cc.moveSpeed))
	}
}
