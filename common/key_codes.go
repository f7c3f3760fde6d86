package common

// KeyCode is a virtual key code as delivered by the window's key callbacks.
// Values match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type KeyCode uint32

const (
	KeyW     KeyCode = 87  // W key (ASCII)
	KeyA     KeyCode = 65  // A key (ASCII)
	KeyS     KeyCode = 83  // S key (ASCII)
	KeyD     KeyCode = 68  // D key (ASCII)
	KeyR     KeyCode = 82  // R key (ASCII)
	KeyP     KeyCode = 80  // P key (ASCII)
	KeySpace KeyCode = 32  // Spacebar (ASCII)
	KeyEsc   KeyCode = 256 // Escape key (GLFW)

	KeyRight KeyCode = 262 // Right arrow (GLFW)
	KeyLeft  KeyCode = 263 // Left arrow (GLFW)
	KeyDown  KeyCode = 264 // Down arrow (GLFW)
	KeyUp    KeyCode = 265 // Up arrow (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  KeyCode = 340 // Left Shift (GLFW)
	KeyRightShift KeyCode = 344 // Right Shift (GLFW)
)
