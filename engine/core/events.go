package core

// System message codes. Application codes should not reuse these names.
const (
	// Shuts the application down on the next frame.
	MESSAGE_CODE_APPLICATION_QUIT string = "APPLICATION_QUIT"

	// Keyboard key pressed.
	/* Context usage:
	 * ke := message.Context().(*KeyEvent)
	 */
	MESSAGE_CODE_KEY_PRESSED string = "KEY_PRESSED"

	// Keyboard key released.
	/* Context usage:
	 * ke := message.Context().(*KeyEvent)
	 */
	MESSAGE_CODE_KEY_RELEASED string = "KEY_RELEASED"

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * se := message.Context().(*ResizeEvent)
	 */
	MESSAGE_CODE_RESIZED string = "RESIZED"
)

// KeyEvent is the context of key pressed and key released messages.
type KeyEvent struct {
	KeyCode int
}

// ResizeEvent is the context of the resized message.
type ResizeEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// Key codes, numbered like GLFW keys.
const (
	KEY_SPACE  int = 32
	KEY_A      int = 65
	KEY_B      int = 66
	KEY_ESCAPE int = 256
)
