package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// InputHandler tracks keyboard and mouse state between frames
type InputHandler struct {
	window          *glfw.Window
	currentKeys     map[glfw.Key]bool
	previousKeys    map[glfw.Key]bool
	mouseWheelDelta float64
}

// trackedKeys are the keys the handler polls each frame
var trackedKeys = []glfw.Key{
	glfw.KeyEscape,
	glfw.KeyLeft, glfw.KeyRight, glfw.KeyUp, glfw.KeyDown,
	glfw.KeyMinus, glfw.KeyEqual, glfw.KeyLeftBracket, glfw.KeyRightBracket,
	glfw.KeyComma, glfw.KeyPeriod, glfw.KeySemicolon, glfw.KeyApostrophe,
	glfw.KeyB, glfw.KeyC, glfw.KeyM, glfw.KeyP, glfw.KeyR,
	glfw.KeyS, glfw.KeyV, glfw.KeyF12,
}

// NewInputHandler creates a new input handler for the window
func NewInputHandler(window *glfw.Window) *InputHandler {
	handler := &InputHandler{
		window:       window,
		currentKeys:  make(map[glfw.Key]bool),
		previousKeys: make(map[glfw.Key]bool),
	}

	window.SetScrollCallback(func(_ *glfw.Window, _, yoffset float64) {
		handler.mouseWheelDelta += yoffset
	})

	return handler
}

// Update polls the current input state. Call once per frame before
// querying.
func (ih *InputHandler) Update() {
	ih.previousKeys = make(map[glfw.Key]bool, len(ih.currentKeys))
	for k, v := range ih.currentKeys {
		ih.previousKeys[k] = v
	}

	for _, key := range trackedKeys {
		ih.currentKeys[key] = ih.window.GetKey(key) == glfw.Press
	}
}

// IsKeyDown reports whether the key is currently held
func (ih *InputHandler) IsKeyDown(key glfw.Key) bool {
	return ih.currentKeys[key]
}

// IsKeyPressed reports whether the key went down this frame
func (ih *InputHandler) IsKeyPressed(key glfw.Key) bool {
	return ih.currentKeys[key] && !ih.previousKeys[key]
}

// GetMouseWheelDelta returns the wheel movement since the last call and
// resets it
func (ih *InputHandler) GetMouseWheelDelta() float64 {
	delta := ih.mouseWheelDelta
	ih.mouseWheelDelta = 0
	return delta
}
