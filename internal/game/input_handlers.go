package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"scene-viewer/internal/input"
	"scene-viewer/internal/ui/widget"
)

var glfwKeys = map[glfw.Key]input.Key{
	glfw.KeyUp:           input.ArrowUp,
	glfw.KeyDown:         input.ArrowDown,
	glfw.KeyLeft:         input.ArrowLeft,
	glfw.KeyRight:        input.ArrowRight,
	glfw.KeySpace:        input.Space,
	glfw.KeyEscape:       input.Escape,
	glfw.KeyF3:           input.F3,
	glfw.KeyEnter:        "Enter",
	glfw.KeyTab:          "Tab",
	glfw.KeyLeftShift:    "ShiftLeft",
	glfw.KeyRightShift:   "ShiftRight",
	glfw.KeyLeftControl:  "ControlLeft",
	glfw.KeyRightControl: "ControlRight",
}

func init() {
	for k := glfw.KeyA; k <= glfw.KeyZ; k++ {
		glfwKeys[k] = input.Key("Key" + string(rune('A'+int(k-glfw.KeyA))))
	}
	for k := glfw.Key0; k <= glfw.Key9; k++ {
		glfwKeys[k] = input.Key("Digit" + string(rune('0'+int(k-glfw.Key0))))
	}
}

// keyCode names a physical key the way bindings do ("KeyW", "ArrowUp").
func keyCode(k glfw.Key) (input.Key, bool) {
	code, ok := glfwKeys[k]
	return code, ok
}

// cursorTracker turns absolute cursor positions into deltas. The first position
// after a reset only primes it, so locking never produces a jump.
type cursorTracker struct {
	x, y  float64
	valid bool
}

func (c *cursorTracker) reset() {
	c.valid = false
}

func (c *cursorTracker) move(x, y float64) (dx, dy float64) {
	if c.valid {
		dx, dy = x-c.x, y-c.y
	}
	c.x, c.y, c.valid = x, y, true
	return dx, dy
}

// toFramebuffer maps a cursor position in window coordinates to framebuffer
// pixels, which differ on high-DPI displays.
func toFramebuffer(x, y float64, winW, winH, fbW, fbH int) (float32, float32) {
	if winW <= 0 || winH <= 0 {
		return float32(x), float32(y)
	}
	return float32(x * float64(fbW) / float64(winW)), float32(y * float64(fbH) / float64(winH))
}

// pressPointer records a left button transition for the settings panel.
func pressPointer(ptr *widget.Pointer, action glfw.Action) {
	switch action {
	case glfw.Press:
		ptr.Down = true
		ptr.JustPressed = true
	case glfw.Release:
		ptr.Down = false
	}
}

func SetupInputHandlers(app *App) {
	window := app.window
	im := app.input

	im.OnLockChange(app.onLockChange)

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		code, ok := keyCode(key)
		if !ok {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			im.KeyDown(code)
		case glfw.Release:
			im.KeyUp(code)
		}
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		dx, dy := app.cursor.move(xpos, ypos)
		im.MouseMove(dx, dy)
		if !im.IsPointerLocked() {
			winW, winH := w.GetSize()
			fbW, fbH := w.GetFramebufferSize()
			app.pointer.X, app.pointer.Y = toFramebuffer(xpos, ypos, winW, winH, fbW, fbH)
		}
	})

	// Clicks go to the settings panel first; anywhere else engages mouse look
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			pressPointer(&app.pointer, action)
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		app.session.Resize(fbWidth, fbHeight)
	})

	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			im.Unlock()
		}
	})

	window.SetRefreshCallback(func(w *glfw.Window) {
		app.RefreshRender()
	})
}
