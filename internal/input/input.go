package input

import (
	"fmt"
	"slices"
)

// Action represents a logical viewer action, not a physical key
type Action int

// Action constants using iota
const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionUnlock
	ActionToggleStats
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	ActionMoveForward:  "forward",
	ActionMoveBackward: "backward",
	ActionMoveLeft:     "left",
	ActionMoveRight:    "right",
	ActionJump:         "jump",
	ActionUnlock:       "unlock",
	ActionToggleStats:  "stats",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction maps a config name ("forward", "jump", ...) to its Action.
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Key is a layout-independent physical key code, named like DOM KeyboardEvent.code values.
type Key string

const (
	KeyW       Key = "KeyW"
	KeyA       Key = "KeyA"
	KeyS       Key = "KeyS"
	KeyD       Key = "KeyD"
	ArrowUp    Key = "ArrowUp"
	ArrowLeft  Key = "ArrowLeft"
	ArrowDown  Key = "ArrowDown"
	ArrowRight Key = "ArrowRight"
	Space      Key = "Space"
	Escape     Key = "Escape"
	F3         Key = "F3"
)

// InputManager maps key codes to actions and tracks held state, jump requests,
// pointer lock and accumulated mouse look.
//
// It is not safe for concurrent use. Every method must be called from the thread
// that polls window events.
type InputManager struct {
	keyToActions map[Key][]Action

	// Current frame state (indexed by Action)
	currentState [ActionCount]bool

	// Just pressed flags (reset each frame)
	justPressed [ActionCount]bool

	jumpRequested bool

	locked       bool
	lockListener func(locked bool)

	lookX, lookY float64
}

// NewInputManager creates a new InputManager with the default WASD + arrow key bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions: make(map[Key][]Action),
	}
	im.ResetBindings()
	return im
}

// ResetBindings restores the built-in bindings.
func (im *InputManager) ResetBindings() {
	im.ClearBindings()
	im.BindKey(ArrowUp, ActionMoveForward)
	im.BindKey(KeyW, ActionMoveForward)
	im.BindKey(ArrowLeft, ActionMoveLeft)
	im.BindKey(KeyA, ActionMoveLeft)
	im.BindKey(ArrowDown, ActionMoveBackward)
	im.BindKey(KeyS, ActionMoveBackward)
	im.BindKey(ArrowRight, ActionMoveRight)
	im.BindKey(KeyD, ActionMoveRight)
	im.BindKey(Space, ActionJump)
	im.BindKey(F3, ActionToggleStats)
}

// BindKey binds a key code to a logical action.
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (im *InputManager) BindKey(key Key, action Action) {
	if action < 0 || action >= ActionCount || slices.Contains(im.keyToActions[key], action) {
		return
	}
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// ClearBindings drops every key binding except Escape, which always unlocks the
// pointer. Held actions and pending edges are released too: a key held across
// the rebind would otherwise never report its release.
func (im *InputManager) ClearBindings() {
	clear(im.keyToActions)
	im.currentState = [ActionCount]bool{}
	im.justPressed = [ActionCount]bool{}
	im.jumpRequested = false
	im.BindKey(Escape, ActionUnlock)
}

// KeyDown records a press (or auto-repeat) of key. Unrecognised codes are ignored.
func (im *InputManager) KeyDown(key Key) {
	im.setKey(key, true)
}

// KeyUp records a release of key. Unrecognised codes are ignored.
func (im *InputManager) KeyUp(key Key) {
	im.setKey(key, false)
}

func (im *InputManager) setKey(key Key, pressed bool) {
	actions, ok := im.keyToActions[key]
	if !ok {
		return
	}

	for _, act := range actions {
		// Detect edges immediately when event arrives
		if pressed && !im.currentState[act] {
			im.justPressed[act] = true
			if act == ActionJump {
				im.jumpRequested = true
			}
			if act == ActionUnlock {
				im.Unlock()
			}
		}
		im.currentState[act] = pressed
	}
}

// PostUpdate must be called at the end of each frame to clear edge flags
func (im *InputManager) PostUpdate() {
	for i := range ActionCount {
		im.justPressed[i] = false
	}
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return im.justPressed[action]
}

// ConsumeJump reports whether a jump was requested since the last call and clears the request.
func (im *InputManager) ConsumeJump() bool {
	req := im.jumpRequested
	im.jumpRequested = false
	return req
}

// IsPointerLocked reports whether mouse look is engaged.
func (im *InputManager) IsPointerLocked() bool {
	return im.locked
}

// OnLockChange registers fn to be called whenever the pointer lock state flips.
func (im *InputManager) OnLockChange(fn func(locked bool)) {
	im.lockListener = fn
}

// Lock engages mouse look.
func (im *InputManager) Lock() {
	im.setLocked(true)
}

// Unlock releases mouse look and drops any accumulated look delta.
func (im *InputManager) Unlock() {
	im.setLocked(false)
}

func (im *InputManager) setLocked(locked bool) {
	if im.locked == locked {
		return
	}
	im.locked = locked
	im.lookX, im.lookY = 0, 0
	if im.lockListener != nil {
		im.lockListener(locked)
	}
}

// MouseMove accumulates a relative pointer movement. Ignored while unlocked.
func (im *InputManager) MouseMove(dx, dy float64) {
	if !im.locked {
		return
	}
	im.lookX += dx
	im.lookY += dy
}

// TakeLook returns the pointer movement accumulated since the last call.
func (im *InputManager) TakeLook() (dx, dy float64) {
	dx, dy = im.lookX, im.lookY
	im.lookX, im.lookY = 0, 0
	return dx, dy
}
