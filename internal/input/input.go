package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical game action, not a physical key
type Action int

// ActionNone marks a GUI quad that raises no action.
const ActionNone Action = -1

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionTurnLeft
	ActionTurnRight
	ActionJump
	ActionOrbitLeft
	ActionOrbitRight
	ActionPause
	ActionToggleProfiling
	ActionPointer
	ActionCount // Sentinel value for array sizing
)

// InputManager maps glfw key, mouse button and cursor events to logical
// actions and produces one Snapshot per frame.
type InputManager struct {
	mu sync.RWMutex

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[glfw.Key][]Action

	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool

	// Just pressed flags (reset each frame)
	justPressed [ActionCount]bool

	cursorX, cursorY float64
}

// NewInputManager creates a new InputManager with default key bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyDown, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionTurnLeft)
	im.BindKey(glfw.KeyLeft, ActionTurnLeft)
	im.BindKey(glfw.KeyD, ActionTurnRight)
	im.BindKey(glfw.KeyRight, ActionTurnRight)
	im.BindKey(glfw.KeySpace, ActionJump)
	im.BindKey(glfw.KeyQ, ActionOrbitLeft)
	im.BindKey(glfw.KeyE, ActionOrbitRight)
	im.BindKey(glfw.KeyEscape, ActionPause)
	im.BindKey(glfw.KeyV, ActionToggleProfiling)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionPointer)

	return im
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.RLock()
	actions, exists := im.keyToActions[key]
	im.mu.RUnlock()

	if !exists {
		return
	}
	im.apply(actions, action == glfw.Press || action == glfw.Repeat)
}

func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.RLock()
	actions, exists := im.mouseButtonToActions[button]
	im.mu.RUnlock()

	if !exists {
		return
	}
	im.apply(actions, action == glfw.Press)
}

// HandleCursorEvent records the cursor position in window pixels.
func (im *InputManager) HandleCursorEvent(x, y float64) {
	im.mu.Lock()
	im.cursorX, im.cursorY = x, y
	im.mu.Unlock()
}

func (im *InputManager) apply(actions []Action, isPressed bool) {
	im.mu.Lock()
	defer im.mu.Unlock()

	for _, act := range actions {
		if act < 0 || act >= ActionCount {
			continue
		}
		// Detect edges immediately when event arrives
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// SetCallbacks installs key, mouse button and cursor callbacks on window.
// This should be called once during initialization
func (im *InputManager) SetCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		im.HandleCursorEvent(x, y)
	})
}

// PostUpdate must be called at the end of each frame to reset edge detection states
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	clear(im.justPressed[:])
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// Snapshot freezes the current state for one frame. width and height are
// the window size used to normalize the cursor.
func (im *InputManager) Snapshot(width, height int) Snapshot {
	im.mu.RLock()
	defer im.mu.RUnlock()

	x, y := NormalizePointer(im.cursorX, im.cursorY, width, height)
	s := Snapshot{
		PointerX: x,
		PointerY: y,
		Pressed:  im.currentState[ActionPointer],
	}
	for a := range ActionCount {
		if im.currentState[a] {
			s.Keys.Set(a)
		}
	}
	return s
}
