package input

// GamePad is the set of movement and camera actions held during one frame.
type GamePad struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool

	OrbitLeft  bool
	OrbitRight bool
}

// Set raises the flag for a movement action; other actions are ignored.
func (p *GamePad) Set(a Action) {
	switch a {
	case ActionMoveForward:
		p.Forward = true
	case ActionMoveBackward:
		p.Backward = true
	case ActionTurnLeft:
		p.Left = true
	case ActionTurnRight:
		p.Right = true
	case ActionJump:
		p.Jump = true
	case ActionOrbitLeft:
		p.OrbitLeft = true
	case ActionOrbitRight:
		p.OrbitRight = true
	}
}

// Merge returns the union of both pads.
func (p GamePad) Merge(o GamePad) GamePad {
	return GamePad{
		Forward:  p.Forward || o.Forward,
		Backward: p.Backward || o.Backward,
		Left:     p.Left || o.Left,
		Right:    p.Right || o.Right,
		Jump:     p.Jump || o.Jump,

		OrbitLeft:  p.OrbitLeft || o.OrbitLeft,
		OrbitRight: p.OrbitRight || o.OrbitRight,
	}
}

// Snapshot is the input state sampled once per frame. The pointer is in
// normalized device coordinates, x right and y up, both in [-1, 1].
type Snapshot struct {
	PointerX float32
	PointerY float32
	Pressed  bool
	Keys     GamePad
}

// NormalizePointer maps window pixel coordinates (origin top-left) to
// normalized device coordinates, clamped to [-1, 1].
func NormalizePointer(x, y float64, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx := 2*x/float64(width) - 1
	ny := 1 - 2*y/float64(height)
	return float32(clamp(nx)), float32(clamp(ny))
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
