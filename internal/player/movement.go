package player

import (
	"math"

	"mini-engine/internal/input"
	"mini-engine/internal/profiling"
	"mini-engine/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Move runs one physics step: sample input, turn and walk, then apply
// gravity. A nil terrain is treated as flat ground at height 0.
func (p *Player) Move(dt float32, pad input.GamePad, terrain scene.HeightSampler) {
	defer profiling.Track("player.Move")()
	if terrain == nil {
		terrain = scene.Flat(0)
	}
	p.CheckInputs(pad, terrain)
	p.MoveAndRotate(dt)
	p.Fall(dt, terrain)
}

// CheckInputs sets the run and turn speeds from the pad. Released keys stop
// the player immediately.
func (p *Player) CheckInputs(pad input.GamePad, terrain scene.HeightSampler) {
	switch {
	case pad.Forward:
		p.currentSpeed = RunSpeed
	case pad.Backward:
		p.currentSpeed = -RunSpeed
	default:
		p.currentSpeed = 0
	}

	switch {
	case pad.Left:
		p.currentTurnSpeed = -TurnSpeed
	case pad.Right:
		p.currentTurnSpeed = TurnSpeed
	default:
		p.currentTurnSpeed = 0
	}

	if pad.Jump {
		p.Jump(terrain)
	}
}

// MoveAndRotate integrates the turn then walks along the new heading.
func (p *Player) MoveAndRotate(dt float32) {
	p.IncreaseRotation(0, p.currentTurnSpeed*dt, 0)
	distance := float64(p.currentSpeed * dt)
	angle := float64(mgl32.DegToRad(p.RotY))
	dx := -float32(distance * math.Sin(angle))
	dz := float32(distance * math.Cos(angle))
	p.IncreasePosition(dx, 0, dz)
}

// Jump starts a jump when standing on the ground. The initial upward speed
// is the ground height plus JumpPower.
func (p *Player) Jump(terrain scene.HeightSampler) {
	h := terrain.HeightAt(p.Position.X(), p.Position.Z())
	if p.Position.Y() <= h && !p.jumping {
		p.upwardSpeed = h + JumpPower
		p.jumping = true
	}
}

// Fall applies gravity while airborne and otherwise keeps the player on the
// ground. Landing clears the jump flag; the height snaps on the next step.
func (p *Player) Fall(dt float32, terrain scene.HeightSampler) {
	h := terrain.HeightAt(p.Position.X(), p.Position.Z())
	if p.jumping && (p.Position.Y() > h || p.upwardSpeed > 0) {
		p.upwardSpeed += Gravity * dt
		p.IncreasePosition(0, p.upwardSpeed*dt, 0)
	} else {
		p.Position[1] = h
	}

	if p.Position.Y() <= h {
		p.jumping = false
	}
}
