// Package player moves the controllable entity over the terrain.
package player

import (
	"mini-engine/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	RunSpeed  = 90.0  // units per second
	TurnSpeed = 160.0 // degrees per second
	Gravity   = -9.8
	JumpPower = 0.01
)

// Player is an entity driven by the game pad. It is rendered with the
// other entities.
type Player struct {
	scene.Entity

	currentSpeed     float32
	currentTurnSpeed float32
	upwardSpeed      float32
	jumping          bool
}

func New(model *scene.TexturedModel, position mgl32.Vec3, rx, ry, rz, scale float32) *Player {
	return &Player{Entity: *scene.NewEntity(model, position, rx, ry, rz, scale)}
}

func (p *Player) Speed() float32       { return p.currentSpeed }
func (p *Player) TurnRate() float32    { return p.currentTurnSpeed }
func (p *Player) UpwardSpeed() float32 { return p.upwardSpeed }
func (p *Player) Jumping() bool        { return p.jumping }
