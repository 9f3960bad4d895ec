// Package camera holds the free camera and the third-person camera that
// trails the player.
package camera

import (
	"mini-engine/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch bounds the free camera's look up/down angle.
const MaxPitch = 89.0

// Camera is a directly settable pose. Angles are in degrees.
type Camera struct {
	Position mgl32.Vec3
	Pitch    float32
	Yaw      float32
}

// ViewMatrix returns rotate(pitch, X) * rotate(yaw, Y) * translate(-position).
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return transform.View(c.Position, c.Pitch, c.Yaw)
}

func (c *Camera) Move(dx, dy, dz float32) {
	c.Position = c.Position.Add(mgl32.Vec3{dx, dy, dz})
}

// Look turns the camera by the given offsets, keeping pitch in range.
func (c *Camera) Look(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch

	// Constrain pitch
	if c.Pitch > MaxPitch {
		c.Pitch = MaxPitch
	}
	if c.Pitch < -MaxPitch {
		c.Pitch = -MaxPitch
	}
}
