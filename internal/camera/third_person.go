package camera

import (
	"mini-engine/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitSpeed is how fast orbit input swings the camera, in degrees per second.
const OrbitSpeed = 90.0

// ThirdPersonCamera trails a target at a fixed distance and height. Its pose
// is recomputed from scratch by Update every frame; only the orbit offset
// persists between frames.
type ThirdPersonCamera struct {
	Camera

	Distance float32
	Height   float32
	// Orbit is the horizontal angle around the target added to its rotation.
	Orbit float32
}

func NewThirdPersonCamera(distance, height, pitch float32) *ThirdPersonCamera {
	return &ThirdPersonCamera{
		Camera:   Camera{Pitch: pitch},
		Distance: distance,
		Height:   height,
	}
}

// AddOrbit swings the camera around the target.
func (c *ThirdPersonCamera) AddOrbit(deltaDeg float32) {
	c.Orbit += deltaDeg
}

// Update snaps the camera to the pose derived from the target.
func (c *ThirdPersonCamera) Update(targetPos mgl32.Vec3, targetRotY float32) {
	c.Position, c.Yaw = Pose(targetPos, targetRotY+c.Orbit, c.Distance, c.Height)
}

// Pose places a camera distance units behind a target facing heading
// degrees and height units above it, looking the way the target faces.
// Behind is measured along the run direction (-sin h, 0, cos h):
// pos = target - distance*(-sin h, 0, cos h) + (0, height, 0), yaw = 180 + h.
func Pose(targetPos mgl32.Vec3, heading, distance, height float32) (mgl32.Vec3, float32) {
	back := transform.Heading(heading).Mul(distance)
	pos := targetPos.Sub(back).Add(mgl32.Vec3{0, height, 0})
	return pos, 180 + heading
}
