package scene

import (
	"mini-engine/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSkyBoxSize is the half edge of the skybox cube.
const DefaultSkyBoxSize = 500

// SkyBox is a cube drawn around the camera with a cube-map texture.
type SkyBox struct {
	Geometry *graphics.Geometry
	// Texture is optional; without it the cube is drawn unbound.
	Texture *graphics.Texture
}

// SkyBoxMesh returns the 36 inward-facing vertices of a cube with half
// edge size, positions only.
func SkyBoxMesh(size float32) graphics.Mesh {
	s := size
	return graphics.Mesh{
		Dimensions: 3,
		Positions: []float32{
			-s, s, -s, -s, -s, -s, s, -s, -s,
			s, -s, -s, s, s, -s, -s, s, -s,

			-s, -s, s, -s, -s, -s, -s, s, -s,
			-s, s, -s, -s, s, s, -s, -s, s,

			s, -s, -s, s, -s, s, s, s, s,
			s, s, s, s, s, -s, s, -s, -s,

			-s, -s, s, -s, s, s, s, s, s,
			s, s, s, s, -s, s, -s, -s, s,

			-s, s, -s, s, s, -s, s, s, s,
			s, s, s, -s, s, s, -s, s, -s,

			-s, -s, -s, -s, -s, s, s, -s, -s,
			s, -s, -s, -s, -s, s, s, -s, s,
		},
	}
}

// Light is a point light; renderers read it once per frame.
type Light struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}
