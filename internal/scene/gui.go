package scene

import (
	"mini-engine/internal/graphics"
	"mini-engine/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// GuiTexture is a screen-space quad. Position is its center and Scale its
// half extent, both in normalized device coordinates.
type GuiTexture struct {
	Texture  *graphics.Texture
	Position mgl32.Vec2
	Scale    mgl32.Vec2

	// Key is the game-pad action raised while the quad is pressed, or
	// input.ActionNone for decoration.
	Key input.Action
}

func NewGuiTexture(texture *graphics.Texture, position, scale mgl32.Vec2) *GuiTexture {
	return &GuiTexture{Texture: texture, Position: position, Scale: scale, Key: input.ActionNone}
}

// ContainsLocation reports whether the NDC point lies inside the quad,
// edges included.
func (g *GuiTexture) ContainsLocation(x, y float32) bool {
	return x >= g.Position.X()-g.Scale.X() && x <= g.Position.X()+g.Scale.X() &&
		y >= g.Position.Y()-g.Scale.Y() && y <= g.Position.Y()+g.Scale.Y()
}

// GuiQuadMesh is the unit quad drawn as a triangle strip for every GUI.
func GuiQuadMesh() graphics.Mesh {
	return graphics.Mesh{
		Dimensions: 2,
		Positions:  []float32{-1, 1, -1, -1, 1, 1, 1, -1},
	}
}
