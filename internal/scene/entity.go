// Package scene holds the placement records the renderers consume:
// entities, terrain tiles, the skybox, lights and GUI quads.
package scene

import (
	"mini-engine/internal/graphics"
	"mini-engine/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Material describes how a model's surface is shaded.
type Material struct {
	// Texture is optional; without it the diffuse color is used.
	Texture      *graphics.Texture
	DiffuseColor mgl32.Vec4

	ShineDamper  float32
	Reflectivity float32

	// HasTransparency disables back-face culling for the batch.
	HasTransparency bool
	// NormalsPointingUp lights flat foliage as if it faced the sky.
	NormalsPointingUp bool
}

// DefaultMaterial is used when a model has no material: fully transparent
// diffuse color and no texture.
var DefaultMaterial = Material{
	DiffuseColor: mgl32.Vec4{0, 0, 0, 0},
	ShineDamper:  1,
}

// TexturedModel pairs uploaded geometry with its material. Entities that
// share a model share its geometry handle.
type TexturedModel struct {
	Geometry *graphics.Geometry
	Material *Material
}

// MaterialOrDefault never returns nil.
func (m *TexturedModel) MaterialOrDefault() *Material {
	if m == nil || m.Material == nil {
		return &DefaultMaterial
	}
	return m.Material
}

// Entity is one placed instance of a model.
type Entity struct {
	ID       uuid.UUID
	Model    *TexturedModel
	Position mgl32.Vec3
	RotX     float32
	RotY     float32
	RotZ     float32
	Scale    float32
}

// NewEntity places a model with rotations in degrees and a uniform scale.
func NewEntity(model *TexturedModel, position mgl32.Vec3, rx, ry, rz, scale float32) *Entity {
	return &Entity{
		ID:       uuid.New(),
		Model:    model,
		Position: position,
		RotX:     rx,
		RotY:     ry,
		RotZ:     rz,
		Scale:    scale,
	}
}

// Geometry returns the entity's geometry handle or nil.
func (e *Entity) Geometry() *graphics.Geometry {
	if e.Model == nil {
		return nil
	}
	return e.Model.Geometry
}

func (e *Entity) IncreasePosition(dx, dy, dz float32) {
	e.Position = e.Position.Add(mgl32.Vec3{dx, dy, dz})
}

func (e *Entity) IncreaseRotation(dx, dy, dz float32) {
	e.RotX += dx
	e.RotY += dy
	e.RotZ += dz
}

// Transform returns the model matrix T * Rx * Ry * Rz * S.
func (e *Entity) Transform() mgl32.Mat4 {
	return transform.Model(e.Position, e.RotX, e.RotY, e.RotZ, e.Scale)
}
