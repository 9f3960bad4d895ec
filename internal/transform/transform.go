// Package transform builds the 4x4 matrices used by the renderers.
//
// Every operation post-multiplies the current matrix (M = M * Op), the same
// convention as fixed-function OpenGL. Calls therefore read in the order the
// operations are applied to the model: Translate then Rotate then Scale
// produces T * R * S.
package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a mutable 4x4 column-major matrix.
type Transform struct {
	m mgl32.Mat4
}

// New returns a transform loaded with the identity matrix.
func New() *Transform {
	return &Transform{m: mgl32.Ident4()}
}

// LoadIdentity resets the matrix to identity.
func (t *Transform) LoadIdentity() *Transform {
	t.m = mgl32.Ident4()
	return t
}

// Translate multiplies the matrix by a translation.
func (t *Transform) Translate(dx, dy, dz float32) *Transform {
	t.m = t.m.Mul4(mgl32.Translate3D(dx, dy, dz))
	return t
}

// Rotate multiplies the matrix by a rotation of angleDeg degrees around the
// given axis. A zero axis leaves the matrix untouched.
func (t *Transform) Rotate(angleDeg, x, y, z float32) *Transform {
	axis := mgl32.Vec3{x, y, z}
	if axis.Len() == 0 {
		return t
	}
	t.m = t.m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angleDeg), axis.Normalize()))
	return t
}

// Scale multiplies the matrix by a scale.
func (t *Transform) Scale(sx, sy, sz float32) *Transform {
	t.m = t.m.Mul4(mgl32.Scale3D(sx, sy, sz))
	return t
}

// Perspective multiplies the matrix by a perspective projection.
func (t *Transform) Perspective(fovDeg, aspect, near, far float32) *Transform {
	t.m = t.m.Mul4(mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far))
	return t
}

// ZeroTranslation clears the translation column, keeping only rotation and
// scale. Used for the skybox so it never moves with the camera.
func (t *Transform) ZeroTranslation() *Transform {
	t.m[12], t.m[13], t.m[14] = 0, 0, 0
	return t
}

// Matrix returns a copy of the current matrix.
func (t *Transform) Matrix() mgl32.Mat4 {
	return t.m
}

// Model builds translate(position) * rotate(rx) * rotate(ry) * rotate(rz) * scale(s).
func Model(position mgl32.Vec3, rx, ry, rz, scale float32) mgl32.Mat4 {
	return New().
		Translate(position.X(), position.Y(), position.Z()).
		Rotate(rx, 1, 0, 0).
		Rotate(ry, 0, 1, 0).
		Rotate(rz, 0, 0, 1).
		Scale(scale, scale, scale).
		Matrix()
}

// View builds the camera matrix rotate(pitch, X) * rotate(yaw, Y) * translate(-position).
func View(position mgl32.Vec3, pitch, yaw float32) mgl32.Mat4 {
	return New().
		Rotate(pitch, 1, 0, 0).
		Rotate(yaw, 0, 1, 0).
		Translate(-position.X(), -position.Y(), -position.Z()).
		Matrix()
}

// SkyBoxView returns view with its translation removed.
func SkyBoxView(view mgl32.Mat4) mgl32.Mat4 {
	t := &Transform{m: view}
	return t.ZeroTranslation().Matrix()
}

// Projection builds a perspective projection from the identity.
func Projection(fovDeg, aspect, near, far float32) mgl32.Mat4 {
	return New().Perspective(fovDeg, aspect, near, far).Matrix()
}

// GUI builds the 2D placement matrix of a quad in normalized device space.
func GUI(position, scale mgl32.Vec2) mgl32.Mat4 {
	return New().
		Translate(position.X(), position.Y(), 0).
		Scale(scale.X(), scale.Y(), 1).
		Matrix()
}

// Heading is the unit ground direction an entity faces at rotY degrees.
// Yaw 0 faces +Z and yaw 90 faces -X.
func Heading(rotYDeg float32) mgl32.Vec3 {
	r := float64(mgl32.DegToRad(rotYDeg))
	return mgl32.Vec3{-float32(math.Sin(r)), 0, float32(math.Cos(r))}
}
