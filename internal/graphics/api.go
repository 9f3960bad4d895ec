package graphics

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// GeometryID identifies uploaded mesh buffers inside a backend. IDs are
// allocated by the Loader and never reused while the geometry is alive.
type GeometryID uint32

// Geometry is a non-owning handle to mesh buffers uploaded by a Loader.
// The render core reads it but never mutates or frees it.
type Geometry struct {
	ID           GeometryID
	VertexCount  int32
	IndexCount   int32
	Dimensions   int // 2 for GUI quads, 3 otherwise
	HasTexCoords bool
	HasNormals   bool
}

// Indexed reports whether the geometry carries an index list.
func (g *Geometry) Indexed() bool {
	return g.IndexCount > 0
}

// TextureID identifies an uploaded texture inside a backend.
type TextureID uint32

// TextureKind tells the backend which target a texture is bound to.
type TextureKind int

const (
	Texture2D TextureKind = iota
	TextureCube
)

// Texture is a non-owning handle to an uploaded texture.
type Texture struct {
	ID     TextureID
	Kind   TextureKind
	Width  int
	Height int
}

// ProgramID identifies a shader program inside a backend.
type ProgramID uint32

// Mesh is the vertex data handed to a Loader for upload.
type Mesh struct {
	Positions  []float32
	Dimensions int
	TexCoords  []float32
	Normals    []float32
	Indices    []uint32
}

// VertexCount returns the number of vertices described by Positions.
func (m Mesh) VertexCount() int {
	if m.Dimensions == 0 {
		return len(m.Positions) / 3
	}
	return len(m.Positions) / m.Dimensions
}

// FrameAPI issues the per-frame state changes and draw calls.
type FrameAPI interface {
	PrepareFrame(clear mgl32.Vec4)
	SetViewport(x, y, width, height int)
	EnableCulling()
	DisableCulling()
	EnableDepthTest()
	DisableDepthTest()
	EnableBlend()
	DisableBlend()

	// PrepareModel enables position, texture coordinates and normals.
	PrepareModel(g *Geometry)
	// Prepare2DModel enables the 2D position attribute only.
	Prepare2DModel(g *Geometry)
	// Prepare3DModel enables the 3D position attribute only.
	Prepare3DModel(g *Geometry)
	// UnprepareModel disables exactly the attributes enabled by the
	// matching Prepare call.
	UnprepareModel(g *Geometry)

	ActiveAndBindTexture(t *Texture)
	ActiveAndBindCubeTexture(t *Texture)
	ActiveAndBindTextures(t1, t2, t3, t4, t5 *Texture)

	DrawTrianglesIndexes(g *Geometry)
	DrawTrianglesVertex(g *Geometry)
	DrawQuadVertex(g *Geometry)

	Dispose()
}

// ShaderAPI compiles programs and pushes uniform values.
type ShaderAPI interface {
	// LoadProgram compiles both stages and attaches them to a new program.
	LoadProgram(vertexSrc, fragmentSrc string) (ProgramID, error)
	BindAttributeLocation(p ProgramID, slot uint32, name string)
	LinkProgram(p ProgramID) error
	// GetUniformLocation returns a negative value when the uniform is absent.
	GetUniformLocation(p ProgramID, name string) int32

	LoadInt(location int32, value int32)
	LoadFloat(location int32, value float32)
	LoadVector(location int32, value mgl32.Vec3)
	LoadColorRGB(location int32, value mgl32.Vec3)
	LoadColorRGBA(location int32, value mgl32.Vec4)
	LoadBoolean(location int32, value bool)
	LoadMatrix(location int32, value mgl32.Mat4)

	Start(p ProgramID)
	Stop()
	DeleteProgram(p ProgramID)
}

// Loader uploads geometry and textures and owns their lifetime.
type Loader interface {
	LoadGeometry(mesh Mesh) (*Geometry, error)
	LoadTexture(img image.Image) (*Texture, error)
	// LoadCubeTexture takes faces in +X, -X, +Y, -Y, +Z, -Z order.
	LoadCubeTexture(faces [6]image.Image) (*Texture, error)
	DisposeGeometry(g *Geometry)
	DisposeTexture(t *Texture)
	Dispose()
}

// RenderAPI groups everything a backend provides.
type RenderAPI interface {
	Frame() FrameAPI
	Shaders() ShaderAPI
	Loader() Loader
}
