// Package glapi implements the graphics abstraction on OpenGL 4.1 core.
// All calls must happen on the thread owning the GL context.
package glapi

import (
	"fmt"
	"image"
	"strings"

	"mini-engine/internal/assets"
	"mini-engine/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Fixed attribute slots shared by every shader layout in the engine.
const (
	slotPosition  = 0
	slotTexCoords = 1
	slotNormal    = 2
)

type meshBuffers struct {
	vao     uint32
	vbos    []uint32
	ebo     uint32
	enabled []uint32
}

// API is the OpenGL backend. It keeps the GL object ids behind the opaque
// handles it hands out.
type API struct {
	meshes       map[graphics.GeometryID]*meshBuffers
	textures     map[graphics.TextureID]uint32
	shaders      map[graphics.ProgramID][]uint32
	nextGeometry graphics.GeometryID
	nextTexture  graphics.TextureID
}

// New initialises the GL function pointers. A context must be current.
func New() (*API, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	return &API{
		meshes:   make(map[graphics.GeometryID]*meshBuffers),
		textures: make(map[graphics.TextureID]uint32),
		shaders:  make(map[graphics.ProgramID][]uint32),
	}, nil
}

func (a *API) Frame() graphics.FrameAPI    { return a }
func (a *API) Shaders() graphics.ShaderAPI { return a }
func (a *API) Loader() graphics.Loader     { return a }

// Version returns the GL version string of the current context.
func (a *API) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Frame state

func (a *API) PrepareFrame(clear mgl32.Vec4) {
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (a *API) SetViewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (a *API) EnableCulling() {
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
}

func (a *API) DisableCulling()   { gl.Disable(gl.CULL_FACE) }
func (a *API) EnableDepthTest()  { gl.Enable(gl.DEPTH_TEST) }
func (a *API) DisableDepthTest() { gl.Disable(gl.DEPTH_TEST) }

func (a *API) EnableBlend() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (a *API) DisableBlend() { gl.Disable(gl.BLEND) }

// Models

func (a *API) bind(g *graphics.Geometry, slots ...uint32) {
	m, ok := a.meshes[g.ID]
	if !ok {
		return
	}
	gl.BindVertexArray(m.vao)
	m.enabled = m.enabled[:0]
	for _, s := range slots {
		gl.EnableVertexAttribArray(s)
		m.enabled = append(m.enabled, s)
	}
}

func (a *API) PrepareModel(g *graphics.Geometry) {
	slots := []uint32{slotPosition}
	if g.HasTexCoords {
		slots = append(slots, slotTexCoords)
	}
	if g.HasNormals {
		slots = append(slots, slotNormal)
	}
	a.bind(g, slots...)
}

func (a *API) Prepare2DModel(g *graphics.Geometry) { a.bind(g, slotPosition) }
func (a *API) Prepare3DModel(g *graphics.Geometry) { a.bind(g, slotPosition) }

func (a *API) UnprepareModel(g *graphics.Geometry) {
	m, ok := a.meshes[g.ID]
	if !ok {
		return
	}
	for _, s := range m.enabled {
		gl.DisableVertexAttribArray(s)
	}
	m.enabled = m.enabled[:0]
	gl.BindVertexArray(0)
}

// Textures

func (a *API) bindUnit(unit uint32, target uint32, t *graphics.Texture) {
	id, ok := a.textures[t.ID]
	if !ok {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(target, id)
}

func (a *API) ActiveAndBindTexture(t *graphics.Texture) {
	a.bindUnit(0, gl.TEXTURE_2D, t)
}

func (a *API) ActiveAndBindCubeTexture(t *graphics.Texture) {
	a.bindUnit(0, gl.TEXTURE_CUBE_MAP, t)
}

func (a *API) ActiveAndBindTextures(t1, t2, t3, t4, t5 *graphics.Texture) {
	for i, t := range []*graphics.Texture{t1, t2, t3, t4, t5} {
		a.bindUnit(uint32(i), gl.TEXTURE_2D, t)
	}
}

// Draws

func (a *API) DrawTrianglesIndexes(g *graphics.Geometry) {
	gl.DrawElements(gl.TRIANGLES, g.IndexCount, gl.UNSIGNED_INT, nil)
}

func (a *API) DrawTrianglesVertex(g *graphics.Geometry) {
	gl.DrawArrays(gl.TRIANGLES, 0, g.VertexCount)
}

func (a *API) DrawQuadVertex(g *graphics.Geometry) {
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, g.VertexCount)
}

// Loader

func uploadAttribute(slot uint32, size int32, data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(slot, size, gl.FLOAT, false, 0, 0)
	return vbo
}

func (a *API) LoadGeometry(mesh graphics.Mesh) (*graphics.Geometry, error) {
	dims := mesh.Dimensions
	if dims == 0 {
		dims = 3
	}
	if len(mesh.Positions) == 0 || len(mesh.Positions)%dims != 0 {
		return nil, fmt.Errorf("geometry: %d position floats for %d dimensions", len(mesh.Positions), dims)
	}

	m := &meshBuffers{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	m.vbos = append(m.vbos, uploadAttribute(slotPosition, int32(dims), mesh.Positions))
	if len(mesh.TexCoords) > 0 {
		m.vbos = append(m.vbos, uploadAttribute(slotTexCoords, 2, mesh.TexCoords))
	}
	if len(mesh.Normals) > 0 {
		m.vbos = append(m.vbos, uploadAttribute(slotNormal, 3, mesh.Normals))
	}
	if len(mesh.Indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)

	a.nextGeometry++
	g := &graphics.Geometry{
		ID:           a.nextGeometry,
		VertexCount:  int32(mesh.VertexCount()),
		IndexCount:   int32(len(mesh.Indices)),
		Dimensions:   dims,
		HasTexCoords: len(mesh.TexCoords) > 0,
		HasNormals:   len(mesh.Normals) > 0,
	}
	a.meshes[g.ID] = m
	return g, nil
}

func (a *API) LoadTexture(img image.Image) (*graphics.Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("texture: nil image")
	}
	rgba := assets.ToRGBA(img)
	size := rgba.Rect.Size()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	a.nextTexture++
	t := &graphics.Texture{ID: a.nextTexture, Kind: graphics.Texture2D, Width: size.X, Height: size.Y}
	a.textures[t.ID] = id
	return t, nil
}

func (a *API) LoadCubeTexture(faces [6]image.Image) (*graphics.Texture, error) {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)

	var w, h int
	for i, face := range faces {
		if face == nil {
			gl.DeleteTextures(1, &id)
			return nil, fmt.Errorf("cube texture: face %d missing", i)
		}
		rgba := assets.ToRGBA(face)
		size := rgba.Rect.Size()
		w, h = size.X, size.Y
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	a.nextTexture++
	t := &graphics.Texture{ID: a.nextTexture, Kind: graphics.TextureCube, Width: w, Height: h}
	a.textures[t.ID] = id
	return t, nil
}

func (a *API) DisposeGeometry(g *graphics.Geometry) {
	m, ok := a.meshes[g.ID]
	if !ok {
		return
	}
	if len(m.vbos) > 0 {
		gl.DeleteBuffers(int32(len(m.vbos)), &m.vbos[0])
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	gl.DeleteVertexArrays(1, &m.vao)
	delete(a.meshes, g.ID)
}

func (a *API) DisposeTexture(t *graphics.Texture) {
	id, ok := a.textures[t.ID]
	if !ok {
		return
	}
	gl.DeleteTextures(1, &id)
	delete(a.textures, t.ID)
}

// Dispose frees every GL object still owned by the backend.
func (a *API) Dispose() {
	for id := range a.meshes {
		a.DisposeGeometry(&graphics.Geometry{ID: id})
	}
	for id := range a.textures {
		a.DisposeTexture(&graphics.Texture{ID: id})
	}
	for p := range a.shaders {
		a.DeleteProgram(p)
	}
}

// Shaders

func (a *API) LoadProgram(vertexSrc, fragmentSrc string) (graphics.ProgramID, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	id := graphics.ProgramID(program)
	a.shaders[id] = []uint32{vs, fs}
	return id, nil
}

func (a *API) BindAttributeLocation(p graphics.ProgramID, slot uint32, name string) {
	gl.BindAttribLocation(uint32(p), slot, gl.Str(name+"\x00"))
}

func (a *API) LinkProgram(p graphics.ProgramID) error {
	program := uint32(p)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		return fmt.Errorf("%w: %v", graphics.ErrLink, log)
	}
	for _, s := range a.shaders[p] {
		gl.DetachShader(program, s)
		gl.DeleteShader(s)
	}
	a.shaders[p] = nil
	return nil
}

func (a *API) GetUniformLocation(p graphics.ProgramID, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (a *API) LoadInt(location int32, value int32)     { gl.Uniform1i(location, value) }
func (a *API) LoadFloat(location int32, value float32) { gl.Uniform1f(location, value) }

func (a *API) LoadVector(location int32, v mgl32.Vec3) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (a *API) LoadColorRGB(location int32, c mgl32.Vec3) {
	gl.Uniform3f(location, c[0], c[1], c[2])
}

func (a *API) LoadColorRGBA(location int32, c mgl32.Vec4) {
	gl.Uniform4f(location, c[0], c[1], c[2], c[3])
}

func (a *API) LoadBoolean(location int32, value bool) {
	var f float32
	if value {
		f = 1
	}
	gl.Uniform1f(location, f)
}

func (a *API) LoadMatrix(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (a *API) Start(p graphics.ProgramID) { gl.UseProgram(uint32(p)) }
func (a *API) Stop()                      { gl.UseProgram(0) }

func (a *API) DeleteProgram(p graphics.ProgramID) {
	for _, s := range a.shaders[p] {
		gl.DeleteShader(s)
	}
	delete(a.shaders, p)
	gl.DeleteProgram(uint32(p))
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%w: %v", graphics.ErrCompile, log)
	}
	return shader, nil
}
