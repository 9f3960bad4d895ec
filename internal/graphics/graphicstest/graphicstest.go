// Package graphicstest provides a recording RenderAPI for tests. It tracks
// the state a real backend would hold (bound program, enabled attributes,
// bound texture units) so tests can assert renderers leave it clean.
package graphicstest

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"mini-engine/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Attribute names tracked in Enabled.
const (
	AttrPosition  = "position"
	AttrTexCoords = "textureCoords"
	AttrNormal    = "normal"
)

// Uniform records one uniform push.
type Uniform struct {
	Program  graphics.ProgramID
	Location int32
	Name     string
	Value    any
}

// API is a fake backend. The zero value is not usable; call New.
type API struct {
	// Calls holds one line per call, e.g. "DrawTrianglesIndexes 3".
	Calls []string
	// Uniforms holds every uniform push in order.
	Uniforms []Uniform

	// Failure injection.
	FailCompile     bool
	FailLink        bool
	MissingUniforms map[string]bool

	Bound   graphics.ProgramID
	Enabled map[string]bool
	Units   map[int]*graphics.Texture

	nextProgram  graphics.ProgramID
	nextGeometry graphics.GeometryID
	nextTexture  graphics.TextureID
	nextLocation int32

	attrs     map[graphics.ProgramID]map[uint32]string
	locations map[int32]string
	prepared  map[graphics.GeometryID]string

	Geometries map[graphics.GeometryID]graphics.Mesh
	Textures   map[graphics.TextureID]*graphics.Texture
	Programs   map[graphics.ProgramID]bool
}

func New() *API {
	return &API{
		MissingUniforms: make(map[string]bool),
		Enabled:         make(map[string]bool),
		Units:           make(map[int]*graphics.Texture),
		attrs:           make(map[graphics.ProgramID]map[uint32]string),
		locations:       make(map[int32]string),
		prepared:        make(map[graphics.GeometryID]string),
		Geometries:      make(map[graphics.GeometryID]graphics.Mesh),
		Textures:        make(map[graphics.TextureID]*graphics.Texture),
		Programs:        make(map[graphics.ProgramID]bool),
	}
}

func (a *API) Frame() graphics.FrameAPI    { return a }
func (a *API) Shaders() graphics.ShaderAPI { return a }
func (a *API) Loader() graphics.Loader     { return a }

func (a *API) record(format string, args ...any) {
	a.Calls = append(a.Calls, fmt.Sprintf(format, args...))
}

// Reset drops recorded calls and uniforms but keeps state.
func (a *API) Reset() {
	a.Calls = nil
	a.Uniforms = nil
}

// Count returns how many recorded calls start with prefix.
func (a *API) Count(prefix string) int {
	n := 0
	for _, c := range a.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// Index returns the position of the first call starting with prefix, -1 if none.
func (a *API) Index(prefix string) int {
	for i, c := range a.Calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

// Clean reports whether no program is bound and no attribute is enabled.
func (a *API) Clean() bool {
	if a.Bound != 0 {
		return false
	}
	for _, on := range a.Enabled {
		if on {
			return false
		}
	}
	return true
}

// UniformValues returns every value pushed for the named uniform.
func (a *API) UniformValues(name string) []any {
	var out []any
	for _, u := range a.Uniforms {
		if u.Name == name {
			out = append(out, u.Value)
		}
	}
	return out
}

// EnabledAttributes lists enabled attribute names, sorted.
func (a *API) EnabledAttributes() []string {
	var out []string
	for k, on := range a.Enabled {
		if on {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// FrameAPI

func (a *API) PrepareFrame(clear mgl32.Vec4) { a.record("PrepareFrame %v", clear) }
func (a *API) SetViewport(x, y, w, h int)    { a.record("SetViewport %d %d %d %d", x, y, w, h) }
func (a *API) EnableCulling()                { a.record("EnableCulling") }
func (a *API) DisableCulling()               { a.record("DisableCulling") }
func (a *API) EnableDepthTest()              { a.record("EnableDepthTest") }
func (a *API) DisableDepthTest()             { a.record("DisableDepthTest") }
func (a *API) EnableBlend()                  { a.record("EnableBlend") }
func (a *API) DisableBlend()                 { a.record("DisableBlend") }

func (a *API) PrepareModel(g *graphics.Geometry) {
	a.record("PrepareModel %d", g.ID)
	a.Enabled[AttrPosition] = true
	if g.HasTexCoords {
		a.Enabled[AttrTexCoords] = true
	}
	if g.HasNormals {
		a.Enabled[AttrNormal] = true
	}
	a.prepared[g.ID] = "full"
}

func (a *API) Prepare2DModel(g *graphics.Geometry) {
	a.record("Prepare2DModel %d", g.ID)
	a.Enabled[AttrPosition] = true
	a.prepared[g.ID] = "2d"
}

func (a *API) Prepare3DModel(g *graphics.Geometry) {
	a.record("Prepare3DModel %d", g.ID)
	a.Enabled[AttrPosition] = true
	a.prepared[g.ID] = "3d"
}

func (a *API) UnprepareModel(g *graphics.Geometry) {
	a.record("UnprepareModel %d", g.ID)
	a.Enabled[AttrPosition] = false
	if a.prepared[g.ID] == "full" {
		a.Enabled[AttrTexCoords] = false
		a.Enabled[AttrNormal] = false
	}
	delete(a.prepared, g.ID)
}

func (a *API) ActiveAndBindTexture(t *graphics.Texture) {
	a.record("ActiveAndBindTexture %d", t.ID)
	a.Units[0] = t
}

func (a *API) ActiveAndBindCubeTexture(t *graphics.Texture) {
	a.record("ActiveAndBindCubeTexture %d", t.ID)
	a.Units[0] = t
}

func (a *API) ActiveAndBindTextures(t1, t2, t3, t4, t5 *graphics.Texture) {
	a.record("ActiveAndBindTextures %d %d %d %d %d", t1.ID, t2.ID, t3.ID, t4.ID, t5.ID)
	for i, t := range []*graphics.Texture{t1, t2, t3, t4, t5} {
		a.Units[i] = t
	}
}

func (a *API) DrawTrianglesIndexes(g *graphics.Geometry) {
	a.record("DrawTrianglesIndexes %d", g.ID)
}

func (a *API) DrawTrianglesVertex(g *graphics.Geometry) {
	a.record("DrawTrianglesVertex %d", g.ID)
}

func (a *API) DrawQuadVertex(g *graphics.Geometry) {
	a.record("DrawQuadVertex %d", g.ID)
}

func (a *API) Dispose() { a.record("Dispose") }

// ShaderAPI

func (a *API) LoadProgram(vertexSrc, fragmentSrc string) (graphics.ProgramID, error) {
	if a.FailCompile {
		a.record("LoadProgram failed")
		return 0, graphics.ErrCompile
	}
	a.nextProgram++
	id := a.nextProgram
	a.Programs[id] = true
	a.attrs[id] = make(map[uint32]string)
	a.record("LoadProgram %d", id)
	return id, nil
}

func (a *API) BindAttributeLocation(p graphics.ProgramID, slot uint32, name string) {
	a.attrs[p][slot] = name
	a.record("BindAttributeLocation %d %d %s", p, slot, name)
}

// AttributeSlots returns the slot table bound for a program.
func (a *API) AttributeSlots(p graphics.ProgramID) map[uint32]string {
	return a.attrs[p]
}

func (a *API) LinkProgram(p graphics.ProgramID) error {
	if a.FailLink {
		a.record("LinkProgram %d failed", p)
		return graphics.ErrLink
	}
	a.record("LinkProgram %d", p)
	return nil
}

func (a *API) GetUniformLocation(p graphics.ProgramID, name string) int32 {
	if a.MissingUniforms[name] {
		return -1
	}
	loc := a.nextLocation
	a.nextLocation++
	a.locations[loc] = name
	return loc
}

func (a *API) push(loc int32, v any) {
	a.Uniforms = append(a.Uniforms, Uniform{Program: a.Bound, Location: loc, Name: a.locations[loc], Value: v})
}

func (a *API) LoadInt(loc int32, v int32)            { a.push(loc, v) }
func (a *API) LoadFloat(loc int32, v float32)        { a.push(loc, v) }
func (a *API) LoadVector(loc int32, v mgl32.Vec3)    { a.push(loc, v) }
func (a *API) LoadColorRGB(loc int32, v mgl32.Vec3)  { a.push(loc, v) }
func (a *API) LoadColorRGBA(loc int32, v mgl32.Vec4) { a.push(loc, v) }
func (a *API) LoadBoolean(loc int32, v bool)         { a.push(loc, v) }
func (a *API) LoadMatrix(loc int32, v mgl32.Mat4)    { a.push(loc, v) }

func (a *API) Start(p graphics.ProgramID) {
	a.record("Start %d", p)
	a.Bound = p
}

func (a *API) Stop() {
	a.record("Stop")
	a.Bound = 0
}

func (a *API) DeleteProgram(p graphics.ProgramID) {
	a.record("DeleteProgram %d", p)
	delete(a.Programs, p)
}

// Loader

func (a *API) LoadGeometry(mesh graphics.Mesh) (*graphics.Geometry, error) {
	a.nextGeometry++
	dims := mesh.Dimensions
	if dims == 0 {
		dims = 3
	}
	g := &graphics.Geometry{
		ID:           a.nextGeometry,
		VertexCount:  int32(mesh.VertexCount()),
		IndexCount:   int32(len(mesh.Indices)),
		Dimensions:   dims,
		HasTexCoords: len(mesh.TexCoords) > 0,
		HasNormals:   len(mesh.Normals) > 0,
	}
	a.Geometries[g.ID] = mesh
	return g, nil
}

func (a *API) LoadTexture(img image.Image) (*graphics.Texture, error) {
	a.nextTexture++
	b := img.Bounds()
	t := &graphics.Texture{ID: a.nextTexture, Kind: graphics.Texture2D, Width: b.Dx(), Height: b.Dy()}
	a.Textures[t.ID] = t
	return t, nil
}

func (a *API) LoadCubeTexture(faces [6]image.Image) (*graphics.Texture, error) {
	a.nextTexture++
	b := faces[0].Bounds()
	t := &graphics.Texture{ID: a.nextTexture, Kind: graphics.TextureCube, Width: b.Dx(), Height: b.Dy()}
	a.Textures[t.ID] = t
	return t, nil
}

func (a *API) DisposeGeometry(g *graphics.Geometry) { delete(a.Geometries, g.ID) }
func (a *API) DisposeTexture(t *graphics.Texture)   { delete(a.Textures, t.ID) }

// Texture returns a fresh 2D texture handle without an image.
func (a *API) Texture() *graphics.Texture {
	a.nextTexture++
	t := &graphics.Texture{ID: a.nextTexture, Kind: graphics.Texture2D, Width: 1, Height: 1}
	a.Textures[t.ID] = t
	return t
}

// Geometry uploads a small mesh with the requested attributes.
func (a *API) Geometry(indexed, texCoords, normals bool) *graphics.Geometry {
	m := graphics.Mesh{Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, Dimensions: 3}
	if texCoords {
		m.TexCoords = []float32{0, 0, 1, 0, 0, 1}
	}
	if normals {
		m.Normals = []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}
	}
	if indexed {
		m.Indices = []uint32{0, 1, 2}
	}
	g, _ := a.LoadGeometry(m)
	return g
}
