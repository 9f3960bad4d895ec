// Package render draws a scene through the graphics abstraction: one
// renderer per category (entities, terrain, skybox, GUIs) driven in a fixed
// order by the MasterRenderer.
package render

import (
	"fmt"

	"mini-engine/internal/graphics"
	"mini-engine/internal/logging"
	"mini-engine/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the number of light slots in the lit shaders.
const MaxLights = 4

// Context carries the per-frame inputs shared by all renderers. Slices are
// borrowed for the duration of one Render call.
type Context struct {
	SkyColor mgl32.Vec3
	Lights   []scene.Light
	View     mgl32.Mat4

	Batches  *BatchMap
	Player   *scene.Entity
	Terrains []*scene.Terrain
	SkyBox   *scene.SkyBox
	GUIs     []*scene.GuiTexture
}

// Renderable is one category renderer. Render must leave no program bound
// and no vertex attribute enabled.
type Renderable interface {
	Name() string
	Render(ctx *Context)
	SetProjection(projection mgl32.Mat4)
	Dispose()
}

// layout is the ShaderLayout of one renderer's program.
type layout struct {
	name       string
	vertex     string
	fragment   string
	attributes []graphics.Attribute
	uniforms   []string
}

func (l layout) Name() string                     { return l.name }
func (l layout) Sources() (string, string)        { return l.vertex, l.fragment }
func (l layout) Attributes() []graphics.Attribute { return l.attributes }
func (l layout) Uniforms() []string               { return l.uniforms }

var (
	meshAttributes = []graphics.Attribute{
		{Slot: 0, Name: "position"},
		{Slot: 1, Name: "textureCoords"},
		{Slot: 2, Name: "normal"},
	}
	positionAttribute = []graphics.Attribute{
		{Slot: 0, Name: "position"},
	}

	lightPositionNames = indexed("lightPosition", MaxLights)
	lightColorNames    = indexed("lightColor", MaxLights)
)

func indexed(name string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s[%d]", name, i)
	}
	return out
}

func lightUniforms() []string {
	return append(append([]string{}, lightPositionNames...), lightColorNames...)
}

// pass is the state every renderer shares: the frame API and a program that
// is nil when setup failed, which turns the renderer into a no-op.
type pass struct {
	name   string
	frame  graphics.FrameAPI
	shader *graphics.ShaderProgram
}

func newPass(api graphics.RenderAPI, l layout, log logging.Logger) pass {
	p := pass{name: l.name, frame: api.Frame()}
	shader, err := graphics.NewShaderProgram(api.Shaders(), l, log)
	if err != nil {
		log.Errorf("%s renderer disabled: %v", l.name, err)
		return p
	}
	p.shader = shader
	return p
}

func (p *pass) Name() string { return p.name }

// Enabled reports whether the program was built.
func (p *pass) Enabled() bool { return p.shader != nil }

func (p *pass) SetProjection(projection mgl32.Mat4) {
	if p.shader == nil {
		return
	}
	p.shader.Start()
	p.shader.SetMatrix("projectionMatrix", projection)
	p.shader.Stop()
}

func (p *pass) Dispose() {
	p.shader.Delete()
}

func (p *pass) loadLights(lights []scene.Light) {
	for i := range MaxLights {
		// unused slots are black lights at the origin
		var l scene.Light
		if i < len(lights) {
			l = lights[i]
		}
		p.shader.SetVector(lightPositionNames[i], l.Position)
		p.shader.SetColorRGB(lightColorNames[i], l.Color)
	}
}

func (p *pass) draw(g *graphics.Geometry) {
	if g.Indexed() {
		p.frame.DrawTrianglesIndexes(g)
	} else {
		p.frame.DrawTrianglesVertex(g)
	}
}
