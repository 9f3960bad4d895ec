package render

import (
	"mini-engine/internal/graphics"
	"mini-engine/internal/logging"
	"mini-engine/internal/scene"
	"mini-engine/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

var guiLayout = layout{
	name:       "gui",
	vertex:     guiVertexSrc,
	fragment:   guiFragmentSrc,
	attributes: positionAttribute,
	uniforms: []string{
		"transformationMatrix",
		"guiTexture",
	},
}

// GuiRenderer draws textured quads over the scene. It owns the quad
// geometry shared by every GUI.
type GuiRenderer struct {
	pass
	loader graphics.Loader
	quad   *graphics.Geometry
}

func NewGuiRenderer(api graphics.RenderAPI, log logging.Logger) *GuiRenderer {
	r := &GuiRenderer{pass: newPass(api, guiLayout, log), loader: api.Loader()}
	if r.shader == nil {
		return r
	}
	quad, err := r.loader.LoadGeometry(scene.GuiQuadMesh())
	if err != nil {
		log.Errorf("gui renderer disabled: load quad: %v", err)
		r.shader.Delete()
		r.shader = nil
		return r
	}
	r.quad = quad
	r.shader.Start()
	r.shader.SetInt("guiTexture", 0)
	r.shader.Stop()
	return r
}

// SetProjection is a no-op; GUIs are placed in device coordinates.
func (r *GuiRenderer) SetProjection(mgl32.Mat4) {}

func (r *GuiRenderer) Render(ctx *Context) {
	if r.shader == nil || len(ctx.GUIs) == 0 {
		return
	}
	r.shader.Start()
	defer r.shader.Stop()

	r.frame.EnableBlend()
	r.frame.DisableDepthTest()
	r.frame.Prepare2DModel(r.quad)

	for _, g := range ctx.GUIs {
		if g == nil || g.Texture == nil {
			continue
		}
		r.frame.ActiveAndBindTexture(g.Texture)
		r.shader.SetMatrix("transformationMatrix", transform.GUI(g.Position, g.Scale))
		r.frame.DrawQuadVertex(r.quad)
	}

	r.frame.UnprepareModel(r.quad)
	r.frame.EnableDepthTest()
	r.frame.DisableBlend()
}

func (r *GuiRenderer) Dispose() {
	if r.quad != nil {
		r.loader.DisposeGeometry(r.quad)
		r.quad = nil
	}
	r.pass.Dispose()
}
