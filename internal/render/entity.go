package render

import (
	"mini-engine/internal/graphics"
	"mini-engine/internal/logging"
	"mini-engine/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

var entityLayout = layout{
	name:       "entity",
	vertex:     entityVertexSrc,
	fragment:   entityFragmentSrc,
	attributes: meshAttributes,
	uniforms: append([]string{
		"transformationMatrix",
		"projectionMatrix",
		"viewMatrix",
		"shineDamper",
		"reflectivity",
		"normalsPointingUp",
		"skyColor",
		"textureWeight",
		"diffuseColor",
		"textureSampler",
	}, lightUniforms()...),
}

// EntityRenderer draws the entity batches and the player.
type EntityRenderer struct {
	pass
	single Batch
}

func NewEntityRenderer(api graphics.RenderAPI, projection mgl32.Mat4, log logging.Logger) *EntityRenderer {
	r := &EntityRenderer{pass: newPass(api, entityLayout, log)}
	if r.shader != nil {
		r.shader.Start()
		r.shader.SetMatrix("projectionMatrix", projection)
		r.shader.SetInt("textureSampler", 0)
		r.shader.Stop()
	}
	return r
}

func (r *EntityRenderer) Render(ctx *Context) {
	if r.shader == nil {
		return
	}
	r.shader.Start()
	defer r.shader.Stop()

	r.shader.SetColorRGB("skyColor", ctx.SkyColor)
	r.loadLights(ctx.Lights)
	r.shader.SetMatrix("viewMatrix", ctx.View)

	if ctx.Batches != nil {
		for _, b := range ctx.Batches.Batches() {
			r.renderBatch(b)
		}
	}

	if p := ctx.Player; p != nil && p.Geometry() != nil {
		r.single.Geometry = p.Geometry()
		r.single.Model = p.Model
		r.single.Entities = append(r.single.Entities[:0], p)
		r.renderBatch(&r.single)
		r.single.Entities[0] = nil
	}
}

func (r *EntityRenderer) renderBatch(b *Batch) {
	if len(b.Entities) == 0 {
		return
	}
	material := b.Model.MaterialOrDefault()

	r.frame.PrepareModel(b.Geometry)
	if material.HasTransparency {
		r.frame.DisableCulling()
	}
	r.loadMaterial(material)

	for _, e := range b.Entities {
		r.shader.SetMatrix("transformationMatrix", e.Transform())
		r.draw(b.Geometry)
	}

	if material.HasTransparency {
		r.frame.EnableCulling()
	}
	r.frame.UnprepareModel(b.Geometry)
}

func (r *EntityRenderer) loadMaterial(m *scene.Material) {
	if m.Texture != nil {
		r.frame.ActiveAndBindTexture(m.Texture)
		r.shader.SetFloat("textureWeight", 1)
	} else {
		r.shader.SetFloat("textureWeight", 0)
	}
	r.shader.SetColorRGBA("diffuseColor", m.DiffuseColor)
	r.shader.SetFloat("shineDamper", m.ShineDamper)
	r.shader.SetFloat("reflectivity", m.Reflectivity)
	r.shader.SetBool("normalsPointingUp", m.NormalsPointingUp)
}
