package render

import (
	"mini-engine/internal/graphics"
	"mini-engine/internal/logging"

	"github.com/go-gl/mathgl/mgl32"
)

// terrain surface constants
const (
	terrainShineDamper  = 1
	terrainReflectivity = 0
)

var terrainLayout = layout{
	name:       "terrain",
	vertex:     terrainVertexSrc,
	fragment:   terrainFragmentSrc,
	attributes: meshAttributes,
	uniforms: append([]string{
		"transformationMatrix",
		"projectionMatrix",
		"viewMatrix",
		"shineDamper",
		"reflectivity",
		"skyColor",
		"backgroundTexture",
		"mudTexture",
		"grassTexture",
		"pathTexture",
		"weightMapTexture",
	}, lightUniforms()...),
}

// TerrainRenderer draws terrain tiles with their five blended textures.
type TerrainRenderer struct {
	pass
}

func NewTerrainRenderer(api graphics.RenderAPI, projection mgl32.Mat4, log logging.Logger) *TerrainRenderer {
	r := &TerrainRenderer{pass: newPass(api, terrainLayout, log)}
	if r.shader != nil {
		r.shader.Start()
		r.shader.SetMatrix("projectionMatrix", projection)
		r.shader.SetInt("backgroundTexture", 0)
		r.shader.SetInt("mudTexture", 1)
		r.shader.SetInt("grassTexture", 2)
		r.shader.SetInt("pathTexture", 3)
		r.shader.SetInt("weightMapTexture", 4)
		r.shader.Stop()
	}
	return r
}

func (r *TerrainRenderer) Render(ctx *Context) {
	if r.shader == nil || len(ctx.Terrains) == 0 {
		return
	}
	r.shader.Start()
	defer r.shader.Stop()

	r.shader.SetColorRGB("skyColor", ctx.SkyColor)
	r.loadLights(ctx.Lights)
	r.shader.SetMatrix("viewMatrix", ctx.View)
	r.shader.SetFloat("shineDamper", terrainShineDamper)
	r.shader.SetFloat("reflectivity", terrainReflectivity)

	for _, t := range ctx.Terrains {
		if t == nil || t.Geometry == nil {
			continue
		}
		r.frame.PrepareModel(t.Geometry)
		if p := t.Textures; p.Complete() {
			r.frame.ActiveAndBindTextures(p.Background, p.Mud, p.Grass, p.Path, p.WeightMap)
		}
		r.shader.SetMatrix("transformationMatrix", t.Transform())
		r.draw(t.Geometry)
		r.frame.UnprepareModel(t.Geometry)
	}
}
