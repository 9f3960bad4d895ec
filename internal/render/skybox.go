package render

import (
	"mini-engine/internal/graphics"
	"mini-engine/internal/logging"
	"mini-engine/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

var skyBoxLayout = layout{
	name:       "skybox",
	vertex:     skyBoxVertexSrc,
	fragment:   skyBoxFragmentSrc,
	attributes: positionAttribute,
	uniforms: []string{
		"projectionMatrix",
		"viewMatrix",
		"cubeMap",
		"fogColor",
	},
}

// SkyBoxRenderer draws the skybox cube centered on the camera.
type SkyBoxRenderer struct {
	pass
}

func NewSkyBoxRenderer(api graphics.RenderAPI, projection mgl32.Mat4, log logging.Logger) *SkyBoxRenderer {
	r := &SkyBoxRenderer{pass: newPass(api, skyBoxLayout, log)}
	if r.shader != nil {
		r.shader.Start()
		r.shader.SetMatrix("projectionMatrix", projection)
		r.shader.SetInt("cubeMap", 0)
		r.shader.Stop()
	}
	return r
}

func (r *SkyBoxRenderer) Render(ctx *Context) {
	sky := ctx.SkyBox
	if r.shader == nil || sky == nil || sky.Geometry == nil {
		return
	}
	r.shader.Start()
	defer r.shader.Stop()

	r.shader.SetMatrix("viewMatrix", transform.SkyBoxView(ctx.View))
	r.shader.SetColorRGB("fogColor", ctx.SkyColor)

	r.frame.Prepare3DModel(sky.Geometry)
	if sky.Texture != nil {
		r.frame.ActiveAndBindCubeTexture(sky.Texture)
	}
	r.frame.DrawTrianglesVertex(sky.Geometry)
	r.frame.UnprepareModel(sky.Geometry)
}
