package render

import _ "embed"

var (
	//go:embed shaders/entity.vert
	entityVertexSrc string
	//go:embed shaders/entity.frag
	entityFragmentSrc string

	//go:embed shaders/terrain.vert
	terrainVertexSrc string
	//go:embed shaders/terrain.frag
	terrainFragmentSrc string

	//go:embed shaders/skybox.vert
	skyBoxVertexSrc string
	//go:embed shaders/skybox.frag
	skyBoxFragmentSrc string

	//go:embed shaders/gui.vert
	guiVertexSrc string
	//go:embed shaders/gui.frag
	guiFragmentSrc string
)
