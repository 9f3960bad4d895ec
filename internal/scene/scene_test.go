package scene

import (
	"testing"

	"mini-engine/internal/graphics"
	"mini-engine/internal/input"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sloped(n int) [][]float32 {
	// height grows with x only: h = x index
	h := FlatHeights(n, 0)
	for x := range h {
		for z := range h[x] {
			h[x][z] = float32(x)
		}
	}
	return h
}

func TestHeightAtFlat(t *testing.T) {
	tr := NewTerrain(0, 0, 100, FlatHeights(5, 3), nil, nil)
	assert.InDelta(t, 3, tr.HeightAt(10, 10), 1e-5)
	assert.InDelta(t, 3, tr.HeightAt(99, 1), 1e-5)
}

func TestHeightAtInterpolates(t *testing.T) {
	// 3x3 grid over 100 units: cells of 50, height == x cell index
	tr := NewTerrain(0, 0, 100, sloped(3), nil, nil)
	assert.InDelta(t, 0.5, tr.HeightAt(25, 10), 1e-4)
	assert.InDelta(t, 0.5, tr.HeightAt(25, 40), 1e-4)
	assert.InDelta(t, 1.5, tr.HeightAt(75, 20), 1e-4)
}

func TestHeightAtOutsideIsZero(t *testing.T) {
	tr := NewTerrain(1, 1, 100, FlatHeights(3, 7), nil, nil)
	assert.Zero(t, tr.HeightAt(50, 50))
	assert.Zero(t, tr.HeightAt(250, 150))
	assert.InDelta(t, 7, tr.HeightAt(150, 150), 1e-5)
}

func TestNewTerrainDefaults(t *testing.T) {
	tr := NewTerrain(-1, 2, 0, nil, nil, nil)
	assert.Equal(t, float32(TerrainSize), tr.Size)
	assert.Equal(t, float32(-TerrainSize), tr.X)
	assert.Equal(t, float32(2*TerrainSize), tr.Z)
	assert.Equal(t, mgl32.Vec3{-TerrainSize, 0, 2 * TerrainSize}, tr.Transform().Col(3).Vec3())
}

func TestGenerateTerrainMesh(t *testing.T) {
	m := GenerateTerrainMesh(FlatHeights(4, 2), 30)
	assert.Equal(t, 16, m.VertexCount())
	assert.Len(t, m.TexCoords, 32)
	assert.Len(t, m.Normals, 48)
	assert.Len(t, m.Indices, 3*3*6)

	// last vertex sits at the far corner
	last := m.Positions[len(m.Positions)-3:]
	assert.Equal(t, []float32{30, 2, 30}, last)
	// flat ground faces straight up
	assert.InDelta(t, 1, m.Normals[1], 1e-6)

	for _, i := range m.Indices {
		require.Less(t, int(i), 16)
	}
}

func TestTexturesPackComplete(t *testing.T) {
	tex := &graphics.Texture{ID: 1}
	p := &TerrainTexturesPack{Background: tex, Mud: tex, Grass: tex, Path: tex}
	assert.False(t, p.Complete())
	p.WeightMap = tex
	assert.True(t, p.Complete())
	var nilPack *TerrainTexturesPack
	assert.False(t, nilPack.Complete())
}

func TestEntityMutators(t *testing.T) {
	e := NewEntity(nil, mgl32.Vec3{1, 2, 3}, 0, 0, 0, 1)
	e.IncreasePosition(1, -2, 0.5)
	e.IncreaseRotation(10, 20, 30)
	assert.Equal(t, mgl32.Vec3{2, 0, 3.5}, e.Position)
	assert.Equal(t, []float32{10, 20, 30}, []float32{e.RotX, e.RotY, e.RotZ})
	assert.Nil(t, e.Geometry())
	assert.Equal(t, &DefaultMaterial, e.Model.MaterialOrDefault())
}

func TestSceneRemoveEntity(t *testing.T) {
	var s Scene
	a := NewEntity(nil, mgl32.Vec3{}, 0, 0, 0, 1)
	b := NewEntity(nil, mgl32.Vec3{}, 0, 0, 0, 1)
	s.AddEntity(a)
	s.AddEntity(b)

	require.True(t, s.RemoveEntity(a.ID))
	assert.False(t, s.RemoveEntity(a.ID))
	_, ok := s.Entity(b.ID)
	assert.True(t, ok)
	assert.Len(t, s.Entities, 1)
}

func TestSceneHeightAt(t *testing.T) {
	s := Scene{Terrains: []*Terrain{
		NewTerrain(0, 0, 10, FlatHeights(2, 1), nil, nil),
		NewTerrain(1, 0, 10, FlatHeights(2, 4), nil, nil),
	}}
	assert.InDelta(t, 1, s.HeightAt(5, 5), 1e-6)
	assert.InDelta(t, 4, s.HeightAt(15, 5), 1e-6)
	assert.Zero(t, s.HeightAt(-5, 5))
}

func TestTerrainsSkipNilTiles(t *testing.T) {
	tile := NewTerrain(0, 0, 10, FlatHeights(2, 2), nil, nil)
	ts := Terrains{nil, tile, nil}
	assert.Same(t, tile, ts.At(5, 5))
	assert.Nil(t, ts.At(50, 5))
	assert.InDelta(t, 2, ts.HeightAt(5, 5), 1e-6)
	assert.Zero(t, Terrains{nil}.HeightAt(5, 5))
}

func TestGuiContainsLocation(t *testing.T) {
	g := NewGuiTexture(nil, mgl32.Vec2{0.5, -0.5}, mgl32.Vec2{0.25, 0.25})
	assert.Equal(t, input.ActionNone, g.Key)
	assert.True(t, g.ContainsLocation(0.5, -0.5))
	assert.True(t, g.ContainsLocation(0.75, -0.25))
	assert.False(t, g.ContainsLocation(0.8, -0.5))
	assert.False(t, g.ContainsLocation(0, 0))
}

func TestSkyBoxMesh(t *testing.T) {
	m := SkyBoxMesh(2)
	assert.Equal(t, 36, m.VertexCount())
	assert.Nil(t, m.Indices)
	for _, v := range m.Positions {
		assert.Equal(t, float32(2), mgl32.Abs(v))
	}
	assert.Equal(t, 4, GuiQuadMesh().VertexCount())
}
