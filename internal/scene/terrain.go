package scene

import (
	"math"

	"mini-engine/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// TerrainSize is the default edge length of one terrain tile in world units.
const TerrainSize = 800

// HeightSampler returns the ground height at a world position.
type HeightSampler interface {
	HeightAt(x, z float32) float32
}

// Flat is a HeightSampler returning a constant height everywhere.
type Flat float32

func (f Flat) HeightAt(x, z float32) float32 { return float32(f) }

// TerrainTexturesPack holds the five textures blended by the terrain shader.
type TerrainTexturesPack struct {
	Background *graphics.Texture
	Mud        *graphics.Texture
	Grass      *graphics.Texture
	Path       *graphics.Texture
	WeightMap  *graphics.Texture
}

// Complete reports whether every layer is set.
func (p *TerrainTexturesPack) Complete() bool {
	return p != nil && p.Background != nil && p.Mud != nil && p.Grass != nil && p.Path != nil && p.WeightMap != nil
}

// Terrain is one square tile of ground at grid coordinates (GridX, GridZ).
type Terrain struct {
	Geometry *graphics.Geometry
	Textures *TerrainTexturesPack

	X, Z float32
	Size float32

	// heights[x][z], square, at least 2x2.
	heights [][]float32
}

// NewTerrain places a tile at the grid cell (gridX, gridZ). heights may be
// nil for a flat tile.
func NewTerrain(gridX, gridZ int, size float32, heights [][]float32, geometry *graphics.Geometry, textures *TerrainTexturesPack) *Terrain {
	if size <= 0 {
		size = TerrainSize
	}
	if len(heights) < 2 {
		heights = FlatHeights(2, 0)
	}
	return &Terrain{
		Geometry: geometry,
		Textures: textures,
		X:        float32(gridX) * size,
		Z:        float32(gridZ) * size,
		Size:     size,
		heights:  heights,
	}
}

// Transform places the tile in the world; terrain is never rotated or scaled.
func (t *Terrain) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(t.X, 0, t.Z)
}

// HeightAt interpolates the height of the triangle under (worldX, worldZ).
// Positions outside the tile return 0.
func (t *Terrain) HeightAt(worldX, worldZ float32) float32 {
	terrainX := worldX - t.X
	terrainZ := worldZ - t.Z
	cells := len(t.heights) - 1
	square := t.Size / float32(cells)

	gridX := int(math.Floor(float64(terrainX / square)))
	gridZ := int(math.Floor(float64(terrainZ / square)))
	if gridX < 0 || gridZ < 0 || gridX >= cells || gridZ >= cells {
		return 0
	}

	xCoord := float32(math.Mod(float64(terrainX), float64(square))) / square
	zCoord := float32(math.Mod(float64(terrainZ), float64(square))) / square
	h := t.heights
	pos := mgl32.Vec2{xCoord, zCoord}

	if xCoord <= 1-zCoord {
		return barycentric(
			mgl32.Vec3{0, h[gridX][gridZ], 0},
			mgl32.Vec3{1, h[gridX+1][gridZ], 0},
			mgl32.Vec3{0, h[gridX][gridZ+1], 1},
			pos)
	}
	return barycentric(
		mgl32.Vec3{1, h[gridX+1][gridZ], 0},
		mgl32.Vec3{1, h[gridX+1][gridZ+1], 1},
		mgl32.Vec3{0, h[gridX][gridZ+1], 1},
		pos)
}

func barycentric(p1, p2, p3 mgl32.Vec3, pos mgl32.Vec2) float32 {
	det := (p2.Z()-p3.Z())*(p1.X()-p3.X()) + (p3.X()-p2.X())*(p1.Z()-p3.Z())
	l1 := ((p2.Z()-p3.Z())*(pos.X()-p3.X()) + (p3.X()-p2.X())*(pos.Y()-p3.Z())) / det
	l2 := ((p3.Z()-p1.Z())*(pos.X()-p3.X()) + (p1.X()-p3.X())*(pos.Y()-p3.Z())) / det
	l3 := 1 - l1 - l2
	return l1*p1.Y() + l2*p2.Y() + l3*p3.Y()
}

// FlatHeights returns an n x n grid filled with h.
func FlatHeights(n int, h float32) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = make([]float32, n)
		for j := range out[i] {
			out[i][j] = h
		}
	}
	return out
}

// GenerateTerrainMesh builds an indexed grid mesh of the given edge size
// from heights[x][z], with texture coordinates and smoothed normals.
func GenerateTerrainMesh(heights [][]float32, size float32) graphics.Mesh {
	count := len(heights)
	if count < 2 {
		heights = FlatHeights(2, 0)
		count = 2
	}
	n := count * count
	mesh := graphics.Mesh{
		Dimensions: 3,
		Positions:  make([]float32, 0, n*3),
		TexCoords:  make([]float32, 0, n*2),
		Normals:    make([]float32, 0, n*3),
		Indices:    make([]uint32, 0, (count-1)*(count-1)*6),
	}

	at := func(x, z int) float32 {
		if x < 0 {
			x = 0
		}
		if z < 0 {
			z = 0
		}
		if x >= count {
			x = count - 1
		}
		if z >= count {
			z = count - 1
		}
		return heights[x][z]
	}

	step := float32(count - 1)
	for z := 0; z < count; z++ {
		for x := 0; x < count; x++ {
			mesh.Positions = append(mesh.Positions, float32(x)/step*size, heights[x][z], float32(z)/step*size)
			mesh.TexCoords = append(mesh.TexCoords, float32(x)/step, float32(z)/step)
			normal := mgl32.Vec3{at(x-1, z) - at(x+1, z), 2, at(x, z-1) - at(x, z+1)}.Normalize()
			mesh.Normals = append(mesh.Normals, normal[:]...)
		}
	}

	for gz := 0; gz < count-1; gz++ {
		for gx := 0; gx < count-1; gx++ {
			topLeft := uint32(gz*count + gx)
			topRight := topLeft + 1
			bottomLeft := uint32((gz+1)*count + gx)
			bottomRight := bottomLeft + 1
			mesh.Indices = append(mesh.Indices, topLeft, bottomLeft, topRight, topRight, bottomLeft, bottomRight)
		}
	}
	return mesh
}
