package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand/v2"

	"mini-engine/internal/assets"
	"mini-engine/internal/graphics"
	"mini-engine/internal/input"
	"mini-engine/internal/logging"
	"mini-engine/internal/player"
	"mini-engine/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
)

const (
	terrainVertices = 128
	terrainHeight   = 40
	treeCount       = 120
	fernCount       = 200
)

var skyFaces = [6]string{
	"skybox/right.png", "skybox/left.png",
	"skybox/top.png", "skybox/bottom.png",
	"skybox/back.png", "skybox/front.png",
}

type demo struct {
	scene  *scene.Scene
	player *player.Player
}

// sceneBuilder loads demo assets, substituting flat colors for missing files
// so the demo runs without an asset directory.
type sceneBuilder struct {
	loader   graphics.Loader
	textures *assets.TextureManager
	face     font.Face
	log      logging.Logger
}

func buildDemo(loader graphics.Loader, textures *assets.TextureManager, face font.Face, log logging.Logger) (*demo, error) {
	b := &sceneBuilder{loader: loader, textures: textures, face: face, log: log}
	s := &scene.Scene{}

	terrain, err := b.terrain()
	if err != nil {
		return nil, err
	}
	s.Terrains = append(s.Terrains, terrain)

	rng := rand.New(rand.NewPCG(1, 2))
	tree, err := b.model(boxMesh(2, 12, 2), "tree.png", color.RGBA{40, 110, 40, 255}, nil)
	if err != nil {
		return nil, err
	}
	fern, err := b.model(crossMesh(3, 4), "fern.png", color.RGBA{60, 150, 60, 200}, func(m *scene.Material) {
		m.HasTransparency = true
		m.NormalsPointingUp = true
	})
	if err != nil {
		return nil, err
	}
	b.scatter(s, rng, tree, treeCount, 1)
	b.scatter(s, rng, fern, fernCount, 0.6)

	body, err := b.model(boxMesh(2, 4, 2), "player.png", color.RGBA{200, 60, 60, 255}, func(m *scene.Material) {
		m.ShineDamper = 10
		m.Reflectivity = 0.5
	})
	if err != nil {
		return nil, err
	}
	center := terrain.Size / 2
	start := mgl32.Vec3{terrain.X + center, 0, terrain.Z + center}
	start[1] = s.HeightAt(start.X(), start.Z())
	p := player.New(body, start, 0, 180, 0, 1)

	if s.SkyBox, err = b.skyBox(); err != nil {
		return nil, err
	}
	if s.GUIs, err = b.gamePad(); err != nil {
		return nil, err
	}

	s.Lights = []scene.Light{
		{Position: mgl32.Vec3{0, 10000, -7000}, Color: mgl32.Vec3{0.6, 0.6, 0.6}},
		{Position: start.Add(mgl32.Vec3{0, 20, 0}), Color: mgl32.Vec3{2, 0, 0}},
	}
	return &demo{scene: s, player: p}, nil
}

// texture loads name from the asset directory or falls back to a solid
// color image.
func (b *sceneBuilder) texture(name string, fallback color.Color) (*graphics.Texture, error) {
	tex, err := b.textures.Texture(name)
	if err == nil {
		return tex, nil
	}
	b.log.Warnf("using flat color for %s: %v", name, err)
	return b.textures.Image("solid:"+name, solid(fallback, 4, 4))
}

func (b *sceneBuilder) model(mesh graphics.Mesh, textureName string, fallback color.Color, tweak func(*scene.Material)) (*scene.TexturedModel, error) {
	geometry, err := b.loader.LoadGeometry(mesh)
	if err != nil {
		return nil, fmt.Errorf("load %s geometry: %w", textureName, err)
	}
	tex, err := b.texture(textureName, fallback)
	if err != nil {
		return nil, err
	}
	material := &scene.Material{Texture: tex, DiffuseColor: mgl32.Vec4{1, 1, 1, 1}, ShineDamper: 1}
	if tweak != nil {
		tweak(material)
	}
	return &scene.TexturedModel{Geometry: geometry, Material: material}, nil
}

func (b *sceneBuilder) terrain() (*scene.Terrain, error) {
	heights, err := b.textures.Heights("heightmap.png", terrainHeight)
	if err != nil {
		b.log.Warnf("using generated hills: %v", err)
		heights = hills(terrainVertices, terrainHeight/2)
	}
	geometry, err := b.loader.LoadGeometry(scene.GenerateTerrainMesh(heights, scene.TerrainSize))
	if err != nil {
		return nil, fmt.Errorf("load terrain geometry: %w", err)
	}

	pack := &scene.TerrainTexturesPack{}
	layers := []struct {
		name  string
		color color.Color
		dst   **graphics.Texture
	}{
		{"grassy.png", color.RGBA{70, 140, 60, 255}, &pack.Background},
		{"mud.png", color.RGBA{110, 80, 50, 255}, &pack.Mud},
		{"grassFlowers.png", color.RGBA{160, 170, 70, 255}, &pack.Grass},
		{"path.png", color.RGBA{150, 140, 120, 255}, &pack.Path},
		{"blendMap.png", color.RGBA{0, 0, 0, 255}, &pack.WeightMap},
	}
	for _, l := range layers {
		tex, err := b.texture(l.name, l.color)
		if err != nil {
			return nil, err
		}
		*l.dst = tex
	}
	return scene.NewTerrain(0, 0, scene.TerrainSize, heights, geometry, pack), nil
}

func (b *sceneBuilder) skyBox() (*scene.SkyBox, error) {
	geometry, err := b.loader.LoadGeometry(scene.SkyBoxMesh(scene.DefaultSkyBoxSize))
	if err != nil {
		return nil, fmt.Errorf("load skybox geometry: %w", err)
	}
	tex, err := b.textures.CubeTexture(skyFaces)
	if err != nil {
		b.log.Warnf("skybox drawn without texture: %v", err)
	}
	return &scene.SkyBox{Geometry: geometry, Texture: tex}, nil
}

// gamePad lays out on-screen buttons that raise game-pad actions while
// pressed, plus a caption in the top-left corner.
func (b *sceneBuilder) gamePad() ([]*scene.GuiTexture, error) {
	buttons := []struct {
		label string
		pos   mgl32.Vec2
		key   input.Action
	}{
		{"<", mgl32.Vec2{-0.85, -0.75}, input.ActionTurnLeft},
		{">", mgl32.Vec2{-0.6, -0.75}, input.ActionTurnRight},
		{"^", mgl32.Vec2{-0.725, -0.5}, input.ActionMoveForward},
		{"v", mgl32.Vec2{-0.725, -0.9}, input.ActionMoveBackward},
		{"JUMP", mgl32.Vec2{0.8, -0.75}, input.ActionJump},
	}

	var guis []*scene.GuiTexture
	for _, btn := range buttons {
		img := assets.TextImage(btn.label, b.face, color.White, 6)
		backdrop := solid(color.RGBA{0, 0, 0, 120}, img.Bounds().Dx(), img.Bounds().Dy())
		draw.Draw(backdrop, backdrop.Bounds(), img, image.Point{}, draw.Over)
		tex, err := b.textures.Image("gui:"+btn.label, backdrop)
		if err != nil {
			return nil, err
		}
		g := scene.NewGuiTexture(tex, btn.pos, mgl32.Vec2{0.1, 0.1})
		g.Key = btn.key
		guis = append(guis, g)
	}

	caption := assets.TextImage("WASD / arrows to move, Q/E to orbit, Esc to pause", b.face, color.White, 4)
	tex, err := b.textures.Image("gui:caption", caption)
	if err != nil {
		return nil, err
	}
	w, h := float32(caption.Bounds().Dx())/640, float32(caption.Bounds().Dy())/360
	guis = append(guis, scene.NewGuiTexture(tex, mgl32.Vec2{-1 + w, 1 - h}, mgl32.Vec2{w, h}))
	return guis, nil
}

func (b *sceneBuilder) scatter(s *scene.Scene, rng *rand.Rand, model *scene.TexturedModel, n int, scale float32) {
	for range n {
		x := rng.Float32() * scene.TerrainSize
		z := rng.Float32() * scene.TerrainSize
		pos := mgl32.Vec3{x, s.HeightAt(x, z), z}
		s.AddEntity(scene.NewEntity(model, pos, 0, rng.Float32()*360, 0, scale))
	}
}

// hills returns an n x n height grid of gentle sine waves.
func hills(n int, amplitude float32) [][]float32 {
	heights := scene.FlatHeights(n, 0)
	for x := range heights {
		for z := range heights[x] {
			fx, fz := float64(x)/float64(n)*4*math.Pi, float64(z)/float64(n)*3*math.Pi
			heights[x][z] = amplitude * float32(math.Sin(fx)*math.Cos(fz))
		}
	}
	return heights
}

func solid(c color.Color, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}
