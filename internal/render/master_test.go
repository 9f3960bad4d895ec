package render

import (
	"fmt"
	"testing"

	"mini-engine/internal/graphics"
	"mini-engine/internal/graphics/graphicstest"
	"mini-engine/internal/input"
	"mini-engine/internal/logging"
	"mini-engine/internal/player"
	"mini-engine/internal/scene"
	"mini-engine/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	api     *graphicstest.API
	mr      *MasterRenderer
	entity  *graphics.Geometry
	terrain *graphics.Geometry
	sky     *graphics.Geometry
	scene   *scene.Scene
	player  *player.Player
	pad     *scene.GuiTexture
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := graphicstest.New()
	mr := NewMasterRenderer(api, DefaultOptions(), logging.Nop())

	f := &fixture{
		api:     api,
		mr:      mr,
		entity:  api.Geometry(true, true, true),
		terrain: api.Geometry(true, true, true),
		sky:     api.Geometry(false, false, false),
	}
	tree := &scene.TexturedModel{Geometry: f.entity, Material: &scene.Material{Texture: api.Texture()}}
	f.pad = scene.NewGuiTexture(api.Texture(), mgl32.Vec2{0.5, -0.5}, mgl32.Vec2{0.2, 0.2})
	f.pad.Key = input.ActionMoveForward

	f.scene = &scene.Scene{
		Entities: []*scene.Entity{
			scene.NewEntity(tree, mgl32.Vec3{10, 0, 10}, 0, 0, 0, 1),
			scene.NewEntity(tree, mgl32.Vec3{20, 0, 10}, 0, 0, 0, 1),
		},
		Terrains: []*scene.Terrain{scene.NewTerrain(0, 0, 0, nil, f.terrain, texturePack(api))},
		SkyBox:   &scene.SkyBox{Geometry: f.sky, Texture: &graphics.Texture{ID: 77, Kind: graphics.TextureCube}},
		GUIs:     []*scene.GuiTexture{f.pad},
	}
	f.player = player.New(&scene.TexturedModel{Geometry: f.entity}, mgl32.Vec3{100, 0, 100}, 0, 0, 0, 1)

	mr.ProcessScene(f.scene)
	mr.ProcessPlayer(f.player)
	api.Reset()
	return f
}

func (f *fixture) index(format string, args ...any) int {
	return f.api.Index(fmt.Sprintf(format, args...))
}

func TestMasterRenderPassOrder(t *testing.T) {
	f := newFixture(t)
	f.mr.Render(nil, input.Snapshot{})

	require.Equal(t, 0, f.api.Index("PrepareFrame"))
	entity := f.index("DrawTrianglesIndexes %d", f.entity.ID)
	terrain := f.index("DrawTrianglesIndexes %d", f.terrain.ID)
	sky := f.index("DrawTrianglesVertex %d", f.sky.ID)
	gui := f.api.Index("DrawQuadVertex")

	require.NotEqual(t, -1, entity)
	assert.Less(t, entity, terrain)
	assert.Less(t, terrain, sky)
	assert.Less(t, sky, gui)

	// two trees plus the player share the entity geometry
	assert.Equal(t, 3, f.api.Count(fmt.Sprintf("DrawTrianglesIndexes %d", f.entity.ID)))
	assert.Equal(t, 2, f.api.Count(fmt.Sprintf("PrepareModel %d", f.entity.ID)))
	assert.Equal(t, 1, f.mr.Batches().Len())
	assert.True(t, f.api.Clean())
}

func TestMasterRenderPhysicsBeforeCamera(t *testing.T) {
	f := newFixture(t)
	f.mr.SetFrameTime(1)
	f.mr.Render(nil, input.Snapshot{Keys: input.GamePad{Forward: true}})

	want := mgl32.Vec3{100, 0, 190}
	assert.True(t, want.ApproxEqualThreshold(f.player.Position, 1e-3), "player at %v", f.player.Position)

	opts := DefaultOptions()
	camPos := mgl32.Vec3{100, opts.CameraHeight, 190 - opts.CameraDistance}
	assert.True(t, camPos.ApproxEqualThreshold(f.mr.Camera().Position, 1e-3), "camera at %v", f.mr.Camera().Position)

	views := f.api.UniformValues("viewMatrix")
	require.NotEmpty(t, views)
	want4 := transform.View(f.mr.Camera().Position, opts.CameraPitch, f.mr.Camera().Yaw)
	assert.True(t, want4.ApproxEqualThreshold(views[0].(mgl32.Mat4), 1e-4))
}

func TestMasterRenderGuiPad(t *testing.T) {
	tests := []struct {
		name  string
		in    input.Snapshot
		moved bool
	}{
		{"pressed on pad", input.Snapshot{PointerX: 0.55, PointerY: -0.45, Pressed: true}, true},
		{"hover without press", input.Snapshot{PointerX: 0.55, PointerY: -0.45}, false},
		{"pressed elsewhere", input.Snapshot{PointerX: -0.5, PointerY: 0.5, Pressed: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.mr.SetFrameTime(0.5)
			f.mr.Render(nil, tt.in)
			assert.Equal(t, tt.moved, f.player.Position.Z() > 100)
		})
	}
}

func TestMasterRenderFreeCamera(t *testing.T) {
	f := newFixture(t)
	f.mr.ProcessPlayer(nil)
	cam := f.mr.Camera()
	cam.Position = mgl32.Vec3{1, 2, 3}
	cam.Yaw = 45

	f.mr.Render(nil, input.Snapshot{Keys: input.GamePad{Forward: true}})

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cam.Position)
	views := f.api.UniformValues("viewMatrix")
	require.NotEmpty(t, views)
	assert.Equal(t, transform.View(mgl32.Vec3{1, 2, 3}, cam.Pitch, 45), views[0])
	// only the two trees remain
	assert.Equal(t, 2, f.api.Count(fmt.Sprintf("DrawTrianglesIndexes %d", f.entity.ID)))
}

func TestMasterRenderOrbit(t *testing.T) {
	f := newFixture(t)
	f.mr.SetFrameTime(0.5)
	f.mr.Render(nil, input.Snapshot{Keys: input.GamePad{OrbitRight: true}})
	assert.InDelta(t, 45, f.mr.Camera().Orbit, 1e-4)
}

func TestMasterRenderEmptyScene(t *testing.T) {
	api := graphicstest.New()
	mr := NewMasterRenderer(api, DefaultOptions(), nil)
	api.Reset()

	mr.Render(nil, input.Snapshot{})

	assert.Zero(t, api.Count("Draw"))
	assert.Zero(t, mr.Batches().Len())
	assert.True(t, api.Clean())
}

func TestMasterRenderReplacesLists(t *testing.T) {
	f := newFixture(t)
	f.mr.Render(nil, input.Snapshot{})
	require.Equal(t, 1, f.mr.Batches().Len())

	f.mr.ProcessEntities(nil)
	f.mr.ProcessTerrains(nil)
	f.api.Reset()
	f.mr.Render(nil, input.Snapshot{})

	assert.Zero(t, f.mr.Batches().Len())
	assert.Equal(t, -1, f.index("DrawTrianglesIndexes %d", f.terrain.ID))
}

func TestMasterSetViewport(t *testing.T) {
	f := newFixture(t)
	f.mr.SetViewport(800, 400)

	assert.Equal(t, 0, f.api.Index("SetViewport 0 0 800 400"))
	opts := DefaultOptions()
	want := transform.Projection(opts.FOV, 2, opts.NearPlane, opts.FarPlane)
	assert.Equal(t, want, f.mr.Projection())
	// entity, terrain and skybox reload it; the GUI pass has no projection
	assert.Len(t, f.api.UniformValues("projectionMatrix"), 3)
	assert.True(t, f.api.Clean())

	f.api.Reset()
	f.mr.SetViewport(0, 0)
	assert.Equal(t, want, f.mr.Projection())
}

func TestMasterDispose(t *testing.T) {
	f := newFixture(t)
	quads := len(f.api.Geometries)

	f.mr.Dispose()
	assert.Equal(t, 4, f.api.Count("DeleteProgram"))
	assert.Len(t, f.api.Geometries, quads-1)

	f.api.Reset()
	f.mr.Dispose()
	f.mr.Render(nil, input.Snapshot{})
	assert.Empty(t, f.api.Calls)
}

func TestMasterFrameTiming(t *testing.T) {
	f := newFixture(t)
	f.mr.StartFrame()
	dt := f.mr.EndFrame()
	assert.GreaterOrEqual(t, dt, float32(0))
	assert.Equal(t, dt, f.mr.FrameTime())
}

func TestMasterRenderSkipsNilTerrainForPlayer(t *testing.T) {
	f := newFixture(t)
	tile := scene.NewTerrain(0, 0, 200, scene.FlatHeights(2, 3), f.terrain, texturePack(f.api))
	f.mr.ProcessTerrains([]*scene.Terrain{nil, tile})
	f.mr.SetFrameTime(0.1)

	require.NotPanics(t, func() {
		f.mr.Render(nil, input.Snapshot{Keys: input.GamePad{Forward: true, Jump: true}})
	})
	assert.InDelta(t, 109, f.player.Position.Z(), 1e-3)
	assert.NotEqual(t, -1, f.index("DrawTrianglesIndexes %d", f.terrain.ID))
	assert.True(t, f.api.Clean())
}

func TestMasterRenderMergesKeysWithTouchedPad(t *testing.T) {
	f := newFixture(t)
	f.mr.SetFrameTime(1)

	// pointer on the forward pad while turning right from the keyboard
	f.mr.Render(nil, input.Snapshot{PointerX: 0.5, PointerY: -0.5, Pressed: true, Keys: input.GamePad{Right: true}})
	assert.InDelta(t, player.RunSpeed, f.player.Speed(), 1e-6)
	assert.InDelta(t, player.TurnSpeed, f.player.TurnRate(), 1e-6)
}
