package render

import (
	"mini-engine/internal/camera"
	"mini-engine/internal/graphics"
	"mini-engine/internal/input"
	"mini-engine/internal/logging"
	"mini-engine/internal/player"
	"mini-engine/internal/profiling"
	"mini-engine/internal/scene"
	"mini-engine/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

// Options configures the projection, the clear color and the trailing camera.
type Options struct {
	FOV       float32
	NearPlane float32
	FarPlane  float32
	Aspect    float32
	SkyColor  mgl32.Vec3

	CameraDistance float32
	CameraHeight   float32
	CameraPitch    float32
}

// DefaultOptions matches the engine's stock 16:9 setup.
func DefaultOptions() Options {
	return Options{
		FOV:            70,
		NearPlane:      0.1,
		FarPlane:       1000,
		Aspect:         16.0 / 9.0,
		SkyColor:       mgl32.Vec3{0.5, 0.5, 0.5},
		CameraDistance: 50,
		CameraHeight:   10,
		CameraPitch:    20,
	}
}

// MasterRenderer runs one frame: clear, input, player physics, camera,
// batching, then the entity, terrain, skybox and GUI passes in that order.
// Scene lists are borrowed and replaced wholesale by the Process methods.
type MasterRenderer struct {
	api  graphics.RenderAPI
	log  logging.Logger
	opts Options

	projection  mgl32.Mat4
	renderables []Renderable
	batches     *BatchMap
	camera      *camera.ThirdPersonCamera
	timer       *profiling.FrameTimer
	dt          float32
	ctx         Context
	disposed    bool

	entities []*scene.Entity
	terrains []*scene.Terrain
	skyBox   *scene.SkyBox
	guis     []*scene.GuiTexture
	player   *player.Player
}

// NewMasterRenderer builds every category renderer. A renderer whose shader
// fails to build is logged and skipped each frame.
func NewMasterRenderer(api graphics.RenderAPI, opts Options, log logging.Logger) *MasterRenderer {
	if log == nil {
		log = logging.Nop()
	}
	projection := transform.Projection(opts.FOV, opts.Aspect, opts.NearPlane, opts.FarPlane)
	r := &MasterRenderer{
		api:        api,
		log:        log,
		opts:       opts,
		projection: projection,
		batches:    NewBatchMap(),
		camera:     camera.NewThirdPersonCamera(opts.CameraDistance, opts.CameraHeight, opts.CameraPitch),
		timer:      profiling.NewFrameTimer(),
	}
	r.renderables = []Renderable{
		NewEntityRenderer(api, projection, log),
		NewTerrainRenderer(api, projection, log),
		NewSkyBoxRenderer(api, projection, log),
		NewGuiRenderer(api, log),
	}
	return r
}

func (r *MasterRenderer) ProcessEntities(entities []*scene.Entity)  { r.entities = entities }
func (r *MasterRenderer) ProcessTerrains(terrains []*scene.Terrain) { r.terrains = terrains }
func (r *MasterRenderer) ProcessSkyBox(sky *scene.SkyBox)           { r.skyBox = sky }
func (r *MasterRenderer) ProcessGUIs(guis []*scene.GuiTexture)      { r.guis = guis }
func (r *MasterRenderer) ProcessPlayer(p *player.Player)            { r.player = p }

// ProcessScene hands over every list held by s.
func (r *MasterRenderer) ProcessScene(s *scene.Scene) {
	r.ProcessEntities(s.Entities)
	r.ProcessTerrains(s.Terrains)
	r.ProcessSkyBox(s.SkyBox)
	r.ProcessGUIs(s.GUIs)
}

// Camera returns the camera. Without a player its embedded Camera pose is
// used as set by the caller.
func (r *MasterRenderer) Camera() *camera.ThirdPersonCamera { return r.camera }

// Projection returns the current projection matrix.
func (r *MasterRenderer) Projection() mgl32.Mat4 { return r.projection }

// Batches exposes the batching map of the last frame.
func (r *MasterRenderer) Batches() *BatchMap { return r.batches }

// StartFrame marks the start of a frame.
func (r *MasterRenderer) StartFrame() { r.timer.Start() }

// EndFrame marks the end of a frame. Its duration in seconds becomes the
// time step of the next Render.
func (r *MasterRenderer) EndFrame() float32 {
	r.dt = r.timer.End()
	return r.dt
}

// SetFrameTime overrides the time step of the next Render.
func (r *MasterRenderer) SetFrameTime(dt float32) { r.dt = dt }

// FrameTime is the time step Render uses.
func (r *MasterRenderer) FrameTime() float32 { return r.dt }

// Render draws one frame. The lights are read, never retained.
func (r *MasterRenderer) Render(lights []scene.Light, in input.Snapshot) {
	if r.disposed {
		return
	}
	defer profiling.Track("render.Frame")()

	sky := r.opts.SkyColor
	r.api.Frame().PrepareFrame(mgl32.Vec4{sky.X(), sky.Y(), sky.Z(), 1})

	pad := r.readInput(in)
	r.updatePlayer(pad)
	view := r.updateCamera(pad)
	r.batches.Build(r.entities)

	r.ctx = Context{
		SkyColor: sky,
		Lights:   lights,
		View:     view,
		Batches:  r.batches,
		Terrains: r.terrains,
		SkyBox:   r.skyBox,
		GUIs:     r.guis,
	}
	if r.player != nil {
		r.ctx.Player = &r.player.Entity
	}

	for _, rr := range r.renderables {
		func() {
			defer profiling.Track("render." + rr.Name())()
			rr.Render(&r.ctx)
		}()
	}
	r.ctx = Context{}
}

// readInput merges the held keys with the game-pad GUIs under the pointer.
func (r *MasterRenderer) readInput(in input.Snapshot) input.GamePad {
	return in.Keys.Merge(r.touched(in))
}

// touched returns the actions of the GUIs hit by a pressed pointer.
func (r *MasterRenderer) touched(in input.Snapshot) input.GamePad {
	var pad input.GamePad
	if !in.Pressed {
		return pad
	}
	for _, g := range r.guis {
		if g == nil || g.Key == input.ActionNone {
			continue
		}
		if g.ContainsLocation(in.PointerX, in.PointerY) {
			pad.Set(g.Key)
		}
	}
	return pad
}

func (r *MasterRenderer) updatePlayer(pad input.GamePad) {
	if r.player == nil {
		return
	}
	r.player.Move(r.dt, pad, scene.Terrains(r.terrains))
}

func (r *MasterRenderer) updateCamera(pad input.GamePad) mgl32.Mat4 {
	if pad.OrbitLeft {
		r.camera.AddOrbit(-camera.OrbitSpeed * r.dt)
	}
	if pad.OrbitRight {
		r.camera.AddOrbit(camera.OrbitSpeed * r.dt)
	}
	if r.player != nil {
		r.camera.Update(r.player.Position, r.player.RotY)
	}
	return r.camera.ViewMatrix()
}

// SetViewport resizes the drawing area and rebuilds the projection for the
// new aspect ratio.
func (r *MasterRenderer) SetViewport(width, height int) {
	r.api.Frame().SetViewport(0, 0, width, height)
	if width <= 0 || height <= 0 {
		return
	}
	r.opts.Aspect = float32(width) / float32(height)
	r.projection = transform.Projection(r.opts.FOV, r.opts.Aspect, r.opts.NearPlane, r.opts.FarPlane)
	for _, rr := range r.renderables {
		rr.SetProjection(r.projection)
	}
}

// Dispose releases every renderer in reverse order. Later calls do nothing.
func (r *MasterRenderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}
