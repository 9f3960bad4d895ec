// Package game runs the window loop around the master renderer.
package game

import (
	"time"

	"mini-engine/internal/config"
	"mini-engine/internal/input"
	"mini-engine/internal/logging"
	"mini-engine/internal/profiling"
	"mini-engine/internal/render"
	"mini-engine/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// App owns the per-frame loop: poll events, snapshot input, render the
// scene, present, then hold the frame rate.
type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	renderer     *render.MasterRenderer
	scene        *scene.Scene
	log          logging.Logger

	limiter    *FrameLimiter
	slowFrame  time.Duration
	lastWait   time.Duration
	lastReport time.Time
	paused     bool
}

// NewApp wires input callbacks and viewport resizing on window. Frames
// slower than slowFrame are logged; zero disables the check.
func NewApp(window *glfw.Window, im *input.InputManager, r *render.MasterRenderer, s *scene.Scene, slowFrame time.Duration, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		window:       window,
		inputManager: im,
		renderer:     r,
		scene:        s,
		log:          log,
		limiter:      NewFrameLimiter(),
		slowFrame:    slowFrame,
		lastReport:   time.Now(),
	}

	im.SetCallbacks(window)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.renderer.SetViewport(width, height)
	})
	width, height := window.GetFramebufferSize()
	r.SetViewport(width, height)
	return a
}

// Paused reports whether the simulation is frozen.
func (a *App) Paused() bool { return a.paused }

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	a.renderer.StartFrame()
	startTick := time.Now()

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
	a.handleActions()

	var snap input.Snapshot
	if a.paused {
		a.renderer.SetFrameTime(0)
	} else {
		width, height := a.window.GetSize()
		snap = a.inputManager.Snapshot(width, height)
	}

	a.renderer.ProcessScene(a.scene)
	a.renderer.Render(a.scene.Lights, snap)

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	processing := time.Since(startTick)
	if isSlow(processing, a.slowFrame) {
		a.log.Warnf("Slow frame: %v. Top tasks: %s", processing, profiling.TopN(5))
	}
	if config.GetShowProfiling() && time.Since(a.lastReport) >= time.Second {
		a.log.Infof("frame %v, idle %v: %s", processing, a.lastWait, profiling.TopN(5))
		a.lastReport = time.Now()
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags
	a.lastWait = a.limiter.Wait(frameCap(a.paused))

	// The physics step covers the whole frame, limiter wait included.
	a.renderer.EndFrame()
}

// frameCap is the frame rate to hold: the runtime limit, or PausedFPS
// while paused.
func frameCap(paused bool) int {
	if paused {
		return PausedFPS
	}
	return config.GetFPSLimit()
}

func (a *App) handleActions() {
	if a.inputManager.JustPressed(input.ActionPause) {
		a.paused = !a.paused
		a.log.Infof("paused: %v", a.paused)
	}
	if a.inputManager.JustPressed(input.ActionToggleProfiling) {
		a.log.Infof("profiling: %v", config.ToggleShowProfiling())
	}
}

func isSlow(d, limit time.Duration) bool {
	return limit > 0 && d > limit
}
