package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"mini-engine/internal/assets"
	"mini-engine/internal/config"
	"mini-engine/internal/game"
	"mini-engine/internal/graphics/glapi"
	"mini-engine/internal/input"
	"mini-engine/internal/logging"
	"mini-engine/internal/render"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
	"golang.org/x/image/font"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := logging.New("mini-engine", *debug)
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Errorf("%v", err)
			_ = log.Sync()
			os.Exit(1)
		}
		cfg = loaded
	}
	log.SetDebug(cfg.Debug || *debug)
	config.SetFPSLimit(cfg.FPSLimit)

	if err := run(cfg, log); err != nil {
		log.Errorf("%v", err)
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
	closer.Close()
}

func run(cfg config.Config, log logging.Logger) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		return err
	}

	api, err := glapi.New()
	if err != nil {
		return err
	}
	log.Infof("OpenGL %s", api.Version())

	textures := assets.NewTextureManager(api.Loader(), cfg.AssetDir, log)
	renderer := render.NewMasterRenderer(api, renderOptions(cfg), log)

	// GL objects must be released on this thread, so an interrupt only asks
	// the loop to stop and waits for the cleanup below.
	done := make(chan struct{})
	closer.Bind(func() {
		select {
		case <-done:
		default:
			window.SetShouldClose(true)
			<-done
		}
	})
	defer close(done)
	defer api.Loader().Dispose()
	defer textures.Dispose()
	defer renderer.Dispose()

	world, err := buildDemo(api.Loader(), textures, labelFace(cfg, textures, log), log)
	if err != nil {
		return err
	}
	renderer.ProcessPlayer(world.player)
	log.Infof("scene ready: %d entities, %d terrains, %d textures",
		len(world.scene.Entities), len(world.scene.Terrains), textures.Len())

	slowFrame := time.Duration(cfg.SlowFrameMs) * time.Millisecond
	app := game.NewApp(window, input.NewInputManager(), renderer, world.scene, slowFrame, log)
	app.Run()
	return nil
}

// labelFace loads the configured GUI font, falling back to the built-in face.
func labelFace(cfg config.Config, textures *assets.TextureManager, log logging.Logger) font.Face {
	if cfg.Font == "" {
		return assets.DefaultFace()
	}
	face, err := assets.LoadFace(textures.Path(cfg.Font), cfg.FontSize)
	if err != nil {
		log.Warnf("using built-in font: %v", err)
		return assets.DefaultFace()
	}
	return face
}

func renderOptions(cfg config.Config) render.Options {
	sky := cfg.Render.SkyColor
	return render.Options{
		FOV:            cfg.Render.FOV,
		NearPlane:      cfg.Render.NearPlane,
		FarPlane:       cfg.Render.FarPlane,
		Aspect:         cfg.Aspect(),
		SkyColor:       mgl32.Vec3{sky[0], sky[1], sky[2]},
		CameraDistance: cfg.Camera.Distance,
		CameraHeight:   cfg.Camera.Height,
		CameraPitch:    cfg.Camera.Pitch,
	}
}
