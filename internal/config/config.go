// Package config holds engine settings: a static Config loaded once at
// startup and a few runtime settings changed while the game runs.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the startup configuration of the engine.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Render RenderConfig `yaml:"render"`
	Camera CameraConfig `yaml:"camera"`

	// FPSLimit caps the frame rate; 0 disables the cap.
	FPSLimit int `yaml:"fps_limit"`
	// SlowFrameMs logs frames slower than this many milliseconds; 0 disables.
	SlowFrameMs int    `yaml:"slow_frame_ms"`
	AssetDir    string `yaml:"asset_dir"`
	Debug       bool   `yaml:"debug"`

	// Font is a TrueType/OpenType file under AssetDir for GUI labels; empty
	// uses the built-in bitmap face.
	Font     string  `yaml:"font"`
	FontSize float64 `yaml:"font_size"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type RenderConfig struct {
	FOV       float32    `yaml:"fov"`
	NearPlane float32    `yaml:"near_plane"`
	FarPlane  float32    `yaml:"far_plane"`
	SkyColor  [3]float32 `yaml:"sky_color"`
}

type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Height   float32 `yaml:"height"`
	Pitch    float32 `yaml:"pitch"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "mini-engine"},
		Render: RenderConfig{
			FOV:       70,
			NearPlane: 0.1,
			FarPlane:  1000,
			SkyColor:  [3]float32{0.5, 0.5, 0.5},
		},
		Camera:      CameraConfig{Distance: 50, Height: 10, Pitch: 20},
		FPSLimit:    60,
		SlowFrameMs: 50,
		AssetDir:    "res",
		FontSize:    16,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Render.FOV <= 0 || c.Render.FOV >= 180:
		return fmt.Errorf("%w: fov %v out of (0, 180)", ErrInvalid, c.Render.FOV)
	case c.Render.NearPlane <= 0 || c.Render.FarPlane <= c.Render.NearPlane:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, c.Render.NearPlane, c.Render.FarPlane)
	case c.Camera.Distance < 0:
		return fmt.Errorf("%w: camera distance %v", ErrInvalid, c.Camera.Distance)
	case c.FPSLimit < 0:
		return fmt.Errorf("%w: fps limit %d", ErrInvalid, c.FPSLimit)
	case c.Font != "" && c.FontSize <= 0:
		return fmt.Errorf("%w: font size %v", ErrInvalid, c.FontSize)
	}
	return nil
}

// Aspect is the window's width over height.
func (c Config) Aspect() float32 {
	return float32(c.Window.Width) / float32(c.Window.Height)
}
