package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 1280.0/720.0, cfg.Aspect(), 1e-6)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	data := []byte(`
window:
  width: 800
  height: 600
render:
  sky_color: [0.1, 0.2, 0.3]
camera:
  distance: 25
fps_limit: 144
font: fonts/label.ttf
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "mini-engine", cfg.Window.Title)
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, cfg.Render.SkyColor)
	assert.Equal(t, float32(25), cfg.Camera.Distance)
	assert.Equal(t, float32(10), cfg.Camera.Height)
	assert.Equal(t, 144, cfg.FPSLimit)
	assert.Equal(t, "fonts/label.ttf", cfg.Font)
	assert.Equal(t, 16.0, cfg.FontSize)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  fov: 0\n"), 0o644))
	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"fov too wide", func(c *Config) { c.Render.FOV = 180 }},
		{"far before near", func(c *Config) { c.Render.FarPlane = 0.01 }},
		{"negative distance", func(c *Config) { c.Camera.Distance = -1 }},
		{"negative fps", func(c *Config) { c.FPSLimit = -5 }},
		{"font without size", func(c *Config) { c.Font = "label.ttf"; c.FontSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestFPSLimitClamped(t *testing.T) {
	defer SetFPSLimit(GetFPSLimit())

	SetFPSLimit(5)
	assert.Equal(t, MinFPSLimit, GetFPSLimit())
	SetFPSLimit(5000)
	assert.Equal(t, MaxFPSLimit, GetFPSLimit())
	SetFPSLimit(0)
	assert.Equal(t, 0, GetFPSLimit())
	SetFPSLimit(144)
	assert.Equal(t, 144, GetFPSLimit())
}

func TestToggleShowProfiling(t *testing.T) {
	before := GetShowProfiling()
	assert.Equal(t, !before, ToggleShowProfiling())
	assert.Equal(t, before, ToggleShowProfiling())
}
