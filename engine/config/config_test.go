package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Graphics course practice 7", cfg.Window.Title)
	assert.Len(t, cfg.Lights, 3)
	assert.Equal(t, [3]float32{-15, 40, 5}, cfg.Lights[0].Position)
	assert.Equal(t, int32(4500), cfg.Shadow.Resolution)
	assert.Equal(t, float32(0.03), cfg.Shadow.Scale)
	assert.Equal(t, float32(0.001), cfg.Shadow.Bias)
	require.Len(t, cfg.Scenes, 2)
	assert.True(t, cfg.Scenes[0].CastsShadows)
	assert.True(t, cfg.Scenes[0].ReceivesShadows)
	assert.False(t, cfg.Scenes[1].CastsShadows)
	assert.False(t, cfg.Scenes[1].ReceivesShadows)
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
log_level = "debug"

[window]
width = 1280

[shadow]
bias = 0.005

[sun]
orbit_speed = 15.0
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "Graphics course practice 7", cfg.Window.Title)
	assert.Equal(t, float32(0.005), cfg.Shadow.Bias)
	assert.Equal(t, int32(4500), cfg.Shadow.Resolution)
	assert.Equal(t, float32(15), cfg.Sun.OrbitSpeed)
	assert.Len(t, cfg.Lights, 3)
}

func TestParseArrayTablesReplaceDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
[[lights]]
position = [0.0, 10.0, 0.0]
color = [1.0, 1.0, 1.0]
attenuation = [1.0, 0.0, 0.0]

[[scenes]]
dir = "models"
file = "box.gltf"
casts_shadows = true
`))
	require.NoError(t, err)
	require.Len(t, cfg.Lights, 1)
	assert.Equal(t, [3]float32{0, 10, 0}, cfg.Lights[0].Position)
	require.Len(t, cfg.Scenes, 1)
	assert.Equal(t, "box.gltf", cfg.Scenes[0].File)
	assert.True(t, cfg.Scenes[0].CastsShadows)
	assert.False(t, cfg.Scenes[0].ReceivesShadows)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("[window]\nfullscreen = true\n"))
	assert.ErrorContains(t, err, "fullscreen")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no lights", func(c *Config) { c.Lights = nil }, "at least one light"},
		{"sun at origin", func(c *Config) { c.Lights[0].Position = [3]float32{} }, "lights[0]"},
		{"zero constant attenuation", func(c *Config) { c.Lights[1].Attenuation[0] = 0 }, "lights[1]"},
		{"zero resolution", func(c *Config) { c.Shadow.Resolution = 0 }, "resolution"},
		{"no scenes", func(c *Config) { c.Scenes = nil }, "at least one scene"},
		{"scene without file", func(c *Config) { c.Scenes[0].File = "" }, "scenes[0]"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad window", func(c *Config) { c.Window.Height = 0 }, "window"},
		{"bad clip planes", func(c *Config) { c.Camera.Far = 0.01 }, "camera"},
		{"watch without dir", func(c *Config) { c.Shaders.Watch = true }, "shaders"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy.toml")
	require.NoError(t, os.WriteFile(path, []byte("profiler = true\n[shaders]\ndir = \"shaders\"\nwatch = true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Profiler)
	assert.True(t, cfg.Shaders.Watch)
	assert.Equal(t, "shaders", cfg.Shaders.Dir)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
