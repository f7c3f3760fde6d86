// Package config holds the engine's startup configuration. Defaults reproduce the sponza +
// bunny demo; a TOML file overlays them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// Config is the root of the TOML document.
type Config struct {
	LogLevel   string        `toml:"log_level"`
	Profiler   bool          `toml:"profiler"`
	Ambient    [3]float32    `toml:"ambient"`
	ClearColor [4]float32    `toml:"clear_color"`
	Window     WindowConfig  `toml:"window"`
	Camera     CameraConfig  `toml:"camera"`
	Sun        SunConfig     `toml:"sun"`
	Shadow     ShadowConfig  `toml:"shadow"`
	Shaders    ShaderConfig  `toml:"shaders"`
	Lights     []LightConfig `toml:"lights"`
	Scenes     []SceneConfig `toml:"scenes"`
}

// WindowConfig configures the window and its GL context.
type WindowConfig struct {
	Title       string `toml:"title"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	VSync       bool   `toml:"vsync"`
	MSAASamples int    `toml:"msaa_samples"`
	Resizable   bool   `toml:"resizable"`
	Maximized   bool   `toml:"maximized"`
}

// CameraConfig configures the fly camera. Angles are in degrees.
type CameraConfig struct {
	Position  [3]float32 `toml:"position"`
	Yaw       float32    `toml:"yaw"`
	Pitch     float32    `toml:"pitch"`
	Fov       float32    `toml:"fov"`
	Near      float32    `toml:"near"`
	Far       float32    `toml:"far"`
	TurnSpeed float32    `toml:"turn_speed"`
	MoveSpeed float32    `toml:"move_speed"`
}

// LightConfig is one entry of the light array. The first entry is the sun.
type LightConfig struct {
	Position    [3]float32 `toml:"position"`
	Color       [3]float32 `toml:"color"`
	Attenuation [3]float32 `toml:"attenuation"`
}

// SunConfig animates the first light.
type SunConfig struct {
	// OrbitSpeed rotates the sun about +Y in degrees per second. 0 keeps it static.
	OrbitSpeed float32 `toml:"orbit_speed"`
}

// ShadowConfig configures the sun's shadow map.
type ShadowConfig struct {
	Resolution int32      `toml:"resolution"`
	Scale      float32    `toml:"scale"`
	Bias       float32    `toml:"bias"`
	Up         [3]float32 `toml:"up"`
}

// ShaderConfig selects where shaders are read from.
type ShaderConfig struct {
	// Dir reads shaders from disk instead of the embedded copies when set.
	Dir string `toml:"dir"`
	// Watch rebuilds programs when files in Dir change.
	Watch bool `toml:"watch"`
}

// SceneConfig is one asset file placed in the world.
type SceneConfig struct {
	Dir             string     `toml:"dir"`
	File            string     `toml:"file"`
	Scale           float32    `toml:"scale"`
	Homogeneous     bool       `toml:"homogeneous"`
	Translate       [3]float32 `toml:"translate"`
	Velocity        [3]float32 `toml:"velocity"`
	CastsShadows    bool       `toml:"casts_shadows"`
	ReceivesShadows bool       `toml:"receives_shadows"`
}

// Default returns the configuration of the sponza + bunny demo.
func Default() Config {
	return Config{
		LogLevel:   "info",
		Ambient:    [3]float32{0.1, 0.1, 0.1},
		ClearColor: [4]float32{0.8, 0.8, 0.9, 0},
		Window: WindowConfig{
			Title:     "Graphics course practice 7",
			Width:     800,
			Height:    600,
			VSync:     true,
			Resizable: true,
			Maximized: true,
		},
		Camera: CameraConfig{
			Position:  [3]float32{0, 1, 0},
			Fov:       90,
			Near:      0.1,
			Far:       100,
			TurnSpeed: 100,
			MoveSpeed: 0.1,
		},
		Shadow: ShadowConfig{
			Resolution: 4500,
			Scale:      0.03,
			Bias:       0.001,
			Up:         [3]float32{0, 1, 0},
		},
		Lights: []LightConfig{
			{Position: [3]float32{-15, 40, 5}, Color: [3]float32{8, 8, 4}, Attenuation: [3]float32{1, 0.00001, 0.01}},
			{Position: [3]float32{10, 3.5, -4}, Color: [3]float32{2.5, 9, 3}, Attenuation: [3]float32{1, 0, 0.1}},
			{Position: [3]float32{-12, 5, 5.69}, Color: [3]float32{10, 0, 0}, Attenuation: [3]float32{1, 0, 0.1}},
		},
		Scenes: []SceneConfig{
			{Dir: "assets", File: "sponza.obj", Scale: 0.01, CastsShadows: true, ReceivesShadows: true},
			{Dir: "assets", File: "bunny.obj", Scale: 4, Homogeneous: true, Velocity: [3]float32{1, 0, 0}},
		},
	}
}

// Load reads a TOML file over the defaults.
//
// Parameters:
//   - path: the TOML file
//
// Returns:
//   - Config: the merged configuration, validated
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults. Tables overlay field by field; an array of tables
// such as [[lights]] or [[scenes]] replaces the default list. Unknown keys are rejected.
//
// Parameters:
//   - r: the TOML document
//
// Returns:
//   - Config: the merged configuration, validated
//   - error: a decode or validation error
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("decode config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the renderer cannot start with.
func (c Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: need 0 < near < far, got near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}
	if len(c.Lights) == 0 {
		errs = append(errs, errors.New("lights: at least one light is required"))
	}
	if len(c.Lights) > 0 && c.Lights[0].Position == [3]float32{} {
		errs = append(errs, errors.New("lights[0]: the sun casts shadows from its direction and cannot sit at the origin"))
	}
	for i, l := range c.Lights {
		if l.Attenuation[0] <= 0 {
			errs = append(errs, fmt.Errorf("lights[%d]: constant attenuation must be positive, got %g", i, l.Attenuation[0]))
		}
	}
	if c.Shadow.Resolution <= 0 {
		errs = append(errs, fmt.Errorf("shadow: resolution must be positive, got %d", c.Shadow.Resolution))
	}
	if len(c.Scenes) == 0 {
		errs = append(errs, errors.New("scenes: at least one scene is required"))
	}
	for i, s := range c.Scenes {
		if s.File == "" {
			errs = append(errs, fmt.Errorf("scenes[%d]: file is required", i))
		}
	}
	if c.Shaders.Watch && c.Shaders.Dir == "" {
		errs = append(errs, errors.New("shaders: watch requires dir"))
	}
	return errors.Join(errs...)
}
