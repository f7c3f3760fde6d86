package engine

import (
	"errors"
	"io/fs"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/loader"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// engine implements the Engine interface.
// Everything runs on the thread that created the window, which owns the GL context.
type engine struct {
	cfg config.Config

	window   window.Window
	backend  backend.Backend
	renderer renderer.Renderer
	loader   loader.Loader
	decoders worker.DynamicWorkerPool
	camera   camera.Camera
	lights   light.Rig
	scenes   []scene.Scene
	input    *common.InputState

	shaderFS fs.FS
	watcher  *shader.Watcher

	profiler         *profiler.Profiler
	profilingEnabled bool

	startTime float64
	lastTime  float64
	released  bool
}

// Engine is the main entry point for the engine.
// It owns the window, the renderer, the loaded scenes and the frame loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer drawing each frame.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Camera returns the fly camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Lights returns the light rig. Light 0 is the shadow-casting sun.
	//
	// Returns:
	//   - light.Rig: the rig
	Lights() light.Rig

	// Scenes returns the loaded scenes in configuration order.
	//
	// Returns:
	//   - []scene.Scene: the scenes
	Scenes() []scene.Scene

	// Input returns the key state fed by the window callbacks.
	//
	// Returns:
	//   - *common.InputState: the input state
	Input() *common.InputState

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Tick runs one frame: pending shader reloads, camera and light updates, then the shadow
	// and forward passes.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//   - elapsed: seconds since the engine started
	Tick(dt, elapsed float32)

	// Run starts the main loop (blocks until the window closes).
	Run()

	// Quit asks the main loop to stop after the current frame.
	// Safe to call multiple times.
	Quit()

	// Release frees every GPU resource, stops the shader watcher and closes the window.
	// Safe to call multiple times.
	Release()
}

// NewEngine brings up the window, the GL backend, the renderer, the lights, the camera and every
// configured scene, in that order. On error everything created so far is released.
//
// Parameters:
//   - cfg: a validated configuration
//   - options: functional options applied before startup
//
// Returns:
//   - Engine: the ready engine, its GL context current on the calling thread
//   - error: a typed startup, shader, framebuffer or asset error
func NewEngine(cfg config.Config, options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		cfg:              cfg,
		input:            common.NewInputState(),
		profiler:         profiler.NewProfiler(),
		profilingEnabled: cfg.Profiler,
	}
	for _, opt := range options {
		opt(e)
	}

	if err := e.start(); err != nil {
		e.Release()
		return nil, err
	}
	return e, nil
}

func (e *engine) start() error {
	cfg := e.cfg

	if e.window == nil {
		w, err := window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithWidth(cfg.Window.Width),
			window.WithHeight(cfg.Window.Height),
			window.WithResizable(cfg.Window.Resizable),
			window.WithMaximized(cfg.Window.Maximized),
			window.WithVSync(cfg.Window.VSync),
			window.WithSamples(cfg.Window.MSAASamples),
		)
		if err != nil {
			return err
		}
		e.window = w
	}

	if e.backend == nil {
		b, err := backend.NewBackend(backend.BackendTypeGL)
		if err != nil {
			return err
		}
		e.backend = b
	}
	common.Logger().Info("gl context ready", "version", e.backend.Version())

	if e.shaderFS == nil {
		if cfg.Shaders.Dir != "" {
			e.shaderFS = os.DirFS(cfg.Shaders.Dir)
		} else {
			e.shaderFS = shader.Snippets()
		}
	}

	shadow := shadowSettings(cfg.Shadow)
	r, err := renderer.NewRenderer(e.backend, e.window.Width(), e.window.Height(),
		renderer.WithLightCount(len(cfg.Lights)),
		renderer.WithShadowSettings(shadow),
		renderer.WithClearColor(mgl32.Vec4(cfg.ClearColor)),
		renderer.WithShaderFS(e.shaderFS),
	)
	if err != nil {
		return err
	}
	e.renderer = r

	lights := make([]light.Light, 0, len(cfg.Lights))
	for _, lc := range cfg.Lights {
		lights = append(lights, light.NewLight(
			light.WithPosition(lc.Position[0], lc.Position[1], lc.Position[2]),
			light.WithColor(lc.Color[0], lc.Color[1], lc.Color[2]),
			light.WithAttenuation(lc.Attenuation[0], lc.Attenuation[1], lc.Attenuation[2]),
		))
	}
	rig, err := light.NewRig(lights,
		light.WithAmbient(mgl32.Vec3(cfg.Ambient)),
		light.WithSunOrbit(cfg.Sun.OrbitSpeed),
		light.WithShadowSettings(shadow),
	)
	if err != nil {
		return err
	}
	e.lights = rig

	if e.loader == nil {
		e.decoders = loader.NewDecodePool(runtime.NumCPU())
		e.loader = loader.NewLoader(e.backend, loader.WithWorkerPool(e.decoders))
	}
	for _, sc := range cfg.Scenes {
		s, err := scene.Load(e.loader, e.backend, sc.Dir, sc.File,
			scene.WithTransform(sceneTransform(sc)),
			scene.WithCastsShadows(sc.CastsShadows),
			scene.WithReceivesShadows(sc.ReceivesShadows),
		)
		if err != nil {
			return err
		}
		if s.ReceivesShadows() {
			s.AddTexture(e.renderer.ShadowMap(), material.SamplerShadowMap)
		}
		e.scenes = append(e.scenes, s)
	}

	controller := camera.NewFlyController(
		camera.WithPosition(mgl32.Vec3(cfg.Camera.Position)),
		camera.WithAngles(cfg.Camera.Yaw, cfg.Camera.Pitch),
		camera.WithTurnSpeed(cfg.Camera.TurnSpeed),
		camera.WithMoveSpeed(cfg.Camera.MoveSpeed),
	)
	e.camera = camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(cfg.Camera.Fov)),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithController(controller),
	)
	e.camera.Resize(e.window.Width(), e.window.Height())

	if cfg.Shaders.Watch {
		w, err := shader.NewWatcher(cfg.Shaders.Dir)
		if err != nil {
			return &common.StartupError{Stage: "watch shaders", Err: err}
		}
		e.watcher = w
	}

	e.bindWindow()
	e.startTime = e.window.Time()
	e.lastTime = e.startTime
	return nil
}

// bindWindow routes window events into the input state, the renderer and the camera.
func (e *engine) bindWindow() {
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		e.input.Press(common.KeyCode(keyCode))
	})
	e.window.SetKeyUpCallback(func(keyCode uint32) {
		e.input.Release(common.KeyCode(keyCode))
	})
	e.window.SetFocusLostCallback(e.input.Clear)
	e.window.SetResizeCallback(func(width, height int) {
		e.renderer.Resize(width, height)
		e.camera.Resize(width, height)
	})
	e.window.SetUpdateCallback(func() {
		now := e.window.Time()
		dt := float32(now - e.lastTime)
		e.lastTime = now
		e.Tick(dt, float32(now-e.startTime))
	})
}

func shadowSettings(c config.ShadowConfig) light.ShadowSettings {
	return light.ShadowSettings{
		Resolution: c.Resolution,
		Scale:      c.Scale,
		Bias:       c.Bias,
		Up:         mgl32.Vec3(c.Up),
	}
}

func sceneTransform(c config.SceneConfig) scene.Transform {
	return scene.Transform{
		Scale:       c.Scale,
		Homogeneous: c.Homogeneous,
		Translation: mgl32.Vec3(c.Translate),
		Velocity:    mgl32.Vec3(c.Velocity),
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Lights() light.Rig {
	return e.lights
}

func (e *engine) Scenes() []scene.Scene {
	return append([]scene.Scene(nil), e.scenes...)
}

func (e *engine) Input() *common.InputState {
	return e.input
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Tick(dt, elapsed float32) {
	if e.watcher != nil {
		if changed := e.watcher.Drain(); len(changed) > 0 {
			e.renderer.ReloadShaders(e.shaderFS, changed)
		}
	}

	if c := e.camera.Controller(); c != nil {
		c.Update(e.input, dt)
	}
	e.camera.Update()
	e.lights.Update(dt)

	frame := renderer.Frame{
		Projection: e.camera.ProjectionMatrix(),
		View:       e.camera.ViewMatrix(),
		Lights:     e.lights,
		Batches:    make([]renderer.Batch, 0, len(e.scenes)),
	}
	for _, s := range e.scenes {
		if s.Active() {
			frame.Batches = append(frame.Batches, s.Batch(elapsed))
		}
	}
	e.renderer.Render(frame)

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) Run() {
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	if e.window != nil {
		e.window.RequestClose()
	}
}

func (e *engine) Release() {
	if e.released {
		return
	}
	e.released = true

	var errs []error
	if e.watcher != nil {
		errs = append(errs, e.watcher.Close())
	}
	for i := len(e.scenes) - 1; i >= 0; i-- {
		e.scenes[i].Release()
	}
	e.scenes = nil
	if e.decoders != nil {
		e.decoders.Stop()
		e.decoders = nil
	}
	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.window != nil {
		errs = append(errs, e.window.Close())
	}
	if err := errors.Join(errs...); err != nil {
		common.Logger().Warn("shutdown", "err", err)
	}
}
