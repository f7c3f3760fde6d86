package engine

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow stands in for the GLFW window so the frame loop can run without a display.
type fakeWindow struct {
	width, height int
	now           float64
	closed        int
	closeRequests int

	onUpdate    func()
	onResize    func(width, height int)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onFocusLost func()
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(cb func())                  { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.onResize = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(keyCode uint32))   { w.onKeyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(keyCode uint32))     { w.onKeyUp = cb }
func (w *fakeWindow) SetFocusLostCallback(cb func())               { w.onFocusLost = cb }
func (w *fakeWindow) IsRunning() bool                              { return w.closeRequests == 0 && w.closed == 0 }
func (w *fakeWindow) RequestClose()                                { w.closeRequests++ }
func (w *fakeWindow) Close() error                                 { w.closed++; return nil }
func (w *fakeWindow) Time() float64                                { return w.now }
func (w *fakeWindow) Width() int                                   { return w.width }
func (w *fakeWindow) Height() int                                  { return w.height }

func (w *fakeWindow) ProcessMessages() {
	for w.IsRunning() {
		w.now += 0.016
		w.onUpdate()
	}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Shadow.Resolution = 64
	cfg.Scenes = []config.SceneConfig{
		{Dir: "loader/testdata", File: "quad.obj", Scale: 1, CastsShadows: true, ReceivesShadows: true},
		{Dir: "loader/testdata", File: "tri.gltf", Scale: 4, Homogeneous: true, Velocity: [3]float32{1, 0, 0}},
	}
	return cfg
}

func newTestEngine(t *testing.T, cfg config.Config) (Engine, *backendtest.Recorder, *fakeWindow) {
	t.Helper()
	rec := backendtest.NewRecorder()
	w := &fakeWindow{width: 800, height: 600}
	e, err := NewEngine(cfg, WithWindow(w), WithBackend(rec))
	require.NoError(t, err)
	t.Cleanup(e.Release)
	return e, rec, w
}

func TestNewEngineLoadsScenes(t *testing.T) {
	e, _, w := newTestEngine(t, testConfig())

	scenes := e.Scenes()
	require.Len(t, scenes, 2)
	assert.True(t, scenes[0].CastsShadows())
	for _, obj := range scenes[0].Objects() {
		assert.True(t, obj.HasShadowMap(), obj.Name())
	}
	for _, obj := range scenes[1].Objects() {
		assert.False(t, obj.HasShadowMap(), obj.Name())
	}

	assert.Len(t, e.Lights().Lights(), 3)
	assert.InDelta(t, 800.0/600.0, e.Camera().Aspect(), 1e-6)
	assert.NotNil(t, w.onUpdate)
	assert.NotNil(t, w.onResize)
}

func TestTickDrawsShadowThenForward(t *testing.T) {
	e, rec, _ := newTestEngine(t, testConfig())
	rec.Reset()

	e.Tick(0.016, 1)

	// two casting quad meshes in the shadow pass, then all three meshes lit
	assert.Equal(t, 5, rec.Count("DrawTriangles"))
	assert.Equal(t, 1, rec.Count("GenerateMipmap"))

	calls := rec.Calls("GenerateMipmap", "ClearColor")
	require.Len(t, calls, 2)
	assert.Equal(t, "GenerateMipmap", calls[0].Name)
}

func TestKeysDriveCamera(t *testing.T) {
	e, _, w := newTestEngine(t, testConfig())
	controller := e.Camera().Controller()
	start := controller.Position()

	w.onKeyDown(uint32(common.KeyW))
	e.Tick(0.016, 0.016)
	moved := controller.Position().Sub(start)
	assert.InDelta(t, 0.1, moved.Len(), 1e-5)

	w.onKeyUp(uint32(common.KeyW))
	e.Tick(0.016, 0.032)
	assert.InDelta(t, 0.1, controller.Position().Sub(start).Len(), 1e-5)

	w.onKeyDown(uint32(common.KeyLeft))
	w.onFocusLost()
	assert.False(t, e.Input().Down(common.KeyLeft))
}

func TestResizeUpdatesViewportAndAspect(t *testing.T) {
	e, _, w := newTestEngine(t, testConfig())

	w.onResize(1024, 512)

	width, height := e.Renderer().Size()
	assert.Equal(t, int32(1024), width)
	assert.Equal(t, int32(512), height)
	assert.InDelta(t, 2.0, e.Camera().Aspect(), 1e-6)
}

func TestRunUntilQuit(t *testing.T) {
	e, rec, w := newTestEngine(t, testConfig())
	rec.Reset()

	frames := 0
	tick := w.onUpdate
	w.onUpdate = func() {
		tick()
		frames++
		if frames == 3 {
			e.Quit()
		}
	}
	e.Run()

	assert.Equal(t, 3, frames)
	assert.Equal(t, 3, rec.Count("GenerateMipmap"))
}

func TestNewEngineAssetError(t *testing.T) {
	cfg := testConfig()
	cfg.Scenes[1].File = "missing.obj"
	rec := backendtest.NewRecorder()
	w := &fakeWindow{width: 800, height: 600}

	_, err := NewEngine(cfg, WithWindow(w), WithBackend(rec))
	require.Error(t, err)
	var assetErr *common.AssetLoadError
	assert.True(t, errors.As(err, &assetErr))

	// the first scene and the renderer were torn down with the window
	assert.Equal(t, 1, w.closed)
	assert.Equal(t, rec.Count("CreateMeshBuffers"), rec.Count("DeleteMeshBuffers"))
	assert.Equal(t, 1, rec.Count("DeleteFramebuffer"))
}

func TestReleaseIsIdempotent(t *testing.T) {
	e, rec, w := newTestEngine(t, testConfig())
	require.NotNil(t, e.(*engine).decoders)

	e.Release()
	e.Release()

	assert.Nil(t, e.(*engine).decoders)
	assert.Equal(t, 1, w.closed)
	assert.Equal(t, rec.Count("CreateMeshBuffers"), rec.Count("DeleteMeshBuffers"))
	assert.Equal(t, rec.Count("CreateTexture2D")+1, rec.Count("DeleteTexture"))
}
