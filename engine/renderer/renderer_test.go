package renderer

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResolution = 64

func newTestRenderer(t *testing.T, rec *backendtest.Recorder, opts ...RendererBuilderOption) Renderer {
	t.Helper()
	s := light.DefaultShadowSettings()
	s.Resolution = testResolution
	opts = append([]RendererBuilderOption{WithShadowSettings(s)}, opts...)
	r, err := NewRenderer(rec, 800, 600, opts...)
	require.NoError(t, err)
	return r
}

func newTestObject(rec *backendtest.Recorder, name string) game_object.GameObject {
	mesh := model.NewMesh(rec, name, make([]common.Vertex, 3), []uint32{0, 1, 2})
	obj := game_object.NewGameObject(rec, mesh)
	obj.AddTexture(material.NewTexture(rec, common.SolidTexture([4]byte{255, 255, 255, 255})), material.SamplerDiffuse)
	return obj
}

func newTestRig(t *testing.T) light.Rig {
	t.Helper()
	r, err := light.NewRig([]light.Light{
		light.NewLight(light.WithPosition(-15, 40, 5), light.WithColor(8, 8, 4), light.WithAttenuation(1, 0.00001, 0.01)),
		light.NewLight(light.WithPosition(10, 3.5, -4), light.WithColor(2.5, 9, 3), light.WithAttenuation(1, 0, 0.1)),
		light.NewLight(light.WithPosition(-12, 5, 5.69), light.WithColor(10, 0, 0), light.WithAttenuation(1, 0, 0.1)),
	})
	require.NoError(t, err)
	return r
}

func callNames(calls []backendtest.Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Name
	}
	return out
}

func TestNewRendererBuildsPipelines(t *testing.T) {
	rec := backendtest.NewRecorder()
	r := newTestRenderer(t, rec, WithLightCount(5))

	require.NotNil(t, r.Pipeline(PipelineKeyMain))
	require.NotNil(t, r.Pipeline(PipelineKeyShadow))
	assert.Len(t, r.Pipelines(), 2)
	assert.Contains(t, rec.Sources[backend.StageFragment], "#define LIGHT_COUNT 5")

	depth := rec.Calls("CreateDepthTexture")
	require.Len(t, depth, 1)
	assert.Equal(t, int32(testResolution), depth[0].Args[1])
	assert.Equal(t, 1, rec.Count("CreateDepthFramebuffer"))

	w, h := r.ShadowMap().Size()
	assert.Equal(t, int32(testResolution), w)
	assert.Equal(t, int32(testResolution), h)
}

func TestPipelinesReturnsCopy(t *testing.T) {
	rec := backendtest.NewRecorder()
	r := newTestRenderer(t, rec)

	main := r.Pipeline(PipelineKeyMain)
	snapshot := r.Pipelines()
	delete(snapshot, PipelineKeyMain)
	snapshot["extra"] = main

	assert.Same(t, main, r.Pipeline(PipelineKeyMain))
	assert.Nil(t, r.Pipeline("extra"))
	assert.Len(t, r.Pipelines(), 2)
}

func TestNewRendererIncompleteFramebuffer(t *testing.T) {
	rec := backendtest.NewRecorder()
	rec.FramebufferStatus = 0x8CD6

	_, err := NewRenderer(rec, 800, 600)
	var fbErr *common.FramebufferIncompleteError
	require.True(t, errors.As(err, &fbErr))
	assert.Equal(t, uint32(0x8CD6), fbErr.Status)
	assert.Equal(t, 2, rec.Deleted["program"])
	assert.Equal(t, 1, rec.Deleted["texture"])
	assert.Equal(t, 1, rec.Deleted["framebuffer"])
}

func TestNewRendererShaderError(t *testing.T) {
	rec := backendtest.NewRecorder()
	rec.LinkFailure = "error: unresolved symbol"

	_, err := NewRenderer(rec, 800, 600)
	var linkErr *common.ProgramLinkError
	assert.True(t, errors.As(err, &linkErr))

	_, err = NewRenderer(backendtest.NewRecorder(), 800, 600, WithLightCount(0))
	assert.Error(t, err)
}

func TestShadowPassSequence(t *testing.T) {
	rec := backendtest.NewRecorder()
	r := newTestRenderer(t, rec)

	caster := newTestObject(rec, "caster")
	// A caster that also receives carries the depth texture it is rendered into.
	caster.AddTexture(r.ShadowMap(), material.SamplerShadowMap)
	receiver := newTestObject(rec, "receiver")
	frame := Frame{
		Lights: newTestRig(t),
		Batches: []Batch{
			{Model: mgl32.Scale3D(0.01, 0.01, 0.01), Objects: []game_object.GameObject{caster}, CastsShadows: true},
			{Model: mgl32.Ident4(), Objects: []game_object.GameObject{receiver}},
		},
	}
	fbo := rec.Calls("CreateDepthFramebuffer")[0].Args[0]
	depth := r.ShadowMap().Handle()
	rec.Reset()

	r.Render(frame)

	calls := rec.Calls()
	mipmap := -1
	for i, c := range calls {
		if c.Name == "GenerateMipmap" {
			mipmap = i
			break
		}
	}
	require.Greater(t, mipmap, 0)
	shadow := calls[:mipmap+3]

	assert.Equal(t, fmt.Sprintf("BindFramebuffer(%v)", fbo), shadow[0].String())
	assert.Equal(t, "Clear(false, true)", shadow[1].String())
	assert.Equal(t, "Viewport(0, 0, 64, 64)", shadow[2].String())
	assert.Equal(t, "EnableDepthTest(1)", shadow[3].String())
	assert.Equal(t, "EnableCulling(0)", shadow[4].String())
	assert.Equal(t, "UseProgram", shadow[5].Name)
	assert.Equal(t, r.Pipeline(PipelineKeyShadow).Program().Handle(), shadow[5].Args[0])

	draws := 0
	for _, c := range shadow {
		if c.Name == "DrawTriangles" {
			draws++
			assert.Equal(t, caster.Mesh().VAO(), c.Args[0])
		}
	}
	assert.Equal(t, 1, draws)
	assert.NotContains(t, callNames(shadow), "BindTexture2D")

	assert.Equal(t, []any{depth}, shadow[mipmap].Args)
	assert.Equal(t, "BindFramebuffer(0)", shadow[mipmap+1].String())
	assert.Equal(t, "Viewport(0, 0, 800, 600)", shadow[mipmap+2].String())

	shadowProg := r.Pipeline(PipelineKeyShadow).Program().Handle()
	transform, ok := rec.Uniform(shadowProg, UniformTransform)
	require.True(t, ok)
	assert.Equal(t, frame.Lights.ShadowTransform(), transform)
	modelUniform, _ := rec.Uniform(shadowProg, UniformModel)
	assert.Equal(t, mgl32.Scale3D(0.01, 0.01, 0.01), modelUniform)
}

func TestRenderIsRepeatable(t *testing.T) {
	rec := backendtest.NewRecorder()
	r := newTestRenderer(t, rec)
	frame := Frame{
		Lights:  newTestRig(t),
		Batches: []Batch{{Model: mgl32.Ident4(), Objects: []game_object.GameObject{newTestObject(rec, "a")}, CastsShadows: true}},
	}

	r.Render(frame)
	rec.Reset()
	r.Render(frame)
	first := rec.Calls()
	rec.Reset()
	r.Render(frame)
	second := rec.Calls()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, countName(second, "GenerateMipmap"))
}

func TestForwardPassUniforms(t *testing.T) {
	rec := backendtest.NewRecorder()
	r := newTestRenderer(t, rec)
	rig := newTestRig(t)

	obj := newTestObject(rec, "bricks")
	obj.AddTexture(material.NewTexture(rec, common.SolidTexture([4]byte{128, 128, 255, 255})), material.SamplerNormal)
	obj.AddTexture(r.ShadowMap(), material.SamplerShadowMap)

	proj := mgl32.Perspective(mgl32.DegToRad(90), 800.0/600.0, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, -1}, mgl32.Vec3{0, 1, 0})
	modelMat := mgl32.Translate3D(2, 0, 0).Mul4(mgl32.Scale3D(4, 4, 4))
	r.Render(Frame{
		Projection: proj,
		View:       view,
		Lights:     rig,
		Batches:    []Batch{{Model: modelMat, Objects: []game_object.GameObject{obj}}},
	})

	main := r.Pipeline(PipelineKeyMain).Program().Handle()
	get := func(name string) any {
		v, ok := rec.Uniform(main, name)
		require.True(t, ok, name)
		return v
	}
	assert.Equal(t, proj, get(UniformProjection))
	assert.Equal(t, view, get(UniformView))
	assert.Equal(t, rig.ShadowTransform(), get(UniformTransform))
	assert.Equal(t, modelMat, get(UniformModel))
	assert.Equal(t, light.DefaultShadowBias, get(UniformShadowBias))
	assert.Equal(t, int32(1), get(UniformHasNorm))
	assert.Equal(t, int32(1), get(UniformHasShadow))
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0.1}, get("ambient"))
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, get("light_color[2]"))
	assert.Equal(t, mgl32.Vec3{1, 0.00001, 0.01}, get("light_attenuation[0]"))

	// Samplers point at the units the textures were bound to.
	assert.Equal(t, int32(0), get(material.SamplerDiffuse))
	assert.Equal(t, int32(1), get(material.SamplerNormal))
	assert.Equal(t, int32(2), get(material.SamplerShadowMap))
	assert.Equal(t, r.ShadowMap().Handle(), rec.BoundTextures[2])
	assert.Equal(t, uint32(0), rec.ActiveUnit)

	clears := rec.Calls("ClearColor")
	require.Len(t, clears, 1)
	assert.Equal(t, mgl32.Vec4{0.8, 0.8, 0.9, 0}, clears[0].Args[0])
}

func TestForwardPassWithoutNormalMap(t *testing.T) {
	rec := backendtest.NewRecorder()
	r := newTestRenderer(t, rec)
	obj := newTestObject(rec, "bunny")
	hidden := newTestObject(rec, "hidden")
	hidden.SetEnabled(false)

	r.Render(Frame{Lights: newTestRig(t), Batches: []Batch{{Model: mgl32.Ident4(), Objects: []game_object.GameObject{obj, hidden}, CastsShadows: true}}})

	main := r.Pipeline(PipelineKeyMain).Program().Handle()
	hasNorm, _ := rec.Uniform(main, UniformHasNorm)
	hasShadow, _ := rec.Uniform(main, UniformHasShadow)
	assert.Equal(t, int32(0), hasNorm)
	assert.Equal(t, int32(0), hasShadow)

	for _, c := range rec.Calls("DrawTriangles") {
		assert.Equal(t, obj.Mesh().VAO(), c.Args[0])
	}
	assert.Equal(t, 2, rec.Count("DrawTriangles"))
}

func TestResize(t *testing.T) {
	rec := backendtest.NewRecorder()
	r := newTestRenderer(t, rec)
	rec.Reset()

	r.Resize(1920, 1080)
	w, h := r.Size()
	assert.Equal(t, int32(1920), w)
	assert.Equal(t, int32(1080), h)
	assert.Equal(t, "Viewport(0, 0, 1920, 1080)", rec.Calls()[0].String())

	rec.Reset()
	r.Render(Frame{})
	vps := rec.Calls("Viewport")
	require.Len(t, vps, 2)
	assert.Equal(t, "Viewport(0, 0, 1920, 1080)", vps[1].String())
}

func TestReloadShaders(t *testing.T) {
	rec := backendtest.NewRecorder()
	fsys := copyFS(t, shader.Snippets())
	r := newTestRenderer(t, rec, WithShaderFS(fsys))
	before := r.Pipeline(PipelineKeyMain).Program()

	assert.Equal(t, 1, r.ReloadShaders(fsys, []string{"shadow.frag"}))
	assert.Same(t, before, r.Pipeline(PipelineKeyMain).Program())
	shadowProgram := r.Pipeline(PipelineKeyShadow).Program()

	// only the main program includes the lighting snippet
	assert.Equal(t, 1, r.ReloadShaders(fsys, []string{"lighting.glsl"}))
	rebuilt := r.Pipeline(PipelineKeyMain).Program()
	assert.NotSame(t, before, rebuilt)
	assert.Same(t, shadowProgram, r.Pipeline(PipelineKeyShadow).Program())

	rec.CompileFailures[backend.StageFragment] = "0:12: error"
	assert.Equal(t, 0, r.ReloadShaders(fsys, []string{"main.frag"}))
	assert.Same(t, rebuilt, r.Pipeline(PipelineKeyMain).Program())

	assert.Equal(t, 0, r.ReloadShaders(fsys, []string{"notes.txt"}))
}

func TestRelease(t *testing.T) {
	rec := backendtest.NewRecorder()
	r := newTestRenderer(t, rec)
	r.Release()
	assert.Equal(t, 2, rec.Deleted["program"])
	assert.Equal(t, 1, rec.Deleted["framebuffer"])
	assert.Equal(t, 1, rec.Deleted["texture"])
}

func copyFS(t *testing.T, src fs.FS) fstest.MapFS {
	t.Helper()
	out := fstest.MapFS{}
	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}
		out[path] = &fstest.MapFile{Data: data}
		return nil
	})
	require.NoError(t, err)
	return out
}

func countName(calls []backendtest.Call, name string) int {
	n := 0
	for _, c := range calls {
		if c.Name == name {
			n++
		}
	}
	return n
}
