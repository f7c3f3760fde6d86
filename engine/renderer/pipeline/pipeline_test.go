package pipeline

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmbeddedMain(t *testing.T) {
	rec := backendtest.NewRecorder()
	p := NewPipeline(rec, "main", shader.MainVertexFile, shader.MainFragmentFile,
		WithDefine(shader.DefineLightCount, "5"))
	require.NoError(t, p.Build(shader.Snippets()))
	require.NotNil(t, p.Program())

	assert.Contains(t, rec.Sources[backend.StageFragment], "#define LIGHT_COUNT 5")
	assert.Contains(t, rec.Sources[backend.StageFragment], "shadow_test")
	assert.Equal(t, []string{"main.vert", "main.frag", "lighting.glsl"}, p.Sources())
}

func TestSourcesTrackIncludes(t *testing.T) {
	p := NewPipeline(backendtest.NewRecorder(), "main", shader.MainVertexFile, shader.MainFragmentFile,
		WithDefine(shader.DefineLightCount, "3"))
	assert.Equal(t, []string{"main.vert", "main.frag"}, p.Sources(), "nothing included before the first build")

	fsys := fstest.MapFS{
		"main.vert":   {Data: []byte("#version 330 core\n//@oxy:include common\nvoid main() {}")},
		"main.frag":   {Data: []byte("#version 330 core\n//@oxy:include common\n//@oxy:include extra\nvoid main() {}")},
		"common.glsl": {Data: []byte("float common_value;")},
		"extra.glsl":  {Data: []byte("//@oxy:include common")},
	}
	require.NoError(t, p.Build(fsys))
	assert.Equal(t, []string{"main.vert", "main.frag", "common.glsl", "extra.glsl"}, p.Sources())
	assert.True(t, shader.Affects([]string{"extra.glsl"}, p.Sources()...))

	shadow := NewPipeline(backendtest.NewRecorder(), "shadow", shader.ShadowVertexFile, shader.ShadowFragmentFile)
	require.NoError(t, shadow.Build(shader.Snippets()))
	assert.False(t, shader.Affects([]string{"lighting.glsl"}, shadow.Sources()...))
}

func TestBuildMissingDefine(t *testing.T) {
	p := NewPipeline(backendtest.NewRecorder(), "main", shader.MainVertexFile, shader.MainFragmentFile)
	assert.ErrorContains(t, p.Build(shader.Snippets()), "LIGHT_COUNT")
	assert.Nil(t, p.Program())
}

func TestBind(t *testing.T) {
	rec := backendtest.NewRecorder()
	p := NewPipeline(rec, "shadow", shader.ShadowVertexFile, shader.ShadowFragmentFile,
		WithCullFace(backend.CullFront), WithDepthFunc(backend.DepthLess))
	require.NoError(t, p.Build(shader.Snippets()))
	rec.Reset()

	p.Bind()
	calls := rec.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "EnableDepthTest(0)", calls[0].String())
	assert.Equal(t, "EnableCulling(1)", calls[1].String())
	assert.Equal(t, "UseProgram", calls[2].Name)
	assert.Equal(t, p.Program().Handle(), rec.CurrentProgram)
}

func TestRebuildKeepsProgramOnFailure(t *testing.T) {
	rec := backendtest.NewRecorder()
	fsys := fstest.MapFS{
		"a.vert": {Data: []byte("void main() {}")},
		"a.frag": {Data: []byte("void main() {}")},
	}
	p := NewPipeline(rec, "a", "a.vert", "a.frag")
	require.NoError(t, p.Build(fsys))
	first := p.Program()

	rec.CompileFailures[backend.StageFragment] = "0:1: syntax error"
	err := p.Build(fsys)
	var compileErr *common.ShaderCompilationError
	require.True(t, errors.As(err, &compileErr))
	assert.Same(t, first, p.Program())
	assert.Equal(t, 0, rec.Deleted["program"])

	delete(rec.CompileFailures, backend.StageFragment)
	require.NoError(t, p.Build(fsys))
	assert.NotSame(t, first, p.Program())
	assert.Equal(t, 1, rec.Deleted["program"])

	p.Release()
	assert.Nil(t, p.Program())
	assert.Equal(t, 2, rec.Deleted["program"])
}
