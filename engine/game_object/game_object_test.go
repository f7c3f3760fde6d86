package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	vs = "#version 330 core\nvoid main() {}"
	fs = "#version 330 core\nvoid main() {}"
)

func newObject(t *testing.T, rec *backendtest.Recorder, opts ...GameObjectBuilderOption) GameObject {
	t.Helper()
	mesh := model.NewMesh(rec, "tri", make([]common.Vertex, 3), []uint32{0, 1, 2})
	return NewGameObject(rec, mesh, opts...)
}

func TestHasNormalMapTracksDescriptors(t *testing.T) {
	rec := backendtest.NewRecorder()
	white := material.NewTexture(rec, common.SolidTexture([4]byte{255, 255, 255, 255}))

	obj := newObject(t, rec, WithTextures(material.Descriptor{Texture: white, Name: material.SamplerDiffuse}))
	assert.False(t, obj.HasNormalMap())
	assert.False(t, obj.HasShadowMap())

	obj.AddTexture(white, material.SamplerShadowMap)
	assert.False(t, obj.HasNormalMap())
	assert.True(t, obj.HasShadowMap())

	obj.AddTexture(white, material.SamplerNormal)
	assert.True(t, obj.HasNormalMap())
	assert.Len(t, obj.Textures(), 3)
}

func TestDrawSequence(t *testing.T) {
	rec := backendtest.NewRecorder()
	diffuse := material.NewTexture(rec, common.SolidTexture([4]byte{255, 0, 0, 255}))
	shadow := material.NewDepthTexture(rec, 16)

	obj := newObject(t, rec)
	obj.AddTexture(diffuse, material.SamplerDiffuse)
	obj.AddTexture(shadow, material.SamplerShadowMap)

	prog, err := shader.NewProgram(rec, vs, fs)
	require.NoError(t, err)
	prog.Use()
	rec.Reset()

	obj.Draw(prog)

	var names []string
	for _, c := range rec.Calls() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"ActiveTexture", "UniformLocation", "Uniform1i", "BindTexture2D",
		"ActiveTexture", "UniformLocation", "Uniform1i", "BindTexture2D",
		"BindVertexArray", "DrawTriangles", "BindVertexArray",
		"ActiveTexture",
	}, names)

	assert.Equal(t, diffuse.Handle(), rec.BoundTextures[0])
	assert.Equal(t, shadow.Handle(), rec.BoundTextures[1])
	assert.Equal(t, uint32(0), rec.ActiveUnit)

	v, _ := rec.Uniform(prog.Handle(), material.SamplerShadowMap)
	assert.Equal(t, int32(1), v)

	draws := rec.Calls("DrawTriangles")
	require.Len(t, draws, 1)
	assert.Equal(t, int32(3), draws[0].Args[1])
}

func TestReleaseOwnsMeshOnly(t *testing.T) {
	rec := backendtest.NewRecorder()
	tex := material.NewTexture(rec, common.SolidTexture([4]byte{}))
	obj := newObject(t, rec)
	obj.AddTexture(tex, material.SamplerDiffuse)

	obj.Release()
	obj.Release()
	assert.Equal(t, 1, rec.Deleted["mesh"])
	assert.Zero(t, rec.Deleted["texture"])
	assert.Nil(t, obj.Mesh())
	assert.NotEqual(t, obj.ID(), newObject(t, rec).ID())
}
