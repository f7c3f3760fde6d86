package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad() ([]common.Vertex, []uint32) {
	return make([]common.Vertex, 4), []uint32{0, 1, 2, 0, 2, 3}
}

func TestMeshDrawBindsAndUnbinds(t *testing.T) {
	rec := backendtest.NewRecorder()
	v, i := quad()
	m := NewMesh(rec, "quad", v, i)
	assert.Equal(t, int32(6), m.IndexCount())

	rec.Reset()
	m.Draw()

	calls := rec.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "BindVertexArray", calls[0].Name)
	assert.Equal(t, []any{m.VAO(), int32(6)}, calls[1].Args)
	assert.Equal(t, []any{uint32(0)}, calls[2].Args)
}

func TestModelReleaseAndDetach(t *testing.T) {
	rec := backendtest.NewRecorder()
	cache := material.NewTextureCache(rec)
	mat := material.NewMaterial(material.WithDiffuseTexture(material.Fallback(cache)))
	v, i := quad()

	mdl := NewModel(
		WithName("quads"),
		WithPart(NewMesh(rec, "a", v, i), mat),
		WithPart(NewMesh(rec, "b", v, i), mat),
		WithTextureCache(cache),
	)
	require.Len(t, mdl.Parts(), 2)

	parts := mdl.DetachParts()
	mdl.Release()
	assert.Zero(t, rec.Deleted["mesh"])
	assert.Equal(t, 1, rec.Deleted["texture"])

	for _, p := range parts {
		p.Mesh.Release()
		p.Mesh.Release()
	}
	assert.Equal(t, 2, rec.Deleted["mesh"])
}
