package loader

import (
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportOBJ(t *testing.T) {
	l := NewLoader(backendtest.NewRecorder())
	imported, err := l.Import(filepath.Join("testdata", "quad.obj"))
	require.NoError(t, err)

	assert.Equal(t, "quad", imported.Name)
	require.Len(t, imported.Meshes, 2)
	require.Len(t, imported.Materials, 2)

	floor := imported.Meshes[0]
	assert.Equal(t, "floor/brick", floor.Name)
	assert.Equal(t, 0, floor.MaterialIndex)
	assert.Len(t, floor.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, floor.Indices)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, floor.Vertices[0].Normal)
	assert.Equal(t, mgl32.Vec2{1, 1}, floor.Vertices[2].TexCoord)

	tri := imported.Meshes[1]
	assert.Equal(t, 1, tri.MaterialIndex)
	require.Len(t, tri.Vertices, 3)
	assert.Equal(t, mgl32.Vec3{-1, 0, -1}, tri.Vertices[0].Position)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, tri.Vertices[0].Normal)

	brick := imported.Materials[0]
	require.NotNil(t, brick.DiffuseTexture)
	require.NotNil(t, brick.NormalTexture)
	assert.True(t, brick.DiffuseTexture.FlipV)
	assert.Equal(t, filepath.Join("testdata", "checker.png"), brick.DiffuseTexture.Path)
	assert.Equal(t, filepath.Join("testdata", "missing_ddn.png"), brick.NormalTexture.Path)
	assert.Nil(t, imported.Materials[1].DiffuseTexture)
}

func TestImportGLTF(t *testing.T) {
	l := NewLoader(backendtest.NewRecorder())
	imported, err := l.Import(filepath.Join("testdata", "tri.gltf"))
	require.NoError(t, err)

	assert.Equal(t, "tri", imported.Name)
	require.Len(t, imported.Meshes, 1)
	mesh := imported.Meshes[0]
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, mesh.Vertices[1].Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, mesh.Vertices[0].Normal)

	tex := imported.Materials[0].DiffuseTexture
	require.NotNil(t, tex)
	assert.False(t, tex.FlipV)
	assert.Equal(t, common.FilterNearest, tex.Filter)
	assert.Equal(t, common.WrapClampToEdge, tex.Wrap)
	assert.Nil(t, imported.Materials[0].NormalTexture)
}

func TestImportErrors(t *testing.T) {
	l := NewLoader(backendtest.NewRecorder())

	_, err := l.Import(filepath.Join("testdata", "broken.obj"))
	var loadErr *common.AssetLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "line 3")

	_, err = l.Import(filepath.Join("testdata", "nope.obj"))
	assert.True(t, errors.As(err, &loadErr))

	_, err = l.Import(filepath.Join("testdata", "checker.png"))
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "unsupported model format")
}

func TestParseOBJFaces(t *testing.T) {
	src := strings.Join([]string{
		"v 0 0 0", "v 1 0 0", "v 1 1 0", "v 0 1 0", "v 0 2 0",
		"f 1 2 3 4 5",
		"f 1 2 3",
	}, "\n")
	imported, err := parseOBJ(strings.NewReader(src), ".", "pentagon")
	require.NoError(t, err)
	require.Len(t, imported.Meshes, 1)

	m := imported.Meshes[0]
	assert.Len(t, m.Vertices, 5)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 1, 2}, m.Indices)
	assert.Equal(t, -1, m.MaterialIndex)

	_, err = parseOBJ(strings.NewReader("v 0 0 0\n"), ".", "empty")
	assert.ErrorContains(t, err, "no faces")

	_, err = parseOBJ(strings.NewReader("v 0 0 0\nf 1 0 1"), ".", "zero")
	assert.ErrorContains(t, err, "zero index")
}

func TestParseOBJMixedNormals(t *testing.T) {
	src := strings.Join([]string{
		"v 0 0 0", "v 1 0 0", "v 0 1 0", "v 1 1 0",
		"vn 1 0 0",
		"f 1//1 2//1 3//1",
		"f 2 4 3",
	}, "\n")
	imported, err := parseOBJ(strings.NewReader(src), ".", "mixed")
	require.NoError(t, err)
	require.Len(t, imported.Meshes, 1)

	m := imported.Meshes[0]
	require.Len(t, m.Vertices, 6)
	for i := 0; i < 3; i++ {
		assert.Equal(t, mgl32.Vec3{1, 0, 0}, m.Vertices[i].Normal, "vertex %d keeps its vn", i)
	}
	for i := 3; i < 6; i++ {
		assert.True(t, m.Vertices[i].Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}), "vertex %d gets the face normal", i)
	}
}

func TestLoadUploadsMeshesAndTextures(t *testing.T) {
	rec := backendtest.NewRecorder()
	l := NewLoader(rec, WithDecodeWorkers(2))
	defer l.Release()

	mdl, err := l.Load("testdata", "quad.obj")
	require.NoError(t, err)
	defer mdl.Release()

	parts := mdl.Parts()
	require.Len(t, parts, 2)
	assert.Equal(t, 2, rec.Count("CreateMeshBuffers"))
	// checker.png plus the white fallback for the untextured material; the missing normal map is skipped.
	assert.Equal(t, 2, rec.Count("CreateTexture2D"))

	brick := parts[0].Material.Descriptors()
	require.Len(t, brick, 1)
	assert.Equal(t, material.SamplerDiffuse, brick[0].Name)

	w, h := parts[1].Material.DiffuseTexture().Size()
	assert.Equal(t, int32(1), w)
	assert.Equal(t, int32(1), h)
}

// countingPool records how many decode tasks reach the wrapped pool.
type countingPool struct {
	worker.DynamicWorkerPool
	submitted atomic.Int32
}

func (p *countingPool) SubmitTask(task worker.Task) {
	p.submitted.Add(1)
	p.DynamicWorkerPool.SubmitTask(task)
}

func TestLoadsShareWorkerPool(t *testing.T) {
	pool := &countingPool{DynamicWorkerPool: NewDecodePool(2)}
	defer pool.Stop()

	rec := backendtest.NewRecorder()
	l := NewLoader(rec, WithWorkerPool(pool))
	for i := 0; i < 2; i++ {
		mdl, err := l.Load("testdata", "quad.obj")
		require.NoError(t, err)
		mdl.Release()
	}
	// quad.obj references checker.png and a missing normal map, each decoded once per Load.
	assert.Equal(t, int32(4), pool.submitted.Load())

	// Releasing the Loader leaves a borrowed pool running.
	l.Release()
	tex := &common.ImportedTexture{Path: filepath.Join("testdata", "checker.png")}
	decoded, failed := decodeTextures(pool, []*common.ImportedTexture{tex})
	assert.Empty(t, failed)
	assert.Contains(t, decoded, tex.Key())
}

func TestDecodeTextures(t *testing.T) {
	tex := &common.ImportedTexture{Path: filepath.Join("testdata", "checker.png"), FlipV: true}
	missing := &common.ImportedTexture{Path: filepath.Join("testdata", "missing.png")}

	pool := NewDecodePool(2)
	defer pool.Stop()

	decoded, failed := decodeTextures(pool, []*common.ImportedTexture{tex, missing})
	require.Contains(t, decoded, tex.Key())
	assert.Contains(t, failed, missing.Key())

	data := decoded[tex.Key()]
	assert.Equal(t, uint32(2), data.Width)
	// Flipped: the bottom (blue) row of the image comes first.
	assert.Equal(t, []byte{0, 0, 255, 255}, data.Pixels[:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, data.Pixels[8:12])
}
