package model

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	backend backend.Backend
	name    string
	buffers backend.MeshBuffers
}

// Mesh exclusively owns one vertex buffer, one index buffer and the vertex array that binds
// them with the common.Vertex layout.
type Mesh interface {
	// Name retrieves the mesh name from the source file.
	Name() string

	// IndexCount returns the number of uint32 indices in the index buffer.
	IndexCount() int32

	// VAO returns the vertex array handle, 0 after Release.
	VAO() uint32

	// Draw binds the vertex array, draws the indexed triangle list and unbinds it.
	Draw()

	// Release deletes the GPU buffers. Calling Release more than once is a no-op.
	Release()
}

var _ Mesh = &mesh{}

// NewMesh uploads vertices and indices into new GPU buffers.
//
// Parameters:
//   - b: the backend that owns the buffers
//   - name: the mesh name used in logs
//   - vertices: the vertex data
//   - indices: the triangle list into vertices
//
// Returns:
//   - Mesh: the uploaded mesh
func NewMesh(b backend.Backend, name string, vertices []common.Vertex, indices []uint32) Mesh {
	return &mesh{
		backend: b,
		name:    name,
		buffers: b.CreateMeshBuffers(vertices, indices),
	}
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) IndexCount() int32 {
	return m.buffers.IndexCount
}

func (m *mesh) VAO() uint32 {
	return m.buffers.VAO
}

func (m *mesh) Draw() {
	m.backend.BindVertexArray(m.buffers.VAO)
	m.backend.DrawTriangles(m.buffers.IndexCount)
	m.backend.BindVertexArray(0)
}

func (m *mesh) Release() {
	if m.buffers.VAO == 0 {
		return
	}
	m.backend.DeleteMeshBuffers(m.buffers)
	m.buffers = backend.MeshBuffers{}
}
