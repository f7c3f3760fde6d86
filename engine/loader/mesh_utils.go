package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// generateNormals writes smooth per-vertex normals by accumulating area-weighted face normals
// over every triangle that references the vertex. Vertices touched only by degenerate
// triangles get +Y. When explicit is non-nil, vertices with explicit[i] set keep the normal
// they were imported with.
func generateNormals(vertices []common.Vertex, indices []uint32, explicit []bool) {
	accum := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := vertices[i0].Position, vertices[i1].Position, vertices[i2].Position
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		accum[i0] = accum[i0].Add(face)
		accum[i1] = accum[i1].Add(face)
		accum[i2] = accum[i2].Add(face)
	}
	for i, n := range accum {
		if explicit != nil && explicit[i] {
			continue
		}
		if n.Len() < 1e-6 {
			vertices[i].Normal = common.WorldUp
			continue
		}
		vertices[i].Normal = n.Normalize()
	}
}

// validateIndices rejects index lists that are not whole triangles or reference missing vertices.
func validateIndices(indices []uint32, vertexCount int) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("index %d out of range for %d vertices", idx, vertexCount)
		}
	}
	return nil
}
