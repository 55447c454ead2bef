// Package mesh builds indexed triangle meshes for procedural primitives and
// refines them with midpoint subdivision.
package mesh

import (
	"fmt"
	stdmath "math"

	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/math"
)

// Mesh is an indexed triangle list. Indices are grouped in triples, each triple
// naming one counter-clockwise (outward facing) triangle by vertex slot.
// A vertex slot, once assigned, is never reused.
type Mesh struct {
	Vertices []math.Vertex
	Indices  []uint32
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertex indices of triangle t.
func (m *Mesh) Triangle(t int) (uint32, uint32, uint32) {
	return m.Indices[t*3], m.Indices[t*3+1], m.Indices[t*3+2]
}

// Validate checks that the index list is made of whole triangles and that
// every index refers to an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", core.ErrIndexCountNotTriangles, len(m.Indices))
	}
	count := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= count {
			return fmt.Errorf("%w: indices[%d] = %d, vertex count %d", core.ErrIndexOutOfRange, i, idx, count)
		}
	}
	return nil
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: make([]math.Vertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Indices, m.Indices)
	return out
}

// Extents returns the axis-aligned bounds of all vertex positions.
func (m *Mesh) Extents() math.Extents3D {
	if len(m.Vertices) == 0 {
		return math.Extents3D{}
	}
	ext := math.Extents3D{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		ext.Min = ext.Min.Min(v.Position)
		ext.Max = ext.Max.Max(v.Position)
	}
	return ext
}

// Weld merges vertices whose attributes are bit-identical and returns the
// number of vertices removed. Generators never call it: midpoints on shared
// edges are duplicated on purpose and must be welded explicitly.
func (m *Mesh) Weld() int {
	before := len(m.Vertices)
	m.Vertices, m.Indices = math.GeometryDeduplicateVertices(m.Vertices, m.Indices)
	return before - len(m.Vertices)
}

// subdividedCounts predicts vertex and triangle counts after n subdivision
// passes and reports whether the vertex count still fits a uint32 index.
func subdividedCounts(vertices, triangles uint64, n uint32) (uint64, uint64, bool) {
	for i := uint32(0); i < n; i++ {
		vertices += 3 * triangles
		triangles *= 4
		if vertices > stdmath.MaxUint32 {
			return vertices, triangles, false
		}
	}
	return vertices, triangles, true
}
