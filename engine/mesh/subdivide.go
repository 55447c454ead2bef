package mesh

import "github.com/spaghettifunk/tessera/engine/math"

// Subdivide splits every triangle into four by inserting its edge midpoints.
//
//	       v1
//	       *
//	      / \
//	     /   \
//	  m0*-----*m1
//	   / \   / \
//	  /   \ /   \
//	 *-----*-----*
//	 v0    m2     v2
//
// Triangle t keeps its slot as (v0, m0, m2); (m0, v1, m1), (m0, m1, m2) and
// (m2, m1, v2) are appended. Only the triangles present when the call starts
// are visited. Midpoints are not shared between neighbouring triangles, so a
// pass over T triangles and V vertices leaves 4T triangles and V+3T vertices.
func (m *Mesh) Subdivide() {
	numTriangles := len(m.Indices) / 3

	vertices := make([]math.Vertex, len(m.Vertices), len(m.Vertices)+numTriangles*3)
	copy(vertices, m.Vertices)
	indices := make([]uint32, len(m.Indices), len(m.Indices)*4)
	copy(indices, m.Indices)

	for t := 0; t < numTriangles; t++ {
		i0 := indices[t*3]
		i1 := indices[t*3+1]
		i2 := indices[t*3+2]

		m0Index := uint32(len(vertices))
		m1Index := m0Index + 1
		m2Index := m0Index + 2

		v0 := vertices[i0]
		v1 := vertices[i1]
		v2 := vertices[i2]

		vertices = append(vertices,
			math.Midpoint(v0, v1),
			math.Midpoint(v1, v2),
			math.Midpoint(v0, v2),
		)

		// Update v0-v1-v2 triangle to v0-m0-m2.
		indices[t*3+1] = m0Index
		indices[t*3+2] = m2Index

		indices = append(indices,
			m0Index, i1, m1Index,
			m0Index, m1Index, m2Index,
			m2Index, m1Index, i2,
		)
	}

	m.Vertices = vertices
	m.Indices = indices
}
