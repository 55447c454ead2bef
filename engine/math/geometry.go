package math

import (
	"github.com/chewxy/math32"

	"github.com/spaghettifunk/tessera/engine/core"
)

// GeometryGenerateNormals overwrites the normal of every referenced vertex with
// the face normal of the last triangle that references it. The face normal
// follows the counter-clockwise winding of the triangle.
func GeometryGenerateNormals(vertices []Vertex, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		vertices[i0].Normal = FaceNormal(vertices[i0].Position, vertices[i1].Position, vertices[i2].Position)
		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		vertices[i1].Normal = vertices[i0].Normal
		vertices[i2].Normal = vertices[i0].Normal
	}
}

// FaceNormal returns the unit normal of the triangle (p0, p1, p2) wound counter-clockwise.
func FaceNormal(p0, p1, p2 Vec3) Vec3 {
	edge1 := p1.Sub(p0)
	edge2 := p2.Sub(p0)
	return edge1.Cross(edge2).Normalized()
}

// vertexKey is the bit pattern of every attribute of a vertex, so that -0 and
// +0 stay distinct and identical NaNs merge.
type vertexKey [11]uint32

func keyOf(v Vertex) vertexKey {
	return vertexKey{
		math32.Float32bits(v.Position.X), math32.Float32bits(v.Position.Y), math32.Float32bits(v.Position.Z),
		math32.Float32bits(v.Normal.X), math32.Float32bits(v.Normal.Y), math32.Float32bits(v.Normal.Z),
		math32.Float32bits(v.Tangent.X), math32.Float32bits(v.Tangent.Y), math32.Float32bits(v.Tangent.Z),
		math32.Float32bits(v.Texcoord.X), math32.Float32bits(v.Texcoord.Y),
	}
}

// GeometryDeduplicateVertices collapses bit-identical vertices into one and
// rewrites indices to point at the survivors. Survivors keep the order of their
// first occurrence. The input slices are not modified.
func GeometryDeduplicateVertices(vertices []Vertex, indices []uint32) ([]Vertex, []uint32) {
	uniqueVerts := make([]Vertex, 0, len(vertices))
	seen := make(map[vertexKey]uint32, len(vertices))
	remap := make([]uint32, len(vertices))

	for v, vert := range vertices {
		key := keyOf(vert)
		if u, found := seen[key]; found {
			remap[v] = u
			continue
		}
		u := uint32(len(uniqueVerts))
		seen[key] = u
		remap[v] = u
		uniqueVerts = append(uniqueVerts, vert)
	}

	outIndices := make([]uint32, len(indices))
	for i, idx := range indices {
		outIndices[i] = remap[idx]
	}

	removedCount := len(vertices) - len(uniqueVerts)
	core.LogDebug("geometry_deduplicate_vertices: removed %d vertices, orig/now %d/%d.", removedCount, len(vertices), len(uniqueVerts))

	return uniqueVerts, outIndices
}
