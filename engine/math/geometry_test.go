package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceNormalFollowsWinding(t *testing.T) {
	p0 := NewVec3(0, 0, 0)
	p1 := NewVec3(1, 0, 0)
	p2 := NewVec3(0, 1, 0)

	assert.Equal(t, NewVec3(0, 0, 1), FaceNormal(p0, p1, p2))
	assert.Equal(t, NewVec3(0, 0, -1), FaceNormal(p0, p2, p1))
}

func TestGeometryGenerateNormals(t *testing.T) {
	vertices := []Vertex{
		{Position: NewVec3(0, 0, 0)},
		{Position: NewVec3(0, 0, 1)},
		{Position: NewVec3(1, 0, 0)},
	}
	GeometryGenerateNormals(vertices, []uint32{0, 1, 2})
	for _, v := range vertices {
		assert.Equal(t, NewVec3(0, 1, 0), v.Normal)
	}
}

func TestGeometryDeduplicateVertices(t *testing.T) {
	a := Vertex{Position: NewVec3(0, 0, 0)}
	b := Vertex{Position: NewVec3(1, 0, 0)}
	c := Vertex{Position: NewVec3(0, 1, 0)}
	vertices := []Vertex{a, b, c, b, a, NewVertexWithPosition(0, 0, 1)}
	indices := []uint32{0, 1, 2, 3, 4, 5}

	outVerts, outIndices := GeometryDeduplicateVertices(vertices, indices)
	require.Len(t, outVerts, 4)
	assert.Equal(t, []Vertex{a, b, c, vertices[5]}, outVerts)
	assert.Equal(t, []uint32{0, 1, 2, 1, 0, 3}, outIndices)

	// Inputs are left alone.
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, indices)
	assert.Len(t, vertices, 6)
}

func TestDeduplicateVerticesComparesBits(t *testing.T) {
	positive := NewVertexWithPosition(0, 1, 0)
	negative := positive
	negative.Position.X = math32.Copysign(0, -1)
	nan := NewVertexWithPosition(math32.NaN(), 0, 0)

	vertices := []Vertex{positive, negative, nan, nan}
	outVerts, outIndices := GeometryDeduplicateVertices(vertices, []uint32{0, 1, 2, 0, 1, 3})

	// -0 and +0 differ, the two NaN vertices share one bit pattern.
	require.Len(t, outVerts, 3)
	assert.Equal(t, []uint32{0, 1, 2, 0, 1, 2}, outIndices)
	assert.True(t, math32.Signbit(outVerts[1].Position.X))
}
