package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/tessera/engine/core"
)

func TestGeoSphereCounts(t *testing.T) {
	tests := []struct {
		subdivisions uint32
		vertices     int
		triangles    int
	}{
		{0, 12, 20},
		{1, 72, 80},
		{2, 312, 320},
		{3, 1272, 1280},
	}
	for _, tt := range tests {
		m, err := GeoSphere(1, tt.subdivisions)
		require.NoError(t, err)
		requireWellFormed(t, m)
		assert.Equal(t, tt.vertices, m.VertexCount(), "subdivisions %d", tt.subdivisions)
		assert.Equal(t, tt.triangles, m.TriangleCount(), "subdivisions %d", tt.subdivisions)
	}
}

func TestGeoSphereVerticesLieOnSphere(t *testing.T) {
	const radius = 3
	m, err := GeoSphere(radius, 2)
	require.NoError(t, err)

	for i, v := range m.Vertices {
		assert.InDelta(t, radius, v.Position.Length(), 1e-4, "vertex %d", i)
		assert.InDelta(t, 1, v.Normal.Length(), 1e-5, "vertex %d", i)
		tolAssertEqualVec3(t, 1e-5, v.Position.MulScalar(1.0/radius), v.Normal)

		assert.InDelta(t, 1, v.Tangent.Length(), 1e-5, "vertex %d", i)
		assert.InDelta(t, 0, v.Tangent.Dot(v.Normal), 1e-5, "vertex %d", i)
		assert.Equal(t, float32(0), v.Tangent.Y, "vertex %d", i)

		assert.GreaterOrEqual(t, v.Texcoord.X, float32(0))
		assert.LessOrEqual(t, v.Texcoord.X, float32(1))
		assert.GreaterOrEqual(t, v.Texcoord.Y, float32(0))
		assert.LessOrEqual(t, v.Texcoord.Y, float32(1))
	}
}

func TestGeoSphereTexcoordsFollowPosition(t *testing.T) {
	m, err := GeoSphere(1, 0)
	require.NoError(t, err)

	// (0, Z, X) sits in the upper hemisphere on the +Z side: theta = PI/2.
	v := m.Vertices[4]
	assert.InDelta(t, 0.25, v.Texcoord.X, 1e-5)
	assert.Less(t, v.Texcoord.Y, float32(0.5))

	// (0, -Z, -X) is its antipode: theta = 3PI/2, lower hemisphere.
	v = m.Vertices[7]
	assert.InDelta(t, 0.75, v.Texcoord.X, 1e-5)
	assert.Greater(t, v.Texcoord.Y, float32(0.5))
}

func TestGeoSphereWindsOutward(t *testing.T) {
	for _, subdivisions := range []uint32{0, 1, 3} {
		m, err := GeoSphere(2, subdivisions)
		require.NoError(t, err)
		assertOutwardWinding(t, m)
	}
}

func TestGeoSphereWeldMergesSharedMidpoints(t *testing.T) {
	m, err := GeoSphere(1, 1)
	require.NoError(t, err)

	// 30 icosahedron edges, each midpoint emitted once per adjacent face.
	assert.Equal(t, 30, m.Weld())
	assert.Equal(t, 42, m.VertexCount())
	assert.Equal(t, 80, m.TriangleCount())
	requireWellFormed(t, m)
}

func TestGeoSphereRejectsInvalidArguments(t *testing.T) {
	m, err := GeoSphere(-2, 1)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, core.ErrInvalidRadius))

	m, err = GeoSphere(1, 20)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, core.ErrTooManyVertices))

	var contract *core.ContractError
	require.True(t, errors.As(err, &contract))
	assert.Equal(t, "mesh.GeoSphere", contract.Op)
	assert.Equal(t, "subdivisions", contract.Param)
}
