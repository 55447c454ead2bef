package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/tessera/engine/math"
)

const standardTol = 1.0e-5

func tolAssertEqualVec3(t *testing.T, tol float64, expected, actual math.Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, tol)
	assert.InDelta(t, expected.Y, actual.Y, tol)
	assert.InDelta(t, expected.Z, actual.Z, tol)
}

// requireWellFormed checks the index invariants that every mesh must hold.
func requireWellFormed(t *testing.T, m *Mesh) {
	t.Helper()
	require.NoError(t, m.Validate())
	require.Zero(t, m.IndexCount()%3)
}

// assertOutwardWinding checks that every triangle's counter-clockwise face
// normal points away from the origin.
func assertOutwardWinding(t *testing.T, m *Mesh) {
	t.Helper()
	for tri := 0; tri < m.TriangleCount(); tri++ {
		i0, i1, i2 := m.Triangle(tri)
		p0 := m.Vertices[i0].Position
		p1 := m.Vertices[i1].Position
		p2 := m.Vertices[i2].Position
		centroid := p0.Add(p1).Add(p2).MulScalar(1.0 / 3.0)
		n := math.FaceNormal(p0, p1, p2)
		if !assert.Greater(t, n.Dot(centroid), float32(0), "triangle %d faces inward", tri) {
			return
		}
	}
}
