package mesh

import (
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/math"
)

// GeoSphere builds a geodesic sphere: a unit icosahedron subdivided
// `subdivisions` times in flat space, then projected onto the sphere of the
// given radius. Normals, tangents and texture coordinates are derived from the
// projected positions.
//
// Edge lengths are not geodesically uniform: midpoints are computed linearly
// before projection, so low subdivision counts show some sphericity error.
func GeoSphere(radius float32, subdivisions uint32) (*Mesh, error) {
	if !(radius > 0) {
		return nil, core.NewContractError("mesh.GeoSphere", "radius", radius, core.ErrInvalidRadius)
	}
	if _, _, ok := subdividedCounts(12, 20, subdivisions); !ok {
		return nil, core.NewContractError("mesh.GeoSphere", "subdivisions", subdivisions, core.ErrTooManyVertices)
	}

	mesh := &Mesh{
		Vertices: make([]math.Vertex, len(icosahedronPositions)),
		Indices:  make([]uint32, len(icosahedronIndices)),
	}
	for i, p := range icosahedronPositions {
		mesh.Vertices[i].Position = p
	}
	copy(mesh.Indices, icosahedronIndices[:])

	for i := uint32(0); i < subdivisions; i++ {
		mesh.Subdivide()
	}

	mesh.projectOntoSphere(radius)

	core.LogDebug("geosphere r=%g, %d subdivisions: %d vertices, %d triangles",
		radius, subdivisions, mesh.VertexCount(), mesh.TriangleCount())

	return mesh, nil
}

// projectOntoSphere moves every vertex onto the sphere of the given radius and
// recomputes its attributes from spherical coordinates. Topology is untouched.
func (m *Mesh) projectOntoSphere(radius float32) {
	for i := range m.Vertices {
		v := &m.Vertices[i]

		v.Normal = v.Position.Normalized()
		v.Position = v.Normal.MulScalar(radius)

		// Derive texture coordinates from spherical coordinates.
		theta := math.WrapAngle(math.Atan2(v.Position.Z, v.Position.X), math.K_PI_2)
		phi := math.Acos(v.Position.Y / radius)

		v.Texcoord = math.NewVec2(theta/math.K_PI_2, phi/math.K_PI)
		v.Tangent = sphericalTangent(radius, phi, theta)
	}
}
