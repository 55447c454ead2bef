package mesh

import (
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/math"
)

// Sphere builds a UV sphere centered at the origin, from the north pole (+Y)
// down to the south pole, with `stacks` latitude bands and `slices` longitude
// segments. Every ring repeats its first vertex at theta = 2PI so texture
// coordinates do not wrap across the seam.
func Sphere(radius float32, slices, stacks uint32) (*Mesh, error) {
	if !(radius > 0) {
		return nil, core.NewContractError("mesh.Sphere", "radius", radius, core.ErrInvalidRadius)
	}
	if slices < 3 {
		return nil, core.NewContractError("mesh.Sphere", "slices", slices, core.ErrInvalidSlices)
	}
	if stacks < 2 {
		return nil, core.NewContractError("mesh.Sphere", "stacks", stacks, core.ErrInvalidStacks)
	}
	ringVertices := slices + 1
	if uint64(ringVertices)*uint64(stacks-1)+2 > uint64(^uint32(0)) {
		return nil, core.NewContractError("mesh.Sphere", "slices*stacks", uint64(slices)*uint64(stacks), core.ErrTooManyVertices)
	}

	vertexCount := ringVertices*(stacks-1) + 2
	mesh := &Mesh{
		Vertices: make([]math.Vertex, 0, vertexCount),
		Indices:  make([]uint32, 0, 6*int(slices)*int(stacks-1)),
	}

	// From north pole moving down by stacks.
	mesh.Vertices = append(mesh.Vertices, math.Vertex{
		Position: math.NewVec3(0, radius, 0),
		Normal:   math.NewVec3Up(),
		Tangent:  math.NewVec3Right(),
		Texcoord: math.NewVec2(0, 0),
	})

	phiStep := math.K_PI / float32(stacks)
	thetaStep := math.K_PI_2 / float32(slices)

	for i := uint32(1); i < stacks; i++ {
		phi := float32(i) * phiStep
		for j := uint32(0); j <= slices; j++ {
			theta := float32(j) * thetaStep
			mesh.Vertices = append(mesh.Vertices, sphericalVertex(radius, phi, theta))
		}
	}

	mesh.Vertices = append(mesh.Vertices, math.Vertex{
		Position: math.NewVec3(0, -radius, 0),
		Normal:   math.NewVec3Down(),
		Tangent:  math.NewVec3Right(),
		Texcoord: math.NewVec2(0, 1),
	})

	// Top cap: fan from the north pole to the first ring.
	for j := uint32(0); j < slices; j++ {
		mesh.Indices = append(mesh.Indices, 0, j+2, j+1)
	}

	// Body: two triangles per quad between consecutive rings. Ring i starts
	// right after the north pole.
	for i := uint32(0); i < stacks-2; i++ {
		for j := uint32(0); j < slices; j++ {
			a := 1 + i*ringVertices + j
			b := a + ringVertices
			mesh.Indices = append(mesh.Indices,
				a, a+1, b,
				b, a+1, b+1,
			)
		}
	}

	// Bottom cap: fan from the south pole, written last, to the last ring.
	southPole := uint32(len(mesh.Vertices)) - 1
	base := southPole - ringVertices
	for j := uint32(0); j < slices; j++ {
		mesh.Indices = append(mesh.Indices, southPole, base+j, base+j+1)
	}

	core.LogDebug("sphere r=%g %dx%d: %d vertices, %d triangles",
		radius, slices, stacks, mesh.VertexCount(), mesh.TriangleCount())

	return mesh, nil
}

// sphericalVertex returns the vertex at polar angle phi (0 at the north pole)
// and azimuth theta on a sphere of the given radius.
func sphericalVertex(radius, phi, theta float32) math.Vertex {
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)

	position := math.NewVec3(
		radius*sinPhi*cosTheta,
		radius*cosPhi,
		radius*sinPhi*sinTheta,
	)

	return math.Vertex{
		Position: position,
		Normal:   position.Normalized(),
		Tangent:  sphericalTangent(radius, phi, theta),
		Texcoord: math.NewVec2(theta/math.K_PI_2, phi/math.K_PI),
	}
}

// sphericalTangent is the normalized derivative of the spherical position with
// respect to theta. It vanishes on the poles, where +X is used instead.
func sphericalTangent(radius, phi, theta float32) math.Vec3 {
	sinPhi := math.Sin(phi)
	if math.Abs(sinPhi) <= math.K_FLOAT_EPSILON {
		return math.NewVec3Right()
	}
	tangent := math.NewVec3(
		-radius*sinPhi*math.Sin(theta),
		0,
		radius*sinPhi*math.Cos(theta),
	)
	return tangent.Normalized()
}
