package mesh

import (
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/math"
)

// Brick builds an axis-aligned box centered at the origin and subdivides it
// `subdivisions` times.
//
// Each of the six faces owns four corners so that every face carries its own
// flat normal, tangent and unit-square texture coordinates: 24 vertices and 36
// indices before subdivision.
func Brick(width, height, depth float32, subdivisions uint32) (*Mesh, error) {
	for _, d := range []struct {
		name  string
		value float32
	}{{"width", width}, {"height", height}, {"depth", depth}} {
		if !(d.value > 0) {
			return nil, core.NewContractError("mesh.Brick", d.name, d.value, core.ErrInvalidDimensions)
		}
	}
	if _, _, ok := subdividedCounts(24, 12, subdivisions); !ok {
		return nil, core.NewContractError("mesh.Brick", "subdivisions", subdivisions, core.ErrTooManyVertices)
	}

	half := math.NewVec3(0.5*width, 0.5*height, 0.5*depth)

	mesh := &Mesh{
		Vertices: make([]math.Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for f, face := range brickFaces {
		offset := uint32(f * 4)
		for _, c := range face.corners {
			mesh.Vertices = append(mesh.Vertices, math.Vertex{
				Position: math.NewVec3(c.sx*half.X, c.sy*half.Y, c.sz*half.Z),
				Normal:   face.normal,
				Tangent:  face.tangent,
				Texcoord: math.NewVec2(c.u, c.v),
			})
		}
		for _, i := range brickFaceIndices {
			mesh.Indices = append(mesh.Indices, offset+i)
		}
	}

	for i := uint32(0); i < subdivisions; i++ {
		mesh.Subdivide()
	}

	core.LogDebug("brick %gx%gx%g, %d subdivisions: %d vertices, %d triangles",
		width, height, depth, subdivisions, mesh.VertexCount(), mesh.TriangleCount())

	return mesh, nil
}
