package metadata

import (
	"encoding/binary"
	stdmath "math"

	"github.com/spaghettifunk/tessera/engine/math"
)

/** @brief How the index buffer groups vertices into primitives. */
type PrimitiveTopology int

const (
	/** @brief Every three indices form one independent triangle. */
	PrimitiveTopologyTriangleList PrimitiveTopology = iota
)

/** @brief The element type of the index buffer. */
type IndexFormat int

const (
	IndexFormatUint32 IndexFormat = iota
)

/** @brief Triangle facing convention of the index buffer. */
type FrontFace int

const (
	/** @brief Front faces are wound counter-clockwise when seen from outside. */
	FrontFaceCounterClockwise FrontFace = iota
)

/**
 * @brief Describes one attribute inside an interleaved vertex.
 */
type VertexAttribute struct {
	/** @brief The attribute name, as used by shaders. */
	Name string
	/** @brief The shader input location. */
	Location uint32
	/** @brief The attribute type. */
	Type ShaderAttributeType
	/** @brief Offset in bytes from the start of the vertex. */
	Offset uint32
}

/**
 * @brief Describes the layout of a vertex buffer and its index buffer.
 */
type VertexLayout struct {
	/** @brief Size in bytes of one vertex. */
	Stride uint32
	/** @brief Attributes in memory order. */
	Attributes  []VertexAttribute
	IndexFormat IndexFormat
	Topology    PrimitiveTopology
	FrontFace   FrontFace
}

// DefaultVertexLayout returns the layout of math.Vertex.
func DefaultVertexLayout() VertexLayout {
	return VertexLayout{
		Stride:      math.VertexStride,
		IndexFormat: IndexFormatUint32,
		Topology:    PrimitiveTopologyTriangleList,
		FrontFace:   FrontFaceCounterClockwise,
		Attributes: []VertexAttribute{
			{Name: "in_position", Location: 0, Type: ShaderAttribTypeFloat32_3, Offset: math.VertexPositionOffset},
			{Name: "in_normal", Location: 1, Type: ShaderAttribTypeFloat32_3, Offset: math.VertexNormalOffset},
			{Name: "in_tangent", Location: 2, Type: ShaderAttribTypeFloat32_3, Offset: math.VertexTangentOffset},
			{Name: "in_texcoord", Location: 3, Type: ShaderAttribTypeFloat32_2, Offset: math.VertexTexcoordOffset},
		},
	}
}

// short name, for convenience
var le = binary.LittleEndian

// EncodeVertices packs vertices into the byte layout of DefaultVertexLayout.
func EncodeVertices(vertices []math.Vertex) []byte {
	buf := make([]byte, len(vertices)*int(math.VertexStride))
	for i, v := range vertices {
		b := buf[i*int(math.VertexStride):]
		putFloats(b, v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.Tangent.X, v.Tangent.Y, v.Tangent.Z,
			v.Texcoord.X, v.Texcoord.Y)
	}
	return buf
}

// DecodeVertices is the inverse of EncodeVertices. Trailing bytes that do not
// form a whole vertex are ignored.
func DecodeVertices(buf []byte) []math.Vertex {
	count := len(buf) / int(math.VertexStride)
	vertices := make([]math.Vertex, count)
	for i := range vertices {
		f := getFloats(buf[i*int(math.VertexStride):], 11)
		vertices[i] = math.Vertex{
			Position: math.NewVec3(f[0], f[1], f[2]),
			Normal:   math.NewVec3(f[3], f[4], f[5]),
			Tangent:  math.NewVec3(f[6], f[7], f[8]),
			Texcoord: math.NewVec2(f[9], f[10]),
		}
	}
	return vertices
}

func EncodeIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		le.PutUint32(buf[i*4:], idx)
	}
	return buf
}

func DecodeIndices(buf []byte) []uint32 {
	indices := make([]uint32, len(buf)/4)
	for i := range indices {
		indices[i] = le.Uint32(buf[i*4:])
	}
	return indices
}

func putFloats(b []byte, values ...float32) {
	for i, v := range values {
		le.PutUint32(b[i*4:], stdmath.Float32bits(v))
	}
}

func getFloats(b []byte, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = stdmath.Float32frombits(le.Uint32(b[i*4:]))
	}
	return out
}
