package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief Represents a single vertex in 3D space.
 *
 * The struct is uploaded to the GPU as raw bytes, so the field order is part of
 * the contract. Every field is float32, which leaves no padding:
 *
 *	Position  offset  0, 3 x float32
 *	Normal    offset 12, 3 x float32
 *	Tangent   offset 24, 3 x float32
 *	Texcoord  offset 36, 2 x float32
 *	stride 44 bytes
 */
type Vertex struct {
	/** @brief The position of the vertex */
	Position Vec3
	/** @brief The normal of the vertex. Unit length by convention. */
	Normal Vec3
	/** @brief The tangent of the vertex, aligned with increasing u. */
	Tangent Vec3
	/** @brief The texture coordinate of the vertex. In [0,1] by convention. */
	Texcoord Vec2
}

const (
	/** @brief Byte offset of Vertex.Position. */
	VertexPositionOffset uint32 = 0
	/** @brief Byte offset of Vertex.Normal. */
	VertexNormalOffset uint32 = 12
	/** @brief Byte offset of Vertex.Tangent. */
	VertexTangentOffset uint32 = 24
	/** @brief Byte offset of Vertex.Texcoord. */
	VertexTexcoordOffset uint32 = 36
	/** @brief Size in bytes of a tightly packed Vertex. */
	VertexStride uint32 = 44
)
