package metadata

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/tessera/engine/math"
)

/** @brief The name of the default geometry. */
const DefaultGeometryName string = "default"

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/** @brief Marks an unassigned geometry id. */
const InvalidID uint32 = 4294967295

/** @brief Marks an unassigned geometry generation. */
const InvalidIDUint16 uint16 = 65535

/** @brief The procedural primitive a geometry is generated from. */
type PrimitiveKind int

const (
	/** @brief Axis-aligned box with flat per-face attributes. */
	PrimitiveKindBrick PrimitiveKind = iota
	/** @brief Pole-to-pole latitude/longitude sphere. */
	PrimitiveKindSphere
	/** @brief Subdivided icosahedron projected onto a sphere. */
	PrimitiveKindGeoSphere
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveKindBrick:
		return "brick"
	case PrimitiveKindSphere:
		return "sphere"
	case PrimitiveKindGeoSphere:
		return "geosphere"
	}
	return fmt.Sprintf("PrimitiveKind(%d)", int(k))
}

// PrimitiveKindFromString accepts the names used in manifests, case-insensitive:
// brick, box and cube; sphere, uv_sphere and uvsphere; geosphere, geo_sphere and icosphere.
func PrimitiveKindFromString(s string) (PrimitiveKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brick", "box", "cube":
		return PrimitiveKindBrick, nil
	case "sphere", "uv_sphere", "uvsphere":
		return PrimitiveKindSphere, nil
	case "geosphere", "geo_sphere", "icosphere":
		return PrimitiveKindGeoSphere, nil
	}
	return 0, fmt.Errorf("string %s is not a valid primitive kind", s)
}

/**
 * @brief Represents the configuration for a generated geometry: which primitive
 * to build and with which parameters. Parameters that do not apply to Kind are ignored.
 */
type GeometryConfig struct {
	/** @brief The primitive to generate. */
	Kind PrimitiveKind
	/** @brief Brick extents. */
	Width, Height, Depth float32
	/** @brief Sphere and geosphere radius. */
	Radius float32
	/** @brief UV sphere longitude segments. */
	Slices uint32
	/** @brief UV sphere latitude bands. */
	Stacks uint32
	/** @brief Number of subdivision passes for brick and geosphere. */
	Subdivisions uint32
	/** @brief Merge bit-identical vertices after generation. Off by default. */
	Weld bool

	/** @brief The Name of the geometry. */
	Name string
	/** @brief The name of the material used by the geometry. */
	MaterialName string
}

/**
 * @brief The finished geometry handed to the rendering collaborator: vertex and
 * index arrays plus the layout needed to upload them.
 */
type GeometryExport struct {
	/** @brief The Name of the geometry. */
	Name string
	/** @brief The name of the material used by the geometry. */
	MaterialName string
	/** @brief The attribute layout of Vertices. */
	Layout VertexLayout
	/** @brief The vertex array. */
	Vertices []math.Vertex
	/** @brief The triangle list, three indices per triangle. */
	Indices []uint32

	Center  math.Vec3
	Extents math.Extents3D
}

func (g *GeometryExport) VertexCount() uint32 {
	return uint32(len(g.Vertices))
}

func (g *GeometryExport) IndexCount() uint32 {
	return uint32(len(g.Indices))
}

/**
 * @brief Returns the vertex buffer as tightly packed little-endian bytes,
 * Layout.Stride bytes per vertex.
 */
func (g *GeometryExport) VertexBytes() []byte {
	return EncodeVertices(g.Vertices)
}

/**
 * @brief Returns the index buffer as little-endian uint32 bytes.
 */
func (g *GeometryExport) IndexBytes() []byte {
	return EncodeIndices(g.Indices)
}

type GeometryReference struct {
	ReferenceCount uint64
	Geometry       *Geometry
	AutoRelease    bool
}

/**
 * @brief Represents a geometry registered with the geometry system.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The configuration the geometry was generated from. */
	Config GeometryConfig
	/** @brief The generated data. */
	Export *GeometryExport
}
