package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown or unsupported file. */
	ResourceTypeNone ResourceType = iota
	/** @brief Binary resource type. */
	ResourceTypeBinary
	/** @brief Primitive manifest (TOML list of geometry configs). */
	ResourceTypeManifest
	/** @brief Generated geometry written by the binary geometry writer. */
	ResourceTypeGeometry
	/** @brief PNG preview image. */
	ResourceTypeImage
)

/** @brief A magic number indicating the file as a tessera binary file. */
const ResourceMagic uint32 = 0xdaaaadd1

/** @brief Current version of the binary geometry format. */
const GeometryResourceVersion uint8 = 1

/**
 * @brief The header data for binary resource types.
 */
type ResourceHeader struct {
	/** @brief A magic number indicating the file as a tessera binary file. */
	MagicNumber uint32
	/** @brief The resource type. Maps to the enum ResourceType. */
	ResourceType uint8
	/** @brief The format version this resource uses. */
	Version uint8
	/** @brief Reserved for future header data.. */
	Reserved uint16
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}
