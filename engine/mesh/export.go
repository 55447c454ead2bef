package mesh

import (
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

// Export hands the mesh over as a GeometryExport. The export takes ownership of
// the vertex and index slices; the mesh must not be used afterwards.
func (m *Mesh) Export(name, materialName string) *metadata.GeometryExport {
	if len(name) == 0 {
		name = metadata.DefaultGeometryName
	}
	if len(materialName) == 0 {
		materialName = metadata.DefaultMaterialName
	}

	extents := m.Extents()
	export := &metadata.GeometryExport{
		Name:         name,
		MaterialName: materialName,
		Layout:       metadata.DefaultVertexLayout(),
		Vertices:     m.Vertices,
		Indices:      m.Indices,
		Extents:      extents,
		Center:       extents.Min.Add(extents.Max).MulScalar(0.5),
	}
	m.Vertices = nil
	m.Indices = nil
	return export
}

// FromConfig generates the primitive described by config.
func FromConfig(config *metadata.GeometryConfig) (*Mesh, error) {
	var (
		m   *Mesh
		err error
	)
	switch config.Kind {
	case metadata.PrimitiveKindBrick:
		m, err = Brick(config.Width, config.Height, config.Depth, config.Subdivisions)
	case metadata.PrimitiveKindSphere:
		m, err = Sphere(config.Radius, config.Slices, config.Stacks)
	case metadata.PrimitiveKindGeoSphere:
		m, err = GeoSphere(config.Radius, config.Subdivisions)
	default:
		return nil, core.NewContractError("mesh.FromConfig", "kind", config.Kind, core.ErrUnknownPrimitive)
	}
	if err != nil {
		return nil, err
	}
	if config.Weld {
		m.Weld()
	}
	return m, nil
}
