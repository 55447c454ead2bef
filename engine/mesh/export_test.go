package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/math"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

func TestExportTakesOwnership(t *testing.T) {
	m, err := Brick(2, 4, 6, 0)
	require.NoError(t, err)
	vertices, indices := m.Vertices, m.Indices

	export := m.Export("crate", "wood")

	assert.Nil(t, m.Vertices)
	assert.Nil(t, m.Indices)
	assert.Equal(t, "crate", export.Name)
	assert.Equal(t, "wood", export.MaterialName)
	assert.Equal(t, vertices, export.Vertices)
	assert.Equal(t, indices, export.Indices)
	assert.Equal(t, uint32(24), export.VertexCount())
	assert.Equal(t, uint32(36), export.IndexCount())
}

func TestExportLayoutAndBounds(t *testing.T) {
	m, err := GeoSphere(2, 1)
	require.NoError(t, err)

	export := m.Export("", "")

	assert.Equal(t, metadata.DefaultGeometryName, export.Name)
	assert.Equal(t, metadata.DefaultMaterialName, export.MaterialName)
	assert.Equal(t, math.VertexStride, export.Layout.Stride)
	assert.Len(t, export.VertexBytes(), 72*int(math.VertexStride))
	assert.Len(t, export.IndexBytes(), 240*4)

	tolAssertEqualVec3(t, 1e-4, math.NewVec3Zero(), export.Center)
	for _, v := range export.Vertices {
		assert.LessOrEqual(t, export.Extents.Min.X, v.Position.X)
		assert.GreaterOrEqual(t, export.Extents.Max.Y, v.Position.Y)
	}
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    metadata.GeometryConfig
		vertices  int
		triangles int
	}{
		{"brick", metadata.GeometryConfig{Kind: metadata.PrimitiveKindBrick, Width: 1, Height: 1, Depth: 1, Subdivisions: 1}, 60, 48},
		{"welded brick", metadata.GeometryConfig{Kind: metadata.PrimitiveKindBrick, Width: 1, Height: 1, Depth: 1, Subdivisions: 1, Weld: true}, 54, 48},
		{"sphere", metadata.GeometryConfig{Kind: metadata.PrimitiveKindSphere, Radius: 1, Slices: 8, Stacks: 4}, 29, 48},
		{"geosphere", metadata.GeometryConfig{Kind: metadata.PrimitiveKindGeoSphere, Radius: 1, Subdivisions: 2}, 312, 320},
		{"welded geosphere", metadata.GeometryConfig{Kind: metadata.PrimitiveKindGeoSphere, Radius: 1, Subdivisions: 1, Weld: true}, 42, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromConfig(&tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.vertices, m.VertexCount())
			assert.Equal(t, tt.triangles, m.TriangleCount())
		})
	}
}

func TestFromConfigErrors(t *testing.T) {
	_, err := FromConfig(&metadata.GeometryConfig{Kind: metadata.PrimitiveKind(42)})
	assert.True(t, errors.Is(err, core.ErrUnknownPrimitive))

	_, err = FromConfig(&metadata.GeometryConfig{Kind: metadata.PrimitiveKindSphere, Radius: 1, Slices: 8})
	assert.True(t, errors.Is(err, core.ErrInvalidStacks))
}
