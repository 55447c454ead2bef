package loaders

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/tessera/engine/math"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

func testExport() *metadata.GeometryExport {
	return &metadata.GeometryExport{
		Name:         "tri",
		MaterialName: "default",
		Layout:       metadata.DefaultVertexLayout(),
		Vertices: []math.Vertex{
			{Position: math.NewVec3(0, 0, 0), Normal: math.NewVec3(0, 0, 1), Tangent: math.NewVec3(1, 0, 0), Texcoord: math.NewVec2(0, 0)},
			{Position: math.NewVec3(1, 0, 0), Normal: math.NewVec3(0, 0, 1), Tangent: math.NewVec3(1, 0, 0), Texcoord: math.NewVec2(1, 0)},
			{Position: math.NewVec3(0, 1, 0), Normal: math.NewVec3(0, 0, 1), Tangent: math.NewVec3(1, 0, 0), Texcoord: math.NewVec2(0, 1)},
		},
		Indices: []uint32{0, 1, 2},
		Center:  math.NewVec3(0.5, 0.5, 0),
		Extents: math.Extents3D{Min: math.NewVec3(0, 0, 0), Max: math.NewVec3(1, 1, 0)},
	}
}

func TestWriteGeometryLayout(t *testing.T) {
	export := testExport()
	buf := &bytes.Buffer{}
	require.NoError(t, WriteGeometry(buf, export))

	data := buf.Bytes()
	// resource header, geometry header, names, vertices, indices
	headerSize := 8 + 16 + 36
	require.Len(t, data, headerSize+len("tri")+len("default")+3*44+3*4)

	assert.Equal(t, metadata.ResourceMagic, le.Uint32(data[0:]))
	assert.Equal(t, uint8(metadata.ResourceTypeGeometry), data[4])
	assert.Equal(t, metadata.GeometryResourceVersion, data[5])
	assert.Equal(t, uint32(3), le.Uint32(data[8:]))
	assert.Equal(t, uint32(3), le.Uint32(data[12:]))
	assert.Equal(t, uint32(44), le.Uint32(data[16:]))

	vertexStart := headerSize + len("tri") + len("default")
	assert.Equal(t, export.VertexBytes(), data[vertexStart:vertexStart+3*44])
	assert.Equal(t, export.IndexBytes(), data[vertexStart+3*44:])
}

func TestReadGeometryRoundTrip(t *testing.T) {
	export := testExport()
	buf := &bytes.Buffer{}
	require.NoError(t, WriteGeometry(buf, export))

	decoded, err := ReadGeometry(buf)
	require.NoError(t, err)
	assert.Equal(t, export, decoded)
}

func TestReadGeometryRejectsForeignData(t *testing.T) {
	_, err := ReadGeometry(bytes.NewReader(make([]byte, 64)))
	assert.ErrorIs(t, err, ErrInvalidMagic)

	buf := &bytes.Buffer{}
	require.NoError(t, WriteGeometry(buf, testExport()))
	data := buf.Bytes()

	wrongType := append([]byte(nil), data...)
	wrongType[4] = uint8(metadata.ResourceTypeImage)
	_, err = ReadGeometry(bytes.NewReader(wrongType))
	assert.ErrorIs(t, err, ErrUnexpectedType)

	wrongVersion := append([]byte(nil), data...)
	wrongVersion[5] = 9
	_, err = ReadGeometry(bytes.NewReader(wrongVersion))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ReadGeometry(bytes.NewReader(data[:len(data)-1]))
	assert.Error(t, err)
}

func TestReadGeometryTruncatedPayload(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, binary.Write(buf, le, &metadata.ResourceHeader{
		MagicNumber:  metadata.ResourceMagic,
		ResourceType: uint8(metadata.ResourceTypeGeometry),
		Version:      metadata.GeometryResourceVersion,
	}))
	require.NoError(t, binary.Write(buf, le, &geometryHeader{
		VertexCount: 0xffffffff,
		IndexCount:  0xffffffff,
		Stride:      math.VertexStride,
	}))
	require.Equal(t, 60, buf.Len())

	_, err := ReadGeometry(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// Same header followed by a few vertices only.
	buf.Write(make([]byte, 3*math.VertexStride))
	_, err = ReadGeometry(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	path := filepath.Join(t.TempDir(), "corrupt.geom")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	_, err = (&BinaryLoader{}).Load(path, metadata.ResourceTypeGeometry, nil)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestBinaryLoader(t *testing.T) {
	export := testExport()
	path := filepath.Join(t.TempDir(), "tri.geom")
	require.NoError(t, WriteGeometryFile(path, export))

	loader := &BinaryLoader{}
	resource, err := loader.Load(path, metadata.ResourceTypeGeometry, nil)
	require.NoError(t, err)

	assert.Equal(t, "tri", resource.Name)
	assert.Equal(t, uint64(3*44+3*4), resource.DataSize)
	assert.Equal(t, export, resource.Data)

	require.NoError(t, loader.Unload(resource))
	assert.Nil(t, resource.Data)
}
