package loaders

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/tessera/engine/math"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

var (
	ErrInvalidMagic      = errors.New("not a tessera binary file")
	ErrUnexpectedType    = errors.New("unexpected resource type")
	ErrUnsupportedFormat = errors.New("unsupported geometry format")
)

// short name, for convenience
var le = binary.LittleEndian

// geometryHeader follows the resource header in a geometry file. It is
// followed by the name, the material name, the vertex buffer and the index
// buffer, in that order.
type geometryHeader struct {
	VertexCount        uint32
	IndexCount         uint32
	Stride             uint32
	NameLength         uint16
	MaterialNameLength uint16
	Center             math.Vec3
	Min                math.Vec3
	Max                math.Vec3
}

// BinaryLoader reads geometry files written by WriteGeometry.
type BinaryLoader struct{}

func (bl *BinaryLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeGeometry {
		return nil, fmt.Errorf("binary loader cannot load %s: %w", path, ErrUnexpectedType)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	export, err := ReadGeometry(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to read geometry %s: %w", path, err)
	}

	return &metadata.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		DataSize: uint64(len(export.Vertices))*uint64(export.Layout.Stride) + uint64(len(export.Indices))*4,
		Data:     export,
	}, nil
}

func (bl *BinaryLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

// WriteGeometry writes export as a binary geometry resource. Every value is
// little-endian and the vertex buffer keeps the upload layout byte for byte.
func WriteGeometry(w io.Writer, export *metadata.GeometryExport) error {
	if len(export.Name) > 0xffff || len(export.MaterialName) > 0xffff {
		return fmt.Errorf("geometry name too long: %w", ErrUnsupportedFormat)
	}

	buf := &bytes.Buffer{}
	binary.Write(buf, le, &metadata.ResourceHeader{
		MagicNumber:  metadata.ResourceMagic,
		ResourceType: uint8(metadata.ResourceTypeGeometry),
		Version:      metadata.GeometryResourceVersion,
	})
	binary.Write(buf, le, &geometryHeader{
		VertexCount:        export.VertexCount(),
		IndexCount:         export.IndexCount(),
		Stride:             math.VertexStride,
		NameLength:         uint16(len(export.Name)),
		MaterialNameLength: uint16(len(export.MaterialName)),
		Center:             export.Center,
		Min:                export.Extents.Min,
		Max:                export.Extents.Max,
	})
	buf.WriteString(export.Name)
	buf.WriteString(export.MaterialName)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	if _, err := w.Write(export.VertexBytes()); err != nil {
		return err
	}
	_, err := w.Write(export.IndexBytes())
	return err
}

// WriteGeometryFile writes export to path, replacing any existing file.
func WriteGeometryFile(path string, export *metadata.GeometryExport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := WriteGeometry(w, export); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadGeometry decodes a geometry written by WriteGeometry.
func ReadGeometry(r io.Reader) (*metadata.GeometryExport, error) {
	var header metadata.ResourceHeader
	if err := binary.Read(r, le, &header); err != nil {
		return nil, err
	}
	if header.MagicNumber != metadata.ResourceMagic {
		return nil, ErrInvalidMagic
	}
	if header.ResourceType != uint8(metadata.ResourceTypeGeometry) {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedType, header.ResourceType)
	}
	if header.Version != metadata.GeometryResourceVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedFormat, header.Version)
	}

	var gh geometryHeader
	if err := binary.Read(r, le, &gh); err != nil {
		return nil, err
	}
	if gh.Stride != math.VertexStride {
		return nil, fmt.Errorf("%w: stride %d", ErrUnsupportedFormat, gh.Stride)
	}

	names := make([]byte, int(gh.NameLength)+int(gh.MaterialNameLength))
	if _, err := io.ReadFull(r, names); err != nil {
		return nil, err
	}

	vertexBytes, err := readPayload(r, int64(gh.VertexCount)*int64(gh.Stride))
	if err != nil {
		return nil, fmt.Errorf("vertex buffer: %w", err)
	}
	indexBytes, err := readPayload(r, int64(gh.IndexCount)*4)
	if err != nil {
		return nil, fmt.Errorf("index buffer: %w", err)
	}

	return &metadata.GeometryExport{
		Name:         string(names[:gh.NameLength]),
		MaterialName: string(names[gh.NameLength:]),
		Layout:       metadata.DefaultVertexLayout(),
		Vertices:     metadata.DecodeVertices(vertexBytes),
		Indices:      metadata.DecodeIndices(indexBytes),
		Center:       gh.Center,
		Extents:      math.Extents3D{Min: gh.Min, Max: gh.Max},
	}, nil
}

// readPayload reads exactly n bytes. The buffer grows with the data actually
// read, so a corrupt header cannot request a huge allocation up front.
func readPayload(r io.Reader, n int64) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf.Bytes(), nil
}
