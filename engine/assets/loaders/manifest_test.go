package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

const sampleManifest = `
[settings]
log_level = "debug"
output_dir = "out"
uv_preview = true
preview_size = 256

[[primitive]]
name = "crate"
kind = "brick"
width = 2.0
height = 2.0
depth = 2.0
subdivisions = 1

[[primitive]]
name = "planet"
kind = "geosphere"
radius = 1.5
subdivisions = 3
weld = true

[[primitive]]
name = "ball"
kind = "sphere"
material = "rubber"
radius = 1.0
slices = 16
stacks = 8
`

func TestParseManifest(t *testing.T) {
	manifest, err := ParseManifest(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, ManifestSettings{
		LogLevel:    "debug",
		OutputDir:   "out",
		UVPreview:   true,
		PreviewSize: 256,
	}, manifest.Settings)

	require.Len(t, manifest.Primitives, 3)
	assert.Equal(t, metadata.GeometryConfig{
		Kind:         metadata.PrimitiveKindBrick,
		Width:        2,
		Height:       2,
		Depth:        2,
		Subdivisions: 1,
		Name:         "crate",
	}, manifest.Primitives[0])
	assert.Equal(t, metadata.GeometryConfig{
		Kind:         metadata.PrimitiveKindGeoSphere,
		Radius:       1.5,
		Subdivisions: 3,
		Weld:         true,
		Name:         "planet",
	}, manifest.Primitives[1])
	assert.Equal(t, metadata.GeometryConfig{
		Kind:         metadata.PrimitiveKindSphere,
		Radius:       1,
		Slices:       16,
		Stacks:       8,
		Name:         "ball",
		MaterialName: "rubber",
	}, manifest.Primitives[2])
}

func TestParseManifestRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"unknown key", "[[primitive]]\nkind = \"brick\"\ncolour = \"red\"\n"},
		{"unknown kind", "[[primitive]]\nkind = \"torus\"\n"},
		{"missing kind", "[[primitive]]\nname = \"nothing\"\n"},
		{"duplicate name", "[[primitive]]\nname = \"a\"\nkind = \"brick\"\n[[primitive]]\nname = \"a\"\nkind = \"sphere\"\n"},
		{"path name", "[[primitive]]\nname = \"../crate\"\nkind = \"brick\"\n"},
		{"negative slices", "[[primitive]]\nkind = \"sphere\"\nslices = -3\n"},
		{"bad log level", "[settings]\nlog_level = \"loud\"\n"},
		{"negative preview", "[settings]\npreview_size = -1\n"},
		{"not toml", "[[primitive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest(strings.NewReader(tt.manifest))
			assert.Error(t, err)
		})
	}

	_, err := ParseManifest(strings.NewReader("[[primitive]]\nkind = \"torus\"\n"))
	assert.True(t, errors.Is(err, core.ErrUnknownPrimitive))
}

func TestParseManifestKindAliases(t *testing.T) {
	manifest, err := ParseManifest(strings.NewReader(`
[[primitive]]
kind = "cube"
[[primitive]]
kind = "uv_sphere"
[[primitive]]
kind = "icosphere"
`))
	require.NoError(t, err)
	require.Len(t, manifest.Primitives, 3)
	assert.Equal(t, metadata.PrimitiveKindBrick, manifest.Primitives[0].Kind)
	assert.Equal(t, metadata.PrimitiveKindSphere, manifest.Primitives[1].Kind)
	assert.Equal(t, metadata.PrimitiveKindGeoSphere, manifest.Primitives[2].Kind)
}

func TestParseEmptyManifest(t *testing.T) {
	manifest, err := ParseManifest(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, manifest.Primitives)
}

func TestManifestLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o644))

	loader := &ManifestLoader{}
	resource, err := loader.Load(path, metadata.ResourceTypeManifest, nil)
	require.NoError(t, err)

	assert.Equal(t, "shapes", resource.Name)
	assert.Equal(t, path, resource.FullPath)
	manifest, ok := resource.Data.(*Manifest)
	require.True(t, ok)
	assert.Len(t, manifest.Primitives, 3)

	require.NoError(t, loader.Unload(resource))
	assert.Nil(t, resource.Data)

	_, err = loader.Load(path, metadata.ResourceTypeGeometry, nil)
	assert.ErrorIs(t, err, ErrUnexpectedType)
}
