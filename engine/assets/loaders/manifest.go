package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

/** @brief Global options of a primitive manifest. */
type ManifestSettings struct {
	LogLevel    string `toml:"log_level"`
	OutputDir   string `toml:"output_dir"`
	UVPreview   bool   `toml:"uv_preview"`
	PreviewSize int    `toml:"preview_size"`
}

/** @brief One [[primitive]] table of a manifest. */
type manifestPrimitive struct {
	Name         string  `toml:"name"`
	Kind         string  `toml:"kind"`
	Material     string  `toml:"material"`
	Width        float32 `toml:"width"`
	Height       float32 `toml:"height"`
	Depth        float32 `toml:"depth"`
	Radius       float32 `toml:"radius"`
	Slices       uint32  `toml:"slices"`
	Stacks       uint32  `toml:"stacks"`
	Subdivisions uint32  `toml:"subdivisions"`
	Weld         bool    `toml:"weld"`
}

type manifestFile struct {
	Settings   ManifestSettings    `toml:"settings"`
	Primitives []manifestPrimitive `toml:"primitive"`
}

/**
 * @brief A parsed primitive manifest: the settings and one geometry config
 * per [[primitive]] table, in file order.
 */
type Manifest struct {
	Settings   ManifestSettings
	Primitives []metadata.GeometryConfig
}

// ManifestLoader loads TOML primitive manifests.
type ManifestLoader struct{}

func (ml *ManifestLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeManifest {
		return nil, fmt.Errorf("manifest loader cannot load %s: %w", path, ErrUnexpectedType)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	manifest, err := ParseManifest(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return &metadata.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		DataSize: uint64(len(manifest.Primitives)),
		Data:     manifest,
	}, nil
}

func (ml *ManifestLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

// ParseManifest decodes a manifest. Unknown keys, unknown primitive kinds and
// duplicate or path-like names are rejected. Parameter ranges are checked by the generators.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var file manifestFile
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&file); err != nil {
		return nil, err
	}

	if _, err := core.ParseLogLevel(file.Settings.LogLevel); err != nil {
		return nil, err
	}
	if file.Settings.PreviewSize < 0 {
		return nil, fmt.Errorf("preview_size must not be negative, got %d", file.Settings.PreviewSize)
	}

	manifest := &Manifest{
		Settings:   file.Settings,
		Primitives: make([]metadata.GeometryConfig, 0, len(file.Primitives)),
	}
	names := make(map[string]int, len(file.Primitives))
	for i, p := range file.Primitives {
		kind, err := metadata.PrimitiveKindFromString(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w: %v", i, core.ErrUnknownPrimitive, err)
		}
		if strings.ContainsAny(p.Name, `/\`) || p.Name == "." || p.Name == ".." {
			return nil, fmt.Errorf("primitive %d: name '%s' is not a valid file name", i, p.Name)
		}
		if len(p.Name) > 0 {
			if first, ok := names[p.Name]; ok {
				return nil, fmt.Errorf("primitive %d: name '%s' already used by primitive %d", i, p.Name, first)
			}
			names[p.Name] = i
		}
		manifest.Primitives = append(manifest.Primitives, metadata.GeometryConfig{
			Kind:         kind,
			Width:        p.Width,
			Height:       p.Height,
			Depth:        p.Depth,
			Radius:       p.Radius,
			Slices:       p.Slices,
			Stacks:       p.Stacks,
			Subdivisions: p.Subdivisions,
			Weld:         p.Weld,
			Name:         p.Name,
			MaterialName: p.Material,
		})
	}

	core.LogDebug("manifest parsed: %d primitives", len(manifest.Primitives))

	return manifest, nil
}
