package engine

import "runtime"

const (
	DefaultMaxGeometryCount uint32 = 4096
	DefaultPreviewSize      int    = 512
	DefaultOutputDir        string = "."
)

type ApplicationConfig struct {
	// The application name used in log output.
	Name string
	// Path of the TOML primitive manifest.
	ManifestPath string
	// Directory receiving the .geom files. Falls back to the manifest setting.
	OutputDir string
	// Keep running and regenerate whenever the manifest changes.
	Watch bool
	// Number of generation workers. Zero means one per CPU.
	Workers int
	// Log level name. Falls back to the manifest setting.
	LogLevel string
	// Also write a UV layout PNG next to every geometry.
	UVPreview bool
	// Edge length in pixels of the UV preview. Falls back to the manifest setting.
	PreviewSize int
	// Max number of geometries registered at once.
	MaxGeometryCount uint32
}

func (c *ApplicationConfig) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

func (c *ApplicationConfig) maxGeometryCount() uint32 {
	if c.MaxGeometryCount > 0 {
		return c.MaxGeometryCount
	}
	return DefaultMaxGeometryCount
}
