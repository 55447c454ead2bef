package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spaghettifunk/tessera/engine/assets"
	"github.com/spaghettifunk/tessera/engine/assets/loaders"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/preview"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
	"github.com/spaghettifunk/tessera/engine/renderer/vulkan"
	"github.com/spaghettifunk/tessera/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Time to wait for a burst of manifest writes to settle before regenerating.
const reloadDebounce = 100 * time.Millisecond

type Engine struct {
	mu           sync.Mutex
	currentStage Stage

	config        *ApplicationConfig
	manifestPath  string
	events        *core.EventSystem
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	metrics       *core.Metrics
	clock         *core.Clock

	// geometries of the last generation, released on the next one
	geometries []*metadata.Geometry

	reload   chan struct{}
	quit     chan struct{}
	stopOnce sync.Once
}

func New(config *ApplicationConfig) (*Engine, error) {
	if len(config.ManifestPath) == 0 {
		err := fmt.Errorf("a primitive manifest path is required")
		core.LogError(err.Error())
		return nil, err
	}

	events := core.NewEventSystem()

	am, err := assets.NewAssetManager(events)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	metrics := core.NewMetrics()
	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		MaxGeometryCount: config.maxGeometryCount(),
		NumWorkers:       config.workers(),
		JobQueueSize:     config.workers() * 2,
	}, metrics)
	if err != nil {
		core.LogError(err.Error())
		_ = am.Shutdown()
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		config:        config,
		manifestPath:  filepath.Clean(config.ManifestPath),
		events:        events,
		assetManager:  am,
		systemManager: sm,
		metrics:       metrics,
		clock:         core.NewClock(),
		reload:        make(chan struct{}, 1),
		quit:          make(chan struct{}),
	}, nil
}

func (e *Engine) Initialize() error {
	if !e.transition(EngineStageUninitialized, EngineStageInitializing) {
		return fmt.Errorf("engine cannot initialize from stage %d", e.Stage())
	}

	if len(e.config.LogLevel) > 0 {
		level, err := core.ParseLogLevel(e.config.LogLevel)
		if err != nil {
			return err
		}
		core.SetLogLevel(level)
	}

	// register some events
	e.events.Register(core.EVENT_CODE_MANIFEST_CHANGED, e, e.onManifestChanged)

	if err := e.assetManager.Initialize(filepath.Dir(e.manifestPath), e.config.Watch); err != nil {
		return err
	}

	e.setStage(EngineStageInitialized)
	core.LogInfo("%s initialized, manifest %s", e.name(), e.manifestPath)
	return nil
}

// Run generates every primitive of the manifest once. In watch mode it then
// regenerates on every manifest change until Stop is called.
func (e *Engine) Run() error {
	if !e.transition(EngineStageInitialized, EngineStageRunning) {
		return fmt.Errorf("engine cannot run from stage %d", e.Stage())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-e.quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	err := e.generate(ctx)
	if !e.config.Watch {
		return err
	}
	if err != nil {
		core.LogError(err.Error())
	}

	core.LogInfo("watching %s for changes", e.manifestPath)
	for {
		select {
		case <-e.quit:
			return nil
		case <-e.reload:
			// Let a burst of writes settle before regenerating.
			select {
			case <-e.quit:
				return nil
			case <-time.After(reloadDebounce):
			}
			select {
			case <-e.reload:
			default:
			}
			if err := e.generate(ctx); err != nil {
				core.LogError(err.Error())
			}
		}
	}
}

// Stop makes a running engine return from Run. Safe to call more than once
// and from any goroutine.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.quit)
	})
}

func (e *Engine) Shutdown() error {
	e.Stop()
	e.setStage(EngineStageShuttingDown)

	e.events.Unregister(core.EVENT_CODE_MANIFEST_CHANGED, e)
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}

	e.mu.Lock()
	for _, g := range e.geometries {
		e.systemManager.GeometrySystem().Release(g)
	}
	e.geometries = nil
	e.mu.Unlock()

	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.events.Shutdown(); err != nil {
		return err
	}

	generated, vertices, triangles := e.metrics.Totals()
	core.LogInfo("%s shut down: %d geometries, %d vertices, %d triangles generated", e.name(), generated, vertices, triangles)

	e.setStage(EngineStageUninitialized)
	return nil
}

func (e *Engine) Stage() Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentStage
}

// Events exposes the event system, e.g. to listen for EVENT_CODE_GEOMETRY_EXPORTED.
func (e *Engine) Events() *core.EventSystem {
	return e.events
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

// generate loads the manifest, builds every primitive and writes the results.
func (e *Engine) generate(ctx context.Context) error {
	e.clock.Start()

	resource, err := e.assetManager.LoadAsset(e.manifestPath, metadata.ResourceTypeManifest, nil)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	defer e.assetManager.UnloadAsset(resource)

	manifest, ok := resource.Data.(*loaders.Manifest)
	if !ok {
		return fmt.Errorf("manifest %s did not load as a manifest", e.manifestPath)
	}
	settings := e.resolveSettings(manifest.Settings)

	if err := os.MkdirAll(settings.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Drop the previous generation before registering the new one.
	gs := e.systemManager.GeometrySystem()
	for _, g := range e.geometries {
		gs.Release(g)
	}
	e.geometries = e.geometries[:0]

	geometries, genErr := e.systemManager.Generate(ctx, manifest.Primitives, true)

	var errs []error
	if genErr != nil {
		errs = append(errs, genErr)
	}
	for _, g := range geometries {
		if g == nil {
			continue
		}
		e.geometries = append(e.geometries, g)
		if err := e.export(g, settings); err != nil {
			errs = append(errs, err)
		}
	}

	e.clock.Update()
	core.LogInfo("%d/%d primitives generated in %s (average %s per primitive)",
		len(e.geometries), len(manifest.Primitives), e.clock.Elapsed(), e.metrics.Average())

	return errors.Join(errs...)
}

func (e *Engine) export(g *metadata.Geometry, settings loaders.ManifestSettings) error {
	export := g.Export

	// Only write what a Vulkan pipeline can bind as vertex input.
	input, err := vulkan.NewVertexInputDescription(export.Layout, 0)
	if err != nil {
		return fmt.Errorf("geometry '%s' has an unbindable layout: %w", export.Name, err)
	}
	core.LogDebug("geometry '%s' vertex input: stride %d, %d attributes", export.Name, input.Binding.Stride, len(input.Attributes))

	path := filepath.Join(settings.OutputDir, export.Name+".geom")
	if err := loaders.WriteGeometryFile(path, export); err != nil {
		return fmt.Errorf("failed to write geometry '%s': %w", export.Name, err)
	}

	if settings.UVPreview {
		previewPath := filepath.Join(settings.OutputDir, export.Name+".uv.png")
		if err := preview.WriteUVLayout(previewPath, export, settings.PreviewSize); err != nil {
			return fmt.Errorf("failed to write uv preview of '%s': %w", export.Name, err)
		}
	}

	core.LogInfo("geometry '%s' written to %s: %d vertices, %d indices", export.Name, path, export.VertexCount(), export.IndexCount())

	data := core.EventContext{}
	data.Data.C[0] = export.Name
	data.Data.C[1] = path
	data.Data.U32[0] = export.VertexCount()
	data.Data.U32[1] = export.IndexCount()
	e.events.Fire(core.EVENT_CODE_GEOMETRY_EXPORTED, e, data)

	return nil
}

// resolveSettings merges the manifest settings under the application config.
// Values set on the command line win.
func (e *Engine) resolveSettings(settings loaders.ManifestSettings) loaders.ManifestSettings {
	if len(e.config.OutputDir) > 0 {
		settings.OutputDir = e.config.OutputDir
	}
	if len(settings.OutputDir) == 0 {
		settings.OutputDir = DefaultOutputDir
	}
	settings.UVPreview = settings.UVPreview || e.config.UVPreview
	if e.config.PreviewSize > 0 {
		settings.PreviewSize = e.config.PreviewSize
	}
	if settings.PreviewSize == 0 {
		settings.PreviewSize = DefaultPreviewSize
	}
	if len(e.config.LogLevel) == 0 && len(settings.LogLevel) > 0 {
		if level, err := core.ParseLogLevel(settings.LogLevel); err == nil {
			core.SetLogLevel(level)
		}
	}
	return settings
}

func (e *Engine) onManifestChanged(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if filepath.Clean(data.Data.C[0]) != e.manifestPath {
		return false
	}
	select {
	case e.reload <- struct{}{}:
	default:
		// A reload is already pending.
	}
	return true
}

func (e *Engine) name() string {
	if len(e.config.Name) > 0 {
		return e.config.Name
	}
	return "tessera"
}

func (e *Engine) transition(from, to Stage) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.currentStage != from {
		return false
	}
	e.currentStage = to
	return true
}

func (e *Engine) setStage(stage Stage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentStage = stage
}
