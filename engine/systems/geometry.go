package systems

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/mesh"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

type GeometrySystemConfig struct {
	/**
	 * @brief Max number of geometries that can be registered at once.
	 * NOTE: Should be significantly greater than the number of primitives in a manifest.
	 */
	MaxGeometryCount uint32
}

// GeometrySystem is the registry of generated geometries. Geometries are
// reference counted; auto-release entries free their slot when the last
// reference is released.
type GeometrySystem struct {
	mu     sync.Mutex
	Config *GeometrySystemConfig

	ids     *core.IdentifierPool
	metrics *core.Metrics

	defaultGeometry *metadata.Geometry
	// Array of registered geometries, indexed by id.
	registeredGeometries []*metadata.GeometryReference
}

/**
 * @brief Initializes the geometry system and generates the default geometry.
 *
 * @param config The configuration for this system.
 * @param metrics Receives generation timings. Can be nil.
 * @return The system or an error if the configuration is invalid.
 */
func NewGeometrySystem(config *GeometrySystemConfig, metrics *core.Metrics) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}

	gs := &GeometrySystem{
		Config:               config,
		ids:                  core.NewIdentifierPool(int(config.MaxGeometryCount)),
		metrics:              metrics,
		registeredGeometries: make([]*metadata.GeometryReference, config.MaxGeometryCount),
	}

	// Invalidate all geometries in the array.
	for i := range gs.registeredGeometries {
		gs.registeredGeometries[i] = &metadata.GeometryReference{
			Geometry: &metadata.Geometry{
				ID:         metadata.InvalidID,
				Generation: metadata.InvalidIDUint16,
			},
		}
	}

	if err := gs.createDefaultGeometry(); err != nil {
		err = fmt.Errorf("failed to create default geometry: %w", err)
		core.LogError(err.Error())
		return nil, err
	}

	return gs, nil
}

/**
 * @brief Shuts down the geometry system, dropping every registered geometry.
 */
func (gs *GeometrySystem) Shutdown() error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	for _, ref := range gs.registeredGeometries {
		if ref.Geometry.ID != metadata.InvalidID {
			gs.destroyGeometry(ref)
		}
	}
	return nil
}

/**
 * @brief Acquires an existing geometry by id.
 *
 * @param id The geometry identifier to acquire by.
 * @return The acquired geometry or an error if the id is not registered.
 */
func (gs *GeometrySystem) AcquireByID(id uint32) (*metadata.Geometry, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if id != metadata.InvalidID && id < gs.Config.MaxGeometryCount && gs.registeredGeometries[id].Geometry.ID != metadata.InvalidID {
		gs.registeredGeometries[id].ReferenceCount++
		return gs.registeredGeometries[id].Geometry, nil
	}

	err := fmt.Errorf("func AcquireByID cannot load geometry id %d: %w", id, core.ErrInvalidGeometryID)
	core.LogError(err.Error())
	return nil, err
}

/**
 * @brief Generates, registers and acquires a new geometry using the given config.
 * A config without a name is given a random one.
 *
 * @param config The geometry configuration.
 * @param autoRelease Indicates if the acquired geometry should be unloaded when its reference count reaches 0.
 * @return The acquired geometry or an error if generation failed or no slot is free.
 */
func (gs *GeometrySystem) AcquireFromConfig(config *metadata.GeometryConfig, autoRelease bool) (*metadata.Geometry, error) {
	cfg := *config
	if len(cfg.Name) == 0 {
		cfg.Name = uuid.NewString()
	}

	// Generation runs outside the lock so independent geometries can be built in parallel.
	export, err := gs.generate(&cfg)
	if err != nil {
		err = fmt.Errorf("failed to create geometry '%s': %w", cfg.Name, err)
		core.LogError(err.Error())
		return nil, err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	id := gs.ids.Acquire(&cfg)
	if id >= gs.Config.MaxGeometryCount {
		_ = gs.ids.Release(id)
		err := fmt.Errorf("unable to obtain free slot for geometry '%s', adjust configuration to allow more space: %w", cfg.Name, core.ErrGeometrySlotsExhausted)
		core.LogError(err.Error())
		return nil, err
	}

	ref := gs.registeredGeometries[id]
	ref.AutoRelease = autoRelease
	ref.ReferenceCount = 1

	geometry := ref.Geometry
	geometry.ID = id
	geometry.Generation++
	if geometry.Generation == metadata.InvalidIDUint16 {
		geometry.Generation = 0
	}
	geometry.Config = cfg
	geometry.Export = export

	core.LogDebug("geometry '%s' registered with id %d", cfg.Name, id)

	return geometry, nil
}

/**
 * @brief Releases a reference to the provided geometry.
 *
 * @param geometry The geometry to be released.
 */
func (gs *GeometrySystem) Release(geometry *metadata.Geometry) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if geometry != nil && geometry.ID != metadata.InvalidID && geometry.ID < gs.Config.MaxGeometryCount {
		ref := gs.registeredGeometries[geometry.ID]

		if ref.Geometry == geometry {
			if ref.ReferenceCount > 0 {
				ref.ReferenceCount--
			}

			// Also blanks out the geometry id.
			if ref.ReferenceCount < 1 && ref.AutoRelease {
				gs.destroyGeometry(ref)
			}
		} else {
			core.LogError("Geometry id mismatch. Check registration logic, as this should never occur.")
		}
		return
	}

	core.LogWarn("GeometrySystem.Release cannot release invalid geometry id. Nothing was done.")
}

/**
 * @brief Obtains the default geometry, a unit brick.
 */
func (gs *GeometrySystem) GetDefault() *metadata.Geometry {
	return gs.defaultGeometry
}

// Count returns the number of registered geometries, the default excluded.
func (gs *GeometrySystem) Count() int {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	count := 0
	for _, ref := range gs.registeredGeometries {
		if ref.Geometry.ID != metadata.InvalidID {
			count++
		}
	}
	return count
}

/**
 * @brief Generates configuration for brick geometries given the provided parameters.
 *
 * @param width The overall width of the brick. Zero defaults to one.
 * @param height The overall height of the brick. Zero defaults to one.
 * @param depth The overall depth of the brick. Zero defaults to one.
 * @param subdivisions The number of subdivision passes.
 * @param name The name of the generated geometry.
 * @param materialName The name of the material to be used.
 */
func GenerateBrickConfig(width, height, depth float32, subdivisions uint32, name, materialName string) *metadata.GeometryConfig {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1.0
	}
	return &metadata.GeometryConfig{
		Kind:         metadata.PrimitiveKindBrick,
		Width:        width,
		Height:       height,
		Depth:        depth,
		Subdivisions: subdivisions,
		Name:         name,
		MaterialName: materialName,
	}
}

/**
 * @brief Generates configuration for UV sphere geometries given the provided parameters.
 *
 * @param radius The sphere radius. Zero defaults to one.
 * @param slices Longitude segments. Values under 3 default to 3.
 * @param stacks Latitude bands. Values under 2 default to 2.
 */
func GenerateSphereConfig(radius float32, slices, stacks uint32, name, materialName string) *metadata.GeometryConfig {
	if radius == 0 {
		core.LogWarn("Radius must be nonzero. Defaulting to one.")
		radius = 1.0
	}
	if slices < 3 {
		core.LogWarn("Slices must be at least 3. Defaulting to 3.")
		slices = 3
	}
	if stacks < 2 {
		core.LogWarn("Stacks must be at least 2. Defaulting to 2.")
		stacks = 2
	}
	return &metadata.GeometryConfig{
		Kind:         metadata.PrimitiveKindSphere,
		Radius:       radius,
		Slices:       slices,
		Stacks:       stacks,
		Name:         name,
		MaterialName: materialName,
	}
}

/**
 * @brief Generates configuration for geodesic sphere geometries given the provided parameters.
 *
 * @param radius The sphere radius. Zero defaults to one.
 * @param subdivisions The number of subdivision passes applied to the icosahedron.
 */
func GenerateGeoSphereConfig(radius float32, subdivisions uint32, name, materialName string) *metadata.GeometryConfig {
	if radius == 0 {
		core.LogWarn("Radius must be nonzero. Defaulting to one.")
		radius = 1.0
	}
	return &metadata.GeometryConfig{
		Kind:         metadata.PrimitiveKindGeoSphere,
		Radius:       radius,
		Subdivisions: subdivisions,
		Name:         name,
		MaterialName: materialName,
	}
}

func (gs *GeometrySystem) generate(config *metadata.GeometryConfig) (*metadata.GeometryExport, error) {
	clock := core.NewClock()
	clock.Start()

	m, err := mesh.FromConfig(config)
	if err != nil {
		return nil, err
	}

	clock.Update()
	if gs.metrics != nil {
		gs.metrics.Record(clock.Elapsed(), m.VertexCount(), m.TriangleCount())
	}
	return m.Export(config.Name, config.MaterialName), nil
}

func (gs *GeometrySystem) createDefaultGeometry() error {
	config := GenerateBrickConfig(1, 1, 1, 0, metadata.DefaultGeometryName, metadata.DefaultMaterialName)
	export, err := gs.generate(config)
	if err != nil {
		return err
	}
	gs.defaultGeometry = &metadata.Geometry{
		ID:         metadata.InvalidID,
		Generation: 0,
		Config:     *config,
		Export:     export,
	}
	return nil
}

func (gs *GeometrySystem) destroyGeometry(ref *metadata.GeometryReference) {
	if err := gs.ids.Release(ref.Geometry.ID); err != nil {
		core.LogWarn(err.Error())
	}

	// Blank the id but leave the export to whoever still holds the pointer.
	ref.Geometry.ID = metadata.InvalidID
	ref.Geometry = &metadata.Geometry{
		ID:         metadata.InvalidID,
		Generation: ref.Geometry.Generation,
	}
	ref.ReferenceCount = 0
	ref.AutoRelease = false
}
