package systems

import (
	"context"

	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

type SystemManagerConfig struct {
	MaxGeometryCount uint32
	NumWorkers       int
	JobQueueSize     int
}

type SystemManager struct {
	geometrySystem *GeometrySystem
	jobSystem      *JobSystem
}

func NewSystemManager(config *SystemManagerConfig, metrics *core.Metrics) (*SystemManager, error) {
	js, err := NewJobSystem(config.NumWorkers, config.JobQueueSize)
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{
		MaxGeometryCount: config.MaxGeometryCount,
	}, metrics)
	if err != nil {
		_ = js.Shutdown()
		return nil, err
	}
	return &SystemManager{
		jobSystem:      js,
		geometrySystem: gs,
	}, nil
}

func (sm *SystemManager) GeometrySystem() *GeometrySystem {
	return sm.geometrySystem
}

func (sm *SystemManager) JobSystem() *JobSystem {
	return sm.jobSystem
}

// Generate builds every config on the job system and registers the results.
func (sm *SystemManager) Generate(ctx context.Context, configs []metadata.GeometryConfig, autoRelease bool) ([]*metadata.Geometry, error) {
	return sm.jobSystem.GenerateBatch(ctx, sm.geometrySystem, configs, autoRelease)
}

func (sm *SystemManager) Shutdown() error {
	// Drain pending jobs before the registry goes away.
	if err := sm.jobSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.geometrySystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
