package systems

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

func TestSystemManager(t *testing.T) {
	_, err := NewSystemManager(&SystemManagerConfig{MaxGeometryCount: 8, NumWorkers: 0}, nil)
	assert.ErrorIs(t, err, ErrNoWorkers)

	_, err = NewSystemManager(&SystemManagerConfig{MaxGeometryCount: 0, NumWorkers: 1}, nil)
	assert.Error(t, err)

	metrics := core.NewMetrics()
	sm, err := NewSystemManager(&SystemManagerConfig{MaxGeometryCount: 8, NumWorkers: 2, JobQueueSize: 4}, metrics)
	require.NoError(t, err)

	geometries, err := sm.Generate(context.Background(), []metadata.GeometryConfig{
		*GenerateBrickConfig(1, 1, 1, 1, "crate", ""),
		*GenerateSphereConfig(1, 8, 4, "ball", ""),
	}, false)
	require.NoError(t, err)
	require.Len(t, geometries, 2)
	assert.Equal(t, 2, sm.GeometrySystem().Count())
	assert.NotNil(t, sm.JobSystem())

	// default brick plus the two above
	generated, vertices, triangles := metrics.Totals()
	assert.Equal(t, uint64(3), generated)
	assert.Equal(t, uint64(24+60+29), vertices)
	assert.Equal(t, uint64(12+48+48), triangles)

	require.NoError(t, sm.Shutdown())
	assert.Zero(t, sm.GeometrySystem().Count())
}
