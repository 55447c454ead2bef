package core

import (
	"sync"
	"time"

	"github.com/spaghettifunk/tessera/engine/containers"
)

const AVG_COUNT int = 30

// Metrics accumulates totals and a rolling average of geometry generation times.
// It is safe for concurrent use by job workers.
type Metrics struct {
	mu        sync.Mutex
	times     *containers.RingQueue[time.Duration]
	generated uint64
	vertices  uint64
	triangles uint64
}

func NewMetrics() *Metrics {
	return &Metrics{
		times: containers.NewRingQueue[time.Duration](AVG_COUNT),
	}
}

// Record registers one finished generation.
func (m *Metrics) Record(elapsed time.Duration, vertexCount, triangleCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.times.Push(elapsed)
	m.generated++
	m.vertices += uint64(vertexCount)
	m.triangles += uint64(triangleCount)
}

// Average returns the mean of the last AVG_COUNT generation times.
func (m *Metrics) Average() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	samples := m.times.Values()
	if len(samples) == 0 {
		return 0
	}
	var sum time.Duration
	for _, s := range samples {
		sum += s
	}
	return sum / time.Duration(len(samples))
}

// Totals returns the number of generated geometries, vertices and triangles.
func (m *Metrics) Totals() (uint64, uint64, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generated, m.vertices, m.triangles
}
