package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type listener struct {
	name     string
	received []string
	handle   bool
}

func (l *listener) onEvent(code SystemEventCode, sender interface{}, _ interface{}, data EventContext) bool {
	l.received = append(l.received, data.Data.C[0])
	return l.handle
}

func TestEventSystemFire(t *testing.T) {
	es := NewEventSystem()
	first := &listener{name: "first"}
	second := &listener{name: "second"}

	assert.True(t, es.Register(EVENT_CODE_MANIFEST_CHANGED, first, first.onEvent))
	assert.True(t, es.Register(EVENT_CODE_MANIFEST_CHANGED, second, second.onEvent))
	assert.False(t, es.Register(EVENT_CODE_MANIFEST_CHANGED, first, first.onEvent))
	assert.False(t, es.Register(EVENT_CODE_MANIFEST_CHANGED, first, nil))
	assert.False(t, es.Register(-1, first, first.onEvent))

	ctx := EventContext{}
	ctx.Data.C[0] = "testbed/manifest.toml"

	assert.False(t, es.Fire(EVENT_CODE_MANIFEST_CHANGED, nil, ctx))
	assert.Equal(t, []string{"testbed/manifest.toml"}, first.received)
	assert.Equal(t, []string{"testbed/manifest.toml"}, second.received)

	// A handled event stops propagation.
	first.handle = true
	assert.True(t, es.Fire(EVENT_CODE_MANIFEST_CHANGED, nil, ctx))
	assert.Len(t, first.received, 2)
	assert.Len(t, second.received, 1)

	// Other codes do not reach these listeners.
	assert.False(t, es.Fire(EVENT_CODE_GEOMETRY_EXPORTED, nil, ctx))
	assert.Len(t, first.received, 2)
}

func TestEventSystemUnregister(t *testing.T) {
	es := NewEventSystem()
	l := &listener{}

	assert.False(t, es.Unregister(EVENT_CODE_GEOMETRY_EXPORTED, l))
	assert.True(t, es.Register(EVENT_CODE_GEOMETRY_EXPORTED, l, l.onEvent))
	assert.True(t, es.Unregister(EVENT_CODE_GEOMETRY_EXPORTED, l))
	assert.False(t, es.Fire(EVENT_CODE_GEOMETRY_EXPORTED, nil, EventContext{}))
	assert.Empty(t, l.received)

	assert.True(t, es.Register(EVENT_CODE_GEOMETRY_EXPORTED, l, l.onEvent))
	assert.NoError(t, es.Shutdown())
	assert.False(t, es.Fire(EVENT_CODE_GEOMETRY_EXPORTED, nil, EventContext{}))
	assert.Empty(t, l.received)
}
