package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierPool(t *testing.T) {
	pool := NewIdentifierPool(2)
	a, b, c := "a", "b", "c"

	assert.Equal(t, uint32(0), pool.Acquire(&a))
	assert.Equal(t, uint32(1), pool.Acquire(&b))
	// Grows past the initial capacity.
	assert.Equal(t, uint32(2), pool.Acquire(&c))
	assert.Equal(t, &b, pool.Owner(1))

	require.NoError(t, pool.Release(1))
	assert.Nil(t, pool.Owner(1))
	assert.Error(t, pool.Release(1))
	assert.Error(t, pool.Release(10))
	assert.Nil(t, pool.Owner(10))

	// Released slots are reused first.
	assert.Equal(t, uint32(1), pool.Acquire(&c))
}
