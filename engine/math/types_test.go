package math

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestVertexLayoutIsTightlyPacked(t *testing.T) {
	var v Vertex
	assert.Equal(t, uintptr(VertexStride), unsafe.Sizeof(v))
	assert.Equal(t, uintptr(VertexPositionOffset), unsafe.Offsetof(v.Position))
	assert.Equal(t, uintptr(VertexNormalOffset), unsafe.Offsetof(v.Normal))
	assert.Equal(t, uintptr(VertexTangentOffset), unsafe.Offsetof(v.Tangent))
	assert.Equal(t, uintptr(VertexTexcoordOffset), unsafe.Offsetof(v.Texcoord))
}
