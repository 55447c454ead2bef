package mesh

import "github.com/spaghettifunk/tessera/engine/math"

type brickCorner struct {
	// Signs select the half extent on each axis.
	sx, sy, sz float32
	u, v       float32
}

type brickFace struct {
	normal  math.Vec3
	tangent math.Vec3
	corners [4]brickCorner
}

// Faces in emission order. Corners are listed so that (0,1,2) and (0,2,3) are
// counter-clockwise seen from outside the box.
var brickFaces = [6]brickFace{
	// Front face
	{
		normal:  math.Vec3{X: 0, Y: 0, Z: -1},
		tangent: math.Vec3{X: 1, Y: 0, Z: 0},
		corners: [4]brickCorner{
			{-1, -1, -1, 0, 1},
			{-1, 1, -1, 0, 0},
			{1, 1, -1, 1, 0},
			{1, -1, -1, 1, 1},
		},
	},
	// Back face
	{
		normal:  math.Vec3{X: 0, Y: 0, Z: 1},
		tangent: math.Vec3{X: -1, Y: 0, Z: 0},
		corners: [4]brickCorner{
			{-1, -1, 1, 1, 1},
			{1, -1, 1, 0, 1},
			{1, 1, 1, 0, 0},
			{-1, 1, 1, 1, 0},
		},
	},
	// Top face
	{
		normal:  math.Vec3{X: 0, Y: 1, Z: 0},
		tangent: math.Vec3{X: 1, Y: 0, Z: 0},
		corners: [4]brickCorner{
			{-1, 1, -1, 0, 1},
			{-1, 1, 1, 0, 0},
			{1, 1, 1, 1, 0},
			{1, 1, -1, 1, 1},
		},
	},
	// Bottom face
	{
		normal:  math.Vec3{X: 0, Y: -1, Z: 0},
		tangent: math.Vec3{X: -1, Y: 0, Z: 0},
		corners: [4]brickCorner{
			{-1, -1, -1, 1, 1},
			{1, -1, -1, 0, 1},
			{1, -1, 1, 0, 0},
			{-1, -1, 1, 1, 0},
		},
	},
	// Left face
	{
		normal:  math.Vec3{X: -1, Y: 0, Z: 0},
		tangent: math.Vec3{X: 0, Y: 0, Z: -1},
		corners: [4]brickCorner{
			{-1, -1, 1, 0, 1},
			{-1, 1, 1, 0, 0},
			{-1, 1, -1, 1, 0},
			{-1, -1, -1, 1, 1},
		},
	},
	// Right face
	{
		normal:  math.Vec3{X: 1, Y: 0, Z: 0},
		tangent: math.Vec3{X: 0, Y: 0, Z: 1},
		corners: [4]brickCorner{
			{1, -1, -1, 0, 1},
			{1, 1, -1, 0, 0},
			{1, 1, 1, 1, 0},
			{1, -1, 1, 1, 1},
		},
	},
}

// Local quad triangulation shared by every brick face.
var brickFaceIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// Icosahedron inscribed in the unit sphere.
const (
	icoX float32 = 0.525731
	icoZ float32 = 0.850651
)

var icosahedronPositions = [12]math.Vec3{
	{X: -icoX, Y: 0, Z: icoZ}, {X: icoX, Y: 0, Z: icoZ},
	{X: -icoX, Y: 0, Z: -icoZ}, {X: icoX, Y: 0, Z: -icoZ},
	{X: 0, Y: icoZ, Z: icoX}, {X: 0, Y: icoZ, Z: -icoX},
	{X: 0, Y: -icoZ, Z: icoX}, {X: 0, Y: -icoZ, Z: -icoX},
	{X: icoZ, Y: icoX, Z: 0}, {X: -icoZ, Y: icoX, Z: 0},
	{X: icoZ, Y: -icoX, Z: 0}, {X: -icoZ, Y: -icoX, Z: 0},
}

var icosahedronIndices = [60]uint32{
	1, 4, 0, 4, 9, 0, 4, 5, 9, 8, 5, 4, 1, 8, 4,
	1, 10, 8, 10, 3, 8, 8, 3, 5, 3, 2, 5, 3, 7, 2,
	3, 10, 7, 10, 6, 7, 6, 11, 7, 6, 0, 11, 6, 1, 0,
	10, 1, 6, 11, 0, 9, 2, 11, 9, 5, 2, 9, 11, 2, 7,
}
