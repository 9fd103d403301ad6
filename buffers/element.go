package buffers

import (
	"github.com/bloeys/glsltri/assert"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Element is one vertex attribute inside an interleaved buffer, e.g. a Vec3
// starting 12 bytes into each vertex.
type Element struct {
	Offset int
	ElementType
}

// ElementType only covers float attributes, which AddVertexBuffer feeds
// through VertexAttribPointer.
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeFloat32

	DataTypeVec2
	DataTypeVec3
	DataTypeVec4
)

func (dt ElementType) GLType() uint32 {

	switch dt {
	case DataTypeFloat32, DataTypeVec2, DataTypeVec3, DataTypeVec4:
		return gl.FLOAT
	}

	assert.T(false, "Unknown data type passed. DataType '%d'", dt)
	return 0
}

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {

	switch dt {
	case DataTypeFloat32:
		return 1
	case DataTypeVec2:
		return 2
	case DataTypeVec3:
		return 3
	case DataTypeVec4:
		return 4
	}

	assert.T(false, "Unknown data type passed. DataType '%d'", dt)
	return 0
}

// Size returns the total size in bytes (e.g. for vec3 its 3*4=12 bytes).
// All supported components are 4 bytes wide.
func (dt ElementType) Size() int32 {
	return dt.CompCount() * 4
}
