package buffers

import (
	"errors"

	"github.com/bloeys/glsltri/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var ErrCreateVertexArray = errors.New("failed to create OpenGL vertex array object")

type VertexArray struct {
	Id   uint32
	Vbos []VertexBuffer
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	gl.BindVertexArray(0)
}

// AddVertexBuffer enables one attribute per layout element. Attribute
// indices continue after those of previously added buffers, so they line up
// with the shader's 'layout(location = N)' inputs.
func (va *VertexArray) AddVertexBuffer(vbo VertexBuffer) {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	va.Bind()
	vbo.Bind()

	firstAttrib := 0
	for i := 0; i < len(va.Vbos); i++ {
		firstAttrib += len(va.Vbos[i].layout)
	}

	for i := 0; i < len(vbo.layout); i++ {

		l := &vbo.layout[i]
		attrib := uint32(firstAttrib + i)

		gl.EnableVertexAttribArray(attrib)
		gl.VertexAttribPointerWithOffset(attrib, l.CompCount(), l.GLType(), false, vbo.Stride, uintptr(l.Offset))
	}

	va.Vbos = append(va.Vbos, vbo)
	logging.DebugLog.Debugw("Vertex buffer added", "vaoId", va.Id, "vboId", vbo.Id, "stride", vbo.Stride, "attribs", len(vbo.layout))
}

// Delete releases the array and every buffer added to it
func (va *VertexArray) Delete() {

	for i := 0; i < len(va.Vbos); i++ {
		va.Vbos[i].Delete()
	}

	gl.DeleteVertexArrays(1, &va.Id)
	va.Id = 0
	va.Vbos = nil
}

func NewVertexArray() (VertexArray, error) {

	vao := VertexArray{}

	gl.GenVertexArrays(1, &vao.Id)
	if vao.Id == 0 {
		return vao, ErrCreateVertexArray
	}

	return vao, nil
}
