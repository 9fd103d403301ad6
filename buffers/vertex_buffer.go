package buffers

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var ErrCreateBuffer = errors.New("failed to create OpenGL buffer")

// VertexBuffer is an interleaved float32 array buffer. Its layout decides the
// stride and the offset of each attribute.
type VertexBuffer struct {
	Id     uint32
	Stride int32
	layout []Element
}

func (vb *VertexBuffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.Id)
}

func (vb *VertexBuffer) SetData(values []float32, usage BufUsage) {

	vb.Bind()

	if len(values) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, usage.ToGL())
		return
	}

	gl.BufferData(gl.ARRAY_BUFFER, len(values)*4, gl.Ptr(&values[0]), usage.ToGL())
}

// VertexCount is how many whole vertices fit in n floats with this layout
func (vb *VertexBuffer) VertexCount(n int) int32 {

	if vb.Stride == 0 {
		return 0
	}

	return int32(n*4) / vb.Stride
}

func (vb *VertexBuffer) SetLayout(layout ...Element) {

	vb.Stride = 0
	vb.layout = layout

	for i := 0; i < len(vb.layout); i++ {
		vb.layout[i].Offset = int(vb.Stride)
		vb.Stride += vb.layout[i].Size()
	}
}

func (vb *VertexBuffer) Delete() {
	gl.DeleteBuffers(1, &vb.Id)
	vb.Id = 0
}

func NewVertexBuffer(layout ...Element) (VertexBuffer, error) {

	vb := VertexBuffer{}

	gl.GenBuffers(1, &vb.Id)
	if vb.Id == 0 {
		return vb, ErrCreateBuffer
	}

	vb.SetLayout(layout...)
	return vb, nil
}
