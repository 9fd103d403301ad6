package rend3dgl

import (
	"github.com/bloeys/glsltri/buffers"
	"github.com/bloeys/glsltri/renderer"
	"github.com/bloeys/glsltri/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.Render = &Rend3DGL{}

// Rend3DGL remembers what it bound during the current frame and skips
// binding it again. FrameEnd forgets it, since other code may bind in between
// frames.
type Rend3DGL struct {
	BoundVaoId  uint32
	BoundProgId uint32
}

// DrawVertexArray draws triangles from vao with prog. Programs that are not
// linked draw nothing.
func (r *Rend3DGL) DrawVertexArray(prog *shaders.ShaderProgram, vao buffers.VertexArray, firstElement int32, elementCount int32) {

	if !prog.IsLinked() {
		return
	}

	if vao.Id != r.BoundVaoId {
		vao.Bind()
		r.BoundVaoId = vao.Id
	}

	if prog.Id != r.BoundProgId {
		prog.Use()
		r.BoundProgId = prog.Id
	}

	gl.DrawArrays(gl.TRIANGLES, firstElement, elementCount)
}

func (r3d *Rend3DGL) FrameEnd() {
	r3d.BoundVaoId = 0
	r3d.BoundProgId = 0
}

func NewRend3DGL() *Rend3DGL {
	return &Rend3DGL{}
}
