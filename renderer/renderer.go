package renderer

import (
	"github.com/bloeys/glsltri/buffers"
	"github.com/bloeys/glsltri/shaders"
)

type Render interface {
	DrawVertexArray(prog *shaders.ShaderProgram, vao buffers.VertexArray, firstElement int32, count int32)
	FrameEnd()
}
