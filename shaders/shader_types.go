package shaders

import (
	"path/filepath"
	"strings"

	"github.com/bloeys/glsltri/gpu"
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)

// ToGl returns the GL stage enum, or zero for unknown types.
func (s ShaderType) ToGl() gpu.Enum {

	switch s {
	case ShaderType_Vertex:
		return gpu.VertexShader
	case ShaderType_Fragment:
		return gpu.FragmentShader
	case ShaderType_Geometry:
		return gpu.GeometryShader
	}

	return 0
}

func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	}

	return "unknown"
}

// ShaderTypeFromPath guesses the stage from common GLSL file extensions
// (.vert/.vs, .frag/.fs, .geom/.gs).
func ShaderTypeFromPath(path string) ShaderType {

	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert", ".vs":
		return ShaderType_Vertex
	case ".frag", ".fs":
		return ShaderType_Fragment
	case ".geom", ".gs":
		return ShaderType_Geometry
	}

	return ShaderType_Unknown
}
