// Package gpu describes the slice of the OpenGL API that shader programs
// are built on.
//
// The Driver interface mirrors the GL entry points one to one so code written
// against it reads like plain GL, while tests can swap in the recording
// driver from gpu/gputest instead of needing a live context.
// Implementations are not safe for concurrent use and must be called from the
// thread that owns the GL context.
package gpu

type Enum uint32

// Values match the OpenGL registry.
const (
	False Enum = 0
	True  Enum = 1

	NoError          Enum = 0
	InvalidEnum      Enum = 0x0500
	InvalidValue     Enum = 0x0501
	InvalidOperation Enum = 0x0502

	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
	GeometryShader Enum = 0x8DD9

	CompileStatus          Enum = 0x8B81
	LinkStatus             Enum = 0x8B82
	InfoLogLength          Enum = 0x8B84
	AttachedShaders        Enum = 0x8B85
	ActiveUniforms         Enum = 0x8B86
	ActiveUniformMaxLength Enum = 0x8B87

	Int         Enum = 0x1404
	Float       Enum = 0x1406
	FloatVec2   Enum = 0x8B50
	FloatVec3   Enum = 0x8B51
	FloatVec4   Enum = 0x8B52
	Bool        Enum = 0x8B56
	FloatMat2   Enum = 0x8B5A
	FloatMat3   Enum = 0x8B5B
	FloatMat4   Enum = 0x8B5C
	Sampler2D   Enum = 0x8B5E
	SamplerCube Enum = 0x8B60
)

// InvalidLocation is returned by GetUniformLocation for names that are not
// active uniforms of a linked program.
const InvalidLocation int32 = -1

type Driver interface {
	GetError() Enum

	CreateProgram() uint32
	DeleteProgram(program uint32)
	LinkProgram(program uint32)
	UseProgram(program uint32)
	GetProgramiv(program uint32, pname Enum) int32
	GetProgramInfoLog(program uint32, maxLength int32) string

	CreateShader(kind Enum) uint32
	DeleteShader(shader uint32)
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname Enum) int32
	GetShaderInfoLog(shader uint32, maxLength int32) string
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)

	BindAttribLocation(program, index uint32, name string)
	BindFragDataLocation(program, color uint32, name string)

	GetUniformLocation(program uint32, name string) int32
	// GetActiveUniform returns the name, array size and type of the active
	// uniform at index.
	GetActiveUniform(program, index uint32, maxLength int32) (name string, size int32, typ Enum)

	ProgramUniform1f(program uint32, location int32, v float32)
	ProgramUniform1i(program uint32, location int32, v int32)
	ProgramUniform3f(program uint32, location int32, x, y, z float32)
	ProgramUniform3fv(program uint32, location int32, count int32, value *float32)
	ProgramUniform4fv(program uint32, location int32, count int32, value *float32)
	ProgramUniformMatrix3fv(program uint32, location int32, count int32, transpose bool, value *float32)
	ProgramUniformMatrix4fv(program uint32, location int32, count int32, transpose bool, value *float32)
}

// TypeName returns the GLSL spelling of a uniform type enum.
func TypeName(t Enum) string {

	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case FloatVec2:
		return "vec2"
	case FloatVec3:
		return "vec3"
	case FloatVec4:
		return "vec4"
	case Bool:
		return "bool"
	case FloatMat2:
		return "mat2"
	case FloatMat3:
		return "mat3"
	case FloatMat4:
		return "mat4"
	case Sampler2D:
		return "sampler2D"
	case SamplerCube:
		return "samplerCube"
	}

	return "unknown"
}

// TypeFromName is the inverse of TypeName. Unknown names map to zero.
func TypeFromName(name string) Enum {

	switch name {
	case "int":
		return Int
	case "float":
		return Float
	case "vec2":
		return FloatVec2
	case "vec3":
		return FloatVec3
	case "vec4":
		return FloatVec4
	case "bool":
		return Bool
	case "mat2":
		return FloatMat2
	case "mat3":
		return FloatMat3
	case "mat4":
		return FloatMat4
	case "sampler2D":
		return Sampler2D
	case "samplerCube":
		return SamplerCube
	}

	return 0
}
