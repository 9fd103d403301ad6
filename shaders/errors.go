package shaders

import "errors"

var (
	ErrUnknownShaderType = errors.New("unknown shader type")
	ErrCreateProgram     = errors.New("failed to create shader program")
	ErrCreateShader      = errors.New("failed to create shader")

	// ErrShaderNotFound and ErrShaderUnreadable never touch the program's
	// diagnostic log.
	ErrShaderNotFound   = errors.New("shader source file not found")
	ErrShaderUnreadable = errors.New("failed to read shader source file")

	ErrCompileFailed = errors.New("shader compilation failed")
	ErrLinkFailed    = errors.New("shader program link failed")

	ErrProgramDeleted = errors.New("shader program was deleted")
	ErrAlreadyLinked  = errors.New("shader program is already linked")
)
