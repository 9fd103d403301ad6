package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bloeys/glsltri/gpu"
	"github.com/bloeys/glsltri/logging"
)

type Shader struct {
	Id   uint32
	Type ShaderType
}

func (s *Shader) Delete(drv gpu.Driver) {
	drv.DeleteShader(s.Id)
	s.Id = 0
}

// NewShaderProgramFromSources compiles a vertex and a fragment stage and
// links them. On failure nothing is left allocated and the error carries the
// diagnostic log.
func NewShaderProgramFromSources(drv gpu.Driver, vertSrc, fragSrc string) (*ShaderProgram, error) {

	shdrProg, err := NewShaderProgram(drv)
	if err != nil {
		return nil, err
	}

	if err := shdrProg.CompileShaderFromString(vertSrc, ShaderType_Vertex); err != nil {
		shdrProg.Delete()
		return nil, err
	}

	if err := shdrProg.CompileShaderFromString(fragSrc, ShaderType_Fragment); err != nil {
		shdrProg.Delete()
		return nil, err
	}

	if err := shdrProg.Link(); err != nil {
		return nil, err
	}

	return shdrProg, nil
}

// NewShaderProgramFromFiles is NewShaderProgramFromSources reading from disk.
func NewShaderProgramFromFiles(drv gpu.Driver, vertPath, fragPath string) (*ShaderProgram, error) {

	shdrProg, err := NewShaderProgram(drv)
	if err != nil {
		return nil, err
	}

	if err := shdrProg.CompileShaderFromFile(vertPath, ShaderType_Vertex); err != nil {
		shdrProg.Delete()
		return nil, err
	}

	if err := shdrProg.CompileShaderFromFile(fragPath, ShaderType_Fragment); err != nil {
		shdrProg.Delete()
		return nil, err
	}

	if err := shdrProg.Link(); err != nil {
		return nil, err
	}

	return shdrProg, nil
}

func LoadAndCompileCombinedShader(drv gpu.Driver, shaderPath string) (*ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.ErrLog.Errorw("Failed to read shader", "path", shaderPath, "err", err)
		return nil, err
	}

	return LoadAndCompileCombinedShaderSrc(drv, combinedSource)
}

type stageSource struct {
	Type ShaderType
	Src  []byte
}

// splitCombinedShader splits a file where every stage starts with a
// '//shader:vertex', '//shader:fragment' or '//shader:geometry' line.
func splitCombinedShader(shaderSrc []byte) ([]stageSource, error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return nil, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	stages := make([]stageSource, 0, len(shaderSources))
	hasVert, hasFrag := false, false
	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		//This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		var shdrType ShaderType
		if bytes.HasPrefix(src, []byte("vertex")) {
			src = src[6:]
			shdrType = ShaderType_Vertex
			hasVert = true
		} else if bytes.HasPrefix(src, []byte("fragment")) {
			src = src[8:]
			shdrType = ShaderType_Fragment
			hasFrag = true
		} else if bytes.HasPrefix(src, []byte("geometry")) {
			src = src[8:]
			shdrType = ShaderType_Geometry
		} else {
			return nil, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
		}

		stages = append(stages, stageSource{Type: shdrType, Src: src})
	}

	if len(stages) == 0 {
		return nil, errors.New("no valid shaders found. Please put '//shader:vertex' or '//shader:fragment' or '//shader:geometry' before your shaders")
	}

	if !hasVert {
		return nil, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if !hasFrag {
		return nil, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	return stages, nil
}

func LoadAndCompileCombinedShaderSrc(drv gpu.Driver, shaderSrc []byte) (*ShaderProgram, error) {

	stages, err := splitCombinedShader(shaderSrc)
	if err != nil {
		return nil, err
	}

	shdrProg, err := NewShaderProgram(drv)
	if err != nil {
		return nil, errors.New("failed to create new shader program. Err: " + err.Error())
	}

	for _, st := range stages {
		if err := shdrProg.CompileShaderFromString(string(st.Src), st.Type); err != nil {
			shdrProg.Delete()
			return nil, err
		}
	}

	if err := shdrProg.Link(); err != nil {
		return nil, err
	}

	return shdrProg, nil
}

// compileShaderOfType returns the compiled stage, or the driver's info log
// and an error. A stage that fails to compile is deleted before returning.
func compileShaderOfType(drv gpu.Driver, shaderSource string, shaderType ShaderType) (Shader, string, error) {

	glType := shaderType.ToGl()
	if glType == 0 {
		return Shader{}, "", fmt.Errorf("%w '%d'", ErrUnknownShaderType, shaderType)
	}

	shaderId := drv.CreateShader(glType)
	if shaderId == 0 {
		return Shader{}, "", fmt.Errorf("%w. OpenGl Error=%d", ErrCreateShader, drv.GetError())
	}

	drv.ShaderSource(shaderId, shaderSource)
	drv.CompileShader(shaderId)

	if drv.GetShaderiv(shaderId, gpu.CompileStatus) == int32(gpu.True) {
		return Shader{Id: shaderId, Type: shaderType}, "", nil
	}

	var infoLog string
	if logLength := drv.GetShaderiv(shaderId, gpu.InfoLogLength); logLength > 0 {
		infoLog = drv.GetShaderInfoLog(shaderId, logLength)
	}

	logging.ErrLog.Errorw("Compilation of shader failed", "type", shaderType.String(), "shaderId", shaderId, "log", infoLog)
	drv.DeleteShader(shaderId)

	msg := strings.TrimSpace(infoLog)
	if msg == "" {
		return Shader{}, "", fmt.Errorf("%w: %s shader", ErrCompileFailed, shaderType)
	}

	return Shader{}, infoLog, fmt.Errorf("%w: %s shader: %s", ErrCompileFailed, shaderType, msg)
}
