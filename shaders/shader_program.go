package shaders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/bloeys/glsltri/gpu"
	"github.com/bloeys/glsltri/logging"
)

// ShaderProgram owns a GPU program object from creation until Delete, or
// until a failed Link deletes it. Once deleted, Id is zero and Use and the
// uniform setters do nothing.
//
// Log holds the last compiler or linker message of any kind. A successful
// compile or link does not clear it.
type ShaderProgram struct {
	Id uint32

	drv      gpu.Driver
	linked   bool
	log      string
	attached []Shader
	unifLocs map[string]int32
}

func NewShaderProgram(drv gpu.Driver) (*ShaderProgram, error) {

	id := drv.CreateProgram()
	if id == 0 {
		return nil, fmt.Errorf("%w. OpenGl Error=%d", ErrCreateProgram, drv.GetError())
	}

	return &ShaderProgram{
		Id:       id,
		drv:      drv,
		unifLocs: make(map[string]int32),
	}, nil
}

// CompileShaderFromString compiles src as one stage and attaches it for the
// next Link. On failure the compiler log replaces Log (if the driver gave one)
// and the rejected stage object is deleted.
func (sp *ShaderProgram) CompileShaderFromString(src string, shaderType ShaderType) error {

	if sp.Id == 0 {
		return ErrProgramDeleted
	}

	shdr, infoLog, err := compileShaderOfType(sp.drv, src, shaderType)
	if err != nil {

		if infoLog != "" {
			sp.log = infoLog
		}

		return err
	}

	sp.drv.AttachShader(sp.Id, shdr.Id)
	sp.attached = append(sp.attached, shdr)
	return nil
}

// CompileShaderFromFile reads path and passes its contents to
// CompileShaderFromString. I/O failures return ErrShaderNotFound or
// ErrShaderUnreadable and leave Log untouched.
func (sp *ShaderProgram) CompileShaderFromFile(path string, shaderType ShaderType) error {

	if sp.Id == 0 {
		return ErrProgramDeleted
	}

	src, err := os.ReadFile(path)
	if err != nil {

		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrShaderNotFound, path)
		}

		return fmt.Errorf("%w: %s: %w", ErrShaderUnreadable, path, err)
	}

	return sp.CompileShaderFromString(string(src), shaderType)
}

// Link links the attached stages. Stage objects are released either way.
// If linking fails the program itself is deleted and must not be reused.
func (sp *ShaderProgram) Link() error {

	if sp.Id == 0 {
		return ErrProgramDeleted
	}

	if sp.linked {
		return ErrAlreadyLinked
	}

	sp.drv.LinkProgram(sp.Id)
	clear(sp.unifLocs)

	if sp.drv.GetProgramiv(sp.Id, gpu.LinkStatus) == int32(gpu.True) {
		sp.linked = true
		sp.releaseStages()
		return nil
	}

	logLength := sp.drv.GetProgramiv(sp.Id, gpu.InfoLogLength)
	sp.log = sp.drv.GetProgramInfoLog(sp.Id, logLength)

	progId := sp.Id
	logging.ErrLog.Errorw("Linking of shader program failed", "programId", progId, "log", sp.log)

	sp.Delete()
	return fmt.Errorf("%w (program %d): %s", ErrLinkFailed, progId, strings.TrimSpace(sp.log))
}

// Use binds the program for subsequent draws. It does nothing unless the
// program is linked.
func (sp *ShaderProgram) Use() {
	if sp.linked {
		sp.drv.UseProgram(sp.Id)
	}
}

func (sp *ShaderProgram) UnBind() {
	sp.drv.UseProgram(0)
}

func (sp *ShaderProgram) Log() string {
	return sp.log
}

func (sp *ShaderProgram) IsLinked() bool {
	return sp.linked
}

// GetUniformLocation queries the driver directly, bypassing the location
// cache used by the setters.
func (sp *ShaderProgram) GetUniformLocation(name string) int32 {

	if sp.Id == 0 {
		return gpu.InvalidLocation
	}

	return sp.drv.GetUniformLocation(sp.Id, name)
}

// BindAttribLocation only takes effect if called before Link.
func (sp *ShaderProgram) BindAttribLocation(index uint32, name string) {
	if sp.Id != 0 {
		sp.drv.BindAttribLocation(sp.Id, index, name)
	}
}

// BindFragDataLocation only takes effect if called before Link.
func (sp *ShaderProgram) BindFragDataLocation(index uint32, name string) {
	if sp.Id != 0 {
		sp.drv.BindFragDataLocation(sp.Id, index, name)
	}
}

// Delete releases any pending stages and the program. Calling it more than
// once, or after a failed Link, is a no-op.
func (sp *ShaderProgram) Delete() {

	if sp.Id == 0 {
		return
	}

	sp.releaseStages()
	sp.drv.DeleteProgram(sp.Id)

	sp.Id = 0
	sp.linked = false
	clear(sp.unifLocs)
}

func (sp *ShaderProgram) releaseStages() {

	for i := 0; i < len(sp.attached); i++ {
		sp.drv.DetachShader(sp.Id, sp.attached[i].Id)
		sp.attached[i].Delete(sp.drv)
	}

	sp.attached = sp.attached[:0]
}
