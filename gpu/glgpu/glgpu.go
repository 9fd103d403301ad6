// Package glgpu implements gpu.Driver on top of go-gl's OpenGL 4.1 core
// bindings. gl.Init must have been called on the context's thread.
package glgpu

import (
	"strings"

	"github.com/bloeys/glsltri/gpu"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ gpu.Driver = Driver{}

type Driver struct{}

func New() Driver {
	return Driver{}
}

func (Driver) GetError() gpu.Enum {
	return gpu.Enum(gl.GetError())
}

func (Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (Driver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (Driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (Driver) GetProgramiv(program uint32, pname gpu.Enum) int32 {
	var v int32
	gl.GetProgramiv(program, uint32(pname), &v)
	return v
}

func (Driver) GetProgramInfoLog(program uint32, maxLength int32) string {

	if maxLength <= 0 {
		return ""
	}

	log := gl.Str(strings.Repeat("\x00", int(maxLength)+1))
	gl.GetProgramInfoLog(program, maxLength, nil, log)
	return gl.GoStr(log)
}

func (Driver) CreateShader(kind gpu.Enum) uint32 {
	return gl.CreateShader(uint32(kind))
}

func (Driver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (Driver) ShaderSource(shader uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csrc, nil)
}

func (Driver) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (Driver) GetShaderiv(shader uint32, pname gpu.Enum) int32 {
	var v int32
	gl.GetShaderiv(shader, uint32(pname), &v)
	return v
}

func (Driver) GetShaderInfoLog(shader uint32, maxLength int32) string {

	if maxLength <= 0 {
		return ""
	}

	log := gl.Str(strings.Repeat("\x00", int(maxLength)+1))
	gl.GetShaderInfoLog(shader, maxLength, nil, log)
	return gl.GoStr(log)
}

func (Driver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (Driver) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (Driver) BindAttribLocation(program, index uint32, name string) {
	gl.BindAttribLocation(program, index, gl.Str(name+"\x00"))
}

func (Driver) BindFragDataLocation(program, color uint32, name string) {
	gl.BindFragDataLocation(program, color, gl.Str(name+"\x00"))
}

func (Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Driver) GetActiveUniform(program, index uint32, maxLength int32) (string, int32, gpu.Enum) {

	if maxLength <= 0 {
		return "", 0, 0
	}

	var length, size int32
	var xtype uint32
	name := gl.Str(strings.Repeat("\x00", int(maxLength)+1))
	gl.GetActiveUniform(program, index, maxLength, &length, &size, &xtype, name)

	return gl.GoStr(name), size, gpu.Enum(xtype)
}

func (Driver) ProgramUniform1f(program uint32, location int32, v float32) {
	gl.ProgramUniform1f(program, location, v)
}

func (Driver) ProgramUniform1i(program uint32, location int32, v int32) {
	gl.ProgramUniform1i(program, location, v)
}

func (Driver) ProgramUniform3f(program uint32, location int32, x, y, z float32) {
	gl.ProgramUniform3f(program, location, x, y, z)
}

func (Driver) ProgramUniform3fv(program uint32, location int32, count int32, value *float32) {
	gl.ProgramUniform3fv(program, location, count, value)
}

func (Driver) ProgramUniform4fv(program uint32, location int32, count int32, value *float32) {
	gl.ProgramUniform4fv(program, location, count, value)
}

func (Driver) ProgramUniformMatrix3fv(program uint32, location int32, count int32, transpose bool, value *float32) {
	gl.ProgramUniformMatrix3fv(program, location, count, transpose, value)
}

func (Driver) ProgramUniformMatrix4fv(program uint32, location int32, count int32, transpose bool, value *float32) {
	gl.ProgramUniformMatrix4fv(program, location, count, transpose, value)
}
