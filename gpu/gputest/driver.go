// Package gputest provides a recording gpu.Driver for tests.
//
// The driver keeps enough GL object state to behave like a real context for
// shader programs: stages compile or fail with an info log, programs link or
// fail when stage interfaces do not match, and linked programs expose the
// uniforms their sources actually use. Every call is appended to Calls so tests
// can assert on the exact GL traffic.
package gputest

import (
	"fmt"
	"slices"
	"unsafe"

	"github.com/bloeys/glsltri/gpu"
)

var _ gpu.Driver = &Driver{}

type Call struct {
	Name string
	Args []any
}

type Shader struct {
	Id       uint32
	Kind     gpu.Enum
	Source   string
	Compiled bool
	InfoLog  string

	// Deleted is set once DeleteShader was called, even while the shader
	// is still attached to a program.
	Deleted bool
}

type Uniform struct {
	Name     string
	Type     gpu.Enum
	Location int32
}

// UniformWrite is the last value written to a uniform location.
type UniformWrite struct {
	Call      string
	Transpose bool
	Floats    []float32
	Ints      []int32
}

type Program struct {
	Id       uint32
	Attached []uint32
	Linked   bool
	InfoLog  string
	Deleted  bool

	AttribLocs   map[string]uint32
	FragDataLocs map[string]uint32
	Uniforms     []Uniform
	Writes       map[int32]UniformWrite
}

type Driver struct {
	Calls []Call

	Shaders        map[uint32]*Shader
	Programs       map[uint32]*Program
	CurrentProgram uint32

	// CompileCheck returns the info log for a failed compile, or "" when src
	// compiles. Defaults to CheckSource.
	CompileCheck func(kind gpu.Enum, src string) string

	// LinkCheck returns the info log for a failed link, or "" when the
	// stages link. Defaults to CheckInterface.
	LinkCheck func(stages []*Shader) string

	// FailCreate makes CreateProgram and CreateShader return 0.
	FailCreate bool

	nextId  uint32
	lastErr gpu.Enum
}

func New() *Driver {
	return &Driver{
		Shaders:      map[uint32]*Shader{},
		Programs:     map[uint32]*Program{},
		CompileCheck: CheckSource,
		LinkCheck:    CheckInterface,
	}
}

func (d *Driver) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Driver) setErr(e gpu.Enum) {
	// Like GL, keep the first error until it is read
	if d.lastErr == gpu.NoError {
		d.lastErr = e
	}
}

func (d *Driver) newId() uint32 {
	d.nextId++
	return d.nextId
}

func (d *Driver) program(id uint32) *Program {
	p, ok := d.Programs[id]
	if !ok || p.Deleted {
		return nil
	}
	return p
}

func (d *Driver) shader(id uint32) *Shader {
	s, ok := d.Shaders[id]
	if !ok {
		return nil
	}
	return s
}

func (d *Driver) GetError() gpu.Enum {
	d.record("GetError")
	e := d.lastErr
	d.lastErr = gpu.NoError
	return e
}

func (d *Driver) CreateProgram() uint32 {

	if d.FailCreate {
		d.record("CreateProgram", uint32(0))
		d.setErr(gpu.InvalidOperation)
		return 0
	}

	id := d.newId()
	d.Programs[id] = &Program{
		Id:           id,
		AttribLocs:   map[string]uint32{},
		FragDataLocs: map[string]uint32{},
		Writes:       map[int32]UniformWrite{},
	}

	d.record("CreateProgram", id)
	return id
}

func (d *Driver) DeleteProgram(program uint32) {

	d.record("DeleteProgram", program)
	if program == 0 {
		return
	}

	p := d.program(program)
	if p == nil {
		d.setErr(gpu.InvalidValue)
		return
	}

	p.Deleted = true
	p.Linked = false
	p.Attached = nil
}

func (d *Driver) LinkProgram(program uint32) {

	d.record("LinkProgram", program)

	p := d.program(program)
	if p == nil {
		d.setErr(gpu.InvalidValue)
		return
	}

	stages := make([]*Shader, 0, len(p.Attached))
	for _, id := range p.Attached {
		stages = append(stages, d.Shaders[id])
	}

	p.InfoLog = d.LinkCheck(stages)
	p.Linked = p.InfoLog == ""
	p.Uniforms = nil
	p.Writes = map[int32]UniformWrite{}
	if p.Linked {
		p.Uniforms = activeUniforms(stages)
	}
}

func (d *Driver) UseProgram(program uint32) {

	d.record("UseProgram", program)
	if program == 0 {
		d.CurrentProgram = 0
		return
	}

	p := d.program(program)
	if p == nil {
		d.setErr(gpu.InvalidValue)
		return
	}

	if !p.Linked {
		d.setErr(gpu.InvalidOperation)
		return
	}

	d.CurrentProgram = program
}

func (d *Driver) GetProgramiv(program uint32, pname gpu.Enum) int32 {

	d.record("GetProgramiv", program, pname)

	p := d.program(program)
	if p == nil {
		d.setErr(gpu.InvalidValue)
		return 0
	}

	switch pname {
	case gpu.LinkStatus:
		if p.Linked {
			return int32(gpu.True)
		}
		return int32(gpu.False)
	case gpu.InfoLogLength:
		return logLength(p.InfoLog)
	case gpu.AttachedShaders:
		return int32(len(p.Attached))
	case gpu.ActiveUniforms:
		return int32(len(p.Uniforms))
	case gpu.ActiveUniformMaxLength:
		var maxLen int32
		for _, u := range p.Uniforms {
			maxLen = max(maxLen, int32(len(u.Name))+1)
		}
		return maxLen
	}

	d.setErr(gpu.InvalidEnum)
	return 0
}

func (d *Driver) GetProgramInfoLog(program uint32, maxLength int32) string {

	d.record("GetProgramInfoLog", program, maxLength)

	p := d.program(program)
	if p == nil {
		d.setErr(gpu.InvalidValue)
		return ""
	}

	return truncate(p.InfoLog, maxLength)
}

func (d *Driver) CreateShader(kind gpu.Enum) uint32 {

	if d.FailCreate {
		d.record("CreateShader", kind, uint32(0))
		d.setErr(gpu.InvalidOperation)
		return 0
	}

	if kind != gpu.VertexShader && kind != gpu.FragmentShader && kind != gpu.GeometryShader {
		d.record("CreateShader", kind, uint32(0))
		d.setErr(gpu.InvalidEnum)
		return 0
	}

	id := d.newId()
	d.Shaders[id] = &Shader{Id: id, Kind: kind}
	d.record("CreateShader", kind, id)
	return id
}

func (d *Driver) DeleteShader(shader uint32) {

	d.record("DeleteShader", shader)
	if shader == 0 {
		return
	}

	s := d.shader(shader)
	if s == nil {
		d.setErr(gpu.InvalidValue)
		return
	}

	s.Deleted = true
}

func (d *Driver) ShaderSource(shader uint32, src string) {

	d.record("ShaderSource", shader, src)

	s := d.shader(shader)
	if s == nil || s.Deleted {
		d.setErr(gpu.InvalidValue)
		return
	}

	s.Source = src
}

func (d *Driver) CompileShader(shader uint32) {

	d.record("CompileShader", shader)

	s := d.shader(shader)
	if s == nil || s.Deleted {
		d.setErr(gpu.InvalidValue)
		return
	}

	s.InfoLog = d.CompileCheck(s.Kind, s.Source)
	s.Compiled = s.InfoLog == ""
}

func (d *Driver) GetShaderiv(shader uint32, pname gpu.Enum) int32 {

	d.record("GetShaderiv", shader, pname)

	s := d.shader(shader)
	if s == nil {
		d.setErr(gpu.InvalidValue)
		return 0
	}

	switch pname {
	case gpu.CompileStatus:
		if s.Compiled {
			return int32(gpu.True)
		}
		return int32(gpu.False)
	case gpu.InfoLogLength:
		return logLength(s.InfoLog)
	}

	d.setErr(gpu.InvalidEnum)
	return 0
}

func (d *Driver) GetShaderInfoLog(shader uint32, maxLength int32) string {

	d.record("GetShaderInfoLog", shader, maxLength)

	s := d.shader(shader)
	if s == nil {
		d.setErr(gpu.InvalidValue)
		return ""
	}

	return truncate(s.InfoLog, maxLength)
}

func (d *Driver) AttachShader(program, shader uint32) {

	d.record("AttachShader", program, shader)

	p := d.program(program)
	s := d.shader(shader)
	if p == nil || s == nil || s.Deleted {
		d.setErr(gpu.InvalidValue)
		return
	}

	if slices.Contains(p.Attached, shader) {
		d.setErr(gpu.InvalidOperation)
		return
	}

	p.Attached = append(p.Attached, shader)
}

func (d *Driver) DetachShader(program, shader uint32) {

	d.record("DetachShader", program, shader)

	p := d.program(program)
	if p == nil {
		d.setErr(gpu.InvalidValue)
		return
	}

	i := slices.Index(p.Attached, shader)
	if i == -1 {
		d.setErr(gpu.InvalidOperation)
		return
	}

	p.Attached = slices.Delete(p.Attached, i, i+1)
}

func (d *Driver) BindAttribLocation(program, index uint32, name string) {

	d.record("BindAttribLocation", program, index, name)

	p := d.program(program)
	if p == nil {
		d.setErr(gpu.InvalidValue)
		return
	}

	p.AttribLocs[name] = index
}

func (d *Driver) BindFragDataLocation(program, color uint32, name string) {

	d.record("BindFragDataLocation", program, color, name)

	p := d.program(program)
	if p == nil {
		d.setErr(gpu.InvalidValue)
		return
	}

	p.FragDataLocs[name] = color
}

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {

	d.record("GetUniformLocation", program, name)

	p := d.program(program)
	if p == nil {
		d.setErr(gpu.InvalidValue)
		return gpu.InvalidLocation
	}

	if !p.Linked {
		d.setErr(gpu.InvalidOperation)
		return gpu.InvalidLocation
	}

	for _, u := range p.Uniforms {
		if u.Name == name {
			return u.Location
		}
	}

	return gpu.InvalidLocation
}

func (d *Driver) GetActiveUniform(program, index uint32, maxLength int32) (string, int32, gpu.Enum) {

	d.record("GetActiveUniform", program, index, maxLength)

	p := d.program(program)
	if p == nil {
		d.setErr(gpu.InvalidValue)
		return "", 0, 0
	}

	if int(index) >= len(p.Uniforms) {
		d.setErr(gpu.InvalidValue)
		return "", 0, 0
	}

	u := p.Uniforms[index]
	return truncate(u.Name, maxLength), 1, u.Type
}

func (d *Driver) ProgramUniform1f(program uint32, location int32, v float32) {
	d.record("ProgramUniform1f", program, location, v)
	d.write(program, location, UniformWrite{Call: "ProgramUniform1f", Floats: []float32{v}}, gpu.Float, gpu.Bool)
}

func (d *Driver) ProgramUniform1i(program uint32, location int32, v int32) {
	d.record("ProgramUniform1i", program, location, v)
	d.write(program, location, UniformWrite{Call: "ProgramUniform1i", Ints: []int32{v}}, gpu.Int, gpu.Bool, gpu.Sampler2D, gpu.SamplerCube)
}

func (d *Driver) ProgramUniform3f(program uint32, location int32, x, y, z float32) {
	d.record("ProgramUniform3f", program, location, x, y, z)
	d.write(program, location, UniformWrite{Call: "ProgramUniform3f", Floats: []float32{x, y, z}}, gpu.FloatVec3)
}

func (d *Driver) ProgramUniform3fv(program uint32, location int32, count int32, value *float32) {
	vals := floats(value, 3*count)
	d.record("ProgramUniform3fv", program, location, count, vals)
	d.write(program, location, UniformWrite{Call: "ProgramUniform3fv", Floats: vals}, gpu.FloatVec3)
}

func (d *Driver) ProgramUniform4fv(program uint32, location int32, count int32, value *float32) {
	vals := floats(value, 4*count)
	d.record("ProgramUniform4fv", program, location, count, vals)
	d.write(program, location, UniformWrite{Call: "ProgramUniform4fv", Floats: vals}, gpu.FloatVec4)
}

func (d *Driver) ProgramUniformMatrix3fv(program uint32, location int32, count int32, transpose bool, value *float32) {
	vals := floats(value, 9*count)
	d.record("ProgramUniformMatrix3fv", program, location, count, transpose, vals)
	d.write(program, location, UniformWrite{Call: "ProgramUniformMatrix3fv", Transpose: transpose, Floats: vals}, gpu.FloatMat3)
}

func (d *Driver) ProgramUniformMatrix4fv(program uint32, location int32, count int32, transpose bool, value *float32) {
	vals := floats(value, 16*count)
	d.record("ProgramUniformMatrix4fv", program, location, count, transpose, vals)
	d.write(program, location, UniformWrite{Call: "ProgramUniformMatrix4fv", Transpose: transpose, Floats: vals}, gpu.FloatMat4)
}

// write stores w if location is an active uniform of a type in accepts.
// A location of -1 is silently ignored, as in GL.
func (d *Driver) write(program uint32, location int32, w UniformWrite, accepts ...gpu.Enum) {

	if location == gpu.InvalidLocation {
		return
	}

	p := d.program(program)
	if p == nil {
		d.setErr(gpu.InvalidValue)
		return
	}

	if !p.Linked {
		d.setErr(gpu.InvalidOperation)
		return
	}

	for _, u := range p.Uniforms {

		if u.Location != location {
			continue
		}

		if !slices.Contains(accepts, u.Type) {
			d.setErr(gpu.InvalidOperation)
			return
		}

		p.Writes[location] = w
		return
	}

	d.setErr(gpu.InvalidOperation)
}

// Names returns the names of all recorded calls in order.
func (d *Driver) Names() []string {
	names := make([]string, len(d.Calls))
	for i := range d.Calls {
		names[i] = d.Calls[i].Name
	}
	return names
}

// Named returns the recorded calls with the given name.
func (d *Driver) Named(name string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (d *Driver) Count(name string) int {
	return len(d.Named(name))
}

// ResetCalls forgets recorded calls but keeps object state.
func (d *Driver) ResetCalls() {
	d.Calls = d.Calls[:0]
}

// LiveShaders is the number of shader objects not yet deleted.
func (d *Driver) LiveShaders() int {
	n := 0
	for _, s := range d.Shaders {
		if !s.Deleted {
			n++
		}
	}
	return n
}

// LivePrograms is the number of program objects not yet deleted.
func (d *Driver) LivePrograms() int {
	n := 0
	for _, p := range d.Programs {
		if !p.Deleted {
			n++
		}
	}
	return n
}

// LastWrite returns the last value written to the named uniform of program.
func (d *Driver) LastWrite(program uint32, name string) (UniformWrite, bool) {

	p, ok := d.Programs[program]
	if !ok {
		return UniformWrite{}, false
	}

	for _, u := range p.Uniforms {
		if u.Name == name {
			w, ok := p.Writes[u.Location]
			return w, ok
		}
	}

	return UniformWrite{}, false
}

func (d *Driver) String() string {
	return fmt.Sprintf("gputest.Driver{calls=%d, shaders=%d/%d, programs=%d/%d}", len(d.Calls), d.LiveShaders(), len(d.Shaders), d.LivePrograms(), len(d.Programs))
}

func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log)) + 1
}

func truncate(s string, maxLength int32) string {

	if maxLength <= 0 {
		return ""
	}

	// maxLength includes the null terminator
	if int32(len(s)) > maxLength-1 {
		return s[:maxLength-1]
	}
	return s
}

func floats(value *float32, n int32) []float32 {
	if value == nil || n <= 0 {
		return nil
	}
	return slices.Clone(unsafe.Slice(value, n))
}
