package shaders

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/glsltri/gpu"
	"github.com/bloeys/glsltri/logging"
)

type UniformInfo struct {
	Name     string
	Location int32
	Size     int32
	Type     gpu.Enum
}

// GetUnifLoc resolves and caches uniform locations, misses included, so
// per-frame setters only hit the driver once per name. Locations are only
// meaningful on a linked program.
func (sp *ShaderProgram) GetUnifLoc(uniformName string) int32 {

	if !sp.linked {
		return gpu.InvalidLocation
	}

	loc, ok := sp.unifLocs[uniformName]
	if ok {
		return loc
	}

	loc = sp.drv.GetUniformLocation(sp.Id, uniformName)
	sp.unifLocs[uniformName] = loc
	return loc
}

// The setters below write to this program through the ProgramUniform family,
// so the program does not need to be bound. Unknown or optimized out names
// are ignored.

func (sp *ShaderProgram) SetUnifFloat32(uniformName string, val float32) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == gpu.InvalidLocation {
		return
	}

	sp.drv.ProgramUniform1f(sp.Id, loc, val)
}

func (sp *ShaderProgram) SetUnifInt32(uniformName string, val int32) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == gpu.InvalidLocation {
		return
	}

	sp.drv.ProgramUniform1i(sp.Id, loc, val)
}

func (sp *ShaderProgram) SetUnifBool(uniformName string, val bool) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == gpu.InvalidLocation {
		return
	}

	var v int32
	if val {
		v = 1
	}

	sp.drv.ProgramUniform1i(sp.Id, loc, v)
}

func (sp *ShaderProgram) SetUnif3f(uniformName string, x, y, z float32) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == gpu.InvalidLocation {
		return
	}

	sp.drv.ProgramUniform3f(sp.Id, loc, x, y, z)
}

func (sp *ShaderProgram) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == gpu.InvalidLocation {
		return
	}

	sp.drv.ProgramUniform3fv(sp.Id, loc, 1, &vec3.Data[0])
}

func (sp *ShaderProgram) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == gpu.InvalidLocation {
		return
	}

	sp.drv.ProgramUniform4fv(sp.Id, loc, 1, &vec4.Data[0])
}

// SetUnifMat3 uploads without transposing: gglm stores matrices column-major
// like GLSL does.
func (sp *ShaderProgram) SetUnifMat3(uniformName string, mat3 *gglm.Mat3) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == gpu.InvalidLocation {
		return
	}

	sp.drv.ProgramUniformMatrix3fv(sp.Id, loc, 1, false, &mat3.Data[0][0])
}

func (sp *ShaderProgram) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == gpu.InvalidLocation {
		return
	}

	sp.drv.ProgramUniformMatrix4fv(sp.Id, loc, 1, false, &mat4.Data[0][0])
}

// ActiveUniforms lists the uniforms the linker kept, in driver order.
func (sp *ShaderProgram) ActiveUniforms() []UniformInfo {

	if !sp.linked {
		return nil
	}

	count := sp.drv.GetProgramiv(sp.Id, gpu.ActiveUniforms)
	maxLen := sp.drv.GetProgramiv(sp.Id, gpu.ActiveUniformMaxLength)

	unifs := make([]UniformInfo, 0, count)
	for i := int32(0); i < count; i++ {

		name, size, typ := sp.drv.GetActiveUniform(sp.Id, uint32(i), maxLen)
		unifs = append(unifs, UniformInfo{
			Name:     name,
			Location: sp.GetUnifLoc(name),
			Size:     size,
			Type:     typ,
		})
	}

	return unifs
}

func (sp *ShaderProgram) PrintActiveUniforms() {

	unifs := sp.ActiveUniforms()
	logging.InfoLog.Infow("Active uniforms", "programId", sp.Id, "count", len(unifs))

	for _, u := range unifs {
		logging.InfoLog.Infow("Uniform",
			"programId", sp.Id,
			"name", u.Name,
			"location", u.Location,
			"type", gpu.TypeName(u.Type),
			"size", u.Size,
		)
	}
}
