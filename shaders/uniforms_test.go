package shaders

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/glsltri/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetUniformShapes(t *testing.T) {

	drv, sp := linkedProgram(t, allShapesFragSrc)

	mvp := gglm.Mat4{Data: [4][4]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}}
	normalMat := gglm.Mat3{Data: [3][3]float32{
		{1, 0, 0},
		{0, 2, 0},
		{0, 0, 3},
	}}

	sp.SetUnifMat4("MVP", &mvp)
	sp.SetUnifFloat32("gain", 0.5)
	sp.SetUnifInt32("mode", 2)
	sp.SetUnifBool("enabled", true)
	sp.SetUnif3f("offset", 1, 2, 3)
	sp.SetUnifVec3("tint", &gglm.Vec3{Data: [3]float32{0.1, 0.2, 0.3}})
	sp.SetUnifVec4("fog", &gglm.Vec4{Data: [4]float32{0.4, 0.5, 0.6, 0.7}})
	sp.SetUnifMat3("normalMat", &normalMat)

	// Every write matched the declared type of its uniform
	assert.Equal(t, gpu.NoError, drv.GetError())

	tests := []struct {
		name   string
		call   string
		floats []float32
		ints   []int32
	}{
		{"MVP", "ProgramUniformMatrix4fv", []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, nil},
		{"gain", "ProgramUniform1f", []float32{0.5}, nil},
		{"mode", "ProgramUniform1i", nil, []int32{2}},
		{"enabled", "ProgramUniform1i", nil, []int32{1}},
		{"offset", "ProgramUniform3f", []float32{1, 2, 3}, nil},
		{"tint", "ProgramUniform3fv", []float32{0.1, 0.2, 0.3}, nil},
		{"fog", "ProgramUniform4fv", []float32{0.4, 0.5, 0.6, 0.7}, nil},
		{"normalMat", "ProgramUniformMatrix3fv", []float32{1, 0, 0, 0, 2, 0, 0, 0, 3}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := drv.LastWrite(sp.Id, tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.call, w.Call)
			assert.Equal(t, tt.floats, w.Floats)
			assert.Equal(t, tt.ints, w.Ints)
			assert.False(t, w.Transpose)
		})
	}

	sp.SetUnifBool("enabled", false)
	w, _ := drv.LastWrite(sp.Id, "enabled")
	assert.Equal(t, []int32{0}, w.Ints)
}

func TestVectorSettersUploadOneElement(t *testing.T) {

	drv, sp := linkedProgram(t, allShapesFragSrc)

	sp.SetUnifVec3("tint", &gglm.Vec3{Data: [3]float32{1, 1, 1}})
	sp.SetUnifVec4("fog", &gglm.Vec4{Data: [4]float32{1, 1, 1, 1}})
	id := gglm.NewMat4Diag(1)
	sp.SetUnifMat4("MVP", &id)

	for _, name := range []string{"ProgramUniform3fv", "ProgramUniform4fv", "ProgramUniformMatrix4fv"} {
		calls := drv.Named(name)
		require.Len(t, calls, 1, name)
		assert.EqualValues(t, 1, calls[0].Args[2], name)
	}
}

func TestSetUnknownUniformIsIgnored(t *testing.T) {

	drv, sp := linkedProgram(t, allShapesFragSrc)
	sp.Use()
	drv.ResetCalls()

	sp.SetUnifFloat32("doesNotExist", 1)
	sp.SetUnifFloat32("neverUsed", 1)

	assert.Equal(t, []string{"GetUniformLocation", "GetUniformLocation"}, drv.Names())
	assert.Equal(t, gpu.NoError, drv.GetError())
}

func TestUniformLocationsAreCached(t *testing.T) {

	drv, sp := linkedProgram(t, allShapesFragSrc)
	drv.ResetCalls()

	for i := 0; i < 5; i++ {
		sp.SetUnifFloat32("gain", float32(i))
		sp.SetUnifFloat32("neverUsed", float32(i))
	}

	assert.Equal(t, 2, drv.Count("GetUniformLocation"))
	assert.Equal(t, 5, drv.Count("ProgramUniform1f"))

	w, ok := drv.LastWrite(sp.Id, "gain")
	require.True(t, ok)
	assert.Equal(t, []float32{4}, w.Floats)

	assert.EqualValues(t, 0, sp.GetUnifLoc("MVP"))
	assert.EqualValues(t, 1, sp.GetUnifLoc("gain"))
	assert.Equal(t, gpu.InvalidLocation, sp.GetUnifLoc("neverUsed"))
}

func TestSettersBeforeLinkAreNoops(t *testing.T) {

	drv, sp := newProgram(t)
	require.NoError(t, sp.CompileShaderFromString(simpleVertSrc, ShaderType_Vertex))
	drv.ResetCalls()

	id := gglm.NewMat4Diag(1)
	sp.SetUnifMat4("MVP", &id)
	sp.SetUnifInt32("mode", 1)

	assert.Empty(t, drv.Calls)
	assert.Equal(t, gpu.InvalidLocation, sp.GetUnifLoc("MVP"))
	assert.Nil(t, sp.ActiveUniforms())
}

func TestActiveUniforms(t *testing.T) {

	_, sp := linkedProgram(t, allShapesFragSrc)

	unifs := sp.ActiveUniforms()
	require.Len(t, unifs, 8)

	assert.Equal(t, UniformInfo{Name: "MVP", Location: 0, Size: 1, Type: gpu.FloatMat4}, unifs[0])
	assert.Equal(t, UniformInfo{Name: "normalMat", Location: 7, Size: 1, Type: gpu.FloatMat3}, unifs[7])

	names := make([]string, len(unifs))
	for i, u := range unifs {
		names[i] = u.Name
	}
	assert.NotContains(t, names, "neverUsed")

	assert.NotPanics(t, sp.PrintActiveUniforms)
}
