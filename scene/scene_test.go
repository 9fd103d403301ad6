package scene

import (
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/glsltri/gpu/gputest"
	"github.com/bloeys/glsltri/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	vertSrc = `#version 410 core
layout(location = 0) in vec3 vertPos;
uniform mat4 MVP;
void main()
{
	gl_Position = MVP * vec4(vertPos, 1.0);
}
`
	fragSrc = `#version 410 core
out vec4 fragColor;
void main()
{
	fragColor = vec4(1.0);
}
`
)

func flatten(m *gglm.Mat4) []float32 {
	out := make([]float32, 0, 16)
	for c := 0; c < 4; c++ {
		out = append(out, m.Data[c][:]...)
	}
	return out
}

func toFloat64(fs []float32) []float64 {
	out := make([]float64, len(fs))
	for i, f := range fs {
		out[i] = float64(f)
	}
	return out
}

func TestNewDefaults(t *testing.T) {

	s := New(4.0 / 3.0)

	assert.Equal(t, [3]float32{0, 0, 3}, s.CamPos.Data)
	assert.Equal(t, [3]float32{0, 0, 0}, s.Target.Data)
	assert.InDelta(t, 0.785398, s.FovRad, 1e-5)
	assert.InDelta(t, 0.1, s.Near, 1e-6)
	assert.InDelta(t, 100, s.Far, 1e-6)

	// Matrices are ready before the first Update
	assert.NotEqual(t, gglm.Mat4{}, s.MVP)
	id := gglm.NewMat4Diag(1)
	assert.InDeltaSlice(t, toFloat64(flatten(&id)), toFloat64(flatten(&s.ModelMat)), 1e-6)
}

func TestOnCursorMoveFirstEventOnlySeeds(t *testing.T) {

	s := New(1)

	s.OnCursorMove(500, true)
	assert.Equal(t, float32(3), s.CamPos.Z())

	s.OnCursorMove(600, true)
	assert.InDelta(t, 3+100*DefaultZoomSpeed, s.CamPos.Z(), 1e-5)
}

func TestOnCursorMoveOnlyZoomsWhileButtonDown(t *testing.T) {

	s := New(1)
	s.OnCursorMove(0, false)

	s.OnCursorMove(100, false)
	assert.Equal(t, float32(3), s.CamPos.Z())

	// prevY followed the cursor while the button was up
	s.OnCursorMove(50, true)
	assert.InDelta(t, 3-50*DefaultZoomSpeed, s.CamPos.Z(), 1e-5)
}

func TestOnCursorMoveClampsDistance(t *testing.T) {

	s := New(1)
	s.OnCursorMove(0, true)

	s.OnCursorMove(1e6, true)
	assert.Equal(t, s.MaxDist, s.CamPos.Z())

	s.OnCursorMove(-1e6, true)
	assert.Equal(t, s.MinDist, s.CamPos.Z())

	s.OnCursorMove(-1e6+100, true)
	assert.InDelta(t, s.MinDist+100*s.ZoomSpeed, s.CamPos.Z(), 1e-3)
}

func TestSetAspectRatio(t *testing.T) {

	s := New(1)

	s.SetAspectRatio(1280, 720)
	assert.InDelta(t, 16.0/9.0, s.AspectRatio, 1e-6)

	s.SetAspectRatio(0, 720)
	s.SetAspectRatio(1280, -1)
	assert.InDelta(t, 16.0/9.0, s.AspectRatio, 1e-6)
}

func TestNewRejectsDegenerateAspectRatio(t *testing.T) {

	var zero int32
	for _, ar := range []float32{0, -1, float32(640) / float32(zero), float32(math.NaN())} {

		s := New(ar)
		assert.InDelta(t, DefaultAspectRatio, s.AspectRatio, 1e-6)

		for _, v := range flatten(&s.MVP) {
			assert.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0))
		}
	}
}

func TestUpdateAnimatesAndFollowsCamera(t *testing.T) {

	s := New(1)

	s.Update(0)
	atStart := s.MVP

	s.Update(1)
	assert.NotEqual(t, atStart, s.MVP)
	assert.NotEqual(t, gglm.NewMat4Diag(1), s.ModelMat)

	// A full turn brings the model back
	turn := float32(2*math.Pi) / s.RotSpeedRad
	s.Update(turn)
	assert.InDeltaSlice(t, toFloat64(flatten(&atStart)), toFloat64(flatten(&s.MVP)), 1e-3)

	view := s.ViewMat
	s.CamPos.Data[2] = 10
	s.Update(turn)
	assert.NotEqual(t, view, s.ViewMat)
}

func TestApplyWritesMVP(t *testing.T) {

	drv := gputest.New()
	prog, err := shaders.NewShaderProgramFromSources(drv, vertSrc, fragSrc)
	require.NoError(t, err)
	defer prog.Delete()

	s := New(1)
	s.Update(0.5)
	s.Apply(prog)

	w, ok := drv.LastWrite(prog.Id, MVPUniform)
	require.True(t, ok)
	assert.Equal(t, "ProgramUniformMatrix4fv", w.Call)
	assert.False(t, w.Transpose)
	assert.Equal(t, flatten(&s.MVP), w.Floats)
}
