// Package scene holds the per-window camera and transform state of the demo,
// passed explicitly to the frame update and input handlers.
package scene

import (
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/glsltri/shaders"
)

const (
	DefaultAspectRatio = 4.0 / 3.0
	DefaultFovDeg      = 45
	DefaultNear        = 0.1
	DefaultFar         = 100
	DefaultRotSpeedDeg = 50
	DefaultZoomSpeed   = 0.01
	DefaultMinDist     = 1
	DefaultMaxDist     = 20

	MVPUniform = "MVP"
)

type Scene struct {
	CamPos gglm.Vec3
	Target gglm.Vec3

	AspectRatio float32
	FovRad      float32
	Near        float32
	Far         float32

	// RotSpeedRad is how fast the model spins around Y, in radians per second
	RotSpeedRad float32

	// ZoomSpeed converts cursor pixels into camera units along Z.
	// MinDist and MaxDist bound CamPos.z.
	ZoomSpeed float32
	MinDist   float32
	MaxDist   float32

	ProjMat  gglm.Mat4
	ViewMat  gglm.Mat4
	ModelMat gglm.Mat4
	MVP      gglm.Mat4

	prevCursorY float32
	hasCursor   bool
}

// New builds the scene at its initial pose. An aspect ratio that is not a
// positive finite number, e.g. from a zero height window, is replaced by
// DefaultAspectRatio.
func New(aspectRatio float32) *Scene {

	if !validAspectRatio(aspectRatio) {
		aspectRatio = DefaultAspectRatio
	}

	s := &Scene{
		CamPos:      gglm.NewVec3(0, 0, 3),
		Target:      gglm.NewVec3(0, 0, 0),
		AspectRatio: aspectRatio,
		FovRad:      DefaultFovDeg * gglm.Deg2Rad,
		Near:        DefaultNear,
		Far:         DefaultFar,
		RotSpeedRad: DefaultRotSpeedDeg * gglm.Deg2Rad,
		ZoomSpeed:   DefaultZoomSpeed,
		MinDist:     DefaultMinDist,
		MaxDist:     DefaultMaxDist,
	}

	s.Update(0)
	return s
}

// OnCursorMove zooms the camera while the mouse button is held, by the vertical
// distance the cursor travelled since the previous event. The first event
// only records the cursor.
func (s *Scene) OnCursorMove(y float32, buttonDown bool) {

	if !s.hasCursor {
		s.prevCursorY = y
		s.hasCursor = true
		return
	}

	if buttonDown {
		z := s.CamPos.Z() + (y-s.prevCursorY)*s.ZoomSpeed
		s.CamPos.Data[2] = min(max(z, s.MinDist), s.MaxDist)
	}

	s.prevCursorY = y
}

func (s *Scene) SetAspectRatio(width, height int32) {

	if width <= 0 || height <= 0 {
		return
	}

	s.AspectRatio = float32(width) / float32(height)
}

func validAspectRatio(ar float32) bool {
	return ar > 0 && !math.IsInf(float64(ar), 1)
}

// Update recomputes all matrices for the given time since start, in seconds.
func (s *Scene) Update(elapsedSec float32) {

	modelMat := gglm.NewTrMatId()
	modelMat.Rotate(elapsedSec*s.RotSpeedRad, 0, 1, 0)
	s.ModelMat = modelMat.Mat4

	up := gglm.NewVec3(0, 1, 0)
	s.ViewMat = gglm.LookAtRH(&s.CamPos, &s.Target, &up).Mat4

	projMat := gglm.Perspective(s.FovRad, s.AspectRatio, s.Near, s.Far)
	s.ProjMat = *projMat.Clone()

	s.MVP = *s.ProjMat.Clone().Mul(&s.ViewMat).Mul(&s.ModelMat)
}

// Apply uploads MVP to prog. The program does not need to be bound.
func (s *Scene) Apply(prog *shaders.ShaderProgram) {
	prog.SetUnifMat4(MVPUniform, &s.MVP)
}
