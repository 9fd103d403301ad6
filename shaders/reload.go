package shaders

import (
	"fmt"
	"os"
	"time"

	"github.com/bloeys/glsltri/gpu"
	"github.com/bloeys/glsltri/logging"
	"github.com/reusee/mmh3"
)

type stageFile struct {
	path    string
	typ     ShaderType
	modTime time.Time
	hash    string
}

// Reloader rebuilds a program from its stage files when they change on disk.
// A file counts as changed when its modification time moved and its content
// hash differs, so editors that rewrite identical content do not trigger
// a relink.
type Reloader struct {
	drv    gpu.Driver
	stages []stageFile
	prog   *ShaderProgram
}

// NewReloader builds the initial program from paths. The stage of each file
// comes from its extension (see ShaderTypeFromPath).
func NewReloader(drv gpu.Driver, paths ...string) (*Reloader, error) {

	r := &Reloader{
		drv:    drv,
		stages: make([]stageFile, 0, len(paths)),
	}

	for _, p := range paths {

		typ := ShaderTypeFromPath(p)
		if typ == ShaderType_Unknown {
			return nil, fmt.Errorf("%w: can't tell stage of '%s' from its extension", ErrUnknownShaderType, p)
		}

		r.stages = append(r.stages, stageFile{path: p, typ: typ})
	}

	for i := range r.stages {
		// Missing files are reported by build below
		r.stages[i].refresh()
	}

	prog, err := r.build()
	if err != nil {
		return nil, err
	}

	r.prog = prog
	return r, nil
}

func (r *Reloader) Program() *ShaderProgram {
	return r.prog
}

// Reload relinks the program if any stage file changed. When the new
// sources fail to build the current program stays in place and the error,
// which carries the diagnostic log, is returned for the caller to report.
func (r *Reloader) Reload() (bool, error) {

	changed := false
	for i := range r.stages {
		if r.stages[i].refresh() {
			changed = true
		}
	}

	if !changed {
		return false, nil
	}

	prog, err := r.build()
	if err != nil {
		return false, err
	}

	logging.InfoLog.Infow("Shaders reloaded", "oldProgramId", r.prog.Id, "newProgramId", prog.Id)
	r.prog.Delete()
	r.prog = prog
	return true, nil
}

// Delete releases the current program.
func (r *Reloader) Delete() {
	r.prog.Delete()
}

func (r *Reloader) build() (*ShaderProgram, error) {

	shdrProg, err := NewShaderProgram(r.drv)
	if err != nil {
		return nil, err
	}

	for _, st := range r.stages {
		if err := shdrProg.CompileShaderFromFile(st.path, st.typ); err != nil {
			shdrProg.Delete()
			return nil, err
		}
	}

	if err := shdrProg.Link(); err != nil {
		return nil, err
	}

	return shdrProg, nil
}

// refresh updates the recorded state of the file and reports whether its
// content changed. Files that can't be read right now count as unchanged.
func (s *stageFile) refresh() bool {

	info, err := os.Stat(s.path)
	if err != nil || info.ModTime().Equal(s.modTime) {
		return false
	}

	src, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}

	s.modTime = info.ModTime()
	h := fingerprint(src)
	if h == s.hash {
		return false
	}

	s.hash = h
	return true
}

func fingerprint(src []byte) string {
	h := mmh3.New32()
	h.Write(src)
	return string(h.Sum(nil))
}
