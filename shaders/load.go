package shaders

import (
	"github.com/bloeys/glsltri/gpu"
	"github.com/kleinnic74/fflags"
)

// LoadProgram builds a program from a vertex and a fragment shader file.
// While hotReload is enabled the program is owned by the returned Reloader,
// otherwise the Reloader is nil and the caller owns the program.
func LoadProgram(drv gpu.Driver, hotReload fflags.Feature, vertPath, fragPath string) (*ShaderProgram, *Reloader, error) {

	var r *Reloader
	err := fflags.IfEnabled(hotReload, func() (err error) {
		r, err = NewReloader(drv, vertPath, fragPath)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if r != nil {
		return r.Program(), r, nil
	}

	prog, err := NewShaderProgramFromFiles(drv, vertPath, fragPath)
	if err != nil {
		return nil, nil, err
	}

	return prog, nil, nil
}
