package shaders

import (
	"testing"
	"time"

	"github.com/bloeys/glsltri/gpu/gputest"
	"github.com/kleinnic74/fflags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProgramFollowsFeature(t *testing.T) {

	feature := fflags.Define("shaderstest.hotreload")
	t.Cleanup(feature.Disable)

	dir := t.TempDir()
	vertPath := writeFile(t, dir, "tri.vert", simpleVertSrc)
	fragPath := writeFile(t, dir, "tri.frag", simpleFragSrc)

	drv := gputest.New()

	// Disabled: a plain program the caller owns
	prog, r, err := LoadProgram(drv, feature, vertPath, fragPath)
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.True(t, prog.IsLinked())
	prog.Delete()

	// Enabled: the reloader owns the program and sees edits
	feature.Enable()
	prog, r, err = LoadProgram(drv, feature, vertPath, fragPath)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Same(t, r.Program(), prog)

	touch(t, fragPath, allShapesFragSrc, time.Minute)
	reloaded, err := r.Reload()
	require.NoError(t, err)
	assert.True(t, reloaded)

	r.Delete()
	assert.Zero(t, drv.LivePrograms())
}

func TestLoadProgramErrors(t *testing.T) {

	feature := fflags.Define("shaderstest.reloaderrors")
	t.Cleanup(feature.Disable)

	dir := t.TempDir()
	vertPath := writeFile(t, dir, "tri.vert", simpleVertSrc)
	brokenPath := writeFile(t, dir, "broken.frag", brokenFragSrc)

	drv := gputest.New()

	_, _, err := LoadProgram(drv, feature, vertPath, brokenPath)
	assert.ErrorIs(t, err, ErrCompileFailed)

	feature.Enable()
	_, r, err := LoadProgram(drv, feature, vertPath, brokenPath)
	assert.ErrorIs(t, err, ErrCompileFailed)
	assert.Nil(t, r)

	assert.Zero(t, drv.LivePrograms())
}
