package shaders

import (
	"os"
	"testing"
	"time"

	"github.com/bloeys/glsltri/gpu/gputest"
	"github.com/bloeys/glsltri/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// touch rewrites path and pushes its mtime forward so the change is seen
// even on filesystems with coarse timestamps.
func touch(t *testing.T, path, content string, bump time.Duration) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	mt := time.Now().Add(bump)
	require.NoError(t, os.Chtimes(path, mt, mt))
}

func TestReloader(t *testing.T) {

	dir := t.TempDir()
	vertPath := writeFile(t, dir, "tri.vert", simpleVertSrc)
	fragPath := writeFile(t, dir, "tri.frag", simpleFragSrc)

	drv := gputest.New()
	r, err := NewReloader(drv, vertPath, fragPath)
	require.NoError(t, err)
	defer r.Delete()

	first := r.Program()
	require.True(t, first.IsLinked())
	firstId := first.Id

	// Untouched files
	reloaded, err := r.Reload()
	require.NoError(t, err)
	assert.False(t, reloaded)
	assert.Same(t, first, r.Program())

	// Same content with a newer mtime
	touch(t, fragPath, simpleFragSrc, time.Minute)
	reloaded, err = r.Reload()
	require.NoError(t, err)
	assert.False(t, reloaded)

	// Real edit swaps the program and frees the old one
	touch(t, fragPath, allShapesFragSrc, 2*time.Minute)
	reloaded, err = r.Reload()
	require.NoError(t, err)
	require.True(t, reloaded)

	second := r.Program()
	assert.NotSame(t, first, second)
	assert.True(t, second.IsLinked())
	assert.True(t, drv.Programs[firstId].Deleted)
	assert.Equal(t, 1, drv.LivePrograms())
	assert.Len(t, second.ActiveUniforms(), 8)

	// Broken edit keeps the working program
	touch(t, fragPath, brokenFragSrc, 3*time.Minute)
	reloaded, err = r.Reload()
	assert.ErrorIs(t, err, ErrCompileFailed)
	assert.False(t, reloaded)
	assert.Same(t, second, r.Program())
	assert.True(t, second.IsLinked())
	assert.Equal(t, 1, drv.LivePrograms())
	assert.Zero(t, drv.LiveShaders())

	// Once fixed it reloads again
	touch(t, fragPath, simpleFragSrc, 4*time.Minute)
	reloaded, err = r.Reload()
	require.NoError(t, err)
	assert.True(t, reloaded)

	r.Delete()
	assert.Zero(t, drv.LivePrograms())
}

func TestReloaderMissingFileIsNotAChange(t *testing.T) {

	dir := t.TempDir()
	vertPath := writeFile(t, dir, "tri.vert", simpleVertSrc)
	fragPath := writeFile(t, dir, "tri.frag", simpleFragSrc)

	drv := gputest.New()
	r, err := NewReloader(drv, vertPath, fragPath)
	require.NoError(t, err)

	// Editors often delete and recreate files on save
	require.NoError(t, os.Remove(fragPath))
	reloaded, err := r.Reload()
	require.NoError(t, err)
	assert.False(t, reloaded)
	assert.True(t, r.Program().IsLinked())
}

func TestNewReloaderErrors(t *testing.T) {

	dir := t.TempDir()
	vertPath := writeFile(t, dir, "tri.vert", simpleVertSrc)
	glslPath := writeFile(t, dir, "tri.glsl", simpleFragSrc)

	drv := gputest.New()

	_, err := NewReloader(drv, vertPath, glslPath)
	assert.ErrorIs(t, err, ErrUnknownShaderType)

	_, err = NewReloader(drv, vertPath, dir+"/missing.frag")
	assert.ErrorIs(t, err, ErrShaderNotFound)

	mismatchedPath := writeFile(t, dir, "bad.frag", mismatchedFragSrc)
	_, err = NewReloader(drv, vertPath, mismatchedPath)
	assert.ErrorIs(t, err, ErrLinkFailed)

	assert.Zero(t, drv.LivePrograms())
	assert.Zero(t, drv.LiveShaders())
}

func TestReloadFailureIsReturnedNotLogged(t *testing.T) {

	core, logs := observer.New(zapcore.DebugLevel)
	logging.SetLogger(zap.New(core))
	t.Cleanup(func() { logging.SetLogger(zap.NewNop()) })

	dir := t.TempDir()
	vertPath := writeFile(t, dir, "tri.vert", simpleVertSrc)
	fragPath := writeFile(t, dir, "tri.frag", simpleFragSrc)

	r, err := NewReloader(gputest.New(), vertPath, fragPath)
	require.NoError(t, err)

	touch(t, fragPath, brokenFragSrc, time.Minute)
	_, err = r.Reload()
	require.ErrorIs(t, err, ErrCompileFailed)

	// The caller decides how a failed reload is reported
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
