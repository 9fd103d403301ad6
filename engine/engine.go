package engine

import (
	"fmt"
	"runtime"

	"github.com/bloeys/glsltri/assert"
	"github.com/bloeys/glsltri/input"
	"github.com/bloeys/glsltri/logging"
	"github.com/bloeys/glsltri/renderer"
	"github.com/bloeys/glsltri/timing"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	isInited = false
)

type WindowFlags uint32

const (
	WindowFlags_OPENGL        WindowFlags = sdl.WINDOW_OPENGL
	WindowFlags_RESIZABLE     WindowFlags = sdl.WINDOW_RESIZABLE
	WindowFlags_ALLOW_HIGHDPI WindowFlags = sdl.WINDOW_ALLOW_HIGHDPI
)

type Window struct {
	SDLWin         *sdl.Window
	GlCtx          sdl.GLContext
	EventCallbacks []func(sdl.Event)
	Rend           renderer.Render
}

func (w *Window) handleInputs() {

	input.EventLoopStart()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		//Fire callbacks
		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		//Internal processing
		switch e := event.(type) {

		case *sdl.KeyboardEvent:
			input.HandleKeyboardEvent(e)

		case *sdl.MouseButtonEvent:
			input.HandleMouseBtnEvent(e)

		case *sdl.MouseMotionEvent:
			input.HandleMouseMotionEvent(e)

		case *sdl.WindowEvent:

			switch e.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				w.handleWindowResize()
			case sdl.WINDOWEVENT_FOCUS_LOST:
				// Release events won't reach us while unfocused
				input.ClearState()
			}

		case *sdl.QuitEvent:
			input.HandleQuitEvent(e)
		}
	}
}

func (w *Window) handleWindowResize() {

	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}

	gl.Viewport(0, 0, fbWidth, fbHeight)
	logging.DebugLog.Debugw("Window resized", "fbWidth", fbWidth, "fbHeight", fbHeight)
}

// Size returns the drawable size in pixels, which differs from the window
// size on high DPI displays.
func (w *Window) Size() (width, height int32) {
	return w.SDLWin.GLGetDrawableSize()
}

func (w *Window) Destroy() error {

	if w.GlCtx != nil {
		sdl.GLDeleteContext(w.GlCtx)
		w.GlCtx = nil
	}

	return w.SDLWin.Destroy()
}

// Init must run on the main goroutine before any window is created. It locks
// the goroutine to its OS thread, which GL contexts require.
func Init() error {

	isInited = true

	runtime.LockOSThread()
	timing.Init()
	return initSDL()
}

func initSDL() error {

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.ShowCursor(1)

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	return nil
}

func DeInit() {
	sdl.Quit()
}

func CreateOpenGLWindowCentered(title string, width, height int32, flags WindowFlags, rend renderer.Render) (*Window, error) {
	return createWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, WindowFlags_OPENGL|flags, rend)
}

func createWindow(title string, x, y, width, height int32, flags WindowFlags, rend renderer.Render) (*Window, error) {

	assert.T(isInited, "engine.Init() was not called!")

	sdlWin, err := sdl.CreateWindow(title, x, y, width, height, uint32(flags))
	if err != nil {
		return nil, err
	}

	win := &Window{
		SDLWin:         sdlWin,
		EventCallbacks: make([]func(sdl.Event), 0),
		Rend:           rend,
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		sdlWin.Destroy()
		return nil, err
	}

	err = initOpenGL()
	if err != nil {
		win.Destroy()
		return nil, err
	}

	logging.InfoLog.Infow("OpenGL context created",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)

	// Get rid of the blinding white startup screen (unfortunately there is still one frame of white)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	sdlWin.GLSwap()

	return win, nil
}

func initOpenGL() error {

	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to init OpenGL bindings: %w", err)
	}

	// No face culling: the triangle spins and both sides must stay visible
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1)

	return nil
}

func SetVSync(enabled bool) {

	interval := 0
	if enabled {
		interval = 1
	}

	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logging.WarnLog.Warnw("Failed to set swap interval", "vsync", enabled, "err", err)
	}
}
