package engine

import (
	"github.com/bloeys/glsltri/timing"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	isRunning = false
)

// Game is driven by Run. Update and Render are called once per frame, after
// the frame's events went through the input package.
type Game interface {
	Init()

	Update()
	Render()
	FrameEnd()

	DeInit()
}

// Run blocks until Quit is called, driving g with the events and buffers of win.
func Run(g Game, w *Window) {

	isRunning = true
	g.Init()

	for isRunning {

		timing.FrameStarted()
		w.handleInputs()

		g.Update()

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		g.Render()
		w.SDLWin.GLSwap()

		g.FrameEnd()
		w.Rend.FrameEnd()
		timing.FrameEnded()
	}

	g.DeInit()
}

// Quit makes Run return after the current frame
func Quit() {
	isRunning = false
}
