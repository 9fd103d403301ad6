// Package input keeps per-frame keyboard and mouse state built from SDL events.
//
// Call EventLoopStart once at the start of every frame before feeding it the
// frame's events through the Handle* functions. 'ThisFrame' states and the
// quit flag only live until the next EventLoopStart.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

type keyState struct {
	Key                sdl.Keycode
	State              int
	IsPressedThisFrame bool
}

type mouseBtnState struct {
	Btn   int
	State int
}

type mouseMotionState struct {
	XPos int32
	YPos int32

	MovedThisFrame bool
}

var (
	mouseMotion = mouseMotionState{}
	mouseBtnMap = make(map[int]mouseBtnState)
	keyMap      = make(map[sdl.Keycode]keyState)

	isQuitRequested bool
)

func EventLoopStart() {

	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		keyMap[k] = v
	}

	mouseMotion.MovedThisFrame = false

	isQuitRequested = false
}

// ClearState forgets everything, for example after the window lost focus
// and release events may never arrive.
func ClearState() {
	clear(keyMap)
	clear(mouseBtnMap)
	mouseMotion = mouseMotionState{}
}

func HandleQuitEvent(e *sdl.QuitEvent) {
	isQuitRequested = true
}

func IsQuitClicked() bool {
	return isQuitRequested
}

func HandleKeyboardEvent(e *sdl.KeyboardEvent) {

	ks, ok := keyMap[e.Keysym.Sym]
	if !ok {
		ks = keyState{Key: e.Keysym.Sym}
	}

	ks.State = int(e.State)
	ks.IsPressedThisFrame = e.State == sdl.PRESSED && e.Repeat == 0

	keyMap[ks.Key] = ks
}

func HandleMouseBtnEvent(e *sdl.MouseButtonEvent) {

	mouseBtnMap[int(e.Button)] = mouseBtnState{
		Btn:   int(e.Button),
		State: int(e.State),
	}
}

// HandleMouseMotionEvent keeps the latest position, since a frame can carry
// many motion events.
func HandleMouseMotionEvent(e *sdl.MouseMotionEvent) {

	mouseMotion.XPos = e.X
	mouseMotion.YPos = e.Y
	mouseMotion.MovedThisFrame = true
}

// GetMousePos returns the last cursor position in window coordinates
func GetMousePos() (x, y int32) {
	return mouseMotion.XPos, mouseMotion.YPos
}

func MouseMoved() bool {
	return mouseMotion.MovedThisFrame
}

func KeyClicked(kc sdl.Keycode) bool {

	ks, ok := keyMap[kc]
	if !ok {
		return false
	}

	return ks.IsPressedThisFrame
}

func MouseDown(mb int) bool {

	btn, ok := mouseBtnMap[mb]
	if !ok {
		return false
	}

	return btn.State == sdl.PRESSED
}
