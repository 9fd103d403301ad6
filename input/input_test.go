package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func keyEvent(key sdl.Keycode, state uint8, repeat uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{State: state, Repeat: repeat, Keysym: sdl.Keysym{Sym: key}}
}

func TestKeyClickedLastsOneFrame(t *testing.T) {

	t.Cleanup(ClearState)

	EventLoopStart()
	HandleKeyboardEvent(keyEvent(sdl.K_ESCAPE, sdl.PRESSED, 0))
	assert.True(t, KeyClicked(sdl.K_ESCAPE))
	assert.False(t, KeyClicked(sdl.K_SPACE))

	// Still held, but no longer a click
	EventLoopStart()
	assert.False(t, KeyClicked(sdl.K_ESCAPE))

	// Key repeat is not a click either
	HandleKeyboardEvent(keyEvent(sdl.K_ESCAPE, sdl.PRESSED, 1))
	assert.False(t, KeyClicked(sdl.K_ESCAPE))
}

func TestMouseDragState(t *testing.T) {

	t.Cleanup(ClearState)

	EventLoopStart()
	assert.False(t, MouseDown(sdl.BUTTON_LEFT))
	assert.False(t, MouseMoved())

	HandleMouseBtnEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.PRESSED})
	HandleMouseMotionEvent(&sdl.MouseMotionEvent{X: 10, Y: 20})
	HandleMouseMotionEvent(&sdl.MouseMotionEvent{X: 12, Y: 25})

	assert.True(t, MouseDown(sdl.BUTTON_LEFT))
	assert.True(t, MouseMoved())
	x, y := GetMousePos()
	assert.EqualValues(t, 12, x)
	assert.EqualValues(t, 25, y)

	// The button stays down across frames, motion does not
	EventLoopStart()
	assert.True(t, MouseDown(sdl.BUTTON_LEFT))
	assert.False(t, MouseMoved())

	HandleMouseBtnEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.RELEASED})
	assert.False(t, MouseDown(sdl.BUTTON_LEFT))
}

func TestQuitAndClearState(t *testing.T) {

	EventLoopStart()
	HandleQuitEvent(&sdl.QuitEvent{})
	HandleMouseBtnEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.PRESSED})
	assert.True(t, IsQuitClicked())

	// Focus loss drops held buttons since their release may never arrive
	ClearState()
	assert.False(t, MouseDown(sdl.BUTTON_LEFT))

	EventLoopStart()
	assert.False(t, IsQuitClicked())
}
