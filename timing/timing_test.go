package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameTiming(t *testing.T) {

	Init()
	assert.Less(t, ElapsedTime(), float32(1))

	FrameStarted()
	time.Sleep(20 * time.Millisecond)
	FrameEnded()

	assert.GreaterOrEqual(t, DT(), float32(0.02))
	assert.GreaterOrEqual(t, ElapsedTime(), DT())
}

func TestAvgFPS(t *testing.T) {

	Init()
	assert.Zero(t, GetAvgFPS())

	for i := 0; i < 3; i++ {
		FrameStarted()
		time.Sleep(200 * time.Millisecond)
		FrameEnded()
	}

	// Three ~200ms frames close one averaging window
	assert.Greater(t, GetAvgFPS(), float32(0))
	assert.LessOrEqual(t, GetAvgFPS(), float32(5))
}
