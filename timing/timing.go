package timing

import "time"

var (
	startTime      time.Time
	frameStartTime time.Time
	dt             float32

	avgFPS     float32
	fpsFrames  int
	fpsElapsed float32
)

const fpsWindowSec = 0.5

// Init marks the start of the program. ElapsedTime counts from here.
func Init() {
	startTime = time.Now()
	frameStartTime = startTime
	dt = 0.01
	avgFPS = 0
	fpsFrames = 0
	fpsElapsed = 0
}

func FrameStarted() {
	frameStartTime = time.Now()
}

func FrameEnded() {

	// time.Since reads the monotonic clock, so wall clock jumps don't show up here
	dt = float32(time.Since(frameStartTime).Seconds())

	fpsFrames++
	fpsElapsed += dt
	if fpsElapsed >= fpsWindowSec {
		avgFPS = float32(fpsFrames) / fpsElapsed
		fpsFrames = 0
		fpsElapsed = 0
	}
}

// DT is the duration of the last full frame in seconds
func DT() float32 {
	return dt
}

// ElapsedTime is the number of seconds since Init
func ElapsedTime() float32 {
	return float32(time.Since(startTime).Seconds())
}

func GetAvgFPS() float32 {
	return avgFPS
}
