package flow

// Screen identifies both the machine state and the screen presentation shows
type Screen string

const (
	ScreenHome      Screen = "home"
	ScreenCheckin   Screen = "checkin"
	ScreenDump      Screen = "dump"
	ScreenClarity   Screen = "clarity"
	ScreenPause     Screen = "pause"
	ScreenTimer     Screen = "timer"
	ScreenPauseDone Screen = "pauseDone"
	ScreenFinish    Screen = "finish"

	ScreenHistory Screen = "history"
	ScreenDetail  Screen = "detail"
	ScreenConfig  Screen = "config"
)

// IsFlow reports whether s belongs to the guided check-in sequence.
// Home is the resting state and does not count.
func (s Screen) IsFlow() bool {
	switch s {
	case ScreenCheckin, ScreenDump, ScreenClarity, ScreenPause, ScreenTimer, ScreenPauseDone, ScreenFinish:
		return true
	}
	return false
}

// Navigable reports whether s can be the target of a Navigate intent
func (s Screen) Navigable() bool {
	switch s {
	case ScreenHome, ScreenHistory, ScreenConfig:
		return true
	}
	return false
}

// Step returns the 1-based position of a flow screen and the number of steps.
// Non-flow screens return 0.
func (s Screen) Step() (int, int) {
	order := []Screen{ScreenCheckin, ScreenDump, ScreenClarity, ScreenPause, ScreenPauseDone, ScreenFinish}
	if s == ScreenTimer {
		s = ScreenPause
	}
	for i, o := range order {
		if o == s {
			return i + 1, len(order)
		}
	}
	return 0, len(order)
}
