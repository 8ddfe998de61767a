package playback

import "time"

type SpeedMode int

const (
	Step SpeedMode = iota
	Normal
	Fast
)

// Default post-event delays for the timed modes.
const (
	DefaultNormalDelay = 300 * time.Millisecond
	DefaultFastDelay   = 80 * time.Millisecond
)

// SpeedFunc reports the speed mode currently selected by the host. It is
// called again before every suspension decision.
type SpeedFunc func() SpeedMode

// SpeedFromSlider maps a speed slider position to a mode. Unknown positions
// play at normal speed.
func SpeedFromSlider(v int) SpeedMode {
	switch v {
	case 0:
		return Step
	case 2:
		return Fast
	}
	return Normal
}

func (m SpeedMode) String() string {
	switch m {
	case Step:
		return "Step-by-Step"
	case Fast:
		return "Fast"
	}
	return "Normal"
}

// Fixed returns a SpeedFunc that always reports m.
func Fixed(m SpeedMode) SpeedFunc {
	return func() SpeedMode { return m }
}
