package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Beeper plays short cue tones. A nil Beeper, or one whose speaker failed to
// open, stays silent.
type Beeper struct {
	rate beep.SampleRate
}

func New() (*Beeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("sound: %w", err)
	}
	return &Beeper{rate: sampleRate}, nil
}

func (b *Beeper) Tone(freq float64, d time.Duration) {
	if b == nil {
		return
	}
	sine, err := generators.SineTone(b.rate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(b.rate.N(d), sine))
}

func (b *Beeper) Close() {
	if b != nil {
		speaker.Close()
	}
}

// Say is the cue for text output.
func (b *Beeper) Say() { b.Tone(880, 50*time.Millisecond) }

// Error is the cue for an error line.
func (b *Beeper) Error() { b.Tone(220, 120*time.Millisecond) }
