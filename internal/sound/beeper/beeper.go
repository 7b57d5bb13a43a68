// Package beeper plays sine tones for game events on the default audio
// device.
package beeper

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/snake/internal/sound"
)

const sampleRate = beep.SampleRate(44100)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Beeper implements sound.Player on the speaker.
type Beeper struct {
	rate beep.SampleRate
}

var _ sound.Player = (*Beeper)(nil)

// New initialises the speaker. The speaker is process-wide, so it is set up
// at most once.
func New() (*Beeper, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return nil, speakerErr
	}
	return &Beeper{rate: sampleRate}, nil
}

// Eat plays a short high blip.
func (b *Beeper) Eat() {
	b.tone(880, 50*time.Millisecond)
}

// Crash plays a longer low tone.
func (b *Beeper) Crash() {
	b.tone(220, 300*time.Millisecond)
}

func (b *Beeper) tone(freq float64, d time.Duration) {
	st, err := toneStreamer(b.rate, freq, d)
	if err != nil {
		return
	}
	speaker.Play(st)
}

// toneStreamer returns a sine tone at freq lasting d.
func toneStreamer(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(rate.N(d), sine), nil
}
