package config

import (
	"errors"
	"time"
)

// Board geometry, in source units. The board is a 600x600 square centred at
// the origin; the snake moves one cell per tick.
const (
	BoardExtent    = 600
	BoardHalfWidth = 290 // Playable half-width (20-unit margin)
	CellSize       = 20  // Step per tick and collision threshold
)

// Initial food position.
const (
	FoodStartX = 0
	FoodStartY = 100
)

// Scoring
const (
	FoodScore = 10
)

// Tick tempo
const (
	BaseInterval = 100 * time.Millisecond
	IntervalStep = time.Millisecond // Speed-up per food eaten
	MinInterval  = 10 * time.Millisecond
	ResetPause   = time.Second // "You lost" beat before play resumes
)

// Timing groups the tick tempo parameters of one game.
type Timing struct {
	BaseInterval time.Duration
	IntervalStep time.Duration
	MinInterval  time.Duration
	ResetPause   time.Duration
}

// DefaultTiming returns the classic tempo: 100ms ticks, 1ms faster per food.
func DefaultTiming() Timing {
	return Timing{
		BaseInterval: BaseInterval,
		IntervalStep: IntervalStep,
		MinInterval:  MinInterval,
		ResetPause:   ResetPause,
	}
}

var (
	ErrNonPositiveInterval = errors.New("config: tick intervals must be positive")
	ErrMinAboveBase        = errors.New("config: minimum interval exceeds base interval")
)

// Validate reports whether the timing can drive a game.
func (t Timing) Validate() error {
	if t.BaseInterval <= 0 || t.MinInterval <= 0 || t.IntervalStep < 0 || t.ResetPause < 0 {
		return ErrNonPositiveInterval
	}
	if t.MinInterval > t.BaseInterval {
		return ErrMinAboveBase
	}
	return nil
}
