package game

import (
	"fmt"
	"time"

	"github.com/tomz197/snake/internal/board"
)

// Snapshot is an immutable copy of the state a renderer needs.
type Snapshot struct {
	Head          board.Position
	Direction     board.Direction
	Segments      []board.Segment
	Food          board.Position
	Score         int
	HighScore     int
	Interval      time.Duration
	Tick          uint64
	LastCollision Collision // Set from a reset until ClearCollision or the next Step
	LostScore     int       // Score of the run that just ended, with LastCollision
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	b := e.board
	segments := make([]board.Segment, len(b.Segments))
	copy(segments, b.Segments)
	return Snapshot{
		Head:          b.Head,
		Direction:     b.Direction,
		Segments:      segments,
		Food:          b.Food,
		Score:         e.score,
		HighScore:     e.highScore,
		Interval:      e.interval,
		Tick:          e.stats.Ticks,
		LastCollision: e.lastCollision,
		LostScore:     e.lostScore,
	}
}

// Status is the score line shown above the board.
func (s Snapshot) Status() string {
	return fmt.Sprintf("Score: %d  High Score: %d", s.Score, s.HighScore)
}
