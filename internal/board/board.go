package board

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/physics"
)

// Board owns the head, its heading, the body segments and the food.
// Segment 0 is the one directly behind the head.
type Board struct {
	HalfWidth int
	Step      int

	Head      Position
	Direction Direction
	Segments  []Segment
	Food      Position

	rng *rand.Rand
}

// New creates a board with the head at the origin, stopped, no body, and the
// food at its start position. rng drives food placement.
func New(rng *rand.Rand) *Board {
	return &Board{
		HalfWidth: config.BoardHalfWidth,
		Step:      config.CellSize,
		Head:      Origin,
		Direction: Stopped,
		Food:      Position{X: config.FoodStartX, Y: config.FoodStartY},
		rng:       rng,
	}
}

// NewRNG returns a food-placement source. Seed 0 seeds from the clock.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>32|1))
}

// AdvanceHead sets the heading to d and moves the head one step that way.
// Stopped leaves the head where it is.
func (b *Board) AdvanceHead(d Direction) {
	b.Direction = d
	dx, dy := d.Delta()
	b.Head = b.Head.Add(dx*b.Step, dy*b.Step)
}

// ShiftBody moves every segment into the place its predecessor held, the
// first segment into the head's place. It must run before AdvanceHead in a
// tick. Walking tail-first keeps every read on a not-yet-moved position.
func (b *Board) ShiftBody() {
	for i := len(b.Segments) - 1; i > 0; i-- {
		b.Segments[i].Pos = b.Segments[i-1].Pos
	}
	if len(b.Segments) > 0 {
		b.Segments[0].Pos = b.Head
	}
}

// GrowAt appends a segment at hint. Placement is cosmetic: the next
// ShiftBody puts the segment where it belongs.
func (b *Board) GrowAt(hint Position) {
	b.Segments = append(b.Segments, Segment{
		Pos:   hint,
		Color: SegmentColor(len(b.Segments)),
	})
}

// Tail returns the position of the last segment, or the head when there is
// no body.
func (b *Board) Tail() Position {
	if len(b.Segments) == 0 {
		return b.Head
	}
	return b.Segments[len(b.Segments)-1].Pos
}

// IsOutOfBounds reports whether any coordinate of p lies beyond the
// playable half-width.
func (b *Board) IsOutOfBounds(p Position) bool {
	return p.X > b.HalfWidth || p.X < -b.HalfWidth || p.Y > b.HalfWidth || p.Y < -b.HalfWidth
}

// IsCollidingWithFood reports whether head is within one cell of food.
// This is a proximity test, not cell equality.
func (b *Board) IsCollidingWithFood(head, food Position) bool {
	return near(head, food, b.Step)
}

// IsCollidingWithSelf reports whether head is within one cell of any body
// segment.
func (b *Board) IsCollidingWithSelf(head Position) bool {
	for _, s := range b.Segments {
		if near(head, s.Pos, b.Step) {
			return true
		}
	}
	return false
}

// RelocateFood moves the food to a uniformly random in-bounds position and
// returns it. Each axis is drawn independently from [-HalfWidth, HalfWidth].
// The snake is not avoided: food may land on the body.
func (b *Board) RelocateFood() Position {
	span := 2*b.HalfWidth + 1
	b.Food = Position{
		X: b.rng.IntN(span) - b.HalfWidth,
		Y: b.rng.IntN(span) - b.HalfWidth,
	}
	return b.Food
}

// ResetSnake drops the body and returns the head to the origin, stopped.
// The food stays where it is.
func (b *Board) ResetSnake() {
	b.Head = Origin
	b.Direction = Stopped
	b.Segments = b.Segments[:0]
}

func near(a, c Position, threshold int) bool {
	return physics.Near(float64(a.X), float64(a.Y), float64(c.X), float64(c.Y), float64(threshold))
}
