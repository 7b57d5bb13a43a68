// Package board holds the spatial truth of a game: snake geometry, food
// position and collision predicates. It has no notion of time or scoring.
package board

import "fmt"

// Position is a point on the board in source units, origin at the centre,
// y growing upwards.
type Position struct {
	X, Y int
}

// Origin is where the head starts and returns after a reset.
var Origin = Position{}

// Add returns p moved by dx, dy.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is the heading of the snake head.
type Direction int

const (
	Stopped Direction = iota // Initial heading and the heading after a reset
	Up
	Down
	Left
	Right
)

// Opposite returns the reverse heading. Stopped has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return Stopped
	}
}

// Delta returns the unit vector for d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "stopped"
	}
}

// Color is the cosmetic paint of a board element.
type Color uint8

const (
	ColorNone Color = iota // Background
	ColorHead
	ColorFood
	ColorRed
	ColorBlue
)

// Segment is one body unit following the head.
type Segment struct {
	Pos   Position
	Color Color
}

// SegmentColor returns the paint for a segment appended when the body
// already has count segments: red for even counts, blue for odd.
func SegmentColor(count int) Color {
	if count%2 == 0 {
		return ColorRed
	}
	return ColorBlue
}
