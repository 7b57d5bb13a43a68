package input

import "github.com/tomz197/snake/internal/board"

// Controller buffers the direction requested by the player until the next
// tick consumes it. Requests are judged against the heading the snake moved
// with on the last tick, so two quick turns can never fold the head back
// onto its own neck.
type Controller struct {
	heading board.Direction // Direction applied on the last tick
	pending board.Direction // Direction the next tick will apply
}

// NewController returns a controller with both heading and pending Stopped.
func NewController() *Controller {
	return &Controller{}
}

// RequestDirection sets the pending direction to d unless d reverses the
// current heading. It reports whether the request was accepted. Rejected
// requests leave the pending direction unchanged.
func (c *Controller) RequestDirection(d board.Direction) bool {
	if d == board.Stopped {
		return false
	}
	if c.heading != board.Stopped && d == c.heading.Opposite() {
		return false
	}
	c.pending = d
	return true
}

// Pending returns the direction the next tick will apply.
func (c *Controller) Pending() board.Direction {
	return c.pending
}

// Heading returns the direction applied on the last tick.
func (c *Controller) Heading() board.Direction {
	return c.heading
}

// Commit makes the pending direction the heading and returns it.
// Called once per tick by the engine, right before the head moves.
func (c *Controller) Commit() board.Direction {
	c.heading = c.pending
	return c.heading
}

// Reset returns heading and pending to Stopped.
func (c *Controller) Reset() {
	c.heading = board.Stopped
	c.pending = board.Stopped
}
