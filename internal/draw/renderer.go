package draw

import (
	"fmt"
	"io"

	"github.com/tomz197/snake/internal/game"
)

// Minimum terminal size for a scale 1 board: border columns, plus status
// row and border rows.
const (
	MinWidth  = GridSize + 2
	MinHeight = (GridSize+1)/2 + 3
)

// ControlsHint is shown below the board when there is room.
const ControlsHint = "arrows/WASD move  q quit"

// Layout places the board in a terminal.
type Layout struct {
	Scale     int // Pixels per grid cell along each axis
	Cols      int // Board width in terminal columns
	Rows      int // Board height in terminal rows
	OffsetCol int // Columns left of the board, border included
	OffsetRow int // Rows above the board, border included
}

// NewLayout fits the largest whole-number scale of the board into a
// width x height terminal. ok is false when even scale 1 does not fit.
func NewLayout(width, height int) (l Layout, ok bool) {
	l.Scale = min((width-2)/GridSize, ((height-3)*2)/GridSize)
	if l.Scale < 1 {
		return Layout{}, false
	}
	pixels := GridSize * l.Scale
	l.Cols = pixels
	l.Rows = (pixels + 1) / 2
	l.OffsetCol = (width - l.Cols) / 2
	l.OffsetRow = 2 + (height-3-l.Rows)/2
	return l, true
}

// StatusRow is the terminal row of the score line, right above the border.
func (l Layout) StatusRow() int { return l.OffsetRow - 1 }

// BannerRow is the terminal row through the middle of the board.
func (l Layout) BannerRow() int { return l.OffsetRow + l.Rows/2 + 1 }

// Renderer draws snapshots to an ANSI terminal. It redraws the whole board
// each frame and repaints the frame around it when the terminal resizes.
type Renderer struct {
	out    *ChunkWriter
	size   TermSizeFunc
	canvas *Canvas

	width  int
	height int
	layout Layout
	fits   bool
}

// NewRenderer returns a renderer writing to w and sizing itself with size.
func NewRenderer(w io.Writer, size TermSizeFunc) *Renderer {
	return &Renderer{
		out:    NewChunkWriter(w),
		size:   size,
		canvas: NewCanvas(0, 0),
	}
}

// Setup hides the cursor and clears the screen.
func (r *Renderer) Setup() error {
	HideCursor(r.out)
	ClearScreen(r.out)
	return r.out.Flush()
}

// Restore resets attributes, clears the screen and shows the cursor.
func (r *Renderer) Restore() error {
	r.out.WriteString(resetAttrs)
	ClearScreen(r.out)
	ShowCursor(r.out)
	return r.out.Flush()
}

// Render draws one frame. A failing size query keeps the previous size.
func (r *Renderer) Render(snap game.Snapshot) error {
	w, h, err := r.size()
	if err != nil || w <= 0 || h <= 0 {
		w, h = r.width, r.height
		if w == 0 || h == 0 {
			w, h = 80, 24
		}
	}
	if w != r.width || h != r.height {
		r.resize(w, h)
	}
	if !r.fits {
		return r.out.Flush()
	}

	l := r.layout
	g := Rasterize(snap)
	r.canvas.Clear()
	r.canvas.PaintGrid(&g, l.Scale)
	r.canvas.Render(r.out)

	r.out.MoveCursor(1, l.StatusRow())
	r.out.WriteString("\033[2K")
	r.writeCentered(l.StatusRow(), snap.Status())

	if banner := CrashBanner(snap); banner != "" {
		r.writeCentered(l.BannerRow(), "\033[7m"+banner+resetAttrs)
	}
	return r.out.Flush()
}

func (r *Renderer) resize(w, h int) {
	r.width, r.height = w, h
	r.layout, r.fits = NewLayout(w, h)
	ClearScreen(r.out)
	if !r.fits {
		r.out.WriteAt(1, 1, fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d", MinWidth, MinHeight, w, h))
		return
	}
	l := r.layout
	r.canvas.Resize(l.Cols, l.Rows)
	r.canvas.SetOffset(l.OffsetCol, l.OffsetRow)
	r.canvas.RenderBorder(r.out)
	if hintRow := l.OffsetRow + l.Rows + 2; hintRow <= h {
		r.writeCentered(hintRow, ControlsHint)
	}
}

// writeCentered centers s over the board, ignoring escape sequences.
func (r *Renderer) writeCentered(row int, s string) {
	l := r.layout
	col := l.OffsetCol + 1 + (l.Cols-visibleLen(s))/2
	r.out.WriteAt(max(col, 1), row, s)
}

func visibleLen(s string) int {
	n := 0
	inEscape := false
	for _, c := range s {
		switch {
		case c == '\033':
			inEscape = true
		case inEscape:
			if c >= '@' && c <= '~' && c != '[' {
				inEscape = false
			}
		default:
			n++
		}
	}
	return n
}

// CrashBanner describes the collision that just reset the snake, or returns
// "" when the last tick had none.
func CrashBanner(snap game.Snapshot) string {
	target := "the wall"
	switch snap.LastCollision {
	case game.CollisionNone:
		return ""
	case game.CollisionSelf:
		target = "yourself"
	}
	return fmt.Sprintf(" Crashed into %s! Score %d ", target, snap.LostScore)
}
