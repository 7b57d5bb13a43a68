package draw

import (
	"io"
	"strings"

	"github.com/tomz197/snake/internal/board"
)

// Canvas is a color buffer with 2x vertical resolution: each terminal cell
// shows two stacked pixels through an upper half-block whose foreground is
// the top pixel and whose background is the bottom one.
type Canvas struct {
	cols      int // Terminal columns
	rows      int // Terminal rows
	subRows   int // rows * 2
	pixels    []board.Color
	offsetCol int
	offsetRow int
	renderBuf strings.Builder
}

// NewCanvas creates a canvas covering cols x rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the pixel buffer if the size changed.
func (c *Canvas) Resize(cols, rows int) {
	if cols == c.cols && rows == c.rows && c.pixels != nil {
		return
	}
	c.cols = cols
	c.rows = rows
	c.subRows = rows * 2
	c.pixels = make([]board.Color, cols*c.subRows)
}

// SetOffset sets how many terminal columns and rows precede the canvas.
// The first canvas cell is drawn at (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets every pixel to the background.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Set colors one pixel. Out-of-range pixels are ignored.
func (c *Canvas) Set(x, y int, color board.Color) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.subRows {
		c.pixels[y*c.cols+x] = color
	}
}

// At returns the pixel color, or the background when out of range.
func (c *Canvas) At(x, y int) board.Color {
	if x >= 0 && x < c.cols && y >= 0 && y < c.subRows {
		return c.pixels[y*c.cols+x]
	}
	return board.ColorNone
}

// FillRect colors a w x h block of pixels with its top-left at (x, y).
func (c *Canvas) FillRect(x, y, w, h int, color board.Color) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			c.Set(x+dx, y+dy, color)
		}
	}
}

// PaintGrid scales g so each grid cell covers scale x scale pixels.
func (c *Canvas) PaintGrid(g *Grid, scale int) {
	for row := range g {
		for col, color := range g[row] {
			if color != board.ColorNone {
				c.FillRect(col*scale, row*scale, scale, scale, color)
			}
		}
	}
}

// Render writes the whole canvas. Color escapes are emitted only when the
// color changes from the previous cell.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.cols * c.rows * 8)

	for row := 0; row < c.rows; row++ {
		writeCursor(&c.renderBuf, c.offsetCol+1, c.offsetRow+row+1)

		fg, bg := -1, -1 // Nothing emitted yet on this row
		for col := 0; col < c.cols; col++ {
			top := c.pixels[(row*2)*c.cols+col]
			bottom := c.pixels[(row*2+1)*c.cols+col]
			if int(top) != fg {
				c.renderBuf.WriteString(ColorOf(top).fg())
				fg = int(top)
			}
			if int(bottom) != bg {
				c.renderBuf.WriteString(ColorOf(bottom).bg())
				bg = int(bottom)
			}
			c.renderBuf.WriteRune(BlockUpperHalf)
		}
		c.renderBuf.WriteString(resetAttrs)
	}

	io.WriteString(w, c.renderBuf.String())
}

// RenderBorder draws a box one cell outside the canvas. It needs at least
// one column and one row of offset.
func (c *Canvas) RenderBorder(w io.Writer) {
	if c.offsetCol < 1 || c.offsetRow < 1 {
		return
	}
	left := c.offsetCol
	right := c.offsetCol + c.cols + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.rows + 1
	line := strings.Repeat("─", c.cols)

	var buf strings.Builder
	writeCursor(&buf, left, top)
	buf.WriteString("┌" + line + "┐")
	for row := top + 1; row < bottom; row++ {
		writeCursor(&buf, left, row)
		buf.WriteString("│")
		writeCursor(&buf, right, row)
		buf.WriteString("│")
	}
	writeCursor(&buf, left, bottom)
	buf.WriteString("└" + line + "┘")
	io.WriteString(w, buf.String())
}
