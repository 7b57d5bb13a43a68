// Package draw renders game snapshots to an ANSI terminal using half-block
// characters, two board pixels per terminal cell.
package draw

import (
	"fmt"
	"io"

	"github.com/tomz197/snake/internal/board"
)

// BlockUpperHalf shows the top pixel in the foreground color and the bottom
// pixel in the background color.
const BlockUpperHalf = '▀'

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Palette maps board colors to screen colors. ColorNone is the background.
var Palette = map[board.Color]RGB{
	board.ColorNone: {0, 0, 0},
	board.ColorHead: {0, 255, 0},
	board.ColorFood: {255, 215, 0},
	board.ColorRed:  {255, 0, 0},
	board.ColorBlue: {0, 0, 255},
}

// ColorOf returns the palette entry for c, falling back to the background.
func ColorOf(c board.Color) RGB {
	if rgb, ok := Palette[c]; ok {
		return rgb
	}
	return Palette[board.ColorNone]
}

func (c RGB) fg() string { return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B) }
func (c RGB) bg() string { return fmt.Sprintf("\033[48;2;%d;%d;%dm", c.R, c.G, c.B) }

const resetAttrs = "\033[0m"

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}
