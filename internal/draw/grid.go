package draw

import (
	"math"

	"github.com/tomz197/snake/internal/board"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/game"
)

// GridSize is the number of cells along each side of the rendered board.
// The outermost rows and columns show a head that has just left the
// playable area, in the frame before the boundary reset.
const GridSize = config.BoardExtent/config.CellSize + 1

// Grid is a rasterized board, row 0 at the top.
type Grid [GridSize][GridSize]board.Color

// CellOf maps a board position to a grid cell. ok is false when the position
// falls outside the grid.
func CellOf(p board.Position) (col, row int, ok bool) {
	half := float64(config.BoardExtent / 2)
	col = int(math.Round((float64(p.X) + half) / config.CellSize))
	row = int(math.Round((half - float64(p.Y)) / config.CellSize))
	ok = col >= 0 && col < GridSize && row >= 0 && row < GridSize
	return col, row, ok
}

// Rasterize paints food, body and head into a grid, in that order, so the
// head is always visible.
func Rasterize(snap game.Snapshot) Grid {
	var g Grid
	paint := func(p board.Position, c board.Color) {
		if col, row, ok := CellOf(p); ok {
			g[row][col] = c
		}
	}
	paint(snap.Food, board.ColorFood)
	for _, s := range snap.Segments {
		paint(s.Pos, s.Color)
	}
	paint(snap.Head, board.ColorHead)
	return g
}
