package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/snake/internal/board"
	"github.com/tomz197/snake/internal/game"
)

func fixedSize(w, h int) TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func TestCellOf(t *testing.T) {
	tests := []struct {
		name     string
		pos      board.Position
		col, row int
		ok       bool
	}{
		{"origin", board.Position{}, 15, 15, true},
		{"top left", board.Position{X: -300, Y: 300}, 0, 0, true},
		{"bottom right", board.Position{X: 300, Y: -300}, 30, 30, true},
		{"food rounds to nearest", board.Position{X: 9, Y: -11}, 15, 16, true},
		{"outside", board.Position{X: 320}, 31, 15, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := CellOf(tt.pos)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.col, col)
			assert.Equal(t, tt.row, row)
		})
	}
}

func TestRasterizeHeadOnTop(t *testing.T) {
	snap := game.Snapshot{
		Head: board.Position{},
		Food: board.Position{X: 0, Y: 100},
		Segments: []board.Segment{
			{Pos: board.Position{X: -20}, Color: board.ColorRed},
			{Pos: board.Position{}, Color: board.ColorBlue},
		},
	}
	g := Rasterize(snap)
	assert.Equal(t, board.ColorHead, g[15][15])
	assert.Equal(t, board.ColorRed, g[15][14])
	assert.Equal(t, board.ColorFood, g[10][15])
	assert.Equal(t, board.ColorNone, g[0][0])
}

func TestNewLayout(t *testing.T) {
	l, ok := NewLayout(80, 24)
	require.True(t, ok)
	assert.Equal(t, 1, l.Scale)
	assert.Equal(t, 31, l.Cols)
	assert.Equal(t, 16, l.Rows)
	assert.Equal(t, 24, l.OffsetCol)
	assert.Equal(t, 4, l.OffsetRow)
	assert.Equal(t, 3, l.StatusRow())

	l, ok = NewLayout(200, 60)
	require.True(t, ok)
	assert.Equal(t, 3, l.Scale)
	assert.Equal(t, 93, l.Cols)
	assert.Equal(t, 47, l.Rows)

	_, ok = NewLayout(MinWidth, MinHeight)
	assert.True(t, ok)
	_, ok = NewLayout(MinWidth-1, MinHeight)
	assert.False(t, ok)
	_, ok = NewLayout(MinWidth, MinHeight-1)
	assert.False(t, ok)
}

func TestCanvasRenderHalfBlocks(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, board.ColorHead)
	c.Set(1, 1, board.ColorFood)
	c.Set(5, 5, board.ColorRed) // ignored

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, string(BlockUpperHalf)))
	assert.Contains(t, out, "\033[1;1H")
	assert.Contains(t, out, ColorOf(board.ColorHead).fg())
	assert.Contains(t, out, ColorOf(board.ColorFood).bg())
	assert.True(t, strings.HasSuffix(out, resetAttrs))
}

func TestCanvasPaintGridScales(t *testing.T) {
	var g Grid
	g[1][2] = board.ColorBlue
	c := NewCanvas(GridSize*2, GridSize)
	c.PaintGrid(&g, 2)

	for y := 2; y < 4; y++ {
		for x := 4; x < 6; x++ {
			assert.Equal(t, board.ColorBlue, c.At(x, y))
		}
	}
	assert.Equal(t, board.ColorNone, c.At(3, 2))
	assert.Equal(t, board.ColorNone, c.At(4, 4))
}

func TestCanvasBorderNeedsOffset(t *testing.T) {
	c := NewCanvas(3, 2)
	var buf bytes.Buffer
	c.RenderBorder(&buf)
	assert.Empty(t, buf.String())

	c.SetOffset(1, 1)
	c.RenderBorder(&buf)
	out := buf.String()
	assert.Contains(t, out, "\033[1;1H┌───┐")
	assert.Contains(t, out, "\033[4;1H└───┘")
	assert.Equal(t, 4, strings.Count(out, "│"))
}

func TestRendererFrame(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, fixedSize(80, 24))

	require.NoError(t, r.Render(game.Snapshot{Score: 30, HighScore: 50}))
	out := buf.String()
	assert.Contains(t, out, "Score: 30  High Score: 50")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, ControlsHint)
	assert.NotContains(t, out, "Crashed")

	// Same size: no repaint of the frame.
	buf.Reset()
	require.NoError(t, r.Render(game.Snapshot{}))
	assert.NotContains(t, buf.String(), "┌")
}

func TestRendererCrashBanner(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, fixedSize(80, 24))

	require.NoError(t, r.Render(game.Snapshot{LastCollision: game.CollisionBoundary, LostScore: 40}))
	assert.Contains(t, buf.String(), "Crashed into the wall! Score 40")

	buf.Reset()
	require.NoError(t, r.Render(game.Snapshot{LastCollision: game.CollisionSelf, LostScore: 10}))
	assert.Contains(t, buf.String(), "Crashed into yourself! Score 10")
}

func TestRendererTooSmall(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, fixedSize(20, 10))

	require.NoError(t, r.Render(game.Snapshot{Score: 10}))
	out := buf.String()
	assert.Contains(t, out, "Terminal too small")
	assert.NotContains(t, out, "Score: 10")
}

func TestRendererSizeErrorKeepsLastSize(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	size := func() (int, int, error) {
		calls++
		if calls > 1 {
			return 0, 0, errors.New("no pty")
		}
		return 100, 40, nil
	}
	r := NewRenderer(&buf, size)

	require.NoError(t, r.Render(game.Snapshot{}))
	buf.Reset()
	require.NoError(t, r.Render(game.Snapshot{}))
	assert.NotContains(t, buf.String(), "\033[2J", "no resize when the size query fails")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRendererReportsWriteErrors(t *testing.T) {
	r := NewRenderer(failingWriter{}, fixedSize(80, 24))
	assert.Error(t, r.Render(game.Snapshot{}))
}

func TestChunkWriterFlushesInChunks(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	payload := strings.Repeat("x", maxChunkSize*3+7)
	cw.WriteString(payload)
	assert.Zero(t, buf.Len(), "nothing written before Flush")

	require.NoError(t, cw.Flush())
	assert.Equal(t, payload, buf.String())

	require.NoError(t, cw.Flush())
	assert.Equal(t, len(payload), buf.Len(), "buffer reset after Flush")
}

func TestVisibleLen(t *testing.T) {
	assert.Equal(t, 5, visibleLen("hello"))
	assert.Equal(t, 5, visibleLen("\033[7mhello\033[0m"))
}
