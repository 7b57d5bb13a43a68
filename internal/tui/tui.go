// Package tui is a tcell frontend: it reads keys from a tcell screen and
// paints snapshots with the same layout as the ANSI renderer.
package tui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/snake/internal/board"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
)

// Screen implements both the loop's input source and its renderer.
type Screen struct {
	screen tcell.Screen
	canvas *draw.Canvas
	done   chan struct{}

	mu      sync.Mutex
	pending input.Input
}

// New opens the terminal through tcell.
func New() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tui: create screen: %w", err)
	}
	return NewWithScreen(s)
}

// NewWithScreen initializes s and starts reading its events. Tests pass a
// tcell simulation screen.
func NewWithScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("tui: init screen: %w", err)
	}
	s.HideCursor()
	s.Clear()

	scr := &Screen{
		screen: s,
		canvas: draw.NewCanvas(0, 0),
		done:   make(chan struct{}),
	}
	go scr.readEvents()
	return scr, nil
}

// Close restores the terminal and waits for the event reader to stop.
func (s *Screen) Close() error {
	s.screen.Fini()
	<-s.done
	return nil
}

func (s *Screen) readEvents() {
	defer close(s.done)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			// Screen finalized.
			s.mu.Lock()
			s.pending.Quit = true
			s.mu.Unlock()
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			s.handleKey(ev)
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

func (s *Screen) handleKey(ev *tcell.EventKey) {
	var in input.Input
	switch ev.Key() {
	case tcell.KeyUp:
		in.Directions = []board.Direction{board.Up}
	case tcell.KeyDown:
		in.Directions = []board.Direction{board.Down}
	case tcell.KeyLeft:
		in.Directions = []board.Direction{board.Left}
	case tcell.KeyRight:
		in.Directions = []board.Direction{board.Right}
	case tcell.KeyCtrlC, tcell.KeyEscape:
		in.Quit = true
	case tcell.KeyRune:
		in = input.Decode([]byte(string(ev.Rune())))
	default:
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Quit = s.pending.Quit || in.Quit
	s.pending.Directions = append(s.pending.Directions, in.Directions...)
}

// Poll returns the keys pressed since the previous call.
func (s *Screen) Poll() input.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := s.pending
	s.pending = input.Input{Quit: in.Quit}
	return in
}

// Render paints one frame and shows it.
func (s *Screen) Render(snap game.Snapshot) error {
	scr := s.screen
	scr.Clear()

	w, h := scr.Size()
	l, ok := draw.NewLayout(w, h)
	if !ok {
		s.text(0, 0, fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d", draw.MinWidth, draw.MinHeight, w, h), tcell.StyleDefault)
		scr.Show()
		return nil
	}

	g := draw.Rasterize(snap)
	s.canvas.Resize(l.Cols, l.Rows)
	s.canvas.Clear()
	s.canvas.PaintGrid(&g, l.Scale)
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			style := tcell.StyleDefault.
				Foreground(tcellColor(s.canvas.At(col, row*2))).
				Background(tcellColor(s.canvas.At(col, row*2+1)))
			scr.SetContent(l.OffsetCol+col, l.OffsetRow+row, draw.BlockUpperHalf, nil, style)
		}
	}
	s.border(l)

	// Layout rows and columns are 1-based.
	s.centered(l, l.StatusRow()-1, snap.Status(), tcell.StyleDefault)
	if banner := draw.CrashBanner(snap); banner != "" {
		s.centered(l, l.BannerRow()-1, banner, tcell.StyleDefault.Reverse(true))
	}
	if hint := l.OffsetRow + l.Rows + 1; hint < h {
		s.centered(l, hint, draw.ControlsHint, tcell.StyleDefault)
	}

	scr.Show()
	return nil
}

func (s *Screen) border(l draw.Layout) {
	left, right := l.OffsetCol-1, l.OffsetCol+l.Cols
	top, bottom := l.OffsetRow-1, l.OffsetRow+l.Rows
	scr := s.screen
	for x := left + 1; x < right; x++ {
		scr.SetContent(x, top, tcell.RuneHLine, nil, tcell.StyleDefault)
		scr.SetContent(x, bottom, tcell.RuneHLine, nil, tcell.StyleDefault)
	}
	for y := top + 1; y < bottom; y++ {
		scr.SetContent(left, y, tcell.RuneVLine, nil, tcell.StyleDefault)
		scr.SetContent(right, y, tcell.RuneVLine, nil, tcell.StyleDefault)
	}
	scr.SetContent(left, top, tcell.RuneULCorner, nil, tcell.StyleDefault)
	scr.SetContent(right, top, tcell.RuneURCorner, nil, tcell.StyleDefault)
	scr.SetContent(left, bottom, tcell.RuneLLCorner, nil, tcell.StyleDefault)
	scr.SetContent(right, bottom, tcell.RuneLRCorner, nil, tcell.StyleDefault)
}

func (s *Screen) centered(l draw.Layout, y int, text string, style tcell.Style) {
	x := l.OffsetCol + (l.Cols-len([]rune(text)))/2
	s.text(max(x, 0), y, text, style)
}

func (s *Screen) text(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func tcellColor(c board.Color) tcell.Color {
	rgb := draw.ColorOf(c)
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}
