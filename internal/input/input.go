// Package input decodes key presses into game intents and holds the
// direction controller.
package input

import (
	"bufio"
	"io"

	"github.com/tomz197/snake/internal/board"
)

// Input is what happened on the keyboard since the previous poll.
type Input struct {
	Quit       bool
	Directions []board.Direction // In press order
}

// maxPending bounds an unterminated escape sequence carried between polls.
const maxPending = 16

// Stream delivers input bytes via a channel so the game loop can drain them
// without blocking.
type Stream struct {
	ch      chan byte
	closed  bool
	decoder Decoder
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The goroutine ends when r returns an error (EOF on a closed
// session, for example); the stream then reports Quit.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains all available bytes from the stream (non-blocking) and
// decodes them. An escape sequence cut off at the end of the drain is
// completed by the next Poll.
func (s *Stream) Poll() Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.decoder.Decode(buf)
	if s.closed {
		in.Quit = true
	}
	return in
}

// Decoder turns raw terminal bytes into Input, holding an incomplete escape
// sequence until the rest arrives.
type Decoder struct {
	pending []byte
}

// Decode decodes buf after any bytes held from the previous call. Arrow keys
// arrive as CSI (ESC [ ... A..D, modifiers allowed) or SS3 (ESC O A..D);
// other escape sequences are skipped whole. WASD and vi-style HJKL are
// accepted as well; q, Q and Ctrl-C quit.
func (d *Decoder) Decode(buf []byte) Input {
	if len(d.pending) > 0 {
		buf = append(d.pending, buf...)
		d.pending = nil
	}

	var in Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			n, dir, complete := escapeSequence(buf[i:])
			if !complete {
				if len(buf)-i <= maxPending {
					d.pending = append([]byte(nil), buf[i:]...)
				}
				break
			}
			if dir != board.Stopped {
				in.Directions = append(in.Directions, dir)
			}
			i += n - 1
			continue
		}

		switch b {
		case 'q', 'Q', 0x03:
			in.Quit = true
		case 'w', 'W', 'k', 'K':
			in.Directions = append(in.Directions, board.Up)
		case 's', 'S', 'j', 'J':
			in.Directions = append(in.Directions, board.Down)
		case 'a', 'A', 'h', 'H':
			in.Directions = append(in.Directions, board.Left)
		case 'd', 'D', 'l', 'L':
			in.Directions = append(in.Directions, board.Right)
		}
	}

	return in
}

// Decode decodes a complete chunk of bytes. A trailing incomplete escape
// sequence is dropped.
func Decode(buf []byte) Input {
	var d Decoder
	return d.Decode(buf)
}

// escapeSequence measures the sequence starting with ESC at seq[0]. It
// returns the byte length, the arrow direction (Stopped for other keys) and
// whether the sequence is complete. ESC followed by anything but [ or O
// consumes only the ESC.
func escapeSequence(seq []byte) (n int, dir board.Direction, complete bool) {
	if len(seq) < 2 {
		return 0, board.Stopped, false
	}
	switch seq[1] {
	case '[':
		// Parameter and intermediate bytes, then one final byte.
		j := 2
		for j < len(seq) && seq[j] >= 0x20 && seq[j] <= 0x3f {
			j++
		}
		if j == len(seq) {
			return 0, board.Stopped, false
		}
		final := seq[j]
		if final < 0x40 || final > 0x7e {
			// Malformed: drop what was read and decode the rest normally.
			return j, board.Stopped, true
		}
		dir, _ := arrowDirection(final)
		return j + 1, dir, true
	case 'O':
		if len(seq) < 3 {
			return 0, board.Stopped, false
		}
		dir, _ := arrowDirection(seq[2])
		return 3, dir, true
	default:
		return 1, board.Stopped, true
	}
}

func arrowDirection(code byte) (board.Direction, bool) {
	switch code {
	case 'A':
		return board.Up, true
	case 'B':
		return board.Down, true
	case 'C':
		return board.Right, true
	case 'D':
		return board.Left, true
	}
	return board.Stopped, false
}
