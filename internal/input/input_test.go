package input

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/snake/internal/board"
)

func TestDecodeArrows(t *testing.T) {
	in := Decode([]byte("\x1b[A\x1b[B\x1b[C\x1b[D"))
	assert.Equal(t, []board.Direction{board.Up, board.Down, board.Right, board.Left}, in.Directions)
	assert.False(t, in.Quit)
}

func TestDecodeApplicationModeArrows(t *testing.T) {
	in := Decode([]byte("\x1bOA"))
	assert.Equal(t, []board.Direction{board.Up}, in.Directions)
}

func TestDecodeLetters(t *testing.T) {
	in := Decode([]byte("wasdHJKL"))
	assert.Equal(t, []board.Direction{
		board.Up, board.Left, board.Down, board.Right,
		board.Left, board.Down, board.Up, board.Right,
	}, in.Directions)
}

func TestDecodeQuit(t *testing.T) {
	assert.True(t, Decode([]byte("q")).Quit)
	assert.True(t, Decode([]byte{0x03}).Quit)
	assert.False(t, Decode([]byte("x")).Quit)
}

func TestDecodeLoneEscape(t *testing.T) {
	in := Decode([]byte{'\x1b'})
	assert.Empty(t, in.Directions)
	assert.False(t, in.Quit)
}

func TestStreamQuitsOnEOF(t *testing.T) {
	s := StartStream(strings.NewReader("dw"))

	var got []board.Direction
	require.Eventually(t, func() bool {
		in := s.Poll()
		got = append(got, in.Directions...)
		return in.Quit
	}, time.Second, time.Millisecond)

	assert.Equal(t, []board.Direction{board.Right, board.Up}, got)
}

func TestDecoderCompletesSplitArrows(t *testing.T) {
	var d Decoder
	assert.Empty(t, d.Decode([]byte{'\x1b'}).Directions)
	assert.Equal(t, []board.Direction{board.Up}, d.Decode([]byte("[A")).Directions)

	assert.Empty(t, d.Decode([]byte("\x1b[")).Directions)
	assert.Equal(t, []board.Direction{board.Left}, d.Decode([]byte("D")).Directions)

	assert.Empty(t, d.Decode([]byte("\x1bO")).Directions)
	assert.Equal(t, []board.Direction{board.Right, board.Up}, d.Decode([]byte("Cw")).Directions)
}

func TestDecodeModifiedArrows(t *testing.T) {
	in := Decode([]byte("\x1b[1;2A\x1b[1;5D"))
	assert.Equal(t, []board.Direction{board.Up, board.Left}, in.Directions)
}

func TestDecodeSkipsOtherSequences(t *testing.T) {
	for name, seq := range map[string]string{
		"home csi":  "\x1b[H",
		"home ss3":  "\x1bOH",
		"end":       "\x1b[F",
		"delete":    "\x1b[3~",
		"page down": "\x1b[6~",
		"f1":        "\x1bOP",
	} {
		t.Run(name, func(t *testing.T) {
			in := Decode([]byte(seq))
			assert.Empty(t, in.Directions)
			assert.False(t, in.Quit)
		})
	}
}

func TestDecodeAltLetterKeepsLetter(t *testing.T) {
	assert.Equal(t, []board.Direction{board.Up}, Decode([]byte("\x1bw")).Directions)
}

func TestDecoderDropsRunawaySequence(t *testing.T) {
	var d Decoder
	runaway := "\x1b[" + strings.Repeat("1;", maxPending)
	assert.Empty(t, d.Decode([]byte(runaway)).Directions)
	assert.Equal(t, []board.Direction{board.Down}, d.Decode([]byte("s")).Directions)
}

func TestStreamJoinsArrowSplitAcrossPolls(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := StartStream(pr)

	_, err := pw.Write([]byte{'\x1b'})
	require.NoError(t, err)
	var first []board.Direction
	require.Eventually(t, func() bool {
		first = append(first, s.Poll().Directions...)
		return len(s.decoder.pending) > 0
	}, time.Second, time.Millisecond)
	assert.Empty(t, first)

	_, err = pw.Write([]byte("[A"))
	require.NoError(t, err)
	var second []board.Direction
	require.Eventually(t, func() bool {
		second = append(second, s.Poll().Directions...)
		return len(second) > 0
	}, time.Second, time.Millisecond)
	assert.Equal(t, []board.Direction{board.Up}, second)
}
