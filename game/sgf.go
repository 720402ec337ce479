package game

import (
	"strconv"
	"strings"

	"variantgo/internal/rules"
)

// sgfWriter builds an SGF buffer incrementally, mirroring the original
// lossy exporter: a single variation, two colors (black/white), with
// labels standing in for teams 3 and 4.
type sgfWriter struct {
	buf strings.Builder
}

func newSGFWriter() *sgfWriter {
	w := &sgfWriter{}
	w.buf.WriteString("(;FF[4]GM[1]")
	return w
}

// size writes the SGF SZ property, which is a decimal integer (or a
// "width:height" pair for non-square boards), not a coordinate letter.
func (w *sgfWriter) size(width, height int) {
	if width == height {
		w.buf.WriteString("SZ[")
		w.buf.WriteString(strconv.Itoa(width))
		w.buf.WriteByte(']')
	} else {
		w.buf.WriteString("SZ[")
		w.buf.WriteString(strconv.Itoa(width))
		w.buf.WriteByte(':')
		w.buf.WriteString(strconv.Itoa(height))
		w.buf.WriteByte(']')
	}
}

func sgfPoint(p rules.Point) (byte, byte) {
	coord := func(n int) byte {
		if n < 0 {
			return 'a'
		}
		return sgfCoord(n)[0]
	}
	return coord(p.X), coord(p.Y)
}

func (w *sgfWriter) setPoint(p rules.Point, color int) {
	name := "AE"
	switch color {
	case 1:
		name = "AB"
	case 2:
		name = "AW"
	}
	x, y := sgfPoint(p)
	w.buf.WriteString(name)
	w.buf.WriteByte('[')
	w.buf.WriteByte(x)
	w.buf.WriteByte(y)
	w.buf.WriteByte(']')
}

func (w *sgfWriter) label(p rules.Point, text string) {
	x, y := sgfPoint(p)
	w.buf.WriteString("LB[")
	w.buf.WriteByte(x)
	w.buf.WriteByte(y)
	w.buf.WriteByte(':')
	w.buf.WriteString(text)
	w.buf.WriteByte(']')
}

func (w *sgfWriter) endTurn() {
	w.buf.WriteByte(';')
}

func (w *sgfWriter) finish() string {
	w.buf.WriteByte(')')
	return w.buf.String()
}

func sgfCoord(n int) string {
	letter := byte('a' + n%26)
	if n < 26 {
		return string(letter)
	}
	return string('a'+byte(n/26)) + string(letter)
}

// ExportSGF writes a lossy single-variation SGF transcript of the game's
// board history. It is limited to two displayed colors: team colors are
// folded onto black/white by parity, with teams 3 and 4 called out as
// "U"/"R" point labels instead, since SGF has no native support for
// more than two colors or for hidden information.
func (g *Game) ExportSGF() string {
	w := newSGFWriter()
	board := g.Shared.Board
	w.size(board.Width, board.Height)

	last := rules.NewBoard[rules.Color](board.Width, board.Height, board.Toroidal)

	for _, snap := range g.Shared.BoardHistory {
		cur := snap.Board

		for idx := range last.Points {
			old, new := last.Points[idx], cur.Points[idx]
			if old == new {
				continue
			}
			color := 0
			if !new.Empty() {
				color = int((int(new)-1)%2 + 1)
			}
			p, _ := cur.IdxToCoord(idx)
			w.setPoint(p, color)
			last.Points[idx] = new
		}

		for idx, c := range cur.Points {
			p, _ := cur.IdxToCoord(idx)
			switch c {
			case 3:
				w.label(p, "U")
			case 4:
				w.label(p, "R")
			}
		}

		w.endTurn()
	}

	return w.finish()
}
