package rules

import "math/bits"

// Visibility is a per-cell bitmap of which team colors are aware of that
// cell; bit k set means team color k has information about the point. It
// maps directly onto the wire's u16 visibility cell (§6 of the spec).
type Visibility uint16

// Empty reports whether no team is aware of the cell.
func (v Visibility) Empty() bool { return v == 0 }

// Get reports whether team is aware of the cell. team is 1-based, matching
// Color.
func (v Visibility) Get(team Color) bool {
	return v&(1<<uint(team)) != 0
}

// With returns v with team's bit set.
func (v Visibility) With(team Color) Visibility {
	return v | (1 << uint(team))
}

// Len returns the number of teams aware of the cell.
func (v Visibility) Len() int {
	return bits.OnesCount16(uint16(v))
}

// NewVisibilityBoard allocates an empty visibility overlay sized to match
// board.
func NewVisibilityBoard(board Board[Color]) Board[Visibility] {
	return NewBoard[Visibility](board.Width, board.Height, board.Toroidal)
}
