package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuicideFailsWithoutCapture(t *testing.T) {
	shared, play := newShared(5, 5, false, []Color{1, 2}, []int{0, 0}, GameModifier{})

	require.NoError(t, place(shared, play, 0, 1, 2)) // black
	require.NoError(t, place(shared, play, 1, 0, 0)) // white elsewhere
	require.NoError(t, place(shared, play, 0, 3, 2))
	require.NoError(t, place(shared, play, 1, 0, 1))
	require.NoError(t, place(shared, play, 0, 2, 1))
	require.NoError(t, place(shared, play, 1, 0, 2))
	require.NoError(t, place(shared, play, 0, 2, 3))

	// White to move: (2,2) is surrounded on all four sides by black, and
	// placing there captures nothing, so it is suicide.
	err := place(shared, play, 1, 2, 2)
	assert.ErrorIs(t, err, ErrSuicide)
}

func TestSurroundedStoneIsCaptured(t *testing.T) {
	shared, play := newShared(5, 5, false, []Color{1, 2}, []int{0, 0}, GameModifier{})

	require.NoError(t, place(shared, play, 0, 2, 2)) // black center
	require.NoError(t, place(shared, play, 1, 1, 2)) // white west
	require.NoError(t, place(shared, play, 0, 0, 0)) // black elsewhere
	require.NoError(t, place(shared, play, 1, 3, 2)) // white east
	require.NoError(t, place(shared, play, 0, 0, 1)) // black elsewhere
	require.NoError(t, place(shared, play, 1, 2, 1)) // white north
	require.NoError(t, place(shared, play, 0, 0, 2)) // black elsewhere

	// White's final stone at (2,3) captures the lone black stone at (2,2).
	require.NoError(t, place(shared, play, 1, 2, 3))
	assert.True(t, shared.Board.Get(Point{X: 2, Y: 2}).Empty())
}

func TestPixelPlacementWritesBlobAndRejectsRepeat(t *testing.T) {
	shared, play := newShared(9, 9, false, []Color{1, 2}, []int{0, 0}, GameModifier{Pixel: true})

	require.NoError(t, place(shared, play, 0, 1, 1))
	for _, p := range []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		assert.Equal(t, Color(1), shared.Board.Get(p))
	}

	require.NoError(t, place(shared, play, 1, 5, 5))

	err := place(shared, play, 0, 1, 1)
	assert.ErrorIs(t, err, ErrPointOccupied)
}

func TestSuperkoRejectsRepeatedPositionWithinWindow(t *testing.T) {
	shared, play := newShared(5, 5, false, []Color{1, 2}, []int{0, 0}, GameModifier{})

	b := shared.Board
	hash := HashColors(b)

	// Seed history with a snapshot matching the current (empty) board at
	// distance 1, simulating "capture_count + captures" == 1 or more.
	shared.BoardHistory = append(shared.BoardHistory, BoardSnapshot{
		Hash:   hash,
		Board:  b.Clone(),
		Points: append([]int(nil), shared.Points...),
	})
	play.CaptureCount = 1

	err := play.superko(shared, 0, hash)
	assert.ErrorIs(t, err, ErrKo)
}

func TestSuperkoAllowsRepeatBeyondWindow(t *testing.T) {
	shared, play := newShared(5, 5, false, []Color{1, 2}, []int{0, 0}, GameModifier{})

	b := shared.Board
	hash := HashColors(b)

	// The matching snapshot sits further back than capture_count+captures,
	// so the repeat must be allowed.
	shared.BoardHistory = append(shared.BoardHistory,
		BoardSnapshot{Hash: hash, Board: b.Clone(), Points: append([]int(nil), shared.Points...)},
		BoardSnapshot{Hash: hash + 1, Board: b.Clone(), Points: append([]int(nil), shared.Points...)},
	)
	play.CaptureCount = 0

	err := play.superko(shared, 0, hash)
	assert.NoError(t, err)
}

func TestNPlusOneGrantsExtraTurnOnExactLength(t *testing.T) {
	shared, play := newShared(9, 9, false, []Color{1, 2}, []int{0, 0}, GameModifier{NPlusOne: &NPlusOneMod{Length: 3}})

	require.NoError(t, place(shared, play, 0, 0, 0))
	require.NoError(t, place(shared, play, 1, 0, 8))
	require.NoError(t, place(shared, play, 0, 1, 0))
	require.NoError(t, place(shared, play, 1, 1, 8))

	turnBefore := shared.Turn
	require.NoError(t, place(shared, play, 0, 2, 0)) // completes a run of exactly 3
	assert.Equal(t, turnBefore, shared.Turn, "extra turn keeps the same seat active")
}

func TestNPlusOneDoesNotGrantExtraTurnOnFour(t *testing.T) {
	shared, play := newShared(9, 9, false, []Color{1, 2}, []int{0, 0}, GameModifier{NPlusOne: &NPlusOneMod{Length: 3}})

	// Place three of the four cells with a gap at x=2, so no intermediate
	// move ever forms an exact run of 3 before the final move joins all
	// four into a run of exactly 4.
	require.NoError(t, place(shared, play, 0, 0, 0))
	require.NoError(t, place(shared, play, 1, 0, 8))
	require.NoError(t, place(shared, play, 0, 1, 0))
	require.NoError(t, place(shared, play, 1, 1, 8))
	require.NoError(t, place(shared, play, 0, 3, 0))
	require.NoError(t, place(shared, play, 1, 3, 8))

	turnBefore := shared.Turn
	require.NoError(t, place(shared, play, 0, 2, 0)) // joins into a run of 4, not 3
	assert.NotEqual(t, turnBefore, shared.Turn)
}

func TestTetrisMakesFourthStoneOfExactGroupIllegal(t *testing.T) {
	shared, play := newShared(9, 9, false, []Color{1, 2}, []int{0, 0}, GameModifier{Tetris: true})

	require.NoError(t, place(shared, play, 0, 0, 0))
	require.NoError(t, place(shared, play, 1, 8, 8))
	require.NoError(t, place(shared, play, 0, 1, 0))
	require.NoError(t, place(shared, play, 1, 8, 7))
	require.NoError(t, place(shared, play, 0, 0, 1))
	require.NoError(t, place(shared, play, 1, 8, 6))

	// Completing the fourth stone of an exact 2x2 block is illegal: the
	// stone just played is stripped back out, leaving the other three.
	err := place(shared, play, 0, 1, 1)
	assert.ErrorIs(t, err, ErrIllegal)
	assert.True(t, shared.Board.Get(Point{X: 1, Y: 1}).Empty())
	for _, p := range []Point{{0, 0}, {1, 0}, {0, 1}} {
		assert.Equal(t, Color(1), shared.Board.Get(p))
	}
}

func TestCapturesGivePointsAddsHalfPointsPerStone(t *testing.T) {
	shared, play := newShared(5, 5, false, []Color{1, 2}, []int{0, 0}, GameModifier{CapturesGivePoints: true})

	require.NoError(t, place(shared, play, 0, 2, 2)) // black center
	require.NoError(t, place(shared, play, 1, 1, 2))
	require.NoError(t, place(shared, play, 0, 0, 0))
	require.NoError(t, place(shared, play, 1, 3, 2))
	require.NoError(t, place(shared, play, 0, 0, 1))
	require.NoError(t, place(shared, play, 1, 2, 1))
	require.NoError(t, place(shared, play, 0, 0, 2))

	require.NoError(t, place(shared, play, 1, 2, 3)) // captures 1 black stone
	assert.Equal(t, 2, shared.Points[1]) // team index 1 = white, +2 half-points
}

func TestZenGoRotatesSeatTeamsByMoveNumber(t *testing.T) {
	shared, play := newShared(5, 5, false, []Color{1, 2}, []int{0, 0}, GameModifier{ZenGo: &ZenGoMod{ColorCount: 2}})

	require.NoError(t, place(shared, play, 0, 0, 0))
	// move_number = len(history)-1 after the append inside nextTurn.
	moveNumber := len(shared.BoardHistory) - 1
	for i := range shared.Seats {
		assert.Equal(t, Color(moveNumber%2+1), shared.Seats[i].Team)
	}
}

func TestCancelRestoresExactPriorState(t *testing.T) {
	shared, play := newShared(5, 5, false, []Color{1, 2}, []int{0, 0}, GameModifier{})

	boardBefore := shared.Board.Clone()
	turnBefore := shared.Turn

	require.NoError(t, place(shared, play, 0, 2, 2))
	historyLenAfterPlace := len(shared.BoardHistory)

	pid := *shared.Seats[1].Player
	_, err := play.StateMakeAction(shared, pid, CancelAction())
	require.NoError(t, err)

	assert.True(t, ColorsEqual(boardBefore, shared.Board))
	assert.Equal(t, turnBefore, shared.Turn)
	assert.Equal(t, historyLenAfterPlace-1, len(shared.BoardHistory))
}
