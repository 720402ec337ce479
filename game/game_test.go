package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"variantgo/internal/rules"
)

func basicConfig() Config {
	return Config{
		Seats:  []rules.Color{1, 2},
		Komis:  []int{0, 0},
		Width:  9,
		Height: 9,
	}
}

func TestNewRejectsTooFewSeats(t *testing.T) {
	cfg := basicConfig()
	cfg.Seats = nil
	_, ok := New(cfg)
	assert.False(t, ok)
}

func TestNewRejectsOversizedBoard(t *testing.T) {
	cfg := basicConfig()
	cfg.Width = 20
	_, ok := New(cfg)
	assert.False(t, ok)
}

func TestNewRejectsSeatTeamWithoutMatchingKomi(t *testing.T) {
	cfg := basicConfig()
	cfg.Seats = []rules.Color{1, 3}
	_, ok := New(cfg)
	assert.False(t, ok)
}

func TestNewStartsInPlayStateByDefault(t *testing.T) {
	g, ok := New(basicConfig())
	require.True(t, ok)
	_, isPlay := g.State.(*rules.PlayState)
	assert.True(t, isPlay)
}

func TestNewStartsInFreePlacementUnderHiddenMove(t *testing.T) {
	cfg := basicConfig()
	cfg.Mods.HiddenMove = &rules.HiddenMoveMod{PlacementCount: 2}
	g, ok := New(cfg)
	require.True(t, ok)
	_, isFree := g.State.(*rules.FreePlacementState)
	assert.True(t, isFree)
}

func TestTakeSeatThenLeaveSeatRoundTrips(t *testing.T) {
	g, ok := New(basicConfig())
	require.True(t, ok)

	require.NoError(t, g.TakeSeat(42, 0))
	assert.True(t, g.Shared.Seats[0].Held(42))

	require.NoError(t, g.LeaveSeat(42, 0))
	assert.Nil(t, g.Shared.Seats[0].Player)
}

func TestTakeSeatRejectsOccupiedSeat(t *testing.T) {
	g, ok := New(basicConfig())
	require.True(t, ok)

	require.NoError(t, g.TakeSeat(1, 0))
	err := g.TakeSeat(2, 0)
	assert.ErrorIs(t, err, rules.ErrSeatNotOpen)
}

func TestMakeActionRejectsUnseatedPlayer(t *testing.T) {
	g, ok := New(basicConfig())
	require.True(t, ok)

	err := g.MakeAction(99, rules.PlaceAction(0, 0), time.Now())
	assert.ErrorIs(t, err, rules.ErrNotPlayer)
}

func TestMakeActionPlaceAppendsActionLog(t *testing.T) {
	g, ok := New(basicConfig())
	require.True(t, ok)
	require.NoError(t, g.TakeSeat(1, 0))
	require.NoError(t, g.TakeSeat(2, 1))

	require.NoError(t, g.MakeAction(1, rules.PlaceAction(3, 3), time.Now()))
	assert.Equal(t, rules.Color(1), g.Shared.Board.Get(rules.Point{X: 3, Y: 3}))

	require.Len(t, g.Actions, 3) // 2 take-seats + 1 play
	last := g.Actions[2]
	assert.Equal(t, uint64(1), last.UserID)
	assert.Equal(t, 3, last.Action.Play.X)
}
