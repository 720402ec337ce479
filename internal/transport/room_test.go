package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"variantgo/game"
	"variantgo/internal/clock"
	"variantgo/internal/rules"
)

func newTestRoom(t *testing.T, clockRule *clock.ClockRule) *Room {
	t.Helper()
	g, ok := game.New(game.Config{
		Seats:     []rules.Color{1, 2},
		Komis:     []int{0, 0},
		Width:     9,
		Height:    9,
		ClockRule: clockRule,
	})
	require.True(t, ok)
	return NewRoom(1, "test", 1, g)
}

func TestDispatchTakeSeatThenPlaceUpdatesStatus(t *testing.T) {
	r := newTestRoom(t, nil)

	_, err := r.Dispatch(1, GameAction{Kind: ActTakeSeat, SeatID: 0})
	require.NoError(t, err)
	_, err = r.Dispatch(2, GameAction{Kind: ActTakeSeat, SeatID: 1})
	require.NoError(t, err)

	status, err := r.Dispatch(1, GameAction{Kind: ActPlace, X: 3, Y: 3})
	require.NoError(t, err)
	assert.Equal(t, uint8(1), status.Board[3*9+3])
}

func TestDispatchRejectsUnsupportedActionKind(t *testing.T) {
	r := newTestRoom(t, nil)
	_, err := r.Dispatch(1, GameAction{Kind: ActBoardAt})
	assert.ErrorIs(t, err, errUnsupportedRESTAction)
}

func TestStatusReflectsSpectatorView(t *testing.T) {
	r := newTestRoom(t, nil)
	require.NoError(t, r.Game.TakeSeat(1, 0))
	require.NoError(t, r.Game.TakeSeat(2, 1))
	require.NoError(t, r.Game.MakeAction(1, rules.PlaceAction(4, 4), time.Now()))

	status := r.Status(0)
	assert.Equal(t, uint8(1), status.Board[4*9+4])
}

func TestStatusOmitsClockWhenUnconfigured(t *testing.T) {
	r := newTestRoom(t, nil)
	status := r.Status(0)
	assert.Nil(t, status.Clock)
}

func TestStatusReportsClockAfterAllSeatsFilled(t *testing.T) {
	rule := &clock.ClockRule{Kind: clock.RuleSimple, TurnTime: 30 * time.Second}
	r := newTestRoom(t, rule)

	require.NoError(t, r.Game.TakeSeat(1, 0))
	status := r.Status(0)
	assert.True(t, status.Clock.Paused, "clock stays paused until every seat is filled")

	require.NoError(t, r.Game.TakeSeat(2, 1))
	status = r.Status(0)
	assert.False(t, status.Clock.Paused)
	assert.Len(t, status.Clock.TimeLeftMs, 2)
	assert.Equal(t, int64(30000), status.Clock.TimeLeftMs[0])
}
