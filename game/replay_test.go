package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"variantgo/internal/rules"
)

func TestDumpLoadRoundTripPreservesView(t *testing.T) {
	g, ok := New(basicConfig())
	require.True(t, ok)
	require.NoError(t, g.TakeSeat(1, 0))
	require.NoError(t, g.TakeSeat(2, 1))
	require.NoError(t, g.MakeAction(1, rules.PlaceAction(4, 4), time.Now()))
	require.NoError(t, g.MakeAction(2, rules.PlaceAction(5, 5), time.Now()))

	data, err := g.Dump()
	require.NoError(t, err)

	loaded, err := Load(data)
	require.NoError(t, err)

	want := g.GetView(0)
	got := loaded.GetView(0)
	assert.True(t, rules.ColorsEqual(want.Board, got.Board))
	assert.Equal(t, want.Turn, got.Turn)
	assert.Equal(t, want.Points, got.Points)
}

func TestLoadAbortsOnFirstInvalidAction(t *testing.T) {
	g, ok := New(basicConfig())
	require.True(t, ok)
	require.NoError(t, g.TakeSeat(1, 0))
	// Seat 1 is never taken, so replaying a play for player 2 must fail.
	g.Actions = append(g.Actions, LogEntry{UserID: 2, Action: ReplayActionKind{Play: rules.PlaceAction(0, 0)}})

	data, err := g.Dump()
	require.NoError(t, err)

	_, err = Load(data)
	assert.Error(t, err)
}

func TestDumpOmitsTraitorSeedWhenTraitorDisabled(t *testing.T) {
	g, ok := New(basicConfig())
	require.True(t, ok)

	data, err := g.Dump()
	require.NoError(t, err)

	loaded, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), loaded.cfg.TraitorSeed)
}

func TestDumpPreservesTraitorSeedAcrossReload(t *testing.T) {
	cfg := basicConfig()
	cfg.Mods.Traitor = &rules.TraitorMod{TraitorCount: 1}
	cfg.TraitorSeed = 0xf00d
	g, ok := New(cfg)
	require.True(t, ok)

	data, err := g.Dump()
	require.NoError(t, err)

	loaded, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.TraitorSeed, loaded.cfg.TraitorSeed)
}
