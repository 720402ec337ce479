package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	length := 3
	d := Dump{
		Actions: []LogEntry{
			{UserID: 1, IsTakeSeat: true, SeatID: 0},
			{UserID: 1, IsPlay: true, Play: ActionKind{Kind: 0, X: 2, Y: 3}},
			{UserID: 1, IsPlay: true, Play: ActionKind{Kind: 1}},
		},
		Komis:  []int{0, 0},
		Width:  9,
		Height: 9,
		Seats:  []uint8{1, 2},
		Mods:   Modifiers{Tetris: true, NPlusOneLength: &length},
	}

	data, err := Encode(d)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, d.Actions, got.Actions)
	assert.Equal(t, d.Komis, got.Komis)
	assert.Equal(t, d.Width, got.Width)
	assert.Equal(t, d.Height, got.Height)
	assert.Equal(t, d.Seats, got.Seats)
	assert.True(t, got.Mods.Tetris)
	require.NotNil(t, got.Mods.NPlusOneLength)
	assert.Equal(t, length, *got.Mods.NPlusOneLength)
}

func TestDecodeDefaultsMissingOptionalModFields(t *testing.T) {
	d := Dump{
		Komis:  []int{0},
		Width:  5,
		Height: 5,
		Seats:  []uint8{1},
		Mods:   Modifiers{Pixel: true},
	}

	data, err := Encode(d)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.True(t, got.Mods.Pixel)
	assert.False(t, got.Mods.Phantom)
	assert.Nil(t, got.Mods.TraitorCount)
	assert.Nil(t, got.Mods.ZenGoColorCount)
}

func TestDumpRoundTripsTraitorSeed(t *testing.T) {
	seed := uint64(0xdeadbeef)
	d := Dump{
		Komis:       []int{0, 0},
		Width:       9,
		Height:      9,
		Seats:       []uint8{1, 2},
		Mods:        Modifiers{TraitorCount: func() *uint32 { c := uint32(1); return &c }()},
		TraitorSeed: &seed,
	}

	data, err := Encode(d)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	require.NotNil(t, got.TraitorSeed)
	assert.Equal(t, seed, *got.TraitorSeed)
}
