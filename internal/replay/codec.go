// Package replay implements the stable wire encoding of a game's replay
// dump: the action log plus the configuration needed to reconstruct a
// Game from scratch (§4.9 of the spec). It only ever sees plain data —
// the game façade (package game) is responsible for turning a live Game
// into a Dump and a Dump back into a live Game, so this package has no
// dependency on package game and cannot form an import cycle.
package replay

import (
	"github.com/fxamacker/cbor/v2"
)

// ActionKind mirrors rules.ActionKindTag without importing internal/rules,
// keeping this package a pure codec.
type ActionKind struct {
	Kind int `cbor:"kind"`
	X    int `cbor:"x,omitempty"`
	Y    int `cbor:"y,omitempty"`
}

// LogEntry is one action-log record as written to the wire.
type LogEntry struct {
	UserID      uint64     `cbor:"user_id"`
	IsTakeSeat  bool       `cbor:"take_seat,omitempty"`
	IsLeaveSeat bool       `cbor:"leave_seat,omitempty"`
	SeatID      int        `cbor:"seat_id,omitempty"`
	Play        ActionKind `cbor:"play,omitempty"`
	IsPlay      bool       `cbor:"is_play,omitempty"`
}

// Modifiers is the wire shape of rules.GameModifier. Every field is
// optional and must default-deserialize to "disabled" so that extending
// this struct never breaks replay of older dumps (§9).
type Modifiers struct {
	Pixel              bool         `cbor:"pixel,omitempty"`
	Toroidal           bool         `cbor:"toroidal,omitempty"`
	Phantom            bool         `cbor:"phantom,omitempty"`
	Tetris             bool         `cbor:"tetris,omitempty"`
	CapturesGivePoints bool         `cbor:"captures_give_points,omitempty"`
	NoHistory          bool         `cbor:"no_history,omitempty"`
	NoUndo             bool         `cbor:"no_undo,omitempty"`
	Observable         bool         `cbor:"observable,omitempty"`
	PonnukiIsPoints    *int         `cbor:"ponnuki_is_points,omitempty"`
	ZenGoColorCount    *int         `cbor:"zen_go_color_count,omitempty"`
	HiddenMovePlace    *int         `cbor:"hidden_move_placement_count,omitempty"`
	HiddenMoveShare    bool         `cbor:"hidden_move_teams_share_stones,omitempty"`
	NPlusOneLength     *int         `cbor:"n_plus_one_length,omitempty"`
	TraitorCount       *uint32      `cbor:"traitor_count,omitempty"`
	VisibilityOneColor bool         `cbor:"visibility_one_color,omitempty"`
}

// Dump is the full on-disk/on-wire replay format: {actions, komis, size,
// seats, mods} plus the traitor RNG seed needed to replay the traitor
// variant deterministically (an extension over the original design; see
// SPEC_FULL.md §12.3 and DESIGN.md).
type Dump struct {
	Actions     []LogEntry `cbor:"actions"`
	Komis       []int      `cbor:"komis"`
	Width       int        `cbor:"width"`
	Height      int        `cbor:"height"`
	Seats       []uint8    `cbor:"seats"`
	Mods        Modifiers  `cbor:"mods"`
	TraitorSeed *uint64    `cbor:"traitor_seed,omitempty"`
}

// Encode serializes a Dump to CBOR in packed (canonical) form.
func Encode(d Dump) ([]byte, error) {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		return nil, err
	}
	return mode.Marshal(d)
}

// Decode parses a CBOR replay dump. Missing/added optional fields in
// Modifiers default to their zero value (disabled).
func Decode(data []byte) (Dump, error) {
	var d Dump
	err := cbor.Unmarshal(data, &d)
	return d, err
}
