package game

import (
	"time"

	"variantgo/internal/replay"
	"variantgo/internal/rules"
)

func modsToWire(m rules.GameModifier) replay.Modifiers {
	out := replay.Modifiers{
		Pixel:              m.Pixel,
		Toroidal:           m.Toroidal,
		Phantom:            m.Phantom,
		Tetris:             m.Tetris,
		CapturesGivePoints: m.CapturesGivePoints,
		NoHistory:          m.NoHistory,
		NoUndo:             m.NoUndo,
		Observable:         m.Observable,
		PonnukiIsPoints:    m.PonnukiIsPoints,
		VisibilityOneColor: m.VisibilityMode == rules.VisibilityModeOneColor,
	}
	if m.ZenGo != nil {
		n := m.ZenGo.ColorCount
		out.ZenGoColorCount = &n
	}
	if m.HiddenMove != nil {
		n := m.HiddenMove.PlacementCount
		out.HiddenMovePlace = &n
		out.HiddenMoveShare = m.HiddenMove.TeamsShareStones
	}
	if m.NPlusOne != nil {
		n := m.NPlusOne.Length
		out.NPlusOneLength = &n
	}
	if m.Traitor != nil {
		c := m.Traitor.TraitorCount
		out.TraitorCount = &c
	}
	return out
}

func modsFromWire(w replay.Modifiers) rules.GameModifier {
	out := rules.GameModifier{
		Pixel:              w.Pixel,
		Toroidal:           w.Toroidal,
		Phantom:            w.Phantom,
		Tetris:             w.Tetris,
		CapturesGivePoints: w.CapturesGivePoints,
		NoHistory:          w.NoHistory,
		NoUndo:             w.NoUndo,
		Observable:         w.Observable,
		PonnukiIsPoints:    w.PonnukiIsPoints,
	}
	if w.VisibilityOneColor {
		out.VisibilityMode = rules.VisibilityModeOneColor
	}
	if w.ZenGoColorCount != nil {
		out.ZenGo = &rules.ZenGoMod{ColorCount: *w.ZenGoColorCount}
	}
	if w.HiddenMovePlace != nil {
		out.HiddenMove = &rules.HiddenMoveMod{PlacementCount: *w.HiddenMovePlace, TeamsShareStones: w.HiddenMoveShare}
	}
	if w.NPlusOneLength != nil {
		out.NPlusOne = &rules.NPlusOneMod{Length: *w.NPlusOneLength}
	}
	if w.TraitorCount != nil {
		out.Traitor = &rules.TraitorMod{TraitorCount: *w.TraitorCount}
	}
	return out
}

func actionKindToWire(a rules.ActionKind) replay.ActionKind {
	return replay.ActionKind{Kind: int(a.Kind), X: a.X, Y: a.Y}
}

func actionKindFromWire(a replay.ActionKind) rules.ActionKind {
	return rules.ActionKind{Kind: rules.ActionKindTag(a.Kind), X: a.X, Y: a.Y}
}

// Dump serializes the game's replay format (§4.9): the action log plus
// the configuration needed to reconstruct it, not the derived state.
// The traitor RNG seed is included so a reloaded game reproduces the
// exact same substitution sequence as the original.
func (g *Game) Dump() ([]byte, error) {
	seats := make([]uint8, len(g.cfg.Seats))
	for i, c := range g.cfg.Seats {
		seats[i] = uint8(c)
	}

	actions := make([]replay.LogEntry, len(g.Actions))
	for i, a := range g.Actions {
		actions[i] = replay.LogEntry{
			UserID:      a.UserID,
			IsTakeSeat:  a.Action.IsTakeSeat,
			IsLeaveSeat: a.Action.IsLeaveSeat,
			SeatID:      a.Action.SeatID,
			IsPlay:      !a.Action.IsTakeSeat && !a.Action.IsLeaveSeat,
			Play:        actionKindToWire(a.Action.Play),
		}
	}

	d := replay.Dump{
		Actions:     actions,
		Komis:       append([]int(nil), g.cfg.Komis...),
		Width:       g.cfg.Width,
		Height:      g.cfg.Height,
		Seats:       seats,
		Mods:        modsToWire(g.cfg.Mods),
		TraitorSeed: &g.cfg.TraitorSeed,
	}
	if g.cfg.Mods.Traitor == nil {
		d.TraitorSeed = nil
	}
	return replay.Encode(d)
}

// Load reconstructs a Game from a replay dump by replaying every logged
// action in order. Any action that fails aborts the load (§4.9).
func Load(data []byte) (*Game, error) {
	d, err := replay.Decode(data)
	if err != nil {
		return nil, err
	}

	seats := make([]rules.Color, len(d.Seats))
	for i, c := range d.Seats {
		seats[i] = rules.Color(c)
	}

	var traitorSeed uint64
	if d.TraitorSeed != nil {
		traitorSeed = *d.TraitorSeed
	}

	g, ok := New(Config{
		Seats:       seats,
		Komis:       append([]int(nil), d.Komis...),
		Width:       d.Width,
		Height:      d.Height,
		Mods:        modsFromWire(d.Mods),
		TraitorSeed: traitorSeed,
	})
	if !ok {
		return nil, rules.ErrIllegal
	}

	for _, entry := range d.Actions {
		switch {
		case entry.IsTakeSeat:
			if err := g.TakeSeat(entry.UserID, entry.SeatID); err != nil {
				return nil, err
			}
		case entry.IsLeaveSeat:
			if err := g.LeaveSeat(entry.UserID, entry.SeatID); err != nil {
				return nil, err
			}
		default:
			if err := g.MakeAction(entry.UserID, actionKindFromWire(entry.Play), time.Now()); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}
