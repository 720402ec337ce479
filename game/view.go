package game

import "variantgo/internal/rules"

// View is a redacted snapshot of a Game from one observer's perspective
// (player 0, or any other identity; the zero value of playerID addresses
// no seat, matching a pure spectator).
type View struct {
	Board            rules.Board[rules.Color]
	HiddenStonesLeft int
	State            rules.GameState
	Turn             int
	Points           []int
}

// seatedTeam returns the team the player is seated as, and whether they
// hold any seat at all.
func seatedTeam(shared *rules.SharedState, playerID uint64) (rules.Color, bool) {
	for _, s := range shared.Seats {
		if s.Held(playerID) {
			return s.Team, true
		}
	}
	return 0, false
}

// GetView produces player's redacted view of the live game state (§4.8).
func (g *Game) GetView(playerID uint64) View {
	shared := &g.Shared

	switch st := g.State.(type) {
	case *rules.FreePlacementState:
		return g.freePlacementView(st, playerID)
	case *rules.PlayState:
		return g.playView(shared, playerID)
	case *rules.ScoringState:
		return View{Board: shared.Board.Clone(), State: st, Turn: shared.Turn, Points: append([]int(nil), st.Scores...)}
	case *rules.DoneState:
		return View{Board: shared.Board.Clone(), State: st, Turn: shared.Turn, Points: append([]int(nil), st.Scoring.Scores...)}
	default:
		panic("unhandled game state in GetView")
	}
}

func (g *Game) freePlacementView(st *rules.FreePlacementState, playerID uint64) View {
	shared := &g.Shared

	seatIdx := -1
	var team rules.Color
	for i, s := range shared.Seats {
		if s.Held(playerID) {
			seatIdx = i
			team = s.Team
			break
		}
	}

	if seatIdx < 0 {
		return View{Board: rules.NewBoard[rules.Color](shared.Board.Width, shared.Board.Height, shared.Board.Toroidal), State: st, Turn: shared.Turn, Points: append([]int(nil), shared.Points...)}
	}

	idx := seatIdx
	if st.TeamsShareStones {
		idx = team.Index()
	}
	return View{Board: st.Boards[idx].Clone(), State: st, Turn: shared.Turn, Points: append([]int(nil), shared.Points...)}
}

func (g *Game) playView(shared *rules.SharedState, playerID uint64) View {
	out := shared.Board.Clone()
	hidden := 0

	visibility := shared.BoardVisibility
	if visibility == nil {
		return View{Board: out, State: g.State, Turn: shared.Turn, Points: append([]int(nil), shared.Points...)}
	}

	oneColor := shared.Mods.VisibilityMode == rules.VisibilityModeOneColor
	const oneColorDisplay rules.Color = 1

	team, seated := seatedTeam(shared, playerID)
	visibleTeam := team
	if oneColor {
		visibleTeam = oneColorDisplay
	}

	observer := !seated && shared.Mods.Observable

	for i := range out.Points {
		p, _ := out.IdxToCoord(i)
		vis := visibility.Get(p)
		if vis.Empty() {
			if oneColor && !out.Get(p).Empty() {
				out.Set(p, oneColorDisplay)
			}
			continue
		}

		switch {
		case seated && vis.Get(visibleTeam):
			out.Set(p, visibleTeam)
			if vis.Len() > 1 {
				hidden++
			}
		case observer:
			if oneColor && !out.Get(p).Empty() {
				out.Set(p, oneColorDisplay)
			}
		default:
			out.Set(p, rules.Color(0))
			hidden++
		}
	}

	return View{Board: out, HiddenStonesLeft: hidden, State: g.State, Turn: shared.Turn, Points: append([]int(nil), shared.Points...)}
}

// GetViewAt returns a historical view at the given move number (index
// into board history). ok is false when the lookup is denied (no_history
// while the game is not Done) or out of range.
func (g *Game) GetViewAt(playerID uint64, turn int) (View, bool) {
	_, done := g.State.(*rules.DoneState)
	if g.Shared.Mods.NoHistory && !done {
		return View{}, false
	}
	history := g.Shared.BoardHistory
	if turn < 0 || turn >= len(history) {
		return View{}, false
	}
	snap := history[turn]

	if done {
		return View{Board: snap.Board.Clone(), State: snap.State, Turn: snap.Turn, Points: append([]int(nil), snap.Points...)}, true
	}

	team, seated := seatedTeam(&g.Shared, playerID)
	observer := !seated && g.Shared.Mods.Observable
	oneColor := g.Shared.Mods.VisibilityMode == rules.VisibilityModeOneColor
	const oneColorDisplay rules.Color = 1
	visibleTeam := team
	if oneColor {
		visibleTeam = oneColorDisplay
	}

	out := snap.Board.Clone()
	hidden := 0
	if snap.Visibility != nil {
		for i := range out.Points {
			p, _ := out.IdxToCoord(i)
			vis := snap.Visibility.Get(p)
			if vis.Empty() {
				if oneColor && !out.Get(p).Empty() {
					out.Set(p, oneColorDisplay)
				}
				continue
			}
			switch {
			case seated && vis.Get(visibleTeam):
				out.Set(p, visibleTeam)
				if vis.Len() > 1 {
					hidden++
				}
			case observer:
				if oneColor && !out.Get(p).Empty() {
					out.Set(p, oneColorDisplay)
				}
			default:
				out.Set(p, rules.Color(0))
				hidden++
			}
		}
	}

	return View{Board: out, HiddenStonesLeft: hidden, State: snap.State, Turn: snap.Turn, Points: append([]int(nil), snap.Points...)}, true
}
