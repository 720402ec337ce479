// Package game is the rule-engine façade: it owns the state stack, the
// action log, and per-player view projection on top of internal/rules,
// and the replay dump/load codec's in-memory shape. Transport concerns
// (sessions, rooms, broadcast) are out of scope here — see
// internal/transport for the thin collaborator layer.
package game

import (
	"time"

	"variantgo/internal/clock"
	"variantgo/internal/rules"
)

// ReplayActionKind discriminates a logged action: either a seating change
// or an in-state play action.
type ReplayActionKind struct {
	IsTakeSeat  bool
	IsLeaveSeat bool
	SeatID      int
	Play        rules.ActionKind
}

// LogEntry is one append-only action-log record.
type LogEntry struct {
	UserID uint64
	Action ReplayActionKind
}

// Config is everything needed to construct a Game. A replay dump carries
// all of it except ClockRule.
type Config struct {
	Seats       []rules.Color
	Komis       []int
	Width       int
	Height      int
	Mods        rules.GameModifier
	TraitorSeed uint64
	// ClockRule configures a per-seat game clock (§4.10). Nil means the
	// room has no clock at all: Game.Clock stays nil and MakeAction
	// never touches it.
	ClockRule *clock.ClockRule
}

// Game is the authoritative source of truth for one room's board,
// scores, turn order and end-of-game state. Mutations only ever happen
// through TakeSeat, LeaveSeat and MakeAction, each completing
// synchronously — the engine has no suspension points (§5).
type Game struct {
	State      rules.GameState
	StateStack []rules.GameState
	Shared     rules.SharedState
	Actions    []LogEntry
	Clock      *clock.GameClock
	cfg        Config
}

// New builds a fresh Game from a room's seat list, komis, board size and
// enabled variants. Hidden-move games start in FreePlacement; all others
// start in Play. Bounds mirror §6: 1-7 seats, 1-3 teams, board sides
// <= 19.
func New(cfg Config) (*Game, bool) {
	if len(cfg.Seats) < 1 || len(cfg.Seats) > 7 {
		return nil, false
	}
	if len(cfg.Komis) < 1 || len(cfg.Komis) > 3 {
		return nil, false
	}
	for _, t := range cfg.Seats {
		if t == 0 || int(t) > len(cfg.Komis) {
			return nil, false
		}
	}
	if cfg.Width > 19 || cfg.Height > 19 || cfg.Width < 1 || cfg.Height < 1 {
		return nil, false
	}

	board := rules.NewBoard[rules.Color](cfg.Width, cfg.Height, cfg.Mods.Toroidal)

	seats := make([]rules.Seat, len(cfg.Seats))
	for i, t := range cfg.Seats {
		seats[i] = rules.Seat{Team: t}
	}

	var traitor *rules.TraitorState
	if cfg.Mods.Traitor != nil {
		stoneCount := uint32(cfg.Width * cfg.Height)
		traitor = rules.NewTraitorState(len(cfg.Komis), stoneCount, cfg.TraitorSeed, cfg.Mods.Traitor)
	}

	shared := rules.SharedState{
		Seats:  seats,
		Komis:  append([]int(nil), cfg.Komis...),
		Points: append([]int(nil), cfg.Komis...),
		Turn:   0,
		Board:  board,
		Mods:   cfg.Mods,
		Traitor: traitor,
	}

	var state rules.GameState
	if hm := cfg.Mods.HiddenMove; hm != nil {
		state = rules.NewFreePlacementState(len(seats), len(cfg.Komis), board, hm.TeamsShareStones)
	} else {
		state = rules.NewPlayState(len(seats))
		// Phantom needs a visibility overlay from the first move; FreePlacement
		// consolidation (the other source of BoardVisibility) only runs when
		// hidden-move is also enabled.
		if cfg.Mods.Phantom {
			v := rules.NewVisibilityBoard(board)
			shared.BoardVisibility = &v
		}
	}

	var visSnap *rules.Board[rules.Visibility]
	if shared.BoardVisibility != nil {
		v := shared.BoardVisibility.Clone()
		visSnap = &v
	}

	playSnapshotState := rules.GameState(rules.NewPlayState(len(seats)))
	shared.BoardHistory = []rules.BoardSnapshot{{
		Hash:       rules.HashColors(board),
		Board:      board.Clone(),
		Visibility: visSnap,
		State:      playSnapshotState,
		Points:     append([]int(nil), cfg.Komis...),
	}}

	var gameClock *clock.GameClock
	if cfg.ClockRule != nil {
		gameClock = clock.NewGameClock(*cfg.ClockRule, len(seats))
	}

	return &Game{
		State:  state,
		Shared: shared,
		Clock:  gameClock,
		cfg:    cfg,
	}, true
}

// TakeSeat seats player at seatID. Under hidden-move, a player may hold at
// most one seat.
func (g *Game) TakeSeat(playerID uint64, seatID int) error {
	shared := &g.Shared

	if shared.Mods.HiddenMove != nil {
		for _, s := range shared.Seats {
			if s.Held(playerID) {
				return rules.ErrCanOnlyHoldOne
			}
		}
	}

	if seatID < 0 || seatID >= len(shared.Seats) {
		return rules.ErrSeatDoesNotExist
	}
	seat := &shared.Seats[seatID]
	if seat.Player != nil {
		return rules.ErrSeatNotOpen
	}
	id := playerID
	seat.Player = &id

	g.Actions = append(g.Actions, LogEntry{UserID: playerID, Action: ReplayActionKind{IsTakeSeat: true, SeatID: seatID}})
	g.startClockIfFull(time.Now())
	return nil
}

// startClockIfFull unpauses and initializes the clock the moment every
// seat is filled. Unlike MakeAction's now parameter, this timestamp isn't
// part of any replay-sensitive invariant (dump/load only reconstructs
// board/score/turn state, never clock readings), so reading the wall
// clock here is safe.
func (g *Game) startClockIfFull(now time.Time) {
	if g.Clock == nil || !g.Clock.Paused {
		return
	}
	for _, s := range g.Shared.Seats {
		if s.Player == nil {
			return
		}
	}
	g.Clock.Pause(false)
	g.Clock.InitializeClocks(now)
}

// LeaveSeat vacates seatID, which must currently be held by player.
func (g *Game) LeaveSeat(playerID uint64, seatID int) error {
	shared := &g.Shared
	if seatID < 0 || seatID >= len(shared.Seats) {
		return rules.ErrSeatDoesNotExist
	}
	seat := &shared.Seats[seatID]
	if !seat.Held(playerID) {
		return rules.ErrSeatNotOpen
	}
	seat.Player = nil

	g.Actions = append(g.Actions, LogEntry{UserID: playerID, Action: ReplayActionKind{IsLeaveSeat: true, SeatID: seatID}})
	return nil
}

// MakeAction is the single mutator for in-game actions (place/pass/
// cancel/resign). It fails closed: on error, no state changes (the
// failing code path is responsible for restoring anything it touched).
// now drives the optional per-seat clock (§4.10): once the action has
// succeeded, advance_clock(seat, now) charges the elapsed thinking time
// against the acting seat and end_turn(seat, now) resets or increments
// it. A rejected action never touches the clock, matching the
// fails-closed rule above. The caller supplies now rather than Game
// reading the wall clock itself, so a replayed action sequence is
// reproducible.
func (g *Game) MakeAction(playerID uint64, action rules.ActionKind, now time.Time) error {
	held := false
	seatIdx := -1
	for i, s := range g.Shared.Seats {
		if s.Held(playerID) {
			held = true
			seatIdx = i
			break
		}
	}
	if !held {
		return rules.ErrNotPlayer
	}

	change, err := g.State.StateMakeAction(&g.Shared, playerID, action)
	if err != nil {
		return err
	}

	switch change.Kind {
	case rules.ActionChangeSwap:
		g.State = change.NewState
	case rules.ActionChangePush:
		g.StateStack = append(g.StateStack, g.State)
		g.State = change.NewState
	case rules.ActionChangePop:
		if len(g.StateStack) == 0 {
			panic("empty state stack popped")
		}
		g.State = g.StateStack[len(g.StateStack)-1]
		g.StateStack = g.StateStack[:len(g.StateStack)-1]
	}

	if g.Clock != nil {
		g.Clock.AdvanceClock(seatIdx, now)
		g.Clock.EndTurn(seatIdx, now)
	}

	g.Actions = append(g.Actions, LogEntry{UserID: playerID, Action: ReplayActionKind{Play: action}})
	return nil
}
