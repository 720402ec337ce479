package transport

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"variantgo/game"
	"variantgo/internal/clock"
)

// errUnsupportedRESTAction is returned by Dispatch for action kinds that
// only make sense inside a persistent session (board_at, kick_player).
var errUnsupportedRESTAction = errors.New("action not supported on this endpoint")

// Session is anything the room can push a ServerMessage to — satisfied
// by the websocket connection wrapper in ws.go, and trivially fakeable
// in tests.
type Session interface {
	Send(ServerMessage)
}

// Room owns one live Game plus its connected sessions (§5: rooms are
// independent, with no shared mutable state between them; a room
// serializes concurrent client actions behind its own mutex rather than
// an actor mailbox).
type Room struct {
	mu       sync.Mutex
	RoomID   uint32
	Name     string
	Owner    uint64
	Game     *game.Game
	sessions map[uint64]Session
	limiter  map[uint64]*rate.Limiter
}

// NewRoom wraps g as a broadcastable room.
func NewRoom(roomID uint32, name string, owner uint64, g *game.Game) *Room {
	return &Room{
		RoomID:   roomID,
		Name:     name,
		Owner:    owner,
		Game:     g,
		sessions: make(map[uint64]Session),
		limiter:  make(map[uint64]*rate.Limiter),
	}
}

// Join registers userID's session and broadcasts updated membership.
func (r *Room) Join(userID uint64, sess Session) {
	r.mu.Lock()
	r.sessions[userID] = sess
	if _, ok := r.limiter[userID]; !ok {
		r.limiter[userID] = rate.NewLimiter(rate.Limit(5), 10)
	}
	r.mu.Unlock()

	r.broadcastStatus()
}

// Leave removes userID's session and broadcasts updated membership.
func (r *Room) Leave(userID uint64) {
	r.mu.Lock()
	delete(r.sessions, userID)
	r.mu.Unlock()

	r.broadcastStatus()
}

// members returns the set of currently connected user IDs.
func (r *Room) members() []uint64 {
	out := make([]uint64, 0, len(r.sessions))
	for id := range r.sessions {
		out = append(out, id)
	}
	return out
}

// HandleAction applies a GameAction from userID. Seating and play
// actions go through the engine; BoardAt is a read-only history query
// answered directly to the requesting session. An action from a
// rate-limited user is not applied; that user's session is sent a
// RateLimit error instead.
func (r *Room) HandleAction(userID uint64, action GameAction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lim, ok := r.limiter[userID]; ok && !lim.Allow() {
		if sess, ok := r.sessions[userID]; ok {
			sess.Send(ServerMessage{Kind: ServerError, Error: Error{Kind: ErrorRateLimit}})
		}
		return
	}

	if action.Kind == ActBoardAt {
		r.sendHistory(userID, action.Start, action.End)
		return
	}

	if err := r.applyLocked(userID, action); err != nil {
		r.sendError(userID, err)
		return
	}

	r.broadcastStatusLocked()
}

// applyLocked dispatches a seating or play action to the engine. Callers
// must already hold r.mu.
func (r *Room) applyLocked(userID uint64, action GameAction) error {
	switch action.Kind {
	case ActTakeSeat:
		return r.Game.TakeSeat(userID, action.SeatID)
	case ActLeaveSeat:
		return r.Game.LeaveSeat(userID, action.SeatID)
	case ActPlace, ActPass, ActCancel, ActResign:
		return r.Game.MakeAction(userID, action.ToRulesAction(), time.Now())
	default:
		return errUnsupportedRESTAction
	}
}

// Dispatch applies action from userID synchronously and returns the
// resulting status, for callers without a persistent Session — the REST
// handlers registered alongside the websocket endpoint (§10). It still
// broadcasts to any connected websocket sessions, same as HandleAction.
func (r *Room) Dispatch(userID uint64, action GameAction) (GameStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.applyLocked(userID, action); err != nil {
		return GameStatus{}, err
	}

	r.broadcastStatusLocked()
	return statusFromView(r.RoomID, r.Owner, r.members(), r.Game, r.Game.GetView(userID)), nil
}

// Status returns userID's current redacted view without mutating
// anything, for GET /game/:id (§10).
func (r *Room) Status(userID uint64) GameStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return statusFromView(r.RoomID, r.Owner, r.members(), r.Game, r.Game.GetView(userID))
}

func (r *Room) sendError(userID uint64, err error) {
	sess, ok := r.sessions[userID]
	if !ok {
		return
	}
	sess.Send(ServerMessage{
		Kind:  ServerError,
		Error: Error{Kind: ErrorGame, RoomID: r.RoomID, Message: err.Error()},
	})
}

// sendHistory must be called with r.mu already held (its only caller,
// HandleAction, holds it for the whole action).
func (r *Room) sendHistory(userID uint64, start, end int) {
	sess, ok := r.sessions[userID]
	if !ok || start > end {
		return
	}
	for turn := start; turn <= end; turn++ {
		view, ok := r.Game.GetViewAt(userID, turn)
		if !ok {
			continue
		}
		sess.Send(ServerMessage{
			Kind:       ServerBoardAt,
			GameStatus: statusFromView(r.RoomID, r.Owner, r.members(), r.Game, view),
		})
	}
}

// broadcastStatus sends every connected session its own redacted view.
func (r *Room) broadcastStatus() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastStatusLocked()
}

func (r *Room) broadcastStatusLocked() {
	members := r.members()
	for userID, sess := range r.sessions {
		view := r.Game.GetView(userID)
		sess.Send(ServerMessage{
			Kind:       ServerGameStatus,
			RoomID:     r.RoomID,
			GameStatus: statusFromView(r.RoomID, r.Owner, members, r.Game, view),
		})
	}
}

func statusFromView(roomID uint32, owner uint64, members []uint64, g *game.Game, view game.View) GameStatus {
	board := make([]uint8, len(view.Board.Points))
	for i, c := range view.Board.Points {
		board[i] = uint8(c)
	}

	return GameStatus{
		RoomID:           roomID,
		Owner:            owner,
		Members:          members,
		Turn:             view.Turn,
		Board:            board,
		HiddenStonesLeft: view.HiddenStonesLeft,
		Width:            view.Board.Width,
		Height:           view.Board.Height,
		Points:           view.Points,
		Clock:            clockStatus(g.Clock),
	}
}

// clockStatus projects the room's optional clock (§4.10) into the wire
// shape, or nil when the room has no clock configured.
func clockStatus(c *clock.GameClock) *ClockStatus {
	if c == nil {
		return nil
	}
	timeLeft := make([]int64, len(c.Clocks))
	for i, pc := range c.Clocks {
		timeLeft[i] = int64(pc.TimeLeft / time.Millisecond)
	}
	return &ClockStatus{TimeLeftMs: timeLeft, Paused: c.Paused}
}
