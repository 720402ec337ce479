package transport

import (
	"sync"
	"time"

	"variantgo/game"
	"variantgo/internal/clock"
	"variantgo/internal/rules"
)

// Registry is the process-wide set of live rooms. There is no shared
// mutable state between rooms themselves (§5); the registry only
// coordinates creation, lookup and removal.
type Registry struct {
	mu     sync.Mutex
	rooms  map[uint32]*Room
	nextID uint32
}

// NewRegistry builds an empty room registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[uint32]*Room)}
}

// CreateRoom builds a new Game from req and registers it under a fresh
// room ID, owned by ownerID.
func (reg *Registry) CreateRoom(ownerID uint64, req StartGame) (*Room, bool) {
	seats := make([]rules.Color, len(req.Seats))
	for i, c := range req.Seats {
		seats[i] = rules.Color(c)
	}

	g, ok := game.New(game.Config{
		Seats:     seats,
		Komis:     req.Komis,
		Width:     req.Width,
		Height:    req.Height,
		Mods:      req.Mods,
		ClockRule: clockRuleFromWire(req.ClockRule),
	})
	if !ok {
		return nil, false
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.nextID++
	id := reg.nextID
	room := NewRoom(id, req.Name, ownerID, g)
	reg.rooms[id] = room
	return room, true
}

// clockRuleFromWire converts the wire ClockRule (milliseconds, string
// kind) into the clock package's runtime form, or nil if w is nil.
func clockRuleFromWire(w *ClockRule) *clock.ClockRule {
	if w == nil {
		return nil
	}
	rule := clock.ClockRule{
		TurnTime:  time.Duration(w.TurnTimeMs) * time.Millisecond,
		MainTime:  time.Duration(w.MainTimeMs) * time.Millisecond,
		Increment: time.Duration(w.IncrementMs) * time.Millisecond,
	}
	if w.Kind == ClockRuleFischer {
		rule.Kind = clock.RuleFischer
	} else {
		rule.Kind = clock.RuleSimple
	}
	return &rule
}

// Get looks up a room by ID.
func (reg *Registry) Get(roomID uint32) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.rooms[roomID]
	return r, ok
}

// Close removes a room (the admin UnloadRoom action).
func (reg *Registry) Close(roomID uint32) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, roomID)
}

// List returns every room's (id, name) pair for GetGameList.
func (reg *Registry) List() map[uint32]string {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	out := make(map[uint32]string, len(reg.rooms))
	for id, r := range reg.rooms {
		out[id] = r.Name
	}
	return out
}
