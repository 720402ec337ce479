// Package clock implements the per-seat game clock: simple (fixed time
// per turn) and Fischer (main time plus increment) rules, advanced and
// ended by timestamps the caller supplies rather than by reading the
// wall clock itself, so the same sequence of calls reproduces identical
// results under replay.
package clock

import "time"

// RuleKind discriminates ClockRule.
type RuleKind int

const (
	RuleSimple RuleKind = iota
	RuleFischer
)

// ClockRule is one of:
//   - Simple: every turn starts with exactly TurnTime on the clock.
//   - Fischer: the clock starts at MainTime and gains Increment at the
//     end of every turn.
type ClockRule struct {
	Kind      RuleKind
	TurnTime  time.Duration
	MainTime  time.Duration
	Increment time.Duration
}

func (r ClockRule) initial() time.Duration {
	if r.Kind == RuleFischer {
		return r.MainTime
	}
	return r.TurnTime
}

// PlayerClock is one seat's (or team's) running clock.
type PlayerClock struct {
	LastTime time.Time
	TimeLeft time.Duration
}

// GameClock holds one PlayerClock per seat or team — the caller (the game
// façade) decides which. It starts paused until the controlling game
// explicitly unpauses it (e.g. once all seats are filled).
type GameClock struct {
	Clocks []PlayerClock
	Rule   ClockRule
	Paused bool
}

// NewGameClock builds clockCount clocks under rule, all paused.
func NewGameClock(rule ClockRule, clockCount int) *GameClock {
	clocks := make([]PlayerClock, clockCount)
	for i := range clocks {
		clocks[i] = PlayerClock{TimeLeft: rule.initial()}
	}
	return &GameClock{Clocks: clocks, Rule: rule, Paused: true}
}

// InitializeClocks stamps every clock's LastTime to now, so the first
// AdvanceClock call measures elapsed time from game start rather than
// from the zero time.Time.
func (g *GameClock) InitializeClocks(now time.Time) {
	for i := range g.Clocks {
		g.Clocks[i].LastTime = now
	}
}

// AdvanceClock returns clockIdx's remaining time as of now, deducting
// the elapsed duration since its last advance or turn end. A paused
// clock neither advances nor reports elapsed time.
func (g *GameClock) AdvanceClock(clockIdx int, now time.Time) time.Duration {
	if g.Paused {
		return 0
	}
	c := &g.Clocks[clockIdx]
	elapsed := now.Sub(c.LastTime)
	c.TimeLeft -= elapsed
	return c.TimeLeft
}

// EndTurn resets or increments clockIdx per the clock rule, and stamps
// LastTime to now on every clock (only clockIdx's time actually changes;
// the others simply start their next measurement window from now).
func (g *GameClock) EndTurn(clockIdx int, now time.Time) {
	if g.Paused {
		return
	}
	c := &g.Clocks[clockIdx]
	switch g.Rule.Kind {
	case RuleSimple:
		c.TimeLeft = g.Rule.TurnTime
	case RuleFischer:
		c.TimeLeft += g.Rule.Increment
	}
	for i := range g.Clocks {
		g.Clocks[i].LastTime = now
	}
}

// Pause sets whether the clock is running.
func (g *GameClock) Pause(paused bool) {
	g.Paused = paused
}

// Expired reports whether clockIdx has run out of time.
func (g *GameClock) Expired(clockIdx int) bool {
	return g.Clocks[clockIdx].TimeLeft <= 0
}
