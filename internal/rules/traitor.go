package rules

import "math/rand/v2"

type traitorTeamState struct {
	traitorCount uint32
	stoneCount   uint32
}

// TraitorState carries the deterministic RNG and per-team traitor/stone
// counters for the traitor variant (§4.7). It is seeded once at game
// creation and stored in the replay so that reloading a dump reproduces
// the exact same sequence of substitutions.
type TraitorState struct {
	teams []traitorTeamState
	src   *rand.PCG
	rng   *rand.Rand
}

// NewTraitorState builds the traitor RNG state for teamCount teams, each
// starting with stoneCount placeable stones and rule.TraitorCount
// traitor substitutions, seeded from seed.
func NewTraitorState(teamCount int, stoneCount uint32, seed uint64, rule *TraitorMod) *TraitorState {
	teams := make([]traitorTeamState, teamCount)
	for i := range teams {
		teams[i] = traitorTeamState{traitorCount: rule.TraitorCount, stoneCount: stoneCount}
	}
	// rand.NewPCG's two halves play the role of the original's single u64
	// Lcg64Xsh32 seed.
	src := rand.NewPCG(seed, seed)
	return &TraitorState{teams: teams, src: src, rng: rand.New(src)}
}

// clone deep-copies the RNG state (via PCG's binary marshaling) so that
// rolling back board history via Cancel restores the exact draw sequence
// a future re-play would have seen, not just the counters.
func (t *TraitorState) clone() TraitorState {
	teams := append([]traitorTeamState(nil), t.teams...)
	data, err := t.src.MarshalBinary()
	if err != nil {
		panic("traitor RNG state failed to marshal: " + err.Error())
	}
	src := &rand.PCG{}
	if err := src.UnmarshalBinary(data); err != nil {
		panic("traitor RNG state failed to unmarshal: " + err.Error())
	}
	return TraitorState{teams: teams, src: src, rng: rand.New(src)}
}

// NextColor draws the color actually placed for a move nominally made by
// team. With probability 1/(traitorCount*stoneCount/4) it substitutes a
// random other team color and decrements that team's remaining traitor
// count; otherwise it returns team unchanged. Every legal move in the
// honest color remains legal under the substituted color (§4.7), so
// randomization cannot stall the game.
//
// The denominator uses the team's remaining traitorCount, which shrinks
// with each substitution, so the odds rise as the budget is spent down.
// §4.7 doesn't pin this down precisely enough to rule it out.
func (t *TraitorState) NextColor(team Color) Color {
	idx := team.Index()
	state := &t.teams[idx]

	stoneCount := state.stoneCount
	if state.stoneCount > 0 {
		state.stoneCount--
	}

	if state.traitorCount > 0 && stoneCount > 0 {
		denom := rule4(state.traitorCount, stoneCount)
		if denom > 0 && t.rng.Uint64N(uint64(denom)) == 0 {
			state.traitorCount--

			n := len(t.teams)
			choice := int(t.rng.Uint64N(uint64(n-1))) + 1
			if choice >= int(team) {
				choice++
			}
			return Color(choice)
		}
	}

	return team
}

func rule4(traitorCount, stoneCount uint32) uint32 {
	return traitorCount * stoneCount / 4
}
