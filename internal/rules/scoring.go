package rules

// ScoringState marks dead groups, computes territory, and tallies final
// scores. Entering it runs the group finder once and marks every group
// alive by default.
type ScoringState struct {
	Groups          []Group
	TerritoryBoard  Board[Color]
	Scores          []int
	PlayersAccepted []bool
}

// NewScoringState enters scoring for board, tallying points on top of the
// current per-team scores.
func NewScoringState(board Board[Color], seats []Seat, points []int) *ScoringState {
	groups := FindGroups(board)
	territory := scoreBoard(board, groups)

	scores := append([]int(nil), points...)
	for _, c := range territory.Points {
		if !c.Empty() {
			scores[c.Index()] += 2
		}
	}

	return &ScoringState{
		Groups:          groups,
		TerritoryBoard:  territory,
		Scores:          scores,
		PlayersAccepted: make([]bool, len(seats)),
	}
}

// Clone implements GameState.
func (s *ScoringState) Clone() GameState {
	out := *s
	out.Groups = append([]Group(nil), s.Groups...)
	for i := range out.Groups {
		out.Groups[i].Points = append([]Point(nil), s.Groups[i].Points...)
	}
	out.TerritoryBoard = s.TerritoryBoard.Clone()
	out.Scores = append([]int(nil), s.Scores...)
	out.PlayersAccepted = append([]bool(nil), s.PlayersAccepted...)
	return &out
}

func (s *ScoringState) makeActionPlace(shared *SharedState, p Point) (ActionChange, error) {
	for i := range s.Groups {
		if s.Groups[i].Contains(p) {
			s.Groups[i].Alive = !s.Groups[i].Alive

			s.TerritoryBoard = scoreBoard(shared.Board, s.Groups)
			s.Scores = append([]int(nil), shared.Points...)
			for _, c := range s.TerritoryBoard.Points {
				if !c.Empty() {
					s.Scores[c.Index()] += 2
				}
			}

			for j := range s.PlayersAccepted {
				s.PlayersAccepted[j] = false
			}
			return ActionChange{}, nil
		}
	}
	return ActionChange{}, nil
}

func (s *ScoringState) makeActionPass(shared *SharedState, playerID uint64) (ActionChange, error) {
	for i, seat := range shared.Seats {
		if seat.Held(playerID) {
			s.PlayersAccepted[i] = true
		}
	}

	allAccepted := true
	for _, accepted := range s.PlayersAccepted {
		if !accepted {
			allAccepted = false
			break
		}
	}
	if allAccepted {
		return ActionChange{Kind: ActionChangeSwap, NewState: NewDoneState(s)}, nil
	}
	return ActionChange{}, nil
}

// StateMakeAction implements GameState.
func (s *ScoringState) StateMakeAction(shared *SharedState, playerID uint64, action ActionKind) (ActionChange, error) {
	switch action.Kind {
	case ActionPlace:
		return s.makeActionPlace(shared, Point{X: action.X, Y: action.Y})
	case ActionPass:
		return s.makeActionPass(shared, playerID)
	case ActionCancel:
		return ActionChange{Kind: ActionChangePop}, nil
	default:
		return ActionChange{}, ErrIllegal
	}
}

// scoreBoard computes Chinese-rules territory: living groups keep their
// color, then every maximal empty region that borders exactly one color
// (via 4-connected flood fill) becomes that color's territory. A region
// bordering two or more colors is neutral.
func scoreBoard(board Board[Color], groups []Group) Board[Color] {
	out := NewBoard[Color](board.Width, board.Height, board.Toroidal)

	for _, g := range groups {
		if !g.Alive {
			continue
		}
		for _, p := range g.Points {
			out.Set(p, g.Team)
		}
	}

	visited := make([]bool, len(out.Points))

	for idx, c := range out.Points {
		if !c.Empty() || visited[idx] {
			continue
		}
		start, _ := out.IdxToCoord(idx)

		var region []Point
		seen := make(map[Point]bool)
		queue := []Point{start}
		visited[idx] = true

		none, one, many := 0, 1, 2
		collision := none
		var borderColor Color

		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			region = append(region, p)

			for _, n := range out.Neighbors(p) {
				if seen[n] {
					continue
				}
				seen[n] = true

				switch nc := out.Get(n); {
				case nc.Empty():
					ni := n.Y*out.Width + n.X
					if !visited[ni] {
						visited[ni] = true
						queue = append(queue, n)
					}
				default:
					switch collision {
					case none:
						collision = one
						borderColor = nc
					case one:
						if nc != borderColor {
							collision = many
						}
					}
				}
			}
		}

		if collision == one {
			for _, p := range region {
				out.Set(p, borderColor)
			}
		}
	}

	return out
}

// DoneState wraps the final ScoringState once every seat has accepted (or
// only one seat remains un-resigned). Any further action fails with
// ErrGameDone.
type DoneState struct {
	Scoring *ScoringState
}

// NewDoneState wraps scoring as the terminal state.
func NewDoneState(scoring *ScoringState) *DoneState {
	return &DoneState{Scoring: scoring}
}

// Clone implements GameState.
func (d *DoneState) Clone() GameState {
	return &DoneState{Scoring: d.Scoring.Clone().(*ScoringState)}
}

// StateMakeAction implements GameState: the game is over.
func (d *DoneState) StateMakeAction(shared *SharedState, playerID uint64, action ActionKind) (ActionChange, error) {
	return ActionChange{}, ErrGameDone
}
