package rules

// FreePlacementState holds the simultaneous hidden pre-placement phase
// used by the hidden-move variant. There is one hidden board per
// visibility group: per team if TeamsShareStones, per seat otherwise.
type FreePlacementState struct {
	Boards           []Board[Color]
	StonesPlaced     []int
	PlayersReady     []bool
	TeamsShareStones bool
}

// NewFreePlacementState builds the FreePlacement opening for seatCount
// seats across teamCount teams, sharing a fresh copy of board per
// visibility group.
func NewFreePlacementState(seatCount, teamCount int, board Board[Color], teamsShareStones bool) *FreePlacementState {
	count := seatCount
	if teamsShareStones {
		count = teamCount
	}
	boards := make([]Board[Color], count)
	for i := range boards {
		boards[i] = board.Clone()
	}
	return &FreePlacementState{
		Boards:           boards,
		StonesPlaced:     make([]int, count),
		PlayersReady:     make([]bool, seatCount),
		TeamsShareStones: teamsShareStones,
	}
}

// Clone implements GameState.
func (f *FreePlacementState) Clone() GameState {
	out := *f
	out.Boards = make([]Board[Color], len(f.Boards))
	for i, b := range f.Boards {
		out.Boards[i] = b.Clone()
	}
	out.StonesPlaced = append([]int(nil), f.StonesPlaced...)
	out.PlayersReady = append([]bool(nil), f.PlayersReady...)
	return &out
}

func findSeat(seats []Seat, playerID uint64) (int, *Seat) {
	for i := range seats {
		if seats[i].Held(playerID) {
			return i, &seats[i]
		}
	}
	panic("player has no seat")
}

func (f *FreePlacementState) groupIndex(seatIdx int, team Color) int {
	if f.TeamsShareStones {
		return team.Index()
	}
	return seatIdx
}

func (f *FreePlacementState) makeActionPlace(shared *SharedState, playerID uint64, x, y int) (ActionChange, error) {
	seatIdx, seat := findSeat(shared.Seats, playerID)
	idx := f.groupIndex(seatIdx, seat.Team)

	board := &f.Boards[idx]
	stonesPlaced := &f.StonesPlaced[idx]

	if *stonesPlaced >= shared.Mods.HiddenMove.PlacementCount {
		return ActionChange{}, ErrPointOccupied
	}

	if shared.Mods.Pixel {
		if x > board.Width || y > board.Height {
			return ActionChange{}, ErrOutOfBounds
		}
		ax, ay := x-1, y-1

		anyPlaced := false
		for _, d := range [4][2]int{{ax, ay}, {ax + 1, ay}, {ax, ay + 1}, {ax + 1, ay + 1}} {
			if d[0] < 0 || d[1] < 0 {
				continue
			}
			coord := Point{X: d[0], Y: d[1]}
			if !board.Within(coord) {
				continue
			}
			if !board.Get(coord).Empty() {
				continue
			}
			board.Set(coord, seat.Team)
			anyPlaced = true
		}
		if !anyPlaced {
			return ActionChange{}, ErrPointOccupied
		}
	} else {
		coord := Point{X: x, Y: y}
		if !board.Within(coord) {
			return ActionChange{}, ErrOutOfBounds
		}
		if !board.Get(coord).Empty() {
			return ActionChange{}, ErrPointOccupied
		}
		board.Set(coord, seat.Team)
	}

	*stonesPlaced++
	return ActionChange{}, nil
}

func (f *FreePlacementState) makeActionPass(shared *SharedState, playerID uint64) (ActionChange, error) {
	seatIdx, _ := findSeat(shared.Seats, playerID)
	f.PlayersReady[seatIdx] = true

	allReady := true
	for _, ready := range f.PlayersReady {
		if !ready {
			allReady = false
			break
		}
	}
	if !allReady {
		return ActionChange{}, nil
	}

	board, visibility := f.buildBoard(shared.Board.Clone())
	shared.Board = board
	shared.BoardVisibility = &visibility

	playState := NewPlayState(len(shared.Seats))

	var visSnap *Board[Visibility]
	v := visibility.Clone()
	visSnap = &v

	shared.BoardHistory = []BoardSnapshot{{
		Hash:       HashColors(shared.Board),
		Board:      shared.Board.Clone(),
		Visibility: visSnap,
		State:      playState.Clone(),
		Points:     append([]int(nil), shared.Points...),
		Turn:       shared.Turn,
	}}

	return ActionChange{Kind: ActionChangeSwap, NewState: playState}, nil
}

// buildBoard consolidates every visibility group's hidden board into the
// live board: a cell becomes that team's stone only if exactly one team
// committed a stone there; double-commits become empty but are still
// visibility-marked for every team that committed.
func (f *FreePlacementState) buildBoard(board Board[Color]) (Board[Color], Board[Visibility]) {
	visibility := NewVisibilityBoard(board)

	for _, viewBoard := range f.Boards {
		for i := range board.Points {
			b := viewBoard.Points[i]
			if b.Empty() {
				continue
			}

			visibility.Points[i] = visibility.Points[i].With(b)

			if visibility.Points[i].Len() == 1 {
				board.Points[i] = b
			} else {
				board.Points[i] = Color(0)
			}
		}
	}

	return board, visibility
}

func (f *FreePlacementState) makeActionCancel(shared *SharedState, playerID uint64) (ActionChange, error) {
	seatIdx, seat := findSeat(shared.Seats, playerID)
	idx := f.groupIndex(seatIdx, seat.Team)

	f.PlayersReady[seatIdx] = false
	f.Boards[idx] = shared.Board.Clone()
	f.StonesPlaced[idx] = 0

	return ActionChange{}, nil
}

// StateMakeAction implements GameState.
func (f *FreePlacementState) StateMakeAction(shared *SharedState, playerID uint64, action ActionKind) (ActionChange, error) {
	switch action.Kind {
	case ActionPlace:
		return f.makeActionPlace(shared, playerID, action.X, action.Y)
	case ActionPass:
		return f.makeActionPass(shared, playerID)
	case ActionCancel:
		return f.makeActionCancel(shared, playerID)
	default:
		return ActionChange{}, ErrIllegal
	}
}
