package rules

// PlayState is the GameState active while stones are being placed.
type PlayState struct {
	PlayersPassed []bool
	LastStone     []Point
	CaptureCount  int
}

// NewPlayState builds a fresh PlayState for seatCount seats.
func NewPlayState(seatCount int) *PlayState {
	return &PlayState{PlayersPassed: make([]bool, seatCount)}
}

// Clone implements GameState.
func (p *PlayState) Clone() GameState {
	out := *p
	out.PlayersPassed = append([]bool(nil), p.PlayersPassed...)
	out.LastStone = append([]Point(nil), p.LastStone...)
	return &out
}

// placeStone writes the placed stone(s) to the board, handling pixel mode
// and reveal-only moves under hidden visibility. It returns the points
// actually written (or revealed).
func (p *PlayState) placeStone(shared *SharedState, x, y int, colorPlaced Color) ([]Point, error) {
	var pointsPlayed []Point

	if shared.Mods.Pixel {
		// In pixel mode, (0,0) is outside the board: the anchor is
		// off-by-one so the four cells are (x-1,y-1)..(x,y).
		if x > shared.Board.Width || y > shared.Board.Height {
			return nil, ErrOutOfBounds
		}
		ax, ay := x-1, y-1

		anyPlaced := false
		anyRevealed := false
		for _, d := range [4][2]int{{ax, ay}, {ax + 1, ay}, {ax, ay + 1}, {ax + 1, ay + 1}} {
			coord, ok := shared.Board.WrapPoint(d[0], d[1])
			if !ok {
				continue
			}

			if shared.BoardVisibility != nil {
				if !shared.BoardVisibility.Get(coord).Empty() {
					anyRevealed = true
					pointsPlayed = append(pointsPlayed, coord)
				}
				shared.BoardVisibility.Set(coord, Visibility(0))
			}

			if !shared.Board.Get(coord).Empty() {
				continue
			}
			shared.Board.Set(coord, colorPlaced)
			pointsPlayed = append(pointsPlayed, coord)
			anyPlaced = true
		}

		if !anyPlaced {
			if anyRevealed {
				p.LastStone = pointsPlayed
				return nil, nil
			}
			return nil, ErrPointOccupied
		}
	} else {
		coord := Point{X: x, Y: y}
		if !shared.Board.Within(coord) {
			return nil, ErrOutOfBounds
		}

		revealed := false
		if shared.BoardVisibility != nil {
			revealed = !shared.BoardVisibility.Get(coord).Empty()
			shared.BoardVisibility.Set(coord, Visibility(0))
		}

		if !shared.Board.Get(coord).Empty() {
			if revealed {
				p.LastStone = []Point{coord}
				return pointsPlayed, nil
			}
			return nil, ErrPointOccupied
		}

		shared.Board.Set(coord, colorPlaced)
		pointsPlayed = append(pointsPlayed, coord)
	}

	return pointsPlayed, nil
}

// revealGroup clears the visibility of group and its surrounding points,
// reporting whether anything was actually hidden (and so revealed).
func revealGroup(visibility *Board[Visibility], group Group, board Board[Color]) bool {
	if visibility == nil {
		return false
	}
	revealed := false
	for _, p := range group.Points {
		if !visibility.Get(p).Empty() {
			revealed = true
		}
		visibility.Set(p, Visibility(0))
		for _, n := range board.Neighbors(p) {
			if !visibility.Get(n).Empty() {
				revealed = true
			}
			visibility.Set(n, Visibility(0))
		}
	}
	return revealed
}

// capture resolves captures after a placement: phantom atari reveals,
// killing opposing dead groups (with ponnuki scoring), then reverting
// any of the active team's own dead groups that include a just-played
// point (an illegal overlap, possible under traitor). It returns the
// number of stones captured and whether anything was revealed.
func (p *PlayState) capture(shared *SharedState, pointsPlayed *[]Point) (int, bool) {
	activeSeat := *shared.ActiveSeat()
	captures := 0
	revealed := false

	if shared.Mods.Phantom {
		for _, g := range FindGroups(shared.Board) {
			if g.Liberties == 1 {
				if revealGroup(shared.BoardVisibility, g, shared.Board) {
					revealed = true
				}
			}
		}
	}

	kill := func(g Group) bool {
		for _, pt := range g.Points {
			shared.Board.Set(pt, Color(0))
			captures++
		}
		reveals := revealGroup(shared.BoardVisibility, g, shared.Board)

		if shared.Mods.PonnukiIsPoints != nil && len(g.Points) == 1 {
			stone := g.Points[0]
			orth := shared.Board.Neighbors(stone)
			diag := shared.Board.DiagonalNeighbors(stone)
			// On small toroidal boards wrapped neighbours can coincide; all
			// eight cells must be distinct for the shape to count.
			distinct := make(map[Point]bool, 8)
			for _, q := range orth {
				distinct[q] = true
			}
			for _, q := range diag {
				distinct[q] = true
			}
			if len(orth) == 4 && len(diag) == 4 && len(distinct) == 8 && allTeam(shared.Board, orth, activeSeat.Team) && noneTeam(shared.Board, diag, activeSeat.Team) {
				shared.Points[activeSeat.Team.Index()] += *shared.Mods.PonnukiIsPoints
			}
		}

		return reveals
	}

	for _, g := range FindGroups(shared.Board) {
		if g.Liberties == 0 && g.Team != activeSeat.Team {
			if kill(g) {
				revealed = true
			}
		}
	}

	for _, g := range FindGroups(shared.Board) {
		if g.Liberties != 0 || g.Team != activeSeat.Team {
			continue
		}

		removedMove := false
		for _, pt := range g.Points {
			if containsPoint(*pointsPlayed, pt) {
				*pointsPlayed = removePoint(*pointsPlayed, pt)
				shared.Board.Set(pt, Color(0))
				removedMove = true
			}
		}
		if revealGroup(shared.BoardVisibility, g, shared.Board) {
			revealed = true
		}

		if !removedMove {
			if kill(g) {
				revealed = true
			}
		}
	}

	if shared.Mods.CapturesGivePoints {
		shared.Points[activeSeat.Team.Index()] += captures * 2
	}

	return captures, revealed
}

func allTeam(board Board[Color], points []Point, team Color) bool {
	for _, p := range points {
		if board.Get(p) != team {
			return false
		}
	}
	return true
}

func noneTeam(board Board[Color], points []Point, team Color) bool {
	for _, p := range points {
		if board.Get(p) == team {
			return false
		}
	}
	return true
}

func containsPoint(points []Point, p Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}

func removePoint(points []Point, p Point) []Point {
	out := points[:0]
	for _, q := range points {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}

// superko scans back over the last capture_count+captures snapshots for a
// repeated whole-board position, per §4.3 step 6. On a match it restores
// the last snapshot's board/points and returns ErrKo.
func (p *PlayState) superko(shared *SharedState, captures int, hash uint64) error {
	window := p.CaptureCount + captures
	history := shared.BoardHistory
	n := len(history)
	for i := 1; i <= window && i <= n; i++ {
		snap := history[n-i]
		if snap.Hash == hash && ColorsEqual(snap.Board, shared.Board) {
			last := history[n-1]
			shared.Board = last.Board.Clone()
			shared.Points = append([]int(nil), last.Points...)
			return ErrKo
		}
	}
	return nil
}

func (p *PlayState) makeActionPlace(shared *SharedState, x, y int, colorPlaced Color) (ActionChange, error) {
	pointsPlayed, err := p.placeStone(shared, x, y, colorPlaced)
	if err != nil {
		return ActionChange{}, err
	}
	if len(pointsPlayed) == 0 {
		return ActionChange{}, nil
	}

	if shared.Mods.Tetris {
		if tetrisCheck(&pointsPlayed, &shared.Board) {
			return ActionChange{}, ErrIllegal
		}
	}

	if shared.Mods.Phantom {
		seat := *shared.ActiveSeat()
		if shared.BoardVisibility == nil {
			panic("phantom enabled without a visibility board")
		}
		for _, pt := range pointsPlayed {
			if shared.Board.Get(pt) != seat.Team {
				continue
			}
			shared.BoardVisibility.Set(pt, Visibility(0).With(seat.Team))
		}
	}

	captures, revealed := p.capture(shared, &pointsPlayed)

	if len(pointsPlayed) == 0 {
		last := shared.BoardHistory[len(shared.BoardHistory)-1]
		shared.Board = last.Board.Clone()
		shared.Points = append([]int(nil), last.Points...)

		if revealed {
			return ActionChange{}, nil
		}
		return ActionChange{}, ErrSuicide
	}

	hash := HashColors(shared.Board)
	if err := p.superko(shared, captures, hash); err != nil {
		return ActionChange{}, err
	}

	extraTurn := false
	if shared.Mods.NPlusOne != nil {
		extraTurn = nPlusOneCheck(pointsPlayed, shared.Board, shared.BoardVisibility, shared.Mods.NPlusOne)
	}

	p.LastStone = pointsPlayed
	if shared.Mods.Phantom {
		// Suppressed unconditionally under phantom, so the last-move
		// marker never shows where a hidden stone was played.
		p.LastStone = nil
	}

	for i := range p.PlayersPassed {
		p.PlayersPassed[i] = false
	}

	p.nextTurn(shared, extraTurn)
	p.CaptureCount += captures

	return ActionChange{}, nil
}

func (p *PlayState) makeActionPass(shared *SharedState) (ActionChange, error) {
	activeSeat := *shared.ActiveSeat()

	for i, seat := range shared.Seats {
		if seat.Team == activeSeat.Team {
			p.PlayersPassed[i] = true
		}
	}

	p.nextTurn(shared, false)

	allPassed := true
	for i, seat := range shared.Seats {
		if !seat.Resigned && !p.PlayersPassed[i] {
			allPassed = false
			break
		}
	}

	if allPassed {
		for i := range p.PlayersPassed {
			p.PlayersPassed[i] = false
		}
		return ActionChange{Kind: ActionChangePush, NewState: NewScoringState(shared.Board, shared.Seats, shared.Points)}, nil
	}

	return ActionChange{}, nil
}

func (p *PlayState) makeActionCancel(shared *SharedState) (ActionChange, error) {
	if shared.Mods.NoUndo {
		return ActionChange{}, ErrIllegal
	}
	if len(shared.BoardHistory) < 2 {
		return ActionChange{}, ErrOutOfBounds
	}
	return p.rollbackTurn(shared, true)
}

func (p *PlayState) rollbackTurn(shared *SharedState, rollVisibility bool) (ActionChange, error) {
	if len(shared.BoardHistory) == 0 {
		return ActionChange{}, ErrOutOfBounds
	}
	shared.BoardHistory = shared.BoardHistory[:len(shared.BoardHistory)-1]
	if len(shared.BoardHistory) == 0 {
		return ActionChange{}, ErrOutOfBounds
	}
	history := shared.BoardHistory[len(shared.BoardHistory)-1]

	shared.Board = history.Board.Clone()
	if rollVisibility {
		if history.Visibility != nil {
			v := history.Visibility.Clone()
			shared.BoardVisibility = &v
		} else {
			shared.BoardVisibility = nil
		}
	}
	shared.Points = append([]int(nil), history.Points...)
	shared.Turn = history.Turn
	if history.Traitor != nil {
		t := history.Traitor.clone()
		shared.Traitor = &t
	} else {
		shared.Traitor = nil
	}

	historyPlay, ok := history.State.(*PlayState)
	if !ok {
		panic("rollback into a non-Play history snapshot")
	}
	*p = *historyPlay.Clone().(*PlayState)

	return ActionChange{}, nil
}

func (p *PlayState) makeActionResign(shared *SharedState) (ActionChange, error) {
	shared.ActiveSeat().Resigned = true

	if shared.NonResignedCount() <= 1 {
		return ActionChange{Kind: ActionChangePush, NewState: NewDoneState(NewScoringState(shared.Board, shared.Seats, shared.Points))}, nil
	}

	shared.AdvanceTurn()
	return ActionChange{}, nil
}

// StateMakeAction implements GameState.
func (p *PlayState) StateMakeAction(shared *SharedState, playerID uint64, action ActionKind) (ActionChange, error) {
	activeSeat := *shared.ActiveSeat()
	if !activeSeat.Held(playerID) {
		return ActionChange{}, ErrNotTurn
	}

	var change ActionChange
	var err error

	switch action.Kind {
	case ActionPlace:
		depth := len(shared.BoardHistory)
		change, err = p.makeActionPlace(shared, action.X, action.Y, activeSeat.Team)

		if err == nil && len(shared.BoardHistory) > depth && shared.Traitor != nil {
			// The honest-color move was legal: roll it back and replay
			// with a (possibly substituted) traitor color. See §4.7.
			_, _ = p.rollbackTurn(shared, false)

			savedTraitor := shared.Traitor.clone()
			colorPlaced := shared.Traitor.NextColor(activeSeat.Team)

			change, err = p.makeActionPlace(shared, action.X, action.Y, colorPlaced)
			if err != nil {
				*shared.Traitor = savedTraitor
			}
		}
	case ActionPass:
		change, err = p.makeActionPass(shared)
	case ActionCancel:
		change, err = p.makeActionCancel(shared)
	case ActionResign:
		change, err = p.makeActionResign(shared)
	default:
		return ActionChange{}, ErrIllegal
	}

	if err != nil {
		return ActionChange{}, err
	}

	p.setZenTeams(shared)

	return change, nil
}

func (p *PlayState) nextTurn(shared *SharedState, newTurn bool) {
	if !newTurn {
		shared.AdvanceTurn()
	}

	var traitorSnap *TraitorState
	if shared.Traitor != nil {
		t := shared.Traitor.clone()
		traitorSnap = &t
	}
	var visSnap *Board[Visibility]
	if shared.BoardVisibility != nil {
		v := shared.BoardVisibility.Clone()
		visSnap = &v
	}

	shared.BoardHistory = append(shared.BoardHistory, BoardSnapshot{
		Hash:       HashColors(shared.Board),
		Board:      shared.Board.Clone(),
		Visibility: visSnap,
		State:      p.Clone(),
		Points:     append([]int(nil), shared.Points...),
		Turn:       shared.Turn,
		Traitor:    traitorSnap,
	})
}

func (p *PlayState) setZenTeams(shared *SharedState) {
	zen := shared.Mods.ZenGo
	if zen == nil {
		return
	}
	moveNumber := len(shared.BoardHistory) - 1
	for i := range shared.Seats {
		shared.Seats[i].Team = Color(moveNumber%zen.ColorCount + 1)
	}
}
