package rules

func newShared(width, height int, toroidal bool, seatTeams []Color, komis []int, mods GameModifier) (*SharedState, *PlayState) {
	seats := make([]Seat, len(seatTeams))
	for i, t := range seatTeams {
		pid := uint64(i)
		seats[i] = Seat{Player: &pid, Team: t}
	}

	board := NewBoard[Color](width, height, toroidal)
	play := NewPlayState(len(seats))

	shared := &SharedState{
		Seats:  seats,
		Komis:  append([]int(nil), komis...),
		Points: append([]int(nil), komis...),
		Board:  board,
		Mods:   mods,
	}
	shared.BoardHistory = []BoardSnapshot{{
		Hash:   HashColors(board),
		Board:  board.Clone(),
		State:  play.Clone(),
		Points: append([]int(nil), komis...),
	}}

	return shared, play
}

func place(shared *SharedState, play *PlayState, seat int, x, y int) error {
	pid := *shared.Seats[seat].Player
	_, err := play.StateMakeAction(shared, pid, PlaceAction(x, y))
	return err
}

func pass(shared *SharedState, play *PlayState, seat int) (ActionChange, error) {
	pid := *shared.Seats[seat].Player
	return play.StateMakeAction(shared, pid, PassAction())
}
