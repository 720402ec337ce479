package rules

// tetrisCheck removes any of the active team's points just played that
// belong to an exactly-4-stone group, per §4.3 step 3. It mutates board
// and points in place. It reports whether the move is now illegal because
// every played point was removed.
func tetrisCheck(pointsPlayed *[]Point, board *Board[Color]) bool {
	groups := FindGroups(*board)

	remaining := (*pointsPlayed)[:0:0]
	removed := make(map[Point]bool)

	for _, p := range *pointsPlayed {
		color := board.Get(p)
		stripped := false
		for _, g := range groups {
			if g.Team != color || len(g.Points) != 4 {
				continue
			}
			if g.Contains(p) {
				stripped = true
				break
			}
		}
		if stripped {
			removed[p] = true
			board.Set(p, Color(0))
		} else {
			remaining = append(remaining, p)
		}
	}

	*pointsPlayed = remaining
	return len(remaining) == 0
}
