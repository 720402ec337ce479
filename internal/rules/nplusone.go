package rules

// nPlusOneCheck reports whether placing pointsPlayed completed a maximal
// same-color orthogonal run of exactly rule.Length cells, in either the
// vertical or horizontal direction (checked independently; both granting
// only a single extra turn). Matching runs have their visibility cleared,
// same as a reveal. Every played point is checked, not just the last one,
// so a multi-point placement (pixel) that completes a run through any of
// its cells grants the extra turn.
func nPlusOneCheck(pointsPlayed []Point, board Board[Color], visibility *Board[Visibility], rule *NPlusOneMod) bool {
	matched := false

	for _, played := range pointsPlayed {
		color := board.Get(played)

		vertical := runThrough(board, played, color, 0, 1)
		if len(vertical) == rule.Length {
			matched = true
			clearVisibility(visibility, vertical)
		}

		horizontal := runThrough(board, played, color, 1, 0)
		if len(horizontal) == rule.Length {
			matched = true
			clearVisibility(visibility, horizontal)
		}
	}

	return matched
}

// runThrough walks outward from p along (dx, dy) and its opposite,
// collecting the maximal same-color run containing p. It does not wrap
// around a toroidal board edge mid-run (Within is not checked against
// wrapping semantics here since width/height bounds the loop).
func runThrough(board Board[Color], p Point, color Color, dx, dy int) []Point {
	var points []Point

	if dx != 0 {
		for x := p.X; x >= 0; x-- {
			if board.Get(Point{X: x, Y: p.Y}) != color {
				break
			}
			points = append(points, Point{X: x, Y: p.Y})
		}
		for x := p.X + 1; x < board.Width; x++ {
			if board.Get(Point{X: x, Y: p.Y}) != color {
				break
			}
			points = append(points, Point{X: x, Y: p.Y})
		}
	} else {
		for y := p.Y; y >= 0; y-- {
			if board.Get(Point{X: p.X, Y: y}) != color {
				break
			}
			points = append(points, Point{X: p.X, Y: y})
		}
		for y := p.Y + 1; y < board.Height; y++ {
			if board.Get(Point{X: p.X, Y: y}) != color {
				break
			}
			points = append(points, Point{X: p.X, Y: y})
		}
	}

	return points
}

func clearVisibility(visibility *Board[Visibility], points []Point) {
	if visibility == nil {
		return
	}
	for _, p := range points {
		visibility.Set(p, Visibility(0))
	}
}
