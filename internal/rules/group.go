package rules

// Group is a maximal 4-connected region of same-colored stones, along
// with the liberty count shared by the whole region.
type Group struct {
	Points    []Point
	Liberties int
	Team      Color
	Alive     bool
}

// Contains reports whether p belongs to the group.
func (g *Group) Contains(p Point) bool {
	for _, q := range g.Points {
		if q == p {
			return true
		}
	}
	return false
}

// FindGroups partitions all non-empty points of the board into groups.
// The order of the returned groups, and of points within a group, is not
// significant — callers must not depend on it.
func FindGroups(board Board[Color]) []Group {
	width, height := board.Width, board.Height
	visited := make([]bool, width*height)

	var groups []Group

	for idx, c := range board.Points {
		if c.Empty() || visited[idx] {
			continue
		}
		start, _ := board.IdxToCoord(idx)

		group := Group{Team: c, Alive: true}
		seen := make(map[Point]bool)
		queue := []Point{start}
		visited[idx] = true

		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			group.Points = append(group.Points, p)

			for _, n := range board.Neighbors(p) {
				if seen[n] {
					continue
				}
				seen[n] = true

				switch nc := board.Get(n); {
				case nc == c:
					ni := n.Y*width + n.X
					if !visited[ni] {
						visited[ni] = true
						queue = append(queue, n)
					}
				case nc.Empty():
					group.Liberties++
				}
			}
		}

		groups = append(groups, group)
	}

	return groups
}
