package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindGroupsSingleStoneLiberties(t *testing.T) {
	b := NewBoard[Color](5, 5, false)
	b.Set(Point{X: 2, Y: 2}, Color(1))

	groups := FindGroups(b)
	require.Len(t, groups, 1)
	assert.Equal(t, 4, groups[0].Liberties)
	assert.Equal(t, Color(1), groups[0].Team)
}

func TestFindGroupsSharedLibertiesCountedOnce(t *testing.T) {
	b := NewBoard[Color](5, 5, false)
	// Two adjacent same-color stones share one liberty between them but it
	// must only be counted once.
	b.Set(Point{X: 1, Y: 1}, Color(1))
	b.Set(Point{X: 2, Y: 1}, Color(1))

	groups := FindGroups(b)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Points, 2)
	// Liberties: (0,1),(1,0),(1,2),(3,1),(2,0),(2,2) = 6 distinct empties.
	assert.Equal(t, 6, groups[0].Liberties)
}

func TestFindGroupsSeparatesDifferentColors(t *testing.T) {
	b := NewBoard[Color](5, 5, false)
	b.Set(Point{X: 0, Y: 0}, Color(1))
	b.Set(Point{X: 4, Y: 4}, Color(2))

	groups := FindGroups(b)
	require.Len(t, groups, 2)
}

func TestFindGroupsZeroLibertiesWhenSurrounded(t *testing.T) {
	b := NewBoard[Color](3, 3, false)
	b.Set(Point{X: 1, Y: 1}, Color(1))
	b.Set(Point{X: 0, Y: 1}, Color(2))
	b.Set(Point{X: 2, Y: 1}, Color(2))
	b.Set(Point{X: 1, Y: 0}, Color(2))
	b.Set(Point{X: 1, Y: 2}, Color(2))

	groups := FindGroups(b)
	var center Group
	for _, g := range groups {
		if g.Team == Color(1) {
			center = g
		}
	}
	assert.Equal(t, 0, center.Liberties)
}
