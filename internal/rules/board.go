// Package rules implements the variant Go state machine: board and group
// primitives, the FreePlacement/Play/Scoring/Done states, and the variant
// hooks (pixel, toroidal, hidden-move, phantom, traitor, tetris, n+1,
// zen-go, ponnuki, captures-give-points) that compose at well-defined
// points in placement and capture resolution.
package rules

import "hash/fnv"

// Color is an integer team tag. 0 means empty; 1..=4 are team colors.
type Color uint8

// Empty reports whether the color represents an unoccupied point.
func (c Color) Empty() bool { return c == 0 }

// Index returns the zero-based team index used to address per-team slices
// such as SharedState.Points and SharedState.Komis.
func (c Color) Index() int { return int(c) - 1 }

// Point is a board coordinate, (x, y), zero-based.
type Point struct {
	X, Y int
}

// Board is a rectangular or toroidal grid of T, stored row-major.
type Board[T any] struct {
	Width    int
	Height   int
	Toroidal bool
	Points   []T
}

// NewBoard allocates an empty board of the given size.
func NewBoard[T any](width, height int, toroidal bool) Board[T] {
	return Board[T]{
		Width:    width,
		Height:   height,
		Toroidal: toroidal,
		Points:   make([]T, width*height),
	}
}

// Clone returns a deep copy of the board.
func (b Board[T]) Clone() Board[T] {
	points := make([]T, len(b.Points))
	copy(points, b.Points)
	return Board[T]{Width: b.Width, Height: b.Height, Toroidal: b.Toroidal, Points: points}
}

// Within reports whether p addresses a cell on the board, pre-wrap.
func (b Board[T]) Within(p Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

func (b Board[T]) index(p Point) int { return p.Y*b.Width + p.X }

// Get returns the value at p. p must be in range.
func (b Board[T]) Get(p Point) T { return b.Points[b.index(p)] }

// Set writes v at p. p must be in range.
func (b *Board[T]) Set(p Point, v T) { b.Points[b.index(p)] = v }

// IdxToCoord converts a row-major index back into a Point.
func (b Board[T]) IdxToCoord(idx int) (Point, bool) {
	if idx < 0 || idx >= len(b.Points) {
		return Point{}, false
	}
	return Point{X: idx % b.Width, Y: idx / b.Width}, true
}

// WrapPoint translates (x, y) onto the board, wrapping on both axes when
// the board is toroidal. It returns false when the point is out of range
// on a non-toroidal board.
func (b Board[T]) WrapPoint(x, y int) (Point, bool) {
	return wrapPoint(x, y, b.Width, b.Height, b.Toroidal)
}

func wrapPoint(x, y, width, height int, toroidal bool) (Point, bool) {
	if x >= 0 && x < width && y >= 0 && y < height {
		return Point{X: x, Y: y}, true
	}
	if !toroidal {
		return Point{}, false
	}
	if x < 0 {
		x += width
	} else if x >= width {
		x -= width
	}
	if y < 0 {
		y += height
	} else if y >= height {
		y -= height
	}
	return Point{X: x, Y: y}, true
}

var orthogonalDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
var diagonalDirs = [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// Neighbors returns the (up to 4) orthogonally adjacent points, wrapping
// iff the board is toroidal.
func (b Board[T]) Neighbors(p Point) []Point {
	return b.directionPoints(p, orthogonalDirs)
}

// DiagonalNeighbors returns the (up to 4) diagonally adjacent points,
// used only by the ponnuki check.
func (b Board[T]) DiagonalNeighbors(p Point) []Point {
	return b.directionPoints(p, diagonalDirs)
}

func (b Board[T]) directionPoints(p Point, dirs [4][2]int) []Point {
	out := make([]Point, 0, 4)
	for _, d := range dirs {
		if q, ok := b.WrapPoint(p.X+d[0], p.Y+d[1]); ok {
			out = append(out, q)
		}
	}
	return out
}

// Hash returns a stable whole-board hash suitable for superko comparison.
// Equal hashes must still be verified against actual board equality before
// treating two boards as the same position (hash collisions are possible).
func (b Board[T]) Hash(encode func(T) uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putU64 := func(v uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	putU64(uint64(b.Width))
	putU64(uint64(b.Height))
	if b.Toroidal {
		putU64(1)
	}
	for _, p := range b.Points {
		putU64(encode(p))
	}
	return h.Sum64()
}

// ColorsEqual compares two Color boards cell-for-cell (dimensions and
// points), used to verify a hash match before rejecting a move as Ko.
func ColorsEqual(a, b Board[Color]) bool {
	if a.Width != b.Width || a.Height != b.Height || a.Toroidal != b.Toroidal {
		return false
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			return false
		}
	}
	return true
}

// HashColors hashes a Color board.
func HashColors(b Board[Color]) uint64 {
	return b.Hash(func(c Color) uint64 { return uint64(c) })
}
