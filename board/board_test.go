package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestClearLines(t *testing.T) {
	is := is.New(t)
	g, err := FromRows([]string{
		"....",
		"C...",
		"####",
		".R..",
		"####",
	})
	is.NoErr(err)
	is.Equal(g.ClearLines(), 2)
	is.Equal(g.Rows(), []string{
		"....",
		"....",
		"....",
		"C...",
		".R..",
	})
	is.Equal(g.Height(), 5)
	is.Equal(g.ClearLines(), 0)
}

func TestClearLinesWholeGrid(t *testing.T) {
	is := is.New(t)
	g, err := FromRows([]string{"##", "##"})
	is.NoErr(err)
	is.Equal(g.ClearLines(), 2)
	is.True(g.IsEmpty())
}

func TestCollides(t *testing.T) {
	is := is.New(t)
	g, err := FromBottomRows(4, 4, []string{"#..."})
	is.NoErr(err)
	bar := []Point{{0, 0}, {1, 0}}

	is.True(!g.Collides(bar, Point{0, 0}))
	// Off the left and right edges.
	is.True(g.Collides(bar, Point{-1, 0}))
	is.True(g.Collides(bar, Point{3, 0}))
	// Below the bottom row.
	is.True(g.Collides(bar, Point{1, 4}))
	// Occupied cell.
	is.True(g.Collides(bar, Point{0, 3}))
	is.True(!g.Collides(bar, Point{1, 3}))
	// Rows above the grid never collide.
	is.True(!g.Collides(bar, Point{0, -5}))
}

func TestDropPosition(t *testing.T) {
	is := is.New(t)
	g, err := FromBottomRows(4, 6, []string{"..#.", "####"})
	is.NoErr(err)
	square := []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	is.Equal(g.DropPosition(square, Point{0, 0}), Point{0, 3})
	is.Equal(g.DropPosition(square, Point{2, 0}), Point{2, 2})
	// Starting above the grid.
	is.Equal(g.DropPosition(square, Point{0, -3}), Point{0, 3})
}

func TestPlaceAndCopy(t *testing.T) {
	is := is.New(t)
	g := MakeGrid(4, 4)
	c := g.Copy()
	c.Place([]Point{{0, 0}, {0, -1}}, Point{1, 0}, Red)
	is.True(g.IsEmpty())
	is.Equal(c.TilesPlaced(), 1)
	is.Equal(c.Get(1, 0), Red)
	is.True(!g.Equals(c))
	is.True(g.Fingerprint() != c.Fingerprint())

	g.CopyFrom(c)
	is.True(g.Equals(c))
	is.Equal(g.Fingerprint(), c.Fingerprint())
}

func TestFromRowsErrors(t *testing.T) {
	is := is.New(t)
	_, err := FromRows(nil)
	is.True(errors.Is(err, ErrNoRows))
	_, err = FromRows([]string{"...", ".."})
	is.True(errors.Is(err, ErrRaggedRows))
	_, err = FromRows([]string{"..z"})
	is.True(errors.Is(err, ErrUnknownCell))
}

func TestMustMatchPanics(t *testing.T) {
	is := is.New(t)
	defer func() {
		is.True(recover() != nil)
	}()
	MakeGrid(4, 4).MustMatch(10, 20)
}
