package piece

import (
	"errors"
	"slices"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/stacker/board"
)

func TestCatalog(t *testing.T) {
	is := is.New(t)
	expectedRotations := map[Kind]int{I: 2, O: 1, T: 4, S: 2, Z: 2, J: 4, L: 4}
	for _, p := range All() {
		is.Equal(p.NumRotations(), expectedRotations[p.Kind()])
		for r := 0; r < p.NumRotations(); r++ {
			shape := p.Shape(r)
			is.Equal(len(shape), 4)
			seen := map[board.Point]bool{}
			for _, c := range shape {
				is.True(!seen[c]) // duplicate cell in shape
				seen[c] = true
			}
		}
	}
}

func TestShapeWraps(t *testing.T) {
	is := is.New(t)
	p := Get(T)
	is.Equal(p.Shape(4), p.Shape(0))
	is.Equal(p.Shape(-1), p.Shape(3))
}

func TestXRange(t *testing.T) {
	is := is.New(t)
	p := Get(I)
	lo, hi := p.XRange(0)
	is.Equal(lo, 0)
	is.Equal(hi, 3)
	lo, hi = p.XRange(1)
	is.Equal(lo, 2)
	is.Equal(hi, 2)
}

func TestKindFromString(t *testing.T) {
	is := is.New(t)
	k, err := KindFromString("t")
	is.NoErr(err)
	is.Equal(k, T)
	_, err = KindFromString("Q")
	is.True(errors.Is(err, ErrUnknownKind))
}

func TestCustomPiece(t *testing.T) {
	is := is.New(t)
	p := NewCustom(board.Garbage, []board.Point{{0, 0}})
	is.Equal(p.Kind(), Custom)
	is.Equal(p.NumRotations(), 1)
	is.Equal(p.Kind().String(), "custom")
}

func TestBagDealsEverySevenOnce(t *testing.T) {
	is := is.New(t)
	b := NewBag(42)
	for refill := 0; refill < 5; refill++ {
		seen := map[Kind]int{}
		for i := 0; i < NumKinds; i++ {
			seen[b.Next()]++
		}
		is.Equal(len(seen), NumKinds)
	}
	is.Equal(b.Dealt(), 35)
}

func TestBagIsDeterministic(t *testing.T) {
	is := is.New(t)
	b1 := NewBag(7)
	b2 := NewBag(7)
	for i := 0; i < 30; i++ {
		is.Equal(b1.Next(), b2.Next())
	}
}

func TestPivotIsACell(t *testing.T) {
	is := is.New(t)
	for _, p := range All() {
		is.True(slices.Contains(p.Shape(0), p.Pivot())) // pivot outside the shape
	}
	is.Equal(Get(O).Pivot(), board.Point{X: 0, Y: 0})
	is.Equal(Get(I).Pivot(), board.Point{X: 1, Y: 1})
	is.Equal(NewCustom(board.Garbage, []board.Point{{0, 0}}).Pivot(), board.Point{})
}

func TestBagPeek(t *testing.T) {
	is := is.New(t)
	b := NewBag(11)
	is.Equal(len(b.Peek()), 0)
	first := b.Next()
	left := b.Peek()
	is.Equal(len(left), NumKinds-1)
	is.True(!slices.Contains(left, first))

	left[0] = first // Peek hands out a copy
	for _, k := range b.Peek() {
		is.Equal(b.Next(), k)
	}
	is.Equal(len(b.Peek()), 0)
	is.Equal(b.Dealt(), NumKinds)
}

func TestRandomBagSeedIsNeverZero(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 100; i++ {
		b, seed := NewRandomBag()
		is.True(seed != 0)
		is.Equal(NewBag(seed).Next(), b.Next())
	}
}
