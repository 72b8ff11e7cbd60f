// Package piece holds the static catalog of falling pieces. Every rotation
// of every piece is precomputed once; nothing in here is ever mutated, so a
// Piece can be shared freely between the game, the search and any number of
// goroutines. Position and rotation index always live with the caller.
package piece

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/stacker/board"
)

// Kind identifies one of the seven canonical pieces.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L

	NumKinds = 7
	// Custom is the kind of any piece built with NewCustom.
	Custom Kind = 255
)

var kindNames = [NumKinds]string{"I", "O", "T", "S", "Z", "J", "L"}

var ErrUnknownKind = errors.New("unknown piece kind")

func (k Kind) String() string {
	if k < NumKinds {
		return kindNames[k]
	}
	if k == Custom {
		return "custom"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// KindFromString parses a single piece letter, case-insensitively.
func KindFromString(s string) (Kind, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// Piece is a kind plus its ordered list of rotation shapes. Rotation i+1 is
// rotation i turned clockwise; the list wraps around.
type Piece struct {
	kind      Kind
	color     board.Color
	rotations [][]board.Point
	// pivot is the cell offset the piece visibly turns around.
	pivot board.Point
	// minX and maxX cache the horizontal extent of every rotation.
	minX []int
	maxX []int
}

func newPiece(kind Kind, color board.Color, pivot board.Point, rotations ...[]board.Point) *Piece {
	p := &Piece{
		kind:      kind,
		color:     color,
		rotations: rotations,
		pivot:     pivot,
		minX:      make([]int, len(rotations)),
		maxX:      make([]int, len(rotations)),
	}
	for i, r := range rotations {
		if len(r) == 0 {
			panic("piece rotation has no cells")
		}
		p.minX[i], p.maxX[i] = r[0].X, r[0].X
		for _, c := range r[1:] {
			p.minX[i] = min(p.minX[i], c.X)
			p.maxX[i] = max(p.maxX[i], c.X)
		}
	}
	return p
}

// NewCustom builds a piece that is not part of the standard catalog, such
// as a single-cell test shape.
func NewCustom(color board.Color, rotations ...[]board.Point) *Piece {
	if len(rotations) == 0 {
		panic("custom piece needs at least one rotation")
	}
	return newPiece(Custom, color, board.Point{}, rotations...)
}

func (p *Piece) Kind() Kind {
	return p.kind
}

func (p *Piece) Color() board.Color {
	return p.color
}

func (p *Piece) Pivot() board.Point {
	return p.pivot
}

func (p *Piece) NumRotations() int {
	return len(p.rotations)
}

// Shape returns the cell offsets of rotation r. r is taken modulo the
// number of rotations. The returned slice must not be modified.
func (p *Piece) Shape(r int) []board.Point {
	return p.rotations[p.normalize(r)]
}

// XRange returns the smallest and largest x offset used by rotation r.
func (p *Piece) XRange(r int) (int, int) {
	r = p.normalize(r)
	return p.minX[r], p.maxX[r]
}

func (p *Piece) normalize(r int) int {
	n := len(p.rotations)
	return ((r % n) + n) % n
}

func (p *Piece) String() string {
	return p.kind.String()
}

func pts(coords ...int) []board.Point {
	ret := make([]board.Point, len(coords)/2)
	for i := range ret {
		ret[i] = board.Point{X: coords[2*i], Y: coords[2*i+1]}
	}
	return ret
}

// The catalog. Shapes sit in a 4x4 box whose top-left corner is the piece
// position; y grows downward. I, S and Z only keep their two distinct
// orientations and O keeps one.
var catalog = [NumKinds]*Piece{
	I: newPiece(I, board.Cyan, board.Point{X: 1, Y: 1},
		pts(0, 1, 1, 1, 2, 1, 3, 1),
		pts(2, 0, 2, 1, 2, 2, 2, 3)),
	O: newPiece(O, board.Yellow, board.Point{X: 0, Y: 0},
		pts(0, 0, 1, 0, 0, 1, 1, 1)),
	T: newPiece(T, board.Magenta, board.Point{X: 1, Y: 1},
		pts(1, 0, 0, 1, 1, 1, 2, 1),
		pts(1, 0, 1, 1, 2, 1, 1, 2),
		pts(0, 1, 1, 1, 2, 1, 1, 2),
		pts(1, 0, 0, 1, 1, 1, 1, 2)),
	S: newPiece(S, board.Green, board.Point{X: 1, Y: 1},
		pts(1, 0, 2, 0, 0, 1, 1, 1),
		pts(1, 0, 1, 1, 2, 1, 2, 2)),
	Z: newPiece(Z, board.Red, board.Point{X: 1, Y: 1},
		pts(0, 0, 1, 0, 1, 1, 2, 1),
		pts(2, 0, 1, 1, 2, 1, 1, 2)),
	J: newPiece(J, board.Blue, board.Point{X: 1, Y: 1},
		pts(0, 0, 0, 1, 1, 1, 2, 1),
		pts(1, 0, 2, 0, 1, 1, 1, 2),
		pts(0, 1, 1, 1, 2, 1, 2, 2),
		pts(1, 0, 1, 1, 0, 2, 1, 2)),
	L: newPiece(L, board.Orange, board.Point{X: 1, Y: 1},
		pts(2, 0, 0, 1, 1, 1, 2, 1),
		pts(1, 0, 1, 1, 1, 2, 2, 2),
		pts(0, 1, 1, 1, 2, 1, 0, 2),
		pts(0, 0, 1, 0, 1, 1, 1, 2)),
}

// Get returns the catalog piece for a kind.
func Get(k Kind) *Piece {
	if k >= NumKinds {
		panic(fmt.Sprintf("no catalog piece for %v", k))
	}
	return catalog[k]
}

// FromString looks a catalog piece up by its letter.
func FromString(s string) (*Piece, error) {
	k, err := KindFromString(s)
	if err != nil {
		return nil, err
	}
	return catalog[k], nil
}

// All returns every catalog piece in kind order.
func All() []*Piece {
	ret := make([]*Piece, NumKinds)
	copy(ret, catalog[:])
	return ret
}
