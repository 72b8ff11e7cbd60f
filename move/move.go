// Package move describes the result of a placement search and the input
// actions that reach it.
package move

import (
	"fmt"

	"github.com/domino14/stacker/board"
	"github.com/domino14/stacker/features"
	"github.com/domino14/stacker/piece"
)

// Placement is one legal resting spot for a piece: its rotation and
// position, the board after locking it there, and how that board scores.
type Placement struct {
	piece    *piece.Piece
	rotation int
	position board.Point
	grid     *board.Grid
	features features.Set
	cost     float64
	// index is the enumeration order of the placement within one search.
	index int
}

func NewPlacement(p *piece.Piece, rotation int, position board.Point, grid *board.Grid,
	fs features.Set, index int) *Placement {
	return &Placement{
		piece:    p,
		rotation: rotation,
		position: position,
		grid:     grid,
		features: fs,
		index:    index,
	}
}

func (m *Placement) Piece() *piece.Piece { return m.piece }
func (m *Placement) Rotation() int { return m.rotation }
func (m *Placement) Position() board.Point { return m.position }
func (m *Placement) Column() int { return m.position.X }
func (m *Placement) Row() int { return m.position.Y }
func (m *Placement) Features() features.Set { return m.features }
func (m *Placement) Cost() float64 { return m.cost }
func (m *Placement) SetCost(c float64) { m.cost = c }
func (m *Placement) Index() int { return m.index }
func (m *Placement) Shape() []board.Point { return m.piece.Shape(m.rotation) }

// Grid is the board after the piece is locked, before any line is cleared.
// It belongs to the placement and must not be modified.
func (m *Placement) Grid() *board.Grid { return m.grid }

// ShortDescription is a compact human-readable form like "T r1 c3".
func (m *Placement) ShortDescription() string {
	return fmt.Sprintf("%v r%d c%d", m.piece, m.rotation, m.position.X)
}

func (m *Placement) String() string {
	return fmt.Sprintf("<%v row: %d cost: %.3f %v>", m.ShortDescription(),
		m.position.Y, m.cost, m.features)
}

// CopyFrom makes m a shallow copy of o. The grid is shared.
func (m *Placement) CopyFrom(o *Placement) {
	*m = *o
}

// Equals compares everything but the grid contents and the cost.
func (m *Placement) Equals(o *Placement) bool {
	return m.piece == o.piece && m.rotation == o.rotation &&
		m.position == o.position && m.features == o.features
}
