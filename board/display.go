package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoRows      = errors.New("no rows given")
	ErrRaggedRows  = errors.New("rows have different lengths")
	ErrUnknownCell = errors.New("unknown cell character")
)

// ToDisplayText renders the grid, one row per line, with a frame and row
// labels. It is meant for the shell and for logging.
func (g *Grid) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < g.width; x++ {
		sb.WriteString(fmt.Sprintf("%d", x%10))
	}
	sb.WriteString("\n")
	sb.WriteString("  +" + strings.Repeat("-", g.width) + "+\n")
	for y := 0; y < g.height; y++ {
		sb.WriteString(fmt.Sprintf("%2d|", y))
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.Get(x, y).Rune())
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  +" + strings.Repeat("-", g.width) + "+\n")
	return sb.String()
}

// Rows returns the compact string form of every row, top row first. It is
// the inverse of FromRows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		var sb strings.Builder
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.Get(x, y).Rune())
		}
		rows[y] = sb.String()
	}
	return rows
}

// FromRows builds a grid from text rows, top row first. '.' or ' ' is an
// empty cell, '#' or 'X' is a garbage cell and the colour letters used by
// Color.Rune are accepted as well.
func FromRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, ErrNoRows
	}
	g := MakeGrid(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d: %w", y, ErrRaggedRows)
		}
		for x, r := range runes {
			c, ok := ColorFromRune(r)
			if !ok {
				return nil, fmt.Errorf("row %d col %d (%q): %w", y, x, r, ErrUnknownCell)
			}
			g.Set(x, y, c)
		}
	}
	return g, nil
}

// FromBottomRows builds a grid of the given dimensions whose bottom rows are
// set from rows (top-most given row first). The rows above are empty.
func FromBottomRows(width, height int, rows []string) (*Grid, error) {
	if len(rows) > height {
		return nil, fmt.Errorf("%d rows do not fit in height %d", len(rows), height)
	}
	full := make([]string, 0, height)
	for i := 0; i < height-len(rows); i++ {
		full = append(full, strings.Repeat(".", width))
	}
	full = append(full, rows...)
	g, err := FromRows(full)
	if err != nil {
		return nil, err
	}
	if g.width != width {
		return nil, fmt.Errorf("rows are %d wide, expected %d: %w", g.width, width,
			ErrRaggedRows)
	}
	return g, nil
}
