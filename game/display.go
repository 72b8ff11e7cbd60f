package game

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/domino14/stacker/board"
	"github.com/domino14/stacker/piece"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

func pieceName(p *piece.Piece) string {
	if p == nil {
		return "-"
	}
	return p.String()
}

// ToDisplayText draws the grid with the active piece on it, its landing
// spot as lower-case letters, and the game state alongside.
func (g *Game) ToDisplayText() string {
	view := g.grid.Copy()
	var ghost []board.Point
	if g.state == StatePlaying {
		rest := g.GhostPosition()
		for _, c := range g.shape() {
			p := c.Add(rest)
			if view.InBounds(p.X, p.Y) && !view.IsOccupied(p.X, p.Y) {
				ghost = append(ghost, p)
			}
		}
		view.Place(g.shape(), g.position, g.current.Color())
	}
	bts := strings.Split(view.ToDisplayText(), "\n")
	// grid row y is text line y+2, cell x is rune x+3
	for _, p := range ghost {
		if view.Get(p.X, p.Y) != board.Empty {
			continue
		}
		line := []rune(bts[p.Y+2])
		line[p.X+3] = unicode.ToLower(g.current.Color().Rune())
		bts[p.Y+2] = string(line)
	}

	hpadding := 3
	addText(bts, 1, hpadding, fmt.Sprintf("Game %v (%v)", g.uid, g.state))
	addText(bts, 3, hpadding, fmt.Sprintf("Current: %v  rotation %d  at %v",
		pieceName(g.current), g.rotation, g.position))
	addText(bts, 4, hpadding, fmt.Sprintf("Next: %v", pieceName(g.next)))
	addText(bts, 5, hpadding, fmt.Sprintf("Held: %v", pieceName(g.held)))
	addText(bts, 7, hpadding, fmt.Sprintf("Score: %d", g.score))
	addText(bts, 8, hpadding, fmt.Sprintf("Lines: %d", g.lines))
	addText(bts, 9, hpadding, fmt.Sprintf("Level: %d", g.Level()))
	addText(bts, 10, hpadding, fmt.Sprintf("Pieces: %d", g.piecesPlaced))
	return strings.Join(bts, "\n")
}
