// Package game is one falling-block game session: the live grid, the
// piece sequence, the active piece and the score. A Game doesn't care how
// it is played. Bots and humans drive it from outside this package through
// the same moves.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/stacker/board"
	"github.com/domino14/stacker/move"
	"github.com/domino14/stacker/piece"
)

const (
	DefaultSpawnColumn = 4
	LinesPerLevel      = 10
)

// lineScores is indexed by the number of lines one lock clears.
var lineScores = [5]int{0, 100, 300, 500, 800}

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotStarted  = errors.New("game has not started")
	ErrHoldUsed    = errors.New("hold was already used for this piece")
	ErrBadPosition = errors.New("piece does not fit there")
)

type PlayState int

const (
	StateNotStarted PlayState = iota
	StatePlaying
	StateGameOver
)

func (s PlayState) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game-over"
	}
	return fmt.Sprintf("PlayState(%d)", int(s))
}

// Options configures a new game. Zero values pick the defaults.
type Options struct {
	Width, Height int
	// SpawnColumn is where new pieces appear; nil means DefaultSpawnColumn.
	SpawnColumn *int
	// Seed fixes the piece sequence. 0 picks a random one.
	Seed uint64
	// Sequence, if set, is dealt before anything comes out of the bag.
	Sequence []piece.Kind
	// Grid, if set, is copied in as the starting grid. Its dimensions
	// override Width and Height.
	Grid *board.Grid
}

type Game struct {
	uid   string
	seed  uint64
	grid  *board.Grid
	bag   *piece.Bag
	queue []piece.Kind
	state PlayState

	spawn    board.Point
	current  *piece.Piece
	next     *piece.Piece
	held     *piece.Piece
	holdUsed bool
	rotation int
	position board.Point

	score        int
	lines        int
	piecesPlaced int
	history      []Turn
}

func NewGame(opts Options) *Game {
	if opts.Width == 0 {
		opts.Width = board.DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = board.DefaultHeight
	}
	spawnColumn := DefaultSpawnColumn
	if opts.SpawnColumn != nil {
		spawnColumn = *opts.SpawnColumn
	}
	g := &Game{
		uid:   uuid.NewString(),
		spawn: board.Point{X: spawnColumn, Y: 0},
		queue: append([]piece.Kind(nil), opts.Sequence...),
	}
	if opts.Grid != nil {
		g.grid = opts.Grid.Copy()
	} else {
		g.grid = board.MakeGrid(opts.Width, opts.Height)
	}
	if opts.Seed == 0 {
		g.bag, g.seed = piece.NewRandomBag()
	} else {
		g.bag, g.seed = piece.NewBag(opts.Seed), opts.Seed
	}
	return g
}

func (g *Game) deal() *piece.Piece {
	if len(g.queue) > 0 {
		k := g.queue[0]
		g.queue = g.queue[1:]
		return piece.Get(k)
	}
	return piece.Get(g.bag.Next())
}

// Start deals the first two pieces and spawns the first one.
func (g *Game) Start() {
	g.current = g.deal()
	g.next = g.deal()
	g.state = StatePlaying
	g.respawn()
	log.Debug().Str("uid", g.uid).Uint64("seed", g.seed).Msg("game-started")
}

// respawn puts the current piece back at the spawn point in rotation 0.
// If it does not fit there the game is over.
func (g *Game) respawn() {
	g.rotation = 0
	g.position = g.spawn
	if g.grid.Collides(g.current.Shape(0), g.spawn) {
		g.state = StateGameOver
		log.Debug().Str("uid", g.uid).Int("pieces", g.piecesPlaced).
			Int("lines", g.lines).Msg("game-over")
	}
}

func (g *Game) checkPlaying() error {
	switch g.state {
	case StateNotStarted:
		return ErrNotStarted
	case StateGameOver:
		return ErrGameOver
	}
	return nil
}

func (g *Game) shape() []board.Point {
	return g.current.Shape(g.rotation)
}

// try moves the active piece to pos with rotation rot if it fits there.
func (g *Game) try(rot int, pos board.Point) bool {
	if g.state != StatePlaying {
		return false
	}
	if g.grid.Collides(g.current.Shape(rot), pos) {
		return false
	}
	g.rotation = (rot%g.current.NumRotations() + g.current.NumRotations()) % g.current.NumRotations()
	g.position = pos
	return true
}

// MoveLeft, MoveRight, RotateCW and SoftDrop report whether the piece
// moved. A blocked move leaves it where it was.
func (g *Game) MoveLeft() bool {
	return g.try(g.rotation, g.position.Add(board.Point{X: -1}))
}

func (g *Game) MoveRight() bool {
	return g.try(g.rotation, g.position.Add(board.Point{X: 1}))
}

func (g *Game) RotateCW() bool {
	return g.try(g.rotation+1, g.position)
}

func (g *Game) SoftDrop() bool {
	return g.try(g.rotation, g.position.Add(board.Point{Y: 1}))
}

// Tick is one step of gravity: the piece falls a row, or locks if it
// cannot. It returns the number of lines cleared by the lock.
func (g *Game) Tick() (int, error) {
	if err := g.checkPlaying(); err != nil {
		return 0, err
	}
	if g.SoftDrop() {
		return 0, nil
	}
	return g.lock(), nil
}

// HardDrop drops the piece to its resting row and locks it. It returns the
// number of lines cleared.
func (g *Game) HardDrop() (int, error) {
	if err := g.checkPlaying(); err != nil {
		return 0, err
	}
	g.position = g.GhostPosition()
	return g.lock(), nil
}

// GhostPosition is where the active piece would land if hard dropped now.
func (g *Game) GhostPosition() board.Point {
	return g.grid.DropPosition(g.shape(), g.position)
}

func (g *Game) lock() int {
	g.grid.Place(g.shape(), g.position, g.current.Color())
	cleared := g.grid.ClearLines()
	level := g.Level()
	points := lineScores[min(cleared, 4)] * level
	g.score += points
	g.lines += cleared
	g.piecesPlaced++
	g.history = append(g.history, Turn{
		Piece:        g.current.Kind(),
		Rotation:     g.rotation,
		Column:       g.position.X,
		Row:          g.position.Y,
		LinesCleared: cleared,
		Points:       points,
		Level:        level,
	})

	g.current = g.next
	g.next = g.deal()
	g.holdUsed = false
	g.respawn()
	return cleared
}

// Hold puts the active piece aside. The first hold of a game brings in the
// next piece; later holds swap with the held one. Only one hold is allowed
// per piece, and the incoming piece starts over from the spawn point.
func (g *Game) Hold() error {
	if err := g.checkPlaying(); err != nil {
		return err
	}
	if g.holdUsed {
		return ErrHoldUsed
	}
	if g.held == nil {
		g.held = g.current
		g.current = g.next
		g.next = g.deal()
	} else {
		g.current, g.held = g.held, g.current
	}
	g.holdUsed = true
	g.respawn()
	return nil
}

// Place moves the active piece straight to rotation rot and column col at
// the spawn row, then hard drops it. It is how a bot commits a placement
// in one go.
func (g *Game) Place(rot, col int) (int, error) {
	if err := g.checkPlaying(); err != nil {
		return 0, err
	}
	if !g.try(rot, board.Point{X: col, Y: g.spawn.Y}) {
		return 0, fmt.Errorf("rotation %d column %d: %w", rot, col, ErrBadPosition)
	}
	return g.HardDrop()
}

// ApplyActions runs a list of inputs against the active piece. Blocked
// shifts and turns are skipped the same way a blocked key press would be.
// It stops after the first hard drop and returns the lines it cleared.
func (g *Game) ApplyActions(actions []move.Action) (int, error) {
	if err := g.checkPlaying(); err != nil {
		return 0, err
	}
	for _, a := range actions {
		switch a {
		case move.RotateCW:
			g.RotateCW()
		case move.ShiftLeft:
			g.MoveLeft()
		case move.ShiftRight:
			g.MoveRight()
		case move.HardDrop:
			return g.HardDrop()
		default:
			return 0, fmt.Errorf("%v: %w", a, move.ErrUnknownAction)
		}
	}
	return 0, nil
}

func (g *Game) Uid() string { return g.uid }
func (g *Game) Seed() uint64 { return g.seed }
func (g *Game) Playing() PlayState { return g.state }
func (g *Game) Over() bool { return g.state == StateGameOver }
func (g *Game) Current() *piece.Piece { return g.current }
func (g *Game) Next() *piece.Piece { return g.next }
func (g *Game) Held() *piece.Piece { return g.held }
func (g *Game) HoldUsed() bool { return g.holdUsed }
func (g *Game) Rotation() int { return g.rotation }
func (g *Game) Position() board.Point { return g.position }
func (g *Game) Spawn() board.Point { return g.spawn }
func (g *Game) Score() int { return g.score }
func (g *Game) Lines() int { return g.lines }
func (g *Game) PiecesPlaced() int { return g.piecesPlaced }
func (g *Game) History() []Turn { return g.history }

// Grid is the live grid. Callers must not modify it.
func (g *Game) Grid() *board.Grid { return g.grid }

// Level starts at 1 and goes up every LinesPerLevel lines.
func (g *Game) Level() int {
	return g.lines/LinesPerLevel + 1
}

// HoldCandidate is the piece that Hold would make active, or nil if hold
// is not allowed right now.
func (g *Game) HoldCandidate() *piece.Piece {
	if g.state != StatePlaying || g.holdUsed {
		return nil
	}
	if g.held == nil {
		return g.next
	}
	return g.held
}
