package move

import (
	"errors"
	"fmt"
	"strings"
)

// Action is one discrete input.
type Action uint8

const (
	RotateCW Action = iota
	ShiftLeft
	ShiftRight
	HardDrop
)

var actionNames = map[Action]string{
	RotateCW:   "rotate",
	ShiftLeft:  "left",
	ShiftRight: "right",
	HardDrop:   "drop",
}

var ErrUnknownAction = errors.New("unknown action")

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction accepts the names printed by String, plus a few single
// letter shortcuts.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(s) {
	case "rotate", "r", "cw":
		return RotateCW, nil
	case "left", "l":
		return ShiftLeft, nil
	case "right", "rt":
		return ShiftRight, nil
	case "drop", "d", "hard":
		return HardDrop, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownAction)
}

// ActionsString joins actions with spaces.
func ActionsString(actions []Action) string {
	var sb strings.Builder
	for i, a := range actions {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.String())
	}
	return sb.String()
}

// PlanSteps returns the inputs that take a piece from currentRotation and
// currentColumn to p: clockwise turns first, then horizontal shifts, then
// one hard drop. Collisions along the way are not checked; pieces are
// assumed to move freely at the top of the grid.
func PlanSteps(p *Placement, currentRotation, currentColumn, numRotations int) []Action {
	if numRotations < 1 {
		numRotations = 1
	}
	turns := ((p.Rotation()-currentRotation)%numRotations + numRotations) % numRotations
	shift := p.Column() - currentColumn
	steps := make([]Action, 0, turns+abs(shift)+1)
	for range turns {
		steps = append(steps, RotateCW)
	}
	dir := ShiftRight
	if shift < 0 {
		dir = ShiftLeft
	}
	for range abs(shift) {
		steps = append(steps, dir)
	}
	return append(steps, HardDrop)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
