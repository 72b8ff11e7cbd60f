package equity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TetrisDiscount multiplies the cost of a placement that clears exactly
// four lines.
const TetrisDiscount = 0.5

var ErrUnknownWeight = errors.New("unknown weight name")

// Weights is an immutable weight vector. Nothing is validated: negative or
// huge values are accepted as given.
type Weights struct {
	Holes            float64 `yaml:"holes"`
	BlocksAboveHoles float64 `yaml:"blocks_above_holes"`
	Pillars          float64 `yaml:"pillars"`
	MaxHeight        float64 `yaml:"max_height"`
	Bumpiness        float64 `yaml:"bumpiness"`
	RightmostLane    float64 `yaml:"rightmost_lane"`
}

func DefaultWeights() Weights {
	return Weights{
		Holes:            4.5,
		BlocksAboveHoles: 0,
		Pillars:          2.0,
		MaxHeight:        2,
		Bumpiness:        0,
		RightmostLane:    0,
	}
}

func (w Weights) String() string {
	return fmt.Sprintf("holes=%g bah=%g pillars=%g maxh=%g bump=%g right=%g",
		w.Holes, w.BlocksAboveHoles, w.Pillars, w.MaxHeight, w.Bumpiness, w.RightmostLane)
}

// WeightsUpdate names any subset of the weights. Nil fields are left alone.
type WeightsUpdate struct {
	Holes            *float64 `yaml:"holes"`
	BlocksAboveHoles *float64 `yaml:"blocks_above_holes"`
	Pillars          *float64 `yaml:"pillars"`
	MaxHeight        *float64 `yaml:"max_height"`
	Bumpiness        *float64 `yaml:"bumpiness"`
	RightmostLane    *float64 `yaml:"rightmost_lane"`
}

// With returns a copy of w with the fields of u applied.
func (w Weights) With(u WeightsUpdate) Weights {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&w.Holes, u.Holes)
	set(&w.BlocksAboveHoles, u.BlocksAboveHoles)
	set(&w.Pillars, u.Pillars)
	set(&w.MaxHeight, u.MaxHeight)
	set(&w.Bumpiness, u.Bumpiness)
	set(&w.RightmostLane, u.RightmostLane)
	return w
}

func (u *WeightsUpdate) field(name string) (**float64, error) {
	switch strings.ToLower(name) {
	case "holes":
		return &u.Holes, nil
	case "bah", "blocks-above-holes", "blocks_above_holes":
		return &u.BlocksAboveHoles, nil
	case "pillars":
		return &u.Pillars, nil
	case "maxh", "max-height", "max_height":
		return &u.MaxHeight, nil
	case "bump", "bumpiness":
		return &u.Bumpiness, nil
	case "right", "rightmost-lane", "rightmost_lane":
		return &u.RightmostLane, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownWeight)
}

// ParseUpdate reads alternating name, value arguments, e.g.
// ["holes", "3", "maxh", "1.5"].
func ParseUpdate(args []string) (WeightsUpdate, error) {
	var u WeightsUpdate
	if len(args)%2 != 0 {
		return u, errors.New("weights must be given as name value pairs")
	}
	for i := 0; i < len(args); i += 2 {
		f, err := u.field(args[i])
		if err != nil {
			return u, err
		}
		v, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return u, fmt.Errorf("weight %v: %w", args[i], err)
		}
		*f = &v
	}
	return u, nil
}
