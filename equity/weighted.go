package equity

import (
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/domino14/stacker/features"
)

type term struct {
	weight  func(w *Weights) float64
	feature func(fs *features.Set) int
}

// terms are summed in this order, which decides float rounding.
var terms = []term{
	{func(w *Weights) float64 { return w.Holes }, func(fs *features.Set) int { return fs.Holes }},
	{func(w *Weights) float64 { return w.Pillars }, func(fs *features.Set) int { return fs.Pillars }},
	{func(w *Weights) float64 { return w.BlocksAboveHoles }, func(fs *features.Set) int { return fs.BlocksAboveHoles }},
	{func(w *Weights) float64 { return w.MaxHeight }, func(fs *features.Set) int { return fs.MaxHeight }},
	{func(w *Weights) float64 { return w.Bumpiness }, func(fs *features.Set) int { return fs.Bumpiness }},
	{func(w *Weights) float64 { return w.RightmostLane }, func(fs *features.Set) int { return fs.RightmostLane }},
}

// WeightedCalculator is the linear heuristic: the weighted sum of the six
// board features, halved for a four-line clear. The weights can be swapped
// at any time, also while a search is running on another goroutine; each
// Cost call sees one consistent vector.
type WeightedCalculator struct {
	weights atomic.Pointer[Weights]
}

func NewWeightedCalculator(w Weights) *WeightedCalculator {
	c := &WeightedCalculator{}
	c.SetWeights(w)
	return c
}

func (c *WeightedCalculator) Weights() Weights {
	return *c.weights.Load()
}

func (c *WeightedCalculator) SetWeights(w Weights) {
	c.weights.Store(&w)
}

// Update applies u to the current weights and returns the result.
func (c *WeightedCalculator) Update(u WeightsUpdate) Weights {
	w := c.Weights().With(u)
	c.SetWeights(w)
	return w
}

func (c *WeightedCalculator) Cost(fs features.Set) float64 {
	return Cost(*c.weights.Load(), fs)
}

// Cost scores fs under w.
func Cost(w Weights, fs features.Set) float64 {
	cost := lo.SumBy(terms, func(t term) float64 {
		return t.weight(&w) * float64(t.feature(&fs))
	})
	if fs.LinesCleared == 4 {
		cost *= TetrisDiscount
	}
	return cost
}

// Combined adds up the cost of several calculators.
type Combined []Calculator

func (cs Combined) Cost(fs features.Set) float64 {
	return lo.SumBy(cs, func(c Calculator) float64 { return c.Cost(fs) })
}

// LinesBonus rewards cleared lines with a fixed negative cost per line. It
// is meant to be combined with a WeightedCalculator.
type LinesBonus float64

func (b LinesBonus) Cost(fs features.Set) float64 {
	return -float64(b) * float64(fs.LinesCleared)
}
