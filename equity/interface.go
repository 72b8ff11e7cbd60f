package equity

import "github.com/domino14/stacker/features"

// Calculator turns the features of a simulated placement into a cost.
// Lower is better.
type Calculator interface {
	Cost(fs features.Set) float64
}
