package stats

import "gonum.org/v1/gonum/stat/distuv"

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ZVal returns the two-tailed z-value for a confidence level given in
// percent, e.g. 1.96 for 95.
func ZVal(confidence float64) float64 {
	return stdNormal.Quantile((1 + confidence/100) / 2)
}
