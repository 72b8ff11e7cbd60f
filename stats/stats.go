// Package stats keeps running statistics over self-play results.
package stats

import (
	"fmt"
	"math"
)

const Epsilon = 1e-6

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's method) plus the
// extremes seen so far. The zero value is ready to use.
type Statistic struct {
	n    int
	last float64
	mean float64
	m2   float64
	min  float64
	max  float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	s.last = val
	if s.n == 1 {
		s.mean, s.m2 = val, 0
		s.min, s.max = val, val
		return
	}
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

// ConfidenceInterval is the half-width of the interval around the mean for
// the given confidence, in percent.
func (s *Statistic) ConfidenceInterval(pct float64) float64 {
	return ZVal(pct) * s.StandardError()
}

func (s *Statistic) Last() float64 { return s.last }
func (s *Statistic) Min() float64 { return s.min }
func (s *Statistic) Max() float64 { return s.max }
func (s *Statistic) Iterations() int { return s.n }

func (s *Statistic) String() string {
	return fmt.Sprintf("mean %.2f ± %.2f (95%%), stdev %.2f, min %g, max %g, n=%d",
		s.mean, s.ConfidenceInterval(95), s.Stdev(), s.min, s.max, s.n)
}
