package stats

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		vals     []float64
		mean     float64
		stdev    float64
		min, max float64
	}
	cases := []tc{
		{[]float64{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 10, 124},
		{[]float64{1}, 1, 0, 1, 1},
		{[]float64{}, 0, 0, 0, 0},
		{[]float64{1, 1}, 1, 0, 1, 1},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, v := range c.vals {
			s.Push(v)
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Min(), c.min)
		is.Equal(s.Max(), c.max)
		is.Equal(s.Iterations(), len(c.vals))
	}
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(0), 0))
	is.True(ZVal(95) > 1.959963 && ZVal(95) < 1.959965)
	is.True(ZVal(99) > 2.5758 && ZVal(99) < 2.5759)
}

func TestConfidenceInterval(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Push(v)
	}
	is.True(FuzzyEqual(s.ConfidenceInterval(95), ZVal(95)*s.StandardError()))
	is.True(strings.Contains(s.String(), "n=8"))
}

func TestHistogramText(t *testing.T) {
	is := is.New(t)
	txt, err := HistogramText([]float64{1, 2, 2, 3, 3, 3, 10}, 3, 10)
	is.NoErr(err)
	is.True(strings.TrimSpace(txt) != "")
	empty, err := HistogramText(nil, 3, 10)
	is.NoErr(err)
	is.Equal(empty, "")
}
