package stats

import (
	"bytes"

	"github.com/aybabtme/uniplot/histogram"
)

// HistogramText draws vals as a text histogram with the given number of
// bins, the longest bar width characters wide.
func HistogramText(vals []float64, bins, width int) (string, error) {
	if len(vals) == 0 {
		return "", nil
	}
	h := histogram.Hist(bins, vals)
	var buf bytes.Buffer
	if err := histogram.Fprint(&buf, h, histogram.Linear(width)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
