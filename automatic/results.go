package automatic

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/stacker/equity"
	"github.com/domino14/stacker/game"
	"github.com/domino14/stacker/stats"
)

const (
	histogramBins  = 10
	histogramWidth = 50
)

// Results aggregates a self-play run.
type Results struct {
	Weights equity.Weights `yaml:"weights"`
	Games   []game.Summary `yaml:"games"`

	lines    stats.Statistic
	score    stats.Statistic
	pieces   stats.Statistic
	tetrises int
	toppedUp int
}

func (r *Results) add(sum game.Summary) {
	r.Games = append(r.Games, sum)
	r.lines.Push(float64(sum.Lines))
	r.score.Push(float64(sum.Score))
	r.pieces.Push(float64(sum.PiecesPlaced))
	r.tetrises += sum.Tetrises
	if sum.GameOver {
		r.toppedUp++
	}
}

// Games are finished in whatever order the workers get to them.
func (r *Results) sort() {
	sort.SliceStable(r.Games, func(i, j int) bool {
		return r.Games[i].Seed < r.Games[j].Seed
	})
}

func (r *Results) Lines() *stats.Statistic {
	return &r.lines
}

func (r *Results) Score() *stats.Statistic {
	return &r.score
}

func (r *Results) Pieces() *stats.Statistic {
	return &r.pieces
}

// Best returns the game with the most lines.
func (r *Results) Best() (game.Summary, bool) {
	if len(r.Games) == 0 {
		return game.Summary{}, false
	}
	return lo.MaxBy(r.Games, func(a, b game.Summary) bool {
		return a.Lines > b.Lines
	}), true
}

func (r *Results) String() string {
	var ss strings.Builder
	fmt.Fprintf(&ss, "Weights: %v\n", r.Weights)
	fmt.Fprintf(&ss, "Games played: %d (%d topped out)\n", len(r.Games), r.toppedUp)
	fmt.Fprintf(&ss, "Lines:  %v\n", &r.lines)
	fmt.Fprintf(&ss, "Score:  %v\n", &r.score)
	fmt.Fprintf(&ss, "Pieces: %v\n", &r.pieces)
	fmt.Fprintf(&ss, "Tetrises: %d\n", r.tetrises)
	if best, ok := r.Best(); ok {
		fmt.Fprintf(&ss, "Best game: seed %d, %d lines, %d points\n", best.Seed, best.Lines, best.Score)
	}
	lines := lo.Map(r.Games, func(s game.Summary, _ int) float64 {
		return float64(s.Lines)
	})
	if h, err := stats.HistogramText(lines, histogramBins, histogramWidth); err == nil && h != "" {
		ss.WriteString("Lines cleared per game:\n")
		ss.WriteString(h)
	}
	return ss.String()
}

// WriteYAML writes the weights and every game summary.
func (r *Results) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Results) SaveYAML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
