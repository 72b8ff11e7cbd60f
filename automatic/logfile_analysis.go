package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/stacker/stats"
)

var ErrBadLogFile = errors.New("not an autoplay log file")

// GameLog is what one game left in the log file.
type GameLog struct {
	ID       string
	Pieces   int
	Holds    int
	Lines    int
	Score    int
	Level    int
	Tetrises int
	Cost     stats.Statistic
}

type LogAnalysis struct {
	Games      []*GameLog
	Lines      stats.Statistic
	Score      stats.Statistic
	Pieces     stats.Statistic
	PieceCosts stats.Statistic
	PieceKinds map[string]int
}

// AnalyzeLog reads a log written by StartCompVCompGames.
func AnalyzeLog(r io.Reader) (*LogAnalysis, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadLogFile, err)
	}
	if strings.Join(header, ",")+"\n" != LogHeader {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrBadLogFile, header)
	}
	cr.FieldsPerRecord = len(header)

	byID := map[string]*GameLog{}
	la := &LogAnalysis{PieceKinds: map[string]int{}}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		gl, ok := byID[rec[0]]
		if !ok {
			gl = &GameLog{ID: rec[0]}
			byID[rec[0]] = gl
			la.Games = append(la.Games, gl)
		}
		nums, err := parseInts(rec[3:10])
		if err != nil {
			return nil, fmt.Errorf("game %v, piece %d: %w", gl.ID, gl.Pieces+1, err)
		}
		cost, err := strconv.ParseFloat(rec[10], 64)
		if err != nil {
			return nil, fmt.Errorf("game %v, piece %d: %w", gl.ID, gl.Pieces+1, err)
		}
		gl.Pieces++
		if rec[2] == "true" {
			gl.Holds++
		}
		if nums[3] == 4 {
			gl.Tetrises++
		}
		gl.Lines, gl.Score, gl.Level = nums[4], nums[5], nums[6]
		gl.Cost.Push(cost)
		la.PieceCosts.Push(cost)
		la.PieceKinds[rec[1]]++
	}
	for _, gl := range la.Games {
		la.Lines.Push(float64(gl.Lines))
		la.Score.Push(float64(gl.Score))
		la.Pieces.Push(float64(gl.Pieces))
	}
	return la, nil
}

func parseInts(fields []string) ([]int, error) {
	ret := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		ret[i] = n
	}
	return ret, nil
}

func (la *LogAnalysis) String() string {
	var ss strings.Builder
	fmt.Fprintf(&ss, "Games: %d\n", len(la.Games))
	fmt.Fprintf(&ss, "Lines:  %v\n", &la.Lines)
	fmt.Fprintf(&ss, "Score:  %v\n", &la.Score)
	fmt.Fprintf(&ss, "Pieces: %v\n", &la.Pieces)
	fmt.Fprintf(&ss, "Cost per piece: %v\n", &la.PieceCosts)
	tetrises := lo.SumBy(la.Games, func(g *GameLog) int { return g.Tetrises })
	holds := lo.SumBy(la.Games, func(g *GameLog) int { return g.Holds })
	fmt.Fprintf(&ss, "Tetrises: %d, holds: %d\n", tetrises, holds)
	kinds := lo.Keys(la.PieceKinds)
	slices.Sort(kinds)
	ss.WriteString("Pieces dealt:")
	for _, k := range kinds {
		fmt.Fprintf(&ss, " %s=%d", k, la.PieceKinds[k])
	}
	ss.WriteString("\n")
	return ss.String()
}

// AnalyzeLogFile analyzes the log at path and returns a printable report.
func AnalyzeLogFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	la, err := AnalyzeLog(f)
	if err != nil {
		return "", err
	}
	return la.String(), nil
}
