package automatic

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func mustOpen(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

const sampleLog = LogHeader +
	"g1,I,false,1,9,16,0,0,0,1,2.000\n" +
	"g1,O,false,0,0,18,0,0,0,1,4.000\n" +
	"g2,T,true,0,3,18,4,4,800,1,1.000\n"

func TestAnalyzeLog(t *testing.T) {
	is := is.New(t)
	la, err := AnalyzeLog(strings.NewReader(sampleLog))
	is.NoErr(err)
	is.Equal(len(la.Games), 2)
	is.Equal(la.Games[0].Pieces, 2)
	is.Equal(la.Games[0].Cost.Mean(), 3.0)
	is.Equal(la.Games[1].Tetrises, 1)
	is.Equal(la.Games[1].Holds, 1)
	is.Equal(la.Games[1].Score, 800)
	is.Equal(la.Lines.Max(), 4.0)
	is.Equal(la.PieceKinds["I"], 1)
	is.True(strings.Contains(la.String(), "Tetrises: 1, holds: 1"))
}

func TestAnalyzeLogRejectsOtherFiles(t *testing.T) {
	is := is.New(t)
	_, err := AnalyzeLog(strings.NewReader("a,b,c\n1,2,3\n"))
	is.True(errors.Is(err, ErrBadLogFile))
}
