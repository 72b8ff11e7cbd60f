package dataloaders

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestOpenWeightsFile(t *testing.T) {
	is := is.New(t)
	dataPath := t.TempDir()
	is.NoErr(os.MkdirAll(WeightsDir(dataPath), 0o755))
	is.NoErr(os.WriteFile(filepath.Join(WeightsDir(dataPath), "flat.yaml"), []byte("holes: 1\n"), 0o644))

	for _, name := range []string{"flat", "flat.yaml", filepath.Join(WeightsDir(dataPath), "flat.yaml")} {
		f, err := OpenWeightsFile(dataPath, name)
		is.NoErr(err)
		bts, err := io.ReadAll(f)
		is.NoErr(err)
		is.Equal(string(bts), "holes: 1\n")
		f.Close()
	}

	_, err := OpenWeightsFile(dataPath, "missing")
	is.True(errors.Is(err, ErrWeightsFileNotFound))
}
