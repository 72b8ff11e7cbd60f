package automatic

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"lukechampine.com/frand"
)

// GenerateSeeds returns n random non-zero bag seeds.
func GenerateSeeds(n int) []uint64 {
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = frand.Uint64n(1<<63-1) + 1
	}
	return seeds
}

// SequentialSeeds returns base, base+1, ... so that a run started from a
// fixed seed can be repeated exactly.
func SequentialSeeds(base uint64, n int) []uint64 {
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = base + uint64(i)
	}
	return seeds
}

// SaveSeeds writes one decimal seed per line.
func SaveSeeds(seeds []uint64, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString("# piece bag seeds, one per game\n"); err != nil {
		return err
	}
	for _, s := range seeds {
		if _, err := writer.WriteString(strconv.FormatUint(s, 10) + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// LoadSeeds reads a file written by SaveSeeds. Blank lines and lines
// starting with # are skipped.
func LoadSeeds(path string) ([]uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds []uint64
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed at line %d: %w", lineNum, err)
		}
		if s == 0 {
			return nil, fmt.Errorf("bad seed at line %d: seeds must be non-zero", lineNum)
		}
		seeds = append(seeds, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seeds, nil
}
