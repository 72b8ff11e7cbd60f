package board

// A Color is the tag stored in a single grid cell. The zero value is an
// empty cell; every other value is an occupied cell of that colour.
type Color uint8

const (
	Empty Color = iota
	Cyan
	Yellow
	Magenta
	Green
	Red
	Blue
	Orange
	// Garbage is used for cells that were set up by hand (for example from
	// a text snapshot) rather than locked from a piece.
	Garbage
)

var colorRunes = [...]rune{'.', 'C', 'Y', 'M', 'G', 'R', 'B', 'O', '#'}

var colorNames = [...]string{"empty", "cyan", "yellow", "magenta", "green",
	"red", "blue", "orange", "garbage"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// Rune is the single-character form of the colour used by ToDisplayText
// and FromRows.
func (c Color) Rune() rune {
	if int(c) < len(colorRunes) {
		return colorRunes[c]
	}
	return '?'
}

// ColorFromRune is the inverse of Rune. Any unrecognized rune returns false.
func ColorFromRune(r rune) (Color, bool) {
	for i, cr := range colorRunes {
		if cr == r {
			return Color(i), true
		}
	}
	switch r {
	case ' ', '_':
		return Empty, true
	case 'X', 'x', '*':
		return Garbage, true
	}
	return Empty, false
}
