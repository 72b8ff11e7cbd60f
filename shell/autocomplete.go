package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-file", "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"autoplay": {
		Options: []string{"-file", "-threads", "-seeds", "-store", "-yaml"},
	},
	"weights": {
		Args: []string{"set", "reset", "save"},
	},
	"act": {
		Args: []string{"rotate", "left", "right", "drop"},
	},
	"usehold": {
		Args: boolValues,
	},
	"help": {
		Args: []string{"weights", "autoplay", "script"},
	},
}

var weightNames = []string{
	"holes", "blocks_above_holes", "pillars", "max_height", "bumpiness", "rightmost_lane",
}

// Common command names for command completion
var commandNames = []string{
	"new", "show", "gen", "best", "steps", "play", "act", "hold", "usehold",
	"weights", "load", "autoplay", "analyze", "results", "script", "help", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}

	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		// Arguments typed so far, not counting the one being completed.
		done := len(fields) - 1
		if !endsWithSpace {
			done--
		}

		if cmdName == "weights" && done >= 1 && fields[1] == "set" && (done-1)%2 == 0 {
			completions = weightNames
		} else if metadata, exists := commandMetadata[cmdName]; exists {
			if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
				completions = metadata.Options
			} else if cmdName == "act" || done == 0 {
				completions = metadata.Args
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			suffix := completion[len(prefix):]
			matches = append(matches, []rune(suffix))
		}
	}

	return matches, len(prefix)
}
