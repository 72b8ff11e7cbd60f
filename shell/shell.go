package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/stacker/ai/bot"
	"github.com/domino14/stacker/config"
	"github.com/domino14/stacker/game"
	"github.com/domino14/stacker/move"
)

const defaultGenPlays = 15

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first with the `new` command")
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// extractFields splits a line into a command, its positional arguments and
// its -option value pairs.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[idx][1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

type ShellController struct {
	l        *readline.Instance
	out      io.Writer
	config   *config.Config
	execPath string

	game     *game.Game
	bot      *bot.BotTurnPlayer
	curPlays []*move.Placement
	decision *bot.Decision

	ctx    context.Context
	cancel context.CancelFunc
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// newController sets up everything but the terminal; output goes to out.
func newController(cfg *config.Config, execPath string, out io.Writer) (*ShellController, error) {
	b, err := bot.NewBotTurnPlayer(bot.NewBotConfig(cfg))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ShellController{
		out:      out,
		config:   cfg,
		execPath: execPath,
		bot:      b,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

func NewShellController(cfg *config.Config, execPath string) *ShellController {
	sc, err := newController(cfg, execPath, os.Stderr)
	if err != nil {
		panic(err)
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[33mstacker>\033[0m ",
		HistoryFile:     "/tmp/stacker_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func (sc *ShellController) handle(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "new", "n":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "gen", "g":
		return sc.generate(cmd)
	case "best", "b":
		return sc.best(cmd)
	case "steps":
		return sc.steps(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "act", "a":
		return sc.act(cmd)
	case "hold", "h":
		return sc.hold(cmd)
	case "usehold":
		return sc.useHold(cmd)
	case "weights", "w":
		return sc.weights(cmd)
	case "load":
		return sc.load(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "analyze":
		return sc.analyze(cmd)
	case "results":
		return sc.results(cmd)
	case "script":
		return sc.script(cmd)
	case "help":
		return sc.help(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// Execute runs one line. It returns false once the shell should quit.
func (sc *ShellController) Execute(sig chan os.Signal, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if line == "exit" || line == "bye" {
		sig <- syscall.SIGINT
		return false
	}
	resp, err := sc.handle(line)
	if err != nil {
		sc.showError(err)
	} else if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return true
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		if !sc.Execute(sig, line) {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops anything still running in the background.
func (sc *ShellController) Cleanup() {
	sc.cancel()
	log.Debug().Msg("shell-cleaned-up")
}
