package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/stacker/automatic"
	"github.com/domino14/stacker/config"
	"github.com/domino14/stacker/equity"
	"github.com/domino14/stacker/game"
	"github.com/domino14/stacker/gamestore"
	"github.com/domino14/stacker/move"
)

func (sc *ShellController) requireGame() error {
	if sc.game == nil {
		return errNoGame
	}
	return nil
}

// positionChanged forgets anything computed for the previous position.
func (sc *ShellController) positionChanged() {
	sc.curPlays = nil
	sc.decision = nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	spawnColumn := sc.config.GetInt(config.ConfigSpawnColumn)
	opts := game.Options{SpawnColumn: &spawnColumn}
	if len(cmd.args) > 0 {
		seed, err := strconv.ParseUint(cmd.args[0], 10, 64)
		if err != nil {
			return nil, err
		}
		opts.Seed = seed
	} else {
		opts.Seed = sc.config.GetUint64(config.ConfigSeed)
	}
	sc.game = game.NewGame(opts)
	sc.game.Start()
	sc.positionChanged()
	log.Info().Str("uid", sc.game.Uid()).Uint64("seed", sc.game.Seed()).Msg("new-game")
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func placementTableHeader() string {
	return "     Placement      Cost   Lines Holes MaxH  Bump"
}

func placementTableRow(idx int, p *move.Placement) string {
	fs := p.Features()
	return fmt.Sprintf("%3d: %-14s %-7.2f%-6d%-6d%-5d%-5d", idx+1,
		p.ShortDescription(), p.Cost(), fs.LinesCleared, fs.Holes, fs.MaxHeight, fs.Bumpiness)
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	if sc.game.Over() {
		return nil, game.ErrGameOver
	}
	numPlays := defaultGenPlays
	if len(cmd.args) > 0 {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		numPlays = n
	}
	plays := sc.bot.GenerateMoves(sc.game.Grid(), sc.game.Current(), sc.game.Spawn(), numPlays)
	// The generator reuses its play slice on the next search.
	sc.curPlays = append([]*move.Placement(nil), plays...)

	var ss strings.Builder
	ss.WriteString(placementTableHeader() + "\n")
	for i, p := range sc.curPlays {
		ss.WriteString(placementTableRow(i, p) + "\n")
	}
	fmt.Fprintf(&ss, "%d placements of %v", len(sc.bot.MoveGenerator().Plays()), sc.game.Current().Kind())
	return msg(ss.String()), nil
}

// decide asks the bot once per position.
func (sc *ShellController) decide() error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	if sc.decision == nil {
		d, err := sc.bot.Decide(sc.game)
		if err != nil {
			return err
		}
		sc.decision = d
	}
	return nil
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	if err := sc.decide(); err != nil {
		return nil, err
	}
	d := sc.decision
	s := fmt.Sprintf("Best: %v (cost %.3f; %v)", d.Placement.ShortDescription(),
		d.Placement.Cost(), d.Placement.Features())
	if d.Hold {
		s = "Hold, then " + strings.ToLower(s[:1]) + s[1:]
	}
	return msg(s), nil
}

func (sc *ShellController) steps(cmd *shellcmd) (*Response, error) {
	if err := sc.decide(); err != nil {
		return nil, err
	}
	s := move.ActionsString(sc.decision.Steps)
	if sc.decision.Hold {
		s = "hold " + s
	}
	return msg(s), nil
}

// play commits the bot's choice, or with two arguments drops the active
// piece at the given rotation and column.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	var lines int
	var desc string
	switch len(cmd.args) {
	case 0:
		d, l, err := sc.bot.PlayTurn(sc.game)
		if err != nil {
			return nil, err
		}
		lines = l
		desc = d.Placement.ShortDescription()
		if d.Hold {
			desc = "hold, " + desc
		}
	case 2:
		rot, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		col, err := strconv.Atoi(cmd.args[1])
		if err != nil {
			return nil, err
		}
		kind := sc.game.Current().Kind()
		lines, err = sc.game.Place(rot, col)
		if err != nil {
			return nil, err
		}
		desc = fmt.Sprintf("%v r%d c%d", kind, rot, col)
	default:
		return nil, errors.New("usage: play [<rotation> <column>]")
	}
	sc.positionChanged()
	return msg(sc.afterLock(desc, lines)), nil
}

func (sc *ShellController) afterLock(desc string, lines int) string {
	var ss strings.Builder
	fmt.Fprintf(&ss, "Played %v", desc)
	if lines > 0 {
		fmt.Fprintf(&ss, ", cleared %d", lines)
	}
	ss.WriteString("\n")
	ss.WriteString(sc.game.ToDisplayText())
	if sc.game.Over() {
		ss.WriteString("\nGame over.")
	}
	return ss.String()
}

// act feeds raw inputs to the active piece.
func (sc *ShellController) act(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: act <rotate|left|right|drop>...")
	}
	actions := make([]move.Action, 0, len(cmd.args))
	for _, a := range cmd.args {
		action, err := move.ParseAction(a)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	placed := sc.game.PiecesPlaced()
	lines, err := sc.game.ApplyActions(actions)
	if err != nil {
		return nil, err
	}
	sc.positionChanged()
	if sc.game.PiecesPlaced() > placed {
		t := sc.game.History()[len(sc.game.History())-1]
		return msg(sc.afterLock(t.String(), lines)), nil
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) hold(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	if err := sc.game.Hold(); err != nil {
		return nil, err
	}
	sc.positionChanged()
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) useHold(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		v, err := strconv.ParseBool(cmd.args[0])
		if err != nil {
			return nil, err
		}
		sc.bot.SetUseHold(v)
		sc.positionChanged()
	}
	return msg(fmt.Sprintf("bot uses hold: %v", sc.bot.UseHold())), nil
}

func (sc *ShellController) weights(cmd *shellcmd) (*Response, error) {
	calc := sc.bot.Calculator()
	if len(cmd.args) == 0 {
		return msg(calc.Weights().String()), nil
	}
	switch cmd.args[0] {
	case "set":
		u, err := equity.ParseUpdate(cmd.args[1:])
		if err != nil {
			return nil, err
		}
		w := calc.Update(u)
		sc.positionChanged()
		return msg("weights set to " + w.String()), nil
	case "reset":
		calc.SetWeights(equity.DefaultWeights())
		sc.positionChanged()
		return msg("weights reset to " + calc.Weights().String()), nil
	case "save":
		if len(cmd.args) != 2 {
			return nil, errors.New("usage: weights save <file>")
		}
		if err := equity.SaveWeights(cmd.args[1], calc.Weights()); err != nil {
			return nil, err
		}
		return msg("saved weights to " + cmd.args[1]), nil
	}
	return nil, errors.New("usage: weights [set <name> <value>... | reset | save <file>]")
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <weights file>")
	}
	w, err := equity.LoadWeights(sc.config, cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.bot.Calculator().SetWeights(w)
	sc.positionChanged()
	return msg("loaded weights " + w.String()), nil
}

// autoplay runs self-play games with the shell's current weights. It blocks
// until they are done.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	opts := automatic.RunOptions{
		OutputFilename: cmd.options["file"],
		StorePath:      cmd.options["store"],
	}
	if len(cmd.args) > 0 {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		opts.NumGames = n
	}
	if t, ok := cmd.options["threads"]; ok {
		n, err := strconv.Atoi(t)
		if err != nil {
			return nil, err
		}
		opts.Threads = n
	}
	if f, ok := cmd.options["seeds"]; ok {
		seeds, err := automatic.LoadSeeds(f)
		if err != nil {
			return nil, err
		}
		opts.Seeds = seeds
	}
	w := sc.bot.Calculator().Weights()
	opts.Weights = &w

	res, err := automatic.StartCompVCompGames(sc.ctx, sc.config, opts)
	if err != nil {
		return nil, err
	}
	if f, ok := cmd.options["yaml"]; ok {
		if err := res.SaveYAML(f); err != nil {
			return nil, err
		}
	}
	return msg(res.String()), nil
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	path := sc.config.GetString(config.ConfigAutoplayLogfile)
	if len(cmd.args) > 0 {
		path = cmd.args[0]
	}
	out, err := automatic.AnalyzeLogFile(path)
	if err != nil {
		return nil, err
	}
	return msg(out), nil
}

func (sc *ShellController) results(cmd *shellcmd) (*Response, error) {
	path := sc.config.GetString(config.ConfigGamestorePath)
	if len(cmd.args) > 0 {
		path = cmd.args[0]
	}
	if path == "" {
		return nil, errors.New("usage: results <game store file>")
	}
	store, err := gamestore.Open(sc.ctx, path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	rs, err := store.ResultsByWeights(sc.ctx)
	if err != nil {
		return nil, err
	}
	var ss strings.Builder
	for _, r := range rs {
		fmt.Fprintf(&ss, "%v\n  games %d, avg lines %.2f, avg score %.1f, max lines %d\n",
			r.Weights, r.Games, r.AvgLines, r.AvgScore, r.MaxLines)
	}
	if ss.Len() == 0 {
		return msg("no games stored"), nil
	}
	return msg(strings.TrimRight(ss.String(), "\n")), nil
}
