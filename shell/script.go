package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

const luaShellGlobal = "stacker_shell"

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal(luaShellGlobal)
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand exposes a shell command to scripts. The script passes the
// command's arguments as one string and gets back the command's output,
// or nil and the error message.
func luaCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		line := name
		if L.GetTop() > 0 {
			line += " " + L.ToString(1)
		}
		r, err := getShell(L).handle(line)
		if err != nil {
			log.Err(err).Str("command", name).Msg("error-executing-script-command")
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		if r == nil {
			L.Push(lua.LString(""))
		} else {
			L.Push(lua.LString(r.message))
		}
		return 1
	}
}

// luaState returns a table describing the current game, or nil.
func luaState(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		return 1
	}
	sum := sc.game.Summary()
	t := L.NewTable()
	t.RawSetString("uid", lua.LString(sum.Uid))
	t.RawSetString("score", lua.LNumber(sum.Score))
	t.RawSetString("lines", lua.LNumber(sum.Lines))
	t.RawSetString("level", lua.LNumber(sum.Level))
	t.RawSetString("pieces", lua.LNumber(sum.PiecesPlaced))
	t.RawSetString("tetrises", lua.LNumber(sum.Tetrises))
	t.RawSetString("over", lua.LBool(sum.GameOver))
	if sc.game.Current() != nil {
		t.RawSetString("current", lua.LString(sc.game.Current().Kind().String()))
	}
	L.Push(t)
	return 1
}

var scriptCommands = []string{
	"new", "show", "gen", "best", "steps", "play", "act", "hold",
	"usehold", "weights", "load", "autoplay", "analyze", "results",
}

func (sc *ShellController) newLuaState() *lua.LState {
	L := lua.NewState()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal(luaShellGlobal, lsc)
	for _, name := range scriptCommands {
		L.SetGlobal("stacker_"+name, L.NewFunction(luaCommand(name)))
	}
	L.SetGlobal("stacker_state", L.NewFunction(luaState))
	return L
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := sc.newLuaState()
	defer L.Close()

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
