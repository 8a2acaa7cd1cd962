package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// registerModules defines the circle global in L.
//
// Postcondition: circle.spec, circle.send, circle.echo, circle.say,
// circle.act, circle.dice, circle.number and circle.log exist in L.
func (m *Manager) registerModules(L *lua.LState, specs map[string]*lua.LFunction) {
	circle := L.NewTable()
	L.SetGlobal("circle", circle)

	L.SetField(circle, "spec", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		fn := L.CheckFunction(2)
		specs[name] = fn
		return 0
	}))

	L.SetField(circle, "send", L.NewFunction(func(L *lua.LState) int {
		if h := m.host; h != nil {
			h.Send(L.CheckString(1))
		}
		return 0
	}))
	L.SetField(circle, "echo", L.NewFunction(func(L *lua.LState) int {
		if h := m.host; h != nil {
			h.Echo(L.CheckString(1))
		}
		return 0
	}))
	L.SetField(circle, "say", L.NewFunction(func(L *lua.LState) int {
		if h := m.host; h != nil {
			h.Say(L.CheckString(1))
		}
		return 0
	}))
	L.SetField(circle, "act", L.NewFunction(func(L *lua.LState) int {
		if h := m.host; h != nil {
			h.Act(L.CheckString(1), L.OptString(2, "room"))
		}
		return 0
	}))

	L.SetField(circle, "dice", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.roller.Dice(L.CheckInt(1), L.CheckInt(2))))
		return 1
	}))
	L.SetField(circle, "number", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.roller.Number(L.CheckInt(1), L.CheckInt(2))))
		return 1
	}))

	log := L.NewTable()
	for level, fn := range map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	} {
		L.SetField(log, level, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	L.SetField(circle, "log", log)
}
