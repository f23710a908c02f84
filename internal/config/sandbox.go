package config

import (
	lua "github.com/yuin/gopher-lua"
)

// safeLibs are the only standard libraries opened in a config VM.
var safeLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// unsafeBaseGlobals are base library functions that load code from outside
// the config or reach around the platform table's protection.
var unsafeBaseGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
	"rawset",
	"rawequal",
	"setfenv",
	"getfenv",
	"setmetatable",
	"collectgarbage",
}

// newSandboxedVM creates a Lua VM for config evaluation. Only the base,
// table, string and math libraries are opened, so os, io, package and
// debug never exist; the dangerous base functions are removed afterwards.
func newSandboxedVM() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:  true,
		CallStackSize: luaCallStackSize,
	})

	for _, lib := range safeLibs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	for _, name := range unsafeBaseGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	return L
}
