package luajs

import (
	"fmt"
	"strings"

	"github.com/Otixa/luajs/engine"
	"github.com/Otixa/luajs/engine/js"
	"github.com/Otixa/luajs/engine/lua"
	"github.com/Otixa/luajs/engine/tengo"
)

// engines is the fixed set of engines this package ships with.
var engines = []engine.Engine{
	lua.New(),
	js.New(),
	tengo.New(),
}

// Engines returns the built-in engines, Lua first.
func Engines() []engine.Engine {
	out := make([]engine.Engine, len(engines))
	copy(out, engines)
	return out
}

// EngineNames returns the names of the built-in engines.
func EngineNames() []string {
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.Name()
	}
	return names
}

// LookupEngine returns the built-in engine called name.
func LookupEngine(name string) (engine.Engine, error) {
	for _, e := range engines {
		if e.Name() == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unknown engine: %q (valid options: %s)", name, strings.Join(EngineNames(), ", "))
}

// Version returns the version descriptor of the default Lua engine.
func Version() string {
	return lua.New().Version()
}
