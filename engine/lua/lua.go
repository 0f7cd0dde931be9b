// Package lua implements engine.Engine on top of gopher-lua.
package lua

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/Otixa/luajs/engine"
	glua "github.com/yuin/gopher-lua"
)

// Name is the engine identifier used in configuration.
const Name = "lua"

var (
	syntaxPosition  = regexp.MustCompile(`line:(\d+)\(column:(\d+)\)`)
	runtimePosition = regexp.MustCompile(`:(\d+):\s`)
)

// library pairs a library's global name with its opener.
type library struct {
	global string
	open   glua.LGFunction
}

// libraries enumerates the standard libraries a context may open, in the
// order gopher-lua opens them by default.
var libraries = map[string]library{
	"package":   {glua.LoadLibName, glua.OpenPackage},
	"base":      {glua.BaseLibName, glua.OpenBase},
	"table":     {glua.TabLibName, glua.OpenTable},
	"io":        {glua.IoLibName, glua.OpenIo},
	"os":        {glua.OsLibName, glua.OpenOs},
	"string":    {glua.StringLibName, glua.OpenString},
	"math":      {glua.MathLibName, glua.OpenMath},
	"debug":     {glua.DebugLibName, glua.OpenDebug},
	"channel":   {glua.ChannelLibName, glua.OpenChannel},
	"coroutine": {glua.CoroutineLibName, glua.OpenCoroutine},
}

// DefaultLibraries is the library set opened when Config.Libraries is empty.
var DefaultLibraries = []string{"package", "base", "table", "io", "os", "string", "math", "debug", "channel", "coroutine"}

// Engine creates gopher-lua interpreter states.
type Engine struct{}

// New returns the Lua engine.
func New() *Engine {
	return &Engine{}
}

// Name returns "lua".
func (e *Engine) Name() string { return Name }

// Version returns the Lua language version implemented by gopher-lua.
func (e *Engine) Version() string { return glua.LuaVersion }

// NewContext creates a new Lua state with the configured libraries opened.
func (e *Engine) NewContext(cfg engine.Config) (engine.Context, error) {
	names := cfg.Libraries
	if len(names) == 0 {
		names = DefaultLibraries
	}
	for _, name := range names {
		if _, ok := libraries[name]; !ok {
			return nil, fmt.Errorf("unknown lua library: %q", name)
		}
	}

	L := glua.NewState(glua.Options{SkipOpenLibs: true})
	for _, name := range names {
		lib := libraries[name]
		if err := L.CallByParam(glua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, glua.LString(lib.global)); err != nil {
			L.Close()
			return nil, fmt.Errorf("failed to open lua library %s: %w", name, err)
		}
	}

	out := cfg.Stdout
	if out == nil {
		out = os.Stdout
	}
	L.SetGlobal("print", L.NewFunction(printTo(out)))

	return &Context{L: L}, nil
}

// printTo mirrors Lua's print, writing to w instead of the process stdout.
func printTo(w io.Writer) glua.LGFunction {
	return func(L *glua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(w, strings.Join(parts, "\t"))
		return 0
	}
}

// Context is one Lua state. It is not safe for concurrent use.
type Context struct {
	L *glua.LState
}

// Run compiles and executes a chunk and returns the last value it returned.
func (c *Context) Run(chunk engine.Chunk) (engine.Value, error) {
	name := chunk.Name
	if name == "" {
		name = engine.DefaultChunkName
	}

	top := c.L.GetTop()
	defer c.L.SetTop(top)

	fn, err := c.L.Load(strings.NewReader(chunk.Source), name)
	if err != nil {
		return nil, translate(engine.PhaseParse, name, err, syntaxPosition)
	}

	c.L.Push(fn)
	if err := c.L.PCall(0, glua.MultRet, nil); err != nil {
		return nil, translate(engine.PhaseRuntime, name, err, runtimePosition, syntaxPosition)
	}

	if c.L.GetTop() <= top {
		return nil, nil
	}
	return ToValue(c.L.Get(-1)), nil
}

// GetGlobal reads a global variable.
func (c *Context) GetGlobal(name string) (engine.Value, error) {
	return ToValue(c.L.GetGlobal(name)), nil
}

// SetGlobal writes a portable value as a global variable.
func (c *Context) SetGlobal(name string, v engine.Value) error {
	c.L.SetGlobal(name, FromValue(c.L, engine.Normalize(v)))
	return nil
}

// Close closes the Lua state.
func (c *Context) Close() error {
	c.L.Close()
	return nil
}

func translate(phase engine.Phase, chunk string, err error, patterns ...*regexp.Regexp) *engine.Error {
	msg := err.Error()
	var apiErr *glua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil {
		msg = apiErr.Object.String()
	}
	return engine.NewError(phase, chunk, strings.TrimSpace(msg), err, patterns...)
}
