// Package tengo implements engine.Engine on top of the Tengo scripting
// language.
//
// Tengo compiles each script as a whole, so the adapter keeps the context's
// globals itself: they are declared into every chunk before compilation and
// read back after it runs.
package tengo

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/Otixa/luajs/engine"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Name is the engine identifier used in configuration.
const Name = "tengo"

const resultVar = "__chunk_result"

// wrapperLines is how many lines the wrapper adds before the source.
const wrapperLines = 1

var position = regexp.MustCompile(`at [^\n]*?:(\d+):(\d+)`)

// Engine creates Tengo contexts.
type Engine struct{}

// New returns the Tengo engine.
func New() *Engine {
	return &Engine{}
}

// Name returns "tengo".
func (e *Engine) Name() string { return Name }

// Version returns the Tengo language descriptor.
func (e *Engine) Version() string { return "Tengo 2" }

// NewContext creates a Tengo context. Config.Libraries selects stdlib
// modules; empty means all of them.
func (e *Engine) NewContext(cfg engine.Config) (engine.Context, error) {
	modules := cfg.Libraries
	if len(modules) == 0 {
		modules = stdlib.AllModuleNames()
	}
	known := make(map[string]bool)
	for _, name := range stdlib.AllModuleNames() {
		known[name] = true
	}
	for _, name := range modules {
		if !known[name] {
			return nil, fmt.Errorf("unknown tengo module: %q", name)
		}
	}

	out := cfg.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &Context{
		modules: stdlib.GetModuleMap(modules...),
		globals: make(map[string]any),
		output:  out,
	}, nil
}

// Context holds the globals and module map shared by every chunk.
// It is not safe for concurrent use.
type Context struct {
	modules *tengo.ModuleMap
	globals map[string]any
	output  io.Writer
}

// Run compiles the chunk as an immediately invoked function and returns the
// function's result.
func (c *Context) Run(chunk engine.Chunk) (engine.Value, error) {
	name := chunk.Name
	if name == "" {
		name = engine.DefaultChunkName
	}

	src := resultVar + " := func() {\n" + chunk.Source + "\n}()"
	script := tengo.NewScript([]byte(src))
	script.SetImports(c.modules)

	for _, g := range c.globalNames() {
		if err := script.Add(g, c.globals[g]); err != nil {
			return nil, fmt.Errorf("failed to add global %s: %w", g, err)
		}
	}
	c.addBuiltinFunctions(script)

	compiled, err := script.Compile()
	if err != nil {
		return nil, translate(engine.PhaseParse, name, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, translate(engine.PhaseRuntime, name, err)
	}

	c.extractVariables(compiled)
	return engine.Normalize(compiled.Get(resultVar).Value()), nil
}

// GetGlobal returns a persisted global.
func (c *Context) GetGlobal(name string) (engine.Value, error) {
	return c.globals[name], nil
}

// SetGlobal persists a global for subsequent chunks.
func (c *Context) SetGlobal(name string, v engine.Value) error {
	if name == resultVar || name == "print" {
		return fmt.Errorf("reserved global name: %s", name)
	}
	c.globals[name] = engine.Normalize(v)
	return nil
}

// Close drops the persisted globals.
func (c *Context) Close() error {
	c.globals = nil
	return nil
}

func (c *Context) globalNames() []string {
	names := make([]string, 0, len(c.globals))
	for name := range c.globals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// addBuiltinFunctions adds print, writing to the context's output.
func (c *Context) addBuiltinFunctions(script *tengo.Script) {
	_ = script.Add("print", &tengo.UserFunction{
		Name: "print",
		Value: func(args ...tengo.Object) (tengo.Object, error) {
			parts := make([]string, len(args))
			for i, arg := range args {
				if s, ok := arg.(*tengo.String); ok {
					parts[i] = s.Value
				} else {
					parts[i] = arg.String()
				}
			}
			fmt.Fprintln(c.output, strings.Join(parts, " "))
			return tengo.UndefinedValue, nil
		},
	})
}

// extractVariables reads persisted globals back after a run so assignments
// made by the chunk are kept.
func (c *Context) extractVariables(compiled *tengo.Compiled) {
	for name := range c.globals {
		if v := compiled.Get(name); v != nil {
			c.globals[name] = engine.Normalize(v.Value())
		}
	}
}

func translate(phase engine.Phase, chunk string, err error) *engine.Error {
	raw := err.Error()
	msg, _, _ := strings.Cut(raw, "\n")
	e := engine.NewError(phase, chunk, strings.TrimSpace(msg), err)
	e.Line, e.Column = engine.FindPosition(raw, position)
	if e.Line > wrapperLines {
		e.Line -= wrapperLines
	} else {
		e.Line, e.Column = 0, 0
	}
	return e
}
