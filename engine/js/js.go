// Package js implements engine.Engine on top of the goja JavaScript runtime.
//
// Chunks run as the body of a function, so a top-level return statement
// produces the chunk's result. Variables declared with var/let/const are
// therefore local to one chunk; globals persist through SetGlobal, undeclared
// assignment, or globalThis.
package js

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/Otixa/luajs/engine"
	"github.com/dop251/goja"
)

// Name is the engine identifier used in configuration.
const Name = "js"

// wrapperLines is how many lines the function wrapper adds before the source.
const wrapperLines = 1

var (
	syntaxPosition  = regexp.MustCompile(`Line (\d+):(\d+)`)
	runtimePosition = regexp.MustCompile(`:(\d+):(\d+)\(`)
)

// Engine creates goja runtimes.
type Engine struct{}

// New returns the JavaScript engine.
func New() *Engine {
	return &Engine{}
}

// Name returns "js".
func (e *Engine) Name() string { return Name }

// Version returns the language level goja implements.
func (e *Engine) Version() string { return "ECMAScript 5.1 (goja)" }

// NewContext creates a new goja runtime with print and console.log wired to
// the configured output.
func (e *Engine) NewContext(cfg engine.Config) (engine.Context, error) {
	vm := goja.New()

	out := cfg.Stdout
	if out == nil {
		out = os.Stdout
	}
	if err := setupEnvironment(vm, out); err != nil {
		return nil, fmt.Errorf("failed to setup environment: %w", err)
	}
	return &Context{vm: vm}, nil
}

// setupEnvironment installs the print helpers.
func setupEnvironment(vm *goja.Runtime, out io.Writer) error {
	printFunc := func(call goja.FunctionCall) goja.Value {
		args := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = arg.String()
		}
		fmt.Fprintln(out, strings.Join(args, " "))
		return goja.Undefined()
	}
	if err := vm.Set("print", printFunc); err != nil {
		return fmt.Errorf("failed to set print: %w", err)
	}

	console := vm.NewObject()
	if err := console.Set("log", printFunc); err != nil {
		return fmt.Errorf("failed to set console.log: %w", err)
	}
	if err := vm.Set("console", console); err != nil {
		return fmt.Errorf("failed to set console: %w", err)
	}
	return nil
}

// Context is one goja runtime. It is not safe for concurrent use.
type Context struct {
	vm *goja.Runtime
}

// Run compiles the chunk as a function body, calls it and returns its
// exported result.
func (c *Context) Run(chunk engine.Chunk) (engine.Value, error) {
	name := chunk.Name
	if name == "" {
		name = engine.DefaultChunkName
	}

	prg, err := goja.Compile(name, "(function() {\n"+chunk.Source+"\n})()", false)
	if err != nil {
		return nil, translate(engine.PhaseParse, name, err.Error(), err, syntaxPosition)
	}

	val, err := c.vm.RunProgram(prg)
	if err != nil {
		msg := err.Error()
		var ex *goja.Exception
		if errors.As(err, &ex) && ex.Value() != nil {
			msg = ex.Value().String()
		}
		e := translate(engine.PhaseRuntime, name, err.Error(), err, runtimePosition)
		e.Message = msg
		return nil, e
	}
	return export(val), nil
}

// GetGlobal reads a property of the global object.
func (c *Context) GetGlobal(name string) (engine.Value, error) {
	return export(c.vm.Get(name)), nil
}

// SetGlobal sets a property of the global object.
func (c *Context) SetGlobal(name string, v engine.Value) error {
	if err := c.vm.Set(name, engine.Normalize(v)); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	return nil
}

// Close is a no-op; goja runtimes are reclaimed by the garbage collector.
func (c *Context) Close() error {
	return nil
}

func export(val goja.Value) engine.Value {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil
	}
	return engine.Normalize(val.Export())
}

// translate builds an engine error and shifts the line back past the
// function wrapper.
func translate(phase engine.Phase, chunk, raw string, cause error, pattern *regexp.Regexp) *engine.Error {
	e := engine.NewError(phase, chunk, raw, cause, pattern)
	if e.Line > wrapperLines {
		e.Line -= wrapperLines
	} else {
		e.Line, e.Column = 0, 0
	}
	return e
}
