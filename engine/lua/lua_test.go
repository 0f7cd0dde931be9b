package lua

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Otixa/luajs/engine"
)

func newContext(t *testing.T, cfg engine.Config) engine.Context {
	t.Helper()
	ctx, err := New().NewContext(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

func TestLua_BasicExecution(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	v, err := ctx.Run(engine.StringChunk("return 5 * 5;"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != float64(25) {
		t.Errorf("expected 25, got: %v", v)
	}
}

func TestLua_NoReturnValue(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	v, err := ctx.Run(engine.StringChunk("local x = 1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil, got: %v", v)
	}
}

func TestLua_MultipleReturnsYieldLast(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	v, err := ctx.Run(engine.StringChunk("return 1, 'two'"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "two" {
		t.Errorf("expected last value, got: %v", v)
	}
}

func TestLua_SyntaxError(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	_, err := ctx.Run(engine.StringChunk("retrn 1;"))
	var e *engine.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *engine.Error, got: %v", err)
	}
	if e.Phase != engine.PhaseParse {
		t.Errorf("expected parse phase, got: %s", e.Phase)
	}
	if e.Line != 1 {
		t.Errorf("expected line 1, got: %d", e.Line)
	}
	if e.Chunk != engine.DefaultChunkName {
		t.Errorf("expected default chunk name, got: %s", e.Chunk)
	}
}

func TestLua_RuntimeError(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	_, err := ctx.Run(engine.Chunk{Name: "script.lua", Source: "local a = 1\nundefined_function()"})
	var e *engine.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *engine.Error, got: %v", err)
	}
	if e.Phase != engine.PhaseRuntime {
		t.Errorf("expected runtime phase, got: %s", e.Phase)
	}
	if e.Line != 2 {
		t.Errorf("expected line 2, got: %d (%s)", e.Line, e.Message)
	}
}

func TestLua_StackIsBalanced(t *testing.T) {
	ctx := newContext(t, engine.Config{})
	L := ctx.(*Context).L

	for i := 0; i < 5; i++ {
		if _, err := ctx.Run(engine.StringChunk("return 1, 2, 3")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, _ = ctx.Run(engine.StringChunk("error('x')"))
	}
	if top := L.GetTop(); top != 0 {
		t.Errorf("expected empty stack, got top=%d", top)
	}
}

func TestLua_TableConversion(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	v, err := ctx.Run(engine.StringChunk(`return { 10, 20, nested = { a = "b" }, [3.5] = true }`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"1":      float64(10),
		"2":      float64(20),
		"nested": map[string]any{"a": "b"},
		"3.5":    true,
	}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("got %#v, want %#v", v, want)
	}
}

func TestLua_FunctionsAndCyclesBecomeNil(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	v, err := ctx.Run(engine.StringChunk(`local t = { f = print }; t.self = t; return t`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", v)
	}
	if m["f"] != nil || m["self"] != nil {
		t.Errorf("expected nil for function and cycle, got %#v", m)
	}
}

func TestLua_Globals(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	if err := ctx.SetGlobal("items", []any{"a", "b", "c"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := ctx.Run(engine.StringChunk("greeting = 'hi ' .. items[2]; return #items"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != float64(3) {
		t.Errorf("expected 3, got: %v", v)
	}

	g, _ := ctx.GetGlobal("greeting")
	if g != "hi b" {
		t.Errorf("expected greeting, got: %v", g)
	}
}

func TestLua_PrintUsesConfiguredOutput(t *testing.T) {
	var out bytes.Buffer
	ctx := newContext(t, engine.Config{Stdout: &out})

	if _, err := ctx.Run(engine.StringChunk(`print("Hello", 42, nil)`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "Hello\t42\tnil\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestLua_LibrarySelection(t *testing.T) {
	ctx := newContext(t, engine.Config{Libraries: []string{"base", "math"}})

	if _, err := ctx.Run(engine.StringChunk("return math.floor(2.5)")); err != nil {
		t.Fatalf("math should be open: %v", err)
	}
	if _, err := ctx.Run(engine.StringChunk("return os.time()")); err == nil {
		t.Error("expected error for closed os library")
	}
}

func TestLua_UnknownLibrary(t *testing.T) {
	_, err := New().NewContext(engine.Config{Libraries: []string{"socket"}})
	if err == nil {
		t.Fatal("expected error for unknown library")
	}
}

func TestLua_Version(t *testing.T) {
	if v := New().Version(); !strings.HasPrefix(v, "Lua 5.") {
		t.Errorf("unexpected version: %s", v)
	}
}
