package tengo

import (
	"bytes"
	"errors"
	"reflect"
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

func TestTengo_BasicExecution(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	v, err := ctx.Run(engine.StringChunk("return 5 * 5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != float64(25) {
		t.Errorf("expected 25, got: %#v", v)
	}
}

func TestTengo_SyntaxError(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	_, err := ctx.Run(engine.StringChunk("retrn 1;"))
	var e *engine.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *engine.Error, got: %v", err)
	}
	if e.Phase != engine.PhaseParse {
		t.Errorf("expected parse phase, got: %s", e.Phase)
	}
}

func TestTengo_RuntimeError(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	_, err := ctx.Run(engine.StringChunk("a := [1, 2]\nreturn a[\"x\"] + 1"))
	var e *engine.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *engine.Error, got: %v", err)
	}
	if e.Phase != engine.PhaseRuntime {
		t.Errorf("expected runtime phase, got: %s (%s)", e.Phase, e.Message)
	}
}

func TestTengo_Aggregates(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	v, err := ctx.Run(engine.StringChunk(`return {name: "tengo", list: [1, 2.5, true]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"name": "tengo",
		"list": []any{float64(1), 2.5, true},
	}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("got %#v, want %#v", v, want)
	}
}

func TestTengo_GlobalsPersist(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	if err := ctx.SetGlobal("counter", 41); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ctx.Run(engine.StringChunk("counter = counter + 1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := ctx.Run(engine.StringChunk("return counter"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != float64(42) {
		t.Errorf("expected 42, got: %#v", v)
	}

	g, _ := ctx.GetGlobal("counter")
	if g != float64(42) {
		t.Errorf("expected persisted global, got: %#v", g)
	}
}

func TestTengo_ReservedGlobal(t *testing.T) {
	ctx := newContext(t, engine.Config{})

	if err := ctx.SetGlobal("print", 1); err == nil {
		t.Error("expected error for reserved name")
	}
}

func TestTengo_StdlibAndPrint(t *testing.T) {
	var out bytes.Buffer
	ctx := newContext(t, engine.Config{Stdout: &out})

	v, err := ctx.Run(engine.StringChunk(`text := import("text")
print("upper", text.to_upper("go"))
return text.repeat("ab", 2)`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "abab" {
		t.Errorf("expected abab, got: %#v", v)
	}
	if got := out.String(); got != "upper GO\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestTengo_UnknownModule(t *testing.T) {
	if _, err := New().NewContext(engine.Config{Libraries: []string{"net"}}); err == nil {
		t.Fatal("expected error for unknown module")
	}
}
