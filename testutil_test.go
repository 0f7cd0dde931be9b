package luajs

import (
	"errors"
	"strings"
	"sync"

	"github.com/Otixa/luajs/engine"
)

// fakeEngine records execution order and lets tests hold a chunk open.
// Chunks named "block:<key>" wait until release(key) is called.
type fakeEngine struct {
	mu       sync.Mutex
	events   []string
	gates    map[string]chan struct{}
	started  chan string
	failNew  error
	closed   int
	contexts int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 64),
	}
}

func (e *fakeEngine) Name() string    { return "fake" }
func (e *fakeEngine) Version() string { return "Fake 1.0" }

func (e *fakeEngine) NewContext(engine.Config) (engine.Context, error) {
	if e.failNew != nil {
		return nil, e.failNew
	}
	e.mu.Lock()
	e.contexts++
	e.mu.Unlock()
	return &fakeContext{engine: e, globals: map[string]engine.Value{}}, nil
}

func (e *fakeEngine) gate(key string) chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	ch, ok := e.gates[key]
	if !ok {
		ch = make(chan struct{})
		e.gates[key] = ch
	}
	return ch
}

func (e *fakeEngine) release(key string) {
	close(e.gate(key))
}

func (e *fakeEngine) record(event string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *fakeEngine) log() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.events...)
}

type fakeContext struct {
	engine  *fakeEngine
	globals map[string]engine.Value
}

func (c *fakeContext) Run(chunk engine.Chunk) (engine.Value, error) {
	src := chunk.Source
	c.engine.record("start " + src)
	defer c.engine.record("end " + src)
	c.engine.started <- src

	switch {
	case strings.HasPrefix(src, "block:"):
		<-c.engine.gate(strings.TrimPrefix(src, "block:"))
		return src, nil
	case src == "fail":
		return nil, &engine.Error{Phase: engine.PhaseRuntime, Message: "boom", Chunk: chunk.Name}
	case src == "panic":
		panic("kaboom")
	default:
		return src, nil
	}
}

func (c *fakeContext) GetGlobal(name string) (engine.Value, error) {
	return c.globals[name], nil
}

func (c *fakeContext) SetGlobal(name string, v engine.Value) error {
	if name == "" {
		return errors.New("empty name")
	}
	c.globals[name] = engine.Normalize(v)
	return nil
}

func (c *fakeContext) Close() error {
	c.engine.mu.Lock()
	c.engine.closed++
	c.engine.mu.Unlock()
	return nil
}
