package luajs

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/Otixa/luajs/engine"
	"github.com/Otixa/luajs/logging"
	"github.com/Otixa/luajs/registry"
	"github.com/google/uuid"
)

// State is one named interpreter instance. All methods are safe for
// concurrent use; requests are executed one at a time in submission order.
type State struct {
	*instance
	cleanup runtime.Cleanup
}

// instance holds everything the worker goroutine needs. It is kept apart
// from State so an unreachable State can be cleaned up while the worker is
// still parked on the queue.
type instance struct {
	name     string
	engine   engine.Engine
	ctx      engine.Context
	registry *registry.Registry
	logger   logging.Logger

	queue     *queue
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a State, reserving its name and creating a fresh engine
// context. A name collision returns an error matching ErrDuplicateName and
// creates no context.
func New(opts ...Option) (*State, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	name, err := o.registry.Reserve(o.name)
	if err != nil {
		return nil, err
	}

	ctx, err := o.engine.NewContext(o.engineConfig)
	if err != nil {
		o.registry.Release(name)
		return nil, fmt.Errorf("failed to create %s context: %w", o.engine.Name(), err)
	}

	in := &instance{
		name:     name,
		engine:   o.engine,
		ctx:      ctx,
		registry: o.registry,
		logger:   o.logger,
		queue:    newQueue(),
		done:     make(chan struct{}),
	}
	go in.work()

	// Queued tasks hold their State, so the cleanup only runs once every
	// submitted request has settled.
	s := &State{instance: in}
	s.cleanup = runtime.AddCleanup(s, func(in *instance) { go in.close() }, in)

	in.logger.Debug("state created", "state", name, "engine", o.engine.Name())
	return s, nil
}

// Name returns the State's registered name.
func (s *State) Name() string { return s.name }

// Engine returns the name of the State's script engine.
func (s *State) Engine() string { return s.engine.Name() }

// Version returns the engine's language version descriptor.
func (s *State) Version() string { return s.engine.Version() }

// DoStringSync runs source and blocks until it finishes.
func (s *State) DoStringSync(source string) (engine.Value, error) {
	return s.DoString(source).Wait()
}

// DoString queues source for execution and returns immediately. Failures,
// including use after Close, are reported through the returned Future.
func (s *State) DoString(source string) *Future {
	chunk := engine.StringChunk(source)
	return s.submit("run", chunk.Name, func(ctx engine.Context) (engine.Value, error) {
		return ctx.Run(chunk)
	})
}

// DoFileSync runs the script at path and blocks until it finishes.
func (s *State) DoFileSync(path string) (engine.Value, error) {
	return s.DoFile(path).Wait()
}

// DoFile queues the script at path for execution. The file is read when the
// request reaches the front of the queue.
func (s *State) DoFile(path string) *Future {
	return s.submit("file", path, func(ctx engine.Context) (engine.Value, error) {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, &engine.Error{
				Phase:   engine.PhaseLoad,
				Message: err.Error(),
				Chunk:   path,
				Err:     err,
			}
		}
		return ctx.Run(engine.Chunk{Name: path, Source: string(src)})
	})
}

// GetGlobal reads a global variable from the context.
func (s *State) GetGlobal(name string) (engine.Value, error) {
	return s.submit("get", name, func(ctx engine.Context) (engine.Value, error) {
		return ctx.GetGlobal(name)
	}).Wait()
}

// SetGlobal writes v as a global variable in the context.
func (s *State) SetGlobal(name string, v engine.Value) error {
	_, err := s.submit("set", name, func(ctx engine.Context) (engine.Value, error) {
		return nil, ctx.SetGlobal(name, v)
	}).Wait()
	return err
}

// Close disposes the State: queued requests that have not started fail with
// ErrDisposed, the running request (if any) completes, the context is
// destroyed and the name is released. Calling Close again is a no-op.
func (s *State) Close() error {
	s.cleanup.Stop()
	s.close()
	return nil
}

func (s *State) submit(kind, label string, run func(engine.Context) (engine.Value, error)) *Future {
	in := s.instance
	t := &task{
		id:     uuid.NewString(),
		kind:   kind,
		label:  label,
		run:    run,
		future: newFuture(),
		owner:  s,
	}
	if !in.queue.push(t) {
		t.future.settle(nil, &DisposedError{Name: in.name, Task: t.id})
		return t.future
	}
	in.logger.Debug("task queued", "state", in.name, "task", t.id, "kind", kind, "label", label)
	return t.future
}

// work is the single consumer of the queue.
func (in *instance) work() {
	defer close(in.done)
	for {
		t, ok := in.queue.pop()
		if !ok {
			return
		}
		start := time.Now()
		v, err := in.execute(t)
		in.logger.Debug("task finished",
			"state", in.name,
			"task", t.id,
			"kind", t.kind,
			"duration", time.Since(start),
			"success", err == nil,
		)
		t.future.settle(v, err)
		t.owner = nil
	}
}

// execute runs t, converting an engine panic into a runtime error.
func (in *instance) execute(t *task) (v engine.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = &engine.Error{
				Phase:   engine.PhaseRuntime,
				Message: fmt.Sprintf("engine panic in task %s: %v", t.id, r),
				Chunk:   t.label,
			}
		}
	}()
	return t.run(in.ctx)
}

func (in *instance) close() {
	in.closeOnce.Do(func() {
		pending := in.queue.close()
		for _, t := range pending {
			t.owner = nil
			t.future.settle(nil, &DisposedError{Name: in.name, Task: t.id})
		}
		<-in.done

		if err := in.ctx.Close(); err != nil {
			in.logger.Warn("failed to close context", "state", in.name, "error", err)
		}
		in.registry.Release(in.name)
		in.logger.Debug("state closed", "state", in.name, "rejected", len(pending))
	})
}
